package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"
)

// PasswordSpecials lists the characters that satisfy the special-character rule.
const PasswordSpecials = "!@#$%^&*"

type passwordRule struct {
	re   *regexp.Regexp
	desc string
}

var passwordRules = []passwordRule{
	{regexp.MustCompile(`(?s)^.{8,}$`), "at least 8 characters"},
	{regexp.MustCompile(`[0-9]`), "at least one digit"},
	{regexp.MustCompile(`[A-Z]`), "at least one uppercase letter"},
	{regexp.MustCompile(`[!@#$%^&*]`), "at least one of " + PasswordSpecials},
}

// PasswordPolicy describes the rules for prompts.
func PasswordPolicy() string {
	descs := make([]string, len(passwordRules))
	for i, r := range passwordRules {
		descs[i] = r.desc
	}
	return strings.Join(descs, ", ")
}

// ValidatePassword reports the first rule password breaks as core.ErrInvalidPassword.
func ValidatePassword(password string) error {
	for _, r := range passwordRules {
		if !r.re.MatchString(password) {
			return fmt.Errorf("%w: needs %s", core.ErrInvalidPassword, r.desc)
		}
	}
	return nil
}

// PasswordHasher is a salted one-way hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns nil only when password matches hash.
	Verify(hash, password string) error
}

// BcryptHasher hashes with bcrypt at Cost (bcrypt.DefaultCost when zero).
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: longer than 72 bytes", core.ErrInvalidPassword)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares in constant time.
func (h BcryptHasher) Verify(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// AuthService registers users and checks their credentials.
type AuthService struct {
	users  ports.UserStore
	hasher PasswordHasher
	log    *applog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users ports.UserStore, hasher PasswordHasher, logger *applog.Logger) *AuthService {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		log:    applog.For(logger, applog.ComponentAuth),
	}
}

// Register creates a user after checking the username and password policy.
// Only the password hash is stored.
func (s *AuthService) Register(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, core.ErrEmptyUsername
	}
	if err := ValidatePassword(password); err != nil {
		return core.User{}, err
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return core.User{}, fmt.Errorf("register %q: %w", username, core.ErrAlreadyExists)
	case !errors.Is(err, core.ErrNotFound):
		return core.User{}, fmt.Errorf("register %q: %w", username, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return core.User{}, err
	}
	user, err := s.users.CreateUser(ctx, username, hash)
	if err != nil {
		return core.User{}, fmt.Errorf("register %q: %w", username, err)
	}

	s.log.Operation(ctx, applog.OpRegister, nil, applog.FieldID, user.ID, applog.FieldUsername, user.Username)
	user.PasswordHash = ""
	return user, nil
}

// Login returns the user when password matches. Unknown usernames and wrong
// passwords both yield core.ErrInvalidCredentials and cost one hash comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, core.ErrNotFound) {
		_ = s.hasher.Verify(s.dummy(), password)
		s.log.Operation(ctx, applog.OpLogin, core.ErrInvalidCredentials)
		return core.User{}, core.ErrInvalidCredentials
	}
	if err != nil {
		return core.User{}, fmt.Errorf("login: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		s.log.Operation(ctx, applog.OpLogin, core.ErrInvalidCredentials)
		return core.User{}, core.ErrInvalidCredentials
	}

	s.log.Operation(ctx, applog.OpLogin, nil, applog.FieldID, user.ID)
	user.PasswordHash = ""
	return user, nil
}

// dummy is a real hash of a throwaway password, compared against for unknown users.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("Unused-Passw0rd!")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
