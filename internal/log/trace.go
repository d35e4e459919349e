package log

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ContextKey type for context keys
type ContextKey string

const (
	// ActionIDKey is the context key for the menu action ID
	ActionIDKey ContextKey = "action_id"
)

// GenerateActionID creates a unique ID tying together the log lines of one menu action
func GenerateActionID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("act_%d", time.Now().UnixNano())
	}
	return "act_" + hex.EncodeToString(bytes)
}

// WithActionID returns ctx carrying a fresh action ID, and the ID.
func WithActionID(ctx context.Context) (context.Context, string) {
	id := GenerateActionID()
	return context.WithValue(ctx, ActionIDKey, id), id
}

// GetActionID extracts the action ID from context
func GetActionID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(ActionIDKey).(string); ok {
		return id
	}
	return ""
}
