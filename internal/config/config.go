package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	applog "finance/internal/log"
)

type Config struct {
	// Databases
	FinanceDBPath string
	UsersDBPath   string
	DataBackend   string

	// Report outputs
	ReportTextPath string
	ReportPDFPath  string
	ChartPDFPath   string
	Currency       string

	// Credentials
	BcryptCost int

	// Logging
	LogLevel string
}

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

func Load() *Config {
	cfg := &Config{
		FinanceDBPath: getEnv("FINANCE_DB_PATH", "finance.db"),
		UsersDBPath:   getEnv("USERS_DB_PATH", "users.db"),
		DataBackend:   getEnv("DATA_BACKEND", BackendSQLite),

		ReportTextPath: getEnv("REPORT_TEXT_PATH", "BudgetReport.txt"),
		ReportPDFPath:  getEnv("REPORT_PDF_PATH", "BudgetReport.pdf"),
		ChartPDFPath:   getEnv("CHART_PDF_PATH", "BudgetChart.pdf"),
		Currency:       getEnv("CURRENCY", "USD"),

		BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),

		LogLevel: getEnv("LOG_LEVEL", "error"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{BackendSQLite, BackendMemory}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendSQLite {
		if c.FinanceDBPath == "" {
			errors = append(errors, "finance database path cannot be empty when using sqlite backend")
		}
		if c.UsersDBPath == "" {
			errors = append(errors, "users database path cannot be empty when using sqlite backend")
		}
		if c.FinanceDBPath != "" && c.FinanceDBPath == c.UsersDBPath {
			errors = append(errors, fmt.Sprintf("finance and users databases must be different files, both are '%s'", c.FinanceDBPath))
		}
	}

	// Output files must be writable locations
	outputs := map[string]string{
		"report text path": c.ReportTextPath,
		"report PDF path":  c.ReportPDFPath,
		"chart PDF path":   c.ChartPDFPath,
	}
	for _, name := range []string{"report text path", "report PDF path", "chart PDF path"} {
		path := outputs[name]
		if strings.TrimSpace(path) == "" {
			errors = append(errors, fmt.Sprintf("%s cannot be empty", name))
			continue
		}
		dir := filepath.Dir(path)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("%s directory '%s' does not exist", name, dir))
		}
	}

	if strings.TrimSpace(c.Currency) == "" {
		errors = append(errors, "currency label cannot be empty")
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errors = append(errors, fmt.Sprintf("invalid bcrypt cost %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
