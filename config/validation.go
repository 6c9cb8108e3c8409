package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that the loaded configuration is usable before the
// server starts. Credentials that only matter for optional subsystems (S3,
// DeepSeek) are not required here.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", cfg.ServerPort)
	}

	// Tests mint their own secrets; everywhere else a missing JWT secret
	// would make every issued token unverifiable.
	if cfg.JWTSecret == "" && !IsTest() {
		return fmt.Errorf("JWT secret is required")
	}

	if cfg.DBHost == "" || cfg.DBPort == "" {
		return fmt.Errorf("database host and port are required")
	}
	if _, err := strconv.Atoi(cfg.DBPort); err != nil {
		return fmt.Errorf("invalid database port: %s", cfg.DBPort)
	}

	return nil
}
