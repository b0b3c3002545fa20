package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envFileVar overrides the location of the .env file.
const envFileVar = "CALC_ENV_FILE"

// loadDotEnv loads environment variables from .env (or $CALC_ENV_FILE) when
// present. Existing process environment variables are not overridden.
func loadDotEnv() error {
	path := os.Getenv(envFileVar)
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
