// Package config loads and validates the runtime configuration of the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/gnud-gnaoh/github-most-starred/internal/domain"
)

// TokenEnv is the environment variable holding the GitHub API token.
const TokenEnv = "GITHUB_TOKEN"

// ErrMissingToken is returned when no API token is configured.
var ErrMissingToken = errors.New(TokenEnv + " environment variable is not set")

// Config holds everything needed for one run.
type Config struct {
	Token   string
	Start   string
	End     string
	API     string
	PerPage int
	JSON    bool
	Verbose bool
}

// LoadEnv loads variables from the given .env files into the process environment.
// Missing files are ignored and variables already set are never overwritten.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// TokenFromEnv returns the API token from the environment.
func TokenFromEnv() string {
	return os.Getenv(TokenEnv)
}

// Validate checks the flag values. The token is checked separately so that its
// absence gets a dedicated error.
func (c Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Start, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&c.End, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&c.API, validation.Required, validation.In(domain.APIREST, domain.APIGraphQL)),
		validation.Field(&c.PerPage, validation.Required, validation.Min(1), validation.Max(domain.MaxPageSize)),
	)
}

// DateRange validates the configuration and returns the creation date range to search.
func (c Config) DateRange() (domain.DateRange, error) {
	if err := c.Validate(); err != nil {
		return domain.DateRange{}, err
	}
	return domain.NewDateRange(c.Start, c.End)
}
