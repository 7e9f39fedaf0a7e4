package config

import (
	"fmt"
	"net"
	"os"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Loader config
	switch c.Loader.Backend {
	case "native", "obabel":
	default:
		errors = append(errors, ValidationError{
			Field:   "loader.backend",
			Message: fmt.Sprintf("backend must be native or obabel, got %q", c.Loader.Backend),
		})
	}

	if c.Loader.ScratchDir != "" {
		if info, err := os.Stat(c.Loader.ScratchDir); err != nil || !info.IsDir() {
			errors = append(errors, ValidationError{
				Field:   "loader.scratch_dir",
				Message: "scratch_dir must be an existing directory",
			})
		}
	}

	// Validate Server config
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Message: "invalid listen address",
		})
	}

	if c.Server.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "server.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if c.Server.Burst < 1 {
		errors = append(errors, ValidationError{
			Field:   "server.burst",
			Message: "burst must be positive",
		})
	}

	if c.Server.MaxUploadSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "server.max_upload_size",
			Message: "max_upload_size must be positive",
		})
	}

	// Validate UI config
	if p := c.Decimals(); p < 0 || p > 12 {
		errors = append(errors, ValidationError{
			Field:   "ui.precision",
			Message: "precision must be between 0 and 12",
		})
	}

	return errors
}
