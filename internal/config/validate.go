package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateReview(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInput() error {
	// A layout that cannot round-trip the reference time is not a valid
	// Go date layout.
	ref := time.Date(2006, time.January, 2, 0, 0, 0, 0, time.UTC)
	rendered := ref.Format(c.Input.DateFormat)
	if _, err := time.Parse(c.Input.DateFormat, rendered); err != nil {
		return fmt.Errorf("input.date_format %q is not a valid date layout: %w", c.Input.DateFormat, err)
	}
	return nil
}

func (c *Config) validateReview() error {
	if c.Review.ListLimit < 0 {
		return errors.New("review.list_limit must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
