package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateOutput()
}

func (c *Config) validateAlignment() error {
	if _, err := c.AlignOptions(); err != nil {
		return err
	}
	a := c.Alignment
	if a.Window < -1 {
		return fmt.Errorf("alignment.window must be -1 (unlimited) or >= 0, got %d", a.Window)
	}
	if a.SlopePenalty < 0 || math.IsNaN(a.SlopePenalty) || math.IsInf(a.SlopePenalty, 0) {
		return errors.New("alignment.slope_penalty must be a finite value >= 0")
	}
	if a.Workers < 0 {
		return errors.New("alignment.workers must be >= 0 (0 uses every CPU)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "auto", "table", "json":
		return nil
	default:
		return fmt.Errorf("output.format: unsupported value %q", c.Output.Format)
	}
}
