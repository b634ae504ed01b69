package logging

import (
	"fmt"
	"os"
	"strings"
)

// Env names the environment variables that override logging settings.
// Empty names are skipped.
type Env struct {
	Level  string
	Format string
}

// Config selects the minimum severity and the handler encoding for service logs.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
}

// Finalize applies environment overrides, folds case, fills unset fields with
// info/text and validates the result.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.Level = Level(lookupEnv(env.Level, string(c.Level)))
		c.Format = Format(lookupEnv(env.Format, string(c.Format)))
	}

	c.Level = Level(canonical(string(c.Level), string(LevelInfo)))
	if c.Level == "warning" {
		c.Level = LevelWarn
	}
	c.Format = Format(canonical(string(c.Format), string(FormatText)))

	if err := c.Level.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Format.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Merge applies the overlay's non-empty fields.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

// lookupEnv returns the value of the named variable, or current when the name
// is empty or the variable is unset or blank.
func lookupEnv(name, current string) string {
	if name == "" {
		return current
	}
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return current
}

func canonical(value, fallback string) string {
	if v := strings.ToLower(strings.TrimSpace(value)); v != "" {
		return v
	}
	return fallback
}
