package config

import "github.com/JaimeStill/sales-lab/pkg/salesapi"

var appClientEnv = &salesapi.Env{
	BaseURL: "APP_BASE_URL",
	Timeout: "APP_TIMEOUT",
}

// AppConfig contains configuration for the web app module. The pages reach
// the orders API through the data-access client configured here.
type AppConfig struct {
	Client salesapi.Config `toml:"client"`
}

// Finalize applies defaults, loads environment overrides, and validates the app configuration.
func (c *AppConfig) Finalize() error {
	return c.Client.Finalize(appClientEnv)
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AppConfig) Merge(overlay *AppConfig) {
	c.Client.Merge(&overlay.Client)
}
