// Package config provides configuration management for the Ultraboard application.
package config

import (
	"github.com/yourusername/ultraboard/internal/analytics"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Dataset   DatasetConfig   `mapstructure:"dataset" validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
	Editions  []EditionConfig `mapstructure:"editions" validate:"required,min=1,dive"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the API server configuration
type ServerConfig struct {
	Port                int `mapstructure:"port" validate:"required,min=1,max=65535"`
	HealthPort          int `mapstructure:"health_port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds     int `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize        int `mapstructure:"cache_max_size" validate:"required,gt=0"`
}

// DatasetConfig represents the static dataset HTTP client configuration
type DatasetConfig struct {
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RetryWaitMinMS    int     `mapstructure:"retry_wait_min_ms" validate:"required,gt=0"`
	RetryWaitMaxMS    int     `mapstructure:"retry_wait_max_ms" validate:"required,gt=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
}

// AnalyticsConfig tunes the derived-series computations
type AnalyticsConfig struct {
	EMAWindow              int     `mapstructure:"ema_window" validate:"required,gt=0"`
	CohortThresholdMinutes float64 `mapstructure:"cohort_threshold_minutes" validate:"required,gt=0"`
	ChartMinMinutes        float64 `mapstructure:"chart_min_minutes" validate:"gte=0"`
	ChartMaxMinutes        float64 `mapstructure:"chart_max_minutes" validate:"gte=0"`
}

// EditionConfig describes one race edition's datasets and course quirks
type EditionConfig struct {
	Name          string         `mapstructure:"name" validate:"required"`
	ResultsURL    string         `mapstructure:"results_url" validate:"required,url"`
	LapsURL       string         `mapstructure:"laps_url" validate:"required,url"`
	CohortEnabled bool           `mapstructure:"cohort_enabled"`
	Sections      SectionsConfig `mapstructure:"sections"`
}

// SectionsConfig describes the lap-axis partition for an edition.
// Zero lengths fall back to the shared course defaults.
type SectionsConfig struct {
	FirstLength int                     `mapstructure:"first_length" validate:"gte=0"`
	OddLength   int                     `mapstructure:"odd_length" validate:"gte=0"`
	EvenLength  int                     `mapstructure:"even_length" validate:"gte=0"`
	Overrides   []SectionOverrideConfig `mapstructure:"overrides" validate:"dive"`
}

// SectionOverrideConfig pins one section to a terrain regardless of parity
type SectionOverrideConfig struct {
	Section int    `mapstructure:"section" validate:"required,gt=0"`
	Terrain string `mapstructure:"terrain" validate:"required,terrain"`
	Label   string `mapstructure:"label"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// EditionByName looks up an edition's configuration
func (c *Config) EditionByName(name string) (EditionConfig, bool) {
	for _, e := range c.Editions {
		if e.Name == name {
			return e, true
		}
	}
	return EditionConfig{}, false
}

// EditionNames returns the configured edition names in order
func (c *Config) EditionNames() []string {
	names := make([]string, 0, len(c.Editions))
	for _, e := range c.Editions {
		names = append(names, e.Name)
	}
	return names
}

// SectionRules converts an edition's sections configuration to the
// analytics segmenter's rules, applying course defaults for lengths
// left unset.
func (e EditionConfig) SectionRules() analytics.SectionRules {
	rules := analytics.DefaultSectionRules()
	if e.Sections.FirstLength > 0 {
		rules.FirstLength = e.Sections.FirstLength
	}
	if e.Sections.OddLength > 0 {
		rules.OddLength = e.Sections.OddLength
	}
	if e.Sections.EvenLength > 0 {
		rules.EvenLength = e.Sections.EvenLength
	}
	for _, o := range e.Sections.Overrides {
		rules.Overrides = append(rules.Overrides, analytics.SectionOverride{
			Section: o.Section,
			Terrain: analytics.Terrain(o.Terrain),
			Label:   o.Label,
		})
	}
	return rules
}
