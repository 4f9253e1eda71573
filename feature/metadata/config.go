package metadata

import "time"

// Config holds configuration for the enrichment phase.
type Config struct {
	// Enabled turns on enrichment (--metadata).
	Enabled bool `mapstructure:"enabled" default:"false"`
	// IntervalSeconds is the fixed spacing between successive store lookups.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"5"`
	// Country is the storefront used for lookups.
	Country string `mapstructure:"country" default:"us"`
	// Language is the listing language requested from Google Play.
	Language string `mapstructure:"language" default:"en"`
	// AppStoreURL is the base URL of the Apple lookup API.
	AppStoreURL string `mapstructure:"app_store_url" default:"https://itunes.apple.com"`
	// PlayStoreURL is the base URL of the Google Play web store.
	PlayStoreURL string `mapstructure:"play_store_url" default:"https://play.google.com"`
	// TimeoutSeconds bounds every store request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Interval returns the spacing between lookups. Negative values disable spacing.
func (c Config) Interval() time.Duration {
	if c.IntervalSeconds < 0 {
		return 0
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Timeout returns the per-request timeout, defaulting to 30s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
