package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the log encoding (json, console). Empty derives it from Env.
	Format string `mapstructure:"format" default:""`
	// Env is the runtime environment; "production" selects json output.
	Env string `mapstructure:"env" default:"development"`
	// Debug forces the development configuration regardless of Level.
	Debug bool `mapstructure:"debug" default:"false"`
}

// IsDebug reports whether debug verbosity was requested.
func (c Config) IsDebug() bool {
	return c.Debug || c.Level == "debug"
}

// Encoding resolves the output encoding.
func (c Config) Encoding() string {
	if c.Format != "" {
		return c.Format
	}
	if c.Env == "production" {
		return "json"
	}
	return "console"
}
