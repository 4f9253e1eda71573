package export

// Config holds the export destination.
type Config struct {
	// Dir is the directory artifacts are written to.
	Dir string `mapstructure:"dir" default:"output"`
	// Name is the base filename of the CSV and JSON artifacts.
	Name string `mapstructure:"name" default:"intune_apps"`
}
