package config

import (
	"fmt"
	"reflect"
	"strings"

	"app-inventory/core/database"
	"app-inventory/core/graph"
	"app-inventory/core/logger"
	"app-inventory/core/storage"
	"app-inventory/feature/export"
	"app-inventory/feature/metadata"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Graph holds the tenant credentials and API endpoints.
	Graph graph.Config `mapstructure:"graph"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the local store.
	Database database.Config `mapstructure:"database"`
	// Metadata holds configuration for store metadata enrichment.
	Metadata metadata.Config `mapstructure:"metadata"`
	// Export holds the artifact destination.
	Export export.Config `mapstructure:"export"`
	// Storage holds configuration for the optional export upload (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
}

// envAliases maps keys to the variable names accepted on top of the derived one.
var envAliases = map[string][]string{
	"graph.tenant_id":     {"TENANT_ID"},
	"graph.client_id":     {"CLIENT_ID"},
	"graph.client_secret": {"CLIENT_SECRET"},
	"log.env":             {"NODE_ENV"},
}

// flagKeys maps command-line flags to the keys they override.
var flagKeys = map[string]string{
	"tenantId": "graph.tenant_id",
	"clientId": "graph.client_id",
	"output":   "export.name",
	"metadata": "metadata.enabled",
	"debug":    "log.debug",
}

// LoadConfig loads configuration from environment variables, the .env file in path
// and, when given, the command-line flags. Flags win over the environment only when set.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. DATABASE_NAME -> database.name)
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	// Explicit names replace the derived one, so it is bound again first
	for key, aliases := range envAliases {
		names := append([]string{strings.ToUpper(replacer.Replace(key))}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
