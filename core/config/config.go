package config

import (
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tft-atlas/core/cache"
	"tft-atlas/core/logger"
	"tft-atlas/core/server"
	"tft-atlas/core/storage"
	"tft-atlas/feature/agent"
	"tft-atlas/feature/cdragon"
	"tft-atlas/feature/docs"
	"tft-atlas/feature/recipes"
	"tft-atlas/feature/search"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Cache holds configuration for the scrape page cache.
	Cache cache.Config `mapstructure:"cache"`
	// Source holds configuration for the game data endpoints.
	Source cdragon.Config `mapstructure:"source"`
	// Recipes holds configuration for recipe scraping and merging.
	Recipes recipes.Config `mapstructure:"recipes"`
	// Work holds configuration for the local artifact directory.
	Work docs.Config `mapstructure:"work"`
	// Search holds configuration for the search service.
	Search search.Config `mapstructure:"search"`
	// Agent holds configuration for the question answering agent.
	Agent agent.Config `mapstructure:"agent"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SEARCH_ENDPOINT -> search.endpoint)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

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

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

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
