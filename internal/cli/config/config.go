// Package config loads xmlbind CLI settings from xmlbind.yaml and XMLBIND_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. XMLBIND_INDENT.
const EnvPrefix = "XMLBIND"

// Config represents the xmlbind CLI configuration.
type Config struct {
	// Schema is the default schema file used when --schema is not given.
	Schema string `mapstructure:"schema"`
	// Indent is the number of spaces used when writing XML. Negative disables
	// indentation.
	Indent int `mapstructure:"indent"`
	// Declaration controls whether encoded documents start with <?xml ...?>.
	Declaration bool `mapstructure:"declaration"`
	// Verbose enables development logging.
	Verbose bool `mapstructure:"verbose"`
}

// Load reads the configuration. An explicit path must exist; otherwise
// xmlbind.yaml is looked up in the working directory and silently skipped
// when absent.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("schema", "")
	v.SetDefault("indent", 2)
	v.SetDefault("declaration", true)
	v.SetDefault("verbose", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("xmlbind")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
