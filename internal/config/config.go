// Package config defines the simulator configuration and loads it from a
// YAML file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iwvelando/capital-simulator/pkg/constants"
	"github.com/iwvelando/capital-simulator/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SIMULATOR_ENDPOINT.
const EnvPrefix = "SIMULATOR"

// Configuration holds all configuration for the simulator.
type Configuration struct {
	Endpoint string         `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration  `mapstructure:"timeout" yaml:"timeout,omitempty"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging,omitempty"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output,omitempty"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // text, json
}

// DefaultsConfig holds form values used when the CLI leaves them out.
type DefaultsConfig struct {
	RiskProfile string `mapstructure:"riskProfile" yaml:"riskProfile,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("endpoint", constants.DefaultEndpoint)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatText)
	v.SetDefault("defaults.riskProfile", "moderada")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path or a missing file yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// Validate checks the configuration for values the simulator cannot use.
func (c *Configuration) Validate() error {
	parsed, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", c.Endpoint)
	}
	if parsed.Host == "" {
		return fmt.Errorf("endpoint %q has no host", c.Endpoint)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	return validation.ValidateOutputFormat(c.Output.Format)
}

// HTTPClient returns the client used to reach the optimizer. A zero timeout
// leaves the call bounded only by the transport.
func (c *Configuration) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.Timeout}
}
