package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/capital-simulator/pkg/constants"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulator.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigurationDefaultsWhenMissing(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Endpoint != constants.DefaultEndpoint {
		t.Errorf("expected default endpoint, got %s", conf.Endpoint)
	}
	if conf.Timeout != 0 {
		t.Errorf("expected no timeout by default, got %s", conf.Timeout)
	}
	if conf.Output.Format != constants.OutputFormatText {
		t.Errorf("expected text output by default, got %s", conf.Output.Format)
	}
	if conf.Defaults.RiskProfile != "moderada" {
		t.Errorf("expected moderada default risk profile, got %s", conf.Defaults.RiskProfile)
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadConfigurationOverrides(t *testing.T) {
	path := writeConfig(t, `endpoint: https://optimizer.example.com/api/optimize
timeout: 30s
logging:
  level: debug
  format: console
  outputFile: /tmp/simulator.log
output:
  format: json
defaults:
  riskProfile: agressivo
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Endpoint != "https://optimizer.example.com/api/optimize" {
		t.Errorf("expected endpoint override, got %s", conf.Endpoint)
	}
	if conf.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", conf.Timeout)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Logging.OutputFile != "/tmp/simulator.log" {
		t.Errorf("expected logging outputFile /tmp/simulator.log, got %s", conf.Logging.OutputFile)
	}
	if conf.Output.Format != constants.OutputFormatJSON {
		t.Errorf("expected json output, got %s", conf.Output.Format)
	}
	if conf.Defaults.RiskProfile != "agressivo" {
		t.Errorf("expected agressivo, got %s", conf.Defaults.RiskProfile)
	}
	if conf.HTTPClient().Timeout != 30*time.Second {
		t.Errorf("expected http client timeout of 30s, got %s", conf.HTTPClient().Timeout)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("SIMULATOR_ENDPOINT", "http://10.0.0.1:5000/api/optimize")

	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Endpoint != "http://10.0.0.1:5000/api/optimize" {
		t.Errorf("expected endpoint from environment, got %s", conf.Endpoint)
	}
}

func TestLoadConfigurationInvalidYaml(t *testing.T) {
	path := writeConfig(t, "endpoint: [unterminated")

	if _, err := LoadConfiguration(path); err == nil {
		t.Fatal("expected error for invalid YAML but got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Configuration)
		expectErr bool
	}{
		{"Defaults", func(c *Configuration) {}, false},
		{"Relative endpoint", func(c *Configuration) { c.Endpoint = "/api/optimize" }, true},
		{"Unsupported scheme", func(c *Configuration) { c.Endpoint = "ftp://host/api" }, true},
		{"Missing host", func(c *Configuration) { c.Endpoint = "http:///api" }, true},
		{"Negative timeout", func(c *Configuration) { c.Timeout = -time.Second }, true},
		{"Bad output format", func(c *Configuration) { c.Output.Format = "csv" }, true},
		{"JSON output", func(c *Configuration) { c.Output.Format = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration("")
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			tt.modify(conf)
			err = conf.Validate()
			if tt.expectErr && err == nil {
				t.Errorf("Validate() expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}
