package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/capital-simulator/pkg/constants"
)

func writeServerConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		path        func(t *testing.T) string
		address     string
		bodySize    int64
		readTimeout time.Duration
		logLevel    string
	}{
		{
			name:        "missing file",
			path:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
			address:     constants.DefaultServerAddress,
			bodySize:    constants.DefaultMaxBodySizeBytes,
			readTimeout: constants.DefaultServerReadTimeout,
		},
		{
			name:        "no path",
			path:        func(t *testing.T) string { return "" },
			address:     constants.DefaultServerAddress,
			bodySize:    constants.DefaultMaxBodySizeBytes,
			readTimeout: constants.DefaultServerReadTimeout,
		},
		{
			name: "overrides",
			path: func(t *testing.T) string {
				return writeServerConfig(t, `address: 127.0.0.1:9000
maxBodySize: 1M
readTimeout: 30s
logging:
  level: debug
  format: console
`)
			},
			address:     "127.0.0.1:9000",
			bodySize:    1 << 20,
			readTimeout: 30 * time.Second,
			logLevel:    "debug",
		},
		{
			name:        "empty file",
			path:        func(t *testing.T) string { return writeServerConfig(t, "") },
			address:     constants.DefaultServerAddress,
			bodySize:    constants.DefaultMaxBodySizeBytes,
			readTimeout: constants.DefaultServerReadTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path(t))
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if cfg.Address != tt.address {
				t.Errorf("Address = %q, expected %q", cfg.Address, tt.address)
			}
			if cfg.BodySizeBytes() != tt.bodySize {
				t.Errorf("BodySizeBytes() = %d, expected %d", cfg.BodySizeBytes(), tt.bodySize)
			}
			if cfg.ReadTimeout != tt.readTimeout {
				t.Errorf("ReadTimeout = %s, expected %s", cfg.ReadTimeout, tt.readTimeout)
			}
			if cfg.Logging.Level != tt.logLevel {
				t.Errorf("Logging.Level = %q, expected %q", cfg.Logging.Level, tt.logLevel)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"invalid size":     "maxBodySize: invalid",
		"unsupported unit": "maxBodySize: 2GB",
		"negative timeout": "readTimeout: -1s",
		"malformed yaml":   "address: [",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeServerConfig(t, contents)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestHTTPServer(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	srv := cfg.HTTPServer(newTestHandler(t, "http://unused"))
	if srv.Addr != constants.DefaultServerAddress {
		t.Errorf("Addr = %q", srv.Addr)
	}
	if srv.ReadTimeout != constants.DefaultServerReadTimeout || srv.WriteTimeout != 0 {
		t.Errorf("unexpected timeouts read=%s write=%s", srv.ReadTimeout, srv.WriteTimeout)
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxBodySizeBytes,
		"1024":      1024,
		"512b":      512,
		"64K":       64 << 10,
		"256 kb":    256 << 10,
		"1m":        1 << 20,
		"3MB":       3 << 20,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Errorf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, input := range []string{"1GB", "abc", "-5", "99999999999999999999"} {
		if _, err := ParseSize(input); err == nil {
			t.Errorf("ParseSize(%q) expected an error", input)
		}
	}
}
