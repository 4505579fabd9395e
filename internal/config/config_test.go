package config

import (
	"path/filepath"
	"testing"

	"github.com/pollhive/pollhive/internal/logger"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	if cfg.DB.Driver == "" {
		t.Error("DB.Driver should not be empty")
	}
}

func TestConfigValidation(t *testing.T) {
	valid := Config{
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
		DB:        DB{Driver: "sqlite", Path: ":memory:"},
		Log:       logger.Log{LogLevel: "info"},
	}

	tests := []struct {
		name    string
		mutate  func(c Config) Config
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(c Config) Config { return c },
		},
		{
			name: "zero port",
			mutate: func(c Config) Config {
				c.Webserver.Port = 0
				return c
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "empty url",
			mutate: func(c Config) Config {
				c.Webserver.URL = ""
				return c
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown db driver",
			mutate: func(c Config) Config {
				c.DB.Driver = "oracle"
				return c
			},
			wantErr: ErrUnknownDBDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := tt.mutate(valid)
			err := validate(&mutated)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("validate() unexpected error: %v", err)
			}

			if tt.wantErr != nil && err == nil {
				t.Fatalf("validate() expected error %v, got nil", tt.wantErr)
			}
		})
	}
}
