// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Database DatabaseFileConfig `toml:"database"`
	LLM      LLMFileConfig      `toml:"llm"`
	Server   ServerFileConfig   `toml:"server"`
	Logging  LoggingFileConfig  `toml:"logging"`
}

// DatabaseFileConfig maps database settings.
type DatabaseFileConfig struct {
	Driver       *string `toml:"driver"`
	DSN          *string `toml:"dsn"`
	MaxOpenConns *int    `toml:"max-open-conns"`
}

// LLMFileConfig maps feedback provider settings.
type LLMFileConfig struct {
	Provider       *string `toml:"provider"`
	Model          *string `toml:"model"`
	BaseURL        *string `toml:"base-url"`
	APIKey         *string `toml:"api-key"`
	TimeoutSeconds *int    `toml:"timeout"`
}

// ServerFileConfig maps HTTP server settings.
type ServerFileConfig struct {
	Host           *string  `toml:"host"`
	Port           *int     `toml:"port"`
	CORSOrigins    []string `toml:"cors-origins"`
	RequestTimeout *int     `toml:"request-timeout"`
}

// LoggingFileConfig maps logging settings.
type LoggingFileConfig struct {
	Level      *string `toml:"level"`
	File       *string `toml:"file"`
	MaxSizeMB  *int    `toml:"max-size-mb"`
	MaxBackups *int    `toml:"max-backups"`
	MaxAgeDays *int    `toml:"max-age-days"`
	Compress   *bool   `toml:"compress"`
	Color      *bool   `toml:"color"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
