package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Provider names for feedback generation.
const (
	ProviderOllama   = "ollama"
	ProviderGemini   = "gemini"
	ProviderDisabled = "disabled"
)

// Settings is the resolved configuration after defaults, file, environment and flags.
type Settings struct {
	Database DatabaseSettings
	LLM      LLMSettings
	Server   ServerSettings
	Logging  LoggingSettings
}

// DatabaseSettings configures the drill data source.
type DatabaseSettings struct {
	Driver       string `validate:"oneof=sqlite pgx mysql"`
	DSN          string `validate:"required"`
	MaxOpenConns int    `validate:"gte=0"`
}

// LLMSettings configures the feedback provider.
// An empty Model selects the provider default.
type LLMSettings struct {
	Provider       string `validate:"oneof=ollama gemini disabled"`
	Model          string
	BaseURL        string `validate:"omitempty,url"`
	APIKey         string
	TimeoutSeconds int `validate:"gt=0"`
}

// Timeout returns the per-call feedback timeout.
func (l LLMSettings) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Host           string
	Port           int `validate:"gte=1,lte=65535"`
	CORSOrigins    []string
	RequestTimeout int `validate:"gt=0"`
}

// Addr returns the listen address.
func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingSettings configures the slog handler.
type LoggingSettings struct {
	Level      string `validate:"oneof=debug info warn warning error"`
	File       string
	MaxSizeMB  int `validate:"gte=0"`
	MaxBackups int `validate:"gte=0"`
	MaxAgeDays int `validate:"gte=0"`
	Compress   bool
	Color      bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Database: DatabaseSettings{
			Driver:       "sqlite",
			DSN:          DefaultDBPath(),
			MaxOpenConns: 10,
		},
		LLM: LLMSettings{
			Provider:       ProviderOllama,
			BaseURL:        "http://localhost:11434",
			TimeoutSeconds: 30,
		},
		Server: ServerSettings{
			Host:           "127.0.0.1",
			Port:           8000,
			CORSOrigins:    []string{"*"},
			RequestTimeout: 60,
		},
		Logging: LoggingSettings{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 7,
			Compress:   true,
			Color:      true,
		},
	}
}

// ApplyFile overlays values set in the TOML file.
func (s *Settings) ApplyFile(cfg FileConfig) {
	setString(&s.Database.Driver, cfg.Database.Driver)
	setString(&s.Database.DSN, cfg.Database.DSN)
	setInt(&s.Database.MaxOpenConns, cfg.Database.MaxOpenConns)

	setString(&s.LLM.Provider, cfg.LLM.Provider)
	setString(&s.LLM.Model, cfg.LLM.Model)
	setString(&s.LLM.BaseURL, cfg.LLM.BaseURL)
	setString(&s.LLM.APIKey, cfg.LLM.APIKey)
	setInt(&s.LLM.TimeoutSeconds, cfg.LLM.TimeoutSeconds)

	setString(&s.Server.Host, cfg.Server.Host)
	setInt(&s.Server.Port, cfg.Server.Port)
	if cfg.Server.CORSOrigins != nil {
		s.Server.CORSOrigins = cfg.Server.CORSOrigins
	}
	setInt(&s.Server.RequestTimeout, cfg.Server.RequestTimeout)

	setString(&s.Logging.Level, cfg.Logging.Level)
	setString(&s.Logging.File, cfg.Logging.File)
	setInt(&s.Logging.MaxSizeMB, cfg.Logging.MaxSizeMB)
	setInt(&s.Logging.MaxBackups, cfg.Logging.MaxBackups)
	setInt(&s.Logging.MaxAgeDays, cfg.Logging.MaxAgeDays)
	setBool(&s.Logging.Compress, cfg.Logging.Compress)
	setBool(&s.Logging.Color, cfg.Logging.Color)
}

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the resolved settings.
func (s Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Load resolves settings from defaults, the TOML file at path and the environment.
func Load(path string) (Settings, error) {
	settings := Defaults()
	fileCfg, err := LoadConfig(path)
	if err != nil {
		return Settings{}, err
	}
	settings.ApplyFile(fileCfg)
	settings.ApplyEnv()
	return settings, nil
}
