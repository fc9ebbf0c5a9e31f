package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotenvIfPresent loads .env files into the process environment. Missing files are skipped.
func LoadDotenvIfPresent(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat dotenv file failed path=%s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load dotenv file failed path=%s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overlays values from DRILLREPORT_* environment variables.
func (s *Settings) ApplyEnv() {
	s.Database.Driver = getEnvString("DRILLREPORT_DB_DRIVER", s.Database.Driver)
	s.Database.DSN = getEnvString("DRILLREPORT_DB_DSN", s.Database.DSN)
	s.Database.MaxOpenConns = getEnvInt("DRILLREPORT_DB_MAX_OPEN_CONNS", s.Database.MaxOpenConns)

	s.LLM.Provider = getEnvString("DRILLREPORT_LLM_PROVIDER", s.LLM.Provider)
	s.LLM.Model = getEnvString("DRILLREPORT_LLM_MODEL", s.LLM.Model)
	s.LLM.BaseURL = getEnvString("DRILLREPORT_LLM_BASE_URL", s.LLM.BaseURL)
	s.LLM.APIKey = getEnvString("GOOGLE_API_KEY", s.LLM.APIKey)
	s.LLM.APIKey = getEnvString("DRILLREPORT_LLM_API_KEY", s.LLM.APIKey)
	s.LLM.TimeoutSeconds = getEnvInt("DRILLREPORT_LLM_TIMEOUT", s.LLM.TimeoutSeconds)

	s.Server.Host = getEnvString("DRILLREPORT_HTTP_HOST", s.Server.Host)
	s.Server.Port = getEnvInt("DRILLREPORT_HTTP_PORT", s.Server.Port)
	if origins := getEnvString("DRILLREPORT_CORS_ORIGINS", ""); origins != "" {
		s.Server.CORSOrigins = splitList(origins)
	}
	s.Server.RequestTimeout = getEnvInt("DRILLREPORT_REQUEST_TIMEOUT", s.Server.RequestTimeout)

	s.Logging.Level = getEnvString("LOG_LEVEL", s.Logging.Level)
	s.Logging.File = getEnvString("LOG_FILE", s.Logging.File)
	s.Logging.MaxSizeMB = getEnvInt("LOG_FILE_MAX_SIZE_MB", s.Logging.MaxSizeMB)
	s.Logging.MaxBackups = getEnvInt("LOG_FILE_MAX_BACKUPS", s.Logging.MaxBackups)
	s.Logging.MaxAgeDays = getEnvInt("LOG_FILE_MAX_AGE_DAYS", s.Logging.MaxAgeDays)
	s.Logging.Compress = getEnvBool("LOG_FILE_COMPRESS", s.Logging.Compress)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		s.Logging.Color = false
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvString(key string, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func getEnvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvBool(key string, def bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	value = strings.ToLower(value)
	return value == "true" || value == "1" || value == "yes" || value == "y"
}
