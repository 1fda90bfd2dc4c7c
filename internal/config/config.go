// Package config handles external configuration loading from JSON and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"adboard/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Debug     bool      `json:"debug" mapstructure:"debug"`
	Server    Server    `json:"server" mapstructure:"server"`
	Storage   Storage   `json:"storage" mapstructure:"storage"`
	Retention Retention `json:"retention" mapstructure:"retention"`
	Media     Media     `json:"media" mapstructure:"media"`
	Message   Message   `json:"message" mapstructure:"message"`
}

// Server holds HTTP server configuration
type Server struct {
	Port         int    `json:"port" mapstructure:"port" validate:"min=1,max=65535"`
	Host         string `json:"host" mapstructure:"host"`
	ReadTimeout  int    `json:"readTimeout" mapstructure:"readTimeout" validate:"gte=0"`
	WriteTimeout int    `json:"writeTimeout" mapstructure:"writeTimeout" validate:"gte=0"`
}

// Storage holds filesystem locations. Empty paths are derived from DataDir.
type Storage struct {
	DataDir      string `json:"dataDir" mapstructure:"dataDir" validate:"required"`
	DatabasePath string `json:"databasePath" mapstructure:"databasePath"`
	UploadDir    string `json:"uploadDir" mapstructure:"uploadDir"`
	MessagePath  string `json:"messagePath" mapstructure:"messagePath"`
	StaticDir    string `json:"staticDir" mapstructure:"staticDir"`
}

// Retention holds the ad expiry window
type Retention struct {
	MaxAgeHours int `json:"maxAgeHours" mapstructure:"maxAgeHours" validate:"gt=0"`
}

// Media holds upload limits
type Media struct {
	MaxUploadMB int `json:"maxUploadMB" mapstructure:"maxUploadMB" validate:"gt=0"`
}

// Message holds the global message seed
type Message struct {
	Sample string `json:"sample" mapstructure:"sample"`
}

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string]string{
	"debug":                 "DEBUG",
	"server.port":           "PORT",
	"server.host":           "HOST",
	"storage.dataDir":       "DATA_DIR",
	"storage.databasePath":  "DATABASE_PATH",
	"storage.uploadDir":     "UPLOAD_DIR",
	"storage.messagePath":   "MESSAGE_PATH",
	"storage.staticDir":     "STATIC_DIR",
	"retention.maxAgeHours": "RETENTION_MAX_AGE_HOURS",
	"media.maxUploadMB":     "MAX_UPLOAD_MB",
}

// Load reads configuration from the specified JSON file and overrides with environment variables.
// A missing file is not an error; defaults and environment variables are used instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cleanPath := filepath.Clean(configPath)
	if _, err := os.Stat(cleanPath); err == nil {
		v.SetConfigFile(cleanPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDerivedPaths()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "")
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("storage.dataDir", "data")
	v.SetDefault("storage.databasePath", "")
	v.SetDefault("storage.uploadDir", "")
	v.SetDefault("storage.messagePath", "")
	v.SetDefault("storage.staticDir", "static")
	v.SetDefault("retention.maxAgeHours", 7*24)
	v.SetDefault("media.maxUploadMB", 16)
	v.SetDefault("message.sample", domain.SampleGlobalMessage)
}

// applyDerivedPaths fills storage paths left empty from the data directory
func (c *Config) applyDerivedPaths() {
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = filepath.Join(c.Storage.DataDir, "database.db")
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = filepath.Join(c.Storage.DataDir, "uploads")
	}
	if c.Storage.MessagePath == "" {
		c.Storage.MessagePath = filepath.Join(c.Storage.DataDir, "hidden", "global_message.txt")
	}
}

// validate checks that all required configuration values are present
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	for name, p := range map[string]string{
		"database path":  c.Storage.DatabasePath,
		"upload dir":     c.Storage.UploadDir,
		"message path":   c.Storage.MessagePath,
		"data directory": c.Storage.DataDir,
	} {
		clean := filepath.Clean(p)
		if !filepath.IsLocal(clean) && !filepath.IsAbs(clean) {
			return fmt.Errorf("invalid %s: potential path traversal detected", name)
		}
	}

	return nil
}

// Address returns the full server address (host:port)
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabasePath returns the cleaned database path
func (c *Config) GetDatabasePath() string {
	return filepath.Clean(c.Storage.DatabasePath)
}

// MaxAge returns the retention window
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.Retention.MaxAgeHours) * time.Hour
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Media.MaxUploadMB) << 20
}
