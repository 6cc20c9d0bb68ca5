package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// MongoDB holds the primary document store configuration
	MongoDB MongoConfig `json:"mongodb"`

	// Database holds the MySQL configuration (notification history)
	Database DatabaseConfig `json:"database"`

	// JWT Configuration
	JWT JWTConfig `json:"jwt"`

	// Upload Configuration
	Upload UploadConfig `json:"upload"`

	// Notification Configuration
	Notification NotificationConfig `json:"notification"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// MongoConfig contains MongoDB connection configuration
type MongoConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// JWTConfig contains token signing configuration
type JWTConfig struct {
	Secret     string `json:"-"`
	ExpiryDays int    `json:"expiry_days"`
	Issuer     string `json:"issuer"`
}

// UploadConfig contains media upload configuration
type UploadConfig struct {
	MaxFileSize  int64  `json:"max_file_size"` // bytes
	MaxFiles     int    `json:"max_files"`
	MediaBaseURL string `json:"media_base_url"`
}

// NotificationConfig contains notification system configuration
type NotificationConfig struct {
	Workers           int  `json:"workers"`             // Number of worker goroutines
	ChannelBufferSize int  `json:"channel_buffer_size"` // Channel buffer size
	ListLimit         int  `json:"list_limit"`          // Max notifications returned per list call
	Enabled           bool `json:"enabled"`
}

// LoadConfig builds a Config from environment variables with sane defaults.
// The config is constructed once in main and injected everywhere else.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvOrDefault("SERVER_PORT", "5000"),
			ReadTimeout:  getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		MongoDB: MongoConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USER", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DB", "studelie"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "studelie"),
			Password:     getEnvOrDefault("DB_PASSWORD", "studelie123"),
			DatabaseName: getEnvOrDefault("DB_NAME", "studelie"),
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		JWT: JWTConfig{
			Secret:     getEnvOrDefault("JWT_SECRET", ""),
			ExpiryDays: getEnvIntOrDefault("JWT_EXPIRY_DAYS", 7),
			Issuer:     getEnvOrDefault("JWT_ISSUER", "studelie"),
		},
		Upload: UploadConfig{
			MaxFileSize:  int64(getEnvIntOrDefault("UPLOAD_MAX_FILE_SIZE", 10<<20)),
			MaxFiles:     getEnvIntOrDefault("UPLOAD_MAX_FILES", 5),
			MediaBaseURL: getEnvOrDefault("MEDIA_BASE_URL", "/media/"),
		},
		Notification: NotificationConfig{
			Workers:           getEnvIntOrDefault("NOTIF_WORKERS", 5),
			ChannelBufferSize: getEnvIntOrDefault("NOTIF_BUFFER", 1000),
			ListLimit:         getEnvIntOrDefault("NOTIF_LIST_LIMIT", 50),
			Enabled:           getEnvOrDefault("NOTIF_ENABLED", "true") == "true",
		},
	}
}

// DSN returns the MySQL connection string.
func (cfg *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// GetMongoURI returns the MongoDB connection string, with credentials
// when a username is configured.
func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s",
			cfg.MongoDB.Username,
			cfg.MongoDB.Password,
			cfg.MongoDB.Host,
			cfg.MongoDB.Port,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
