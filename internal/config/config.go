package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the migration service
type Config struct {
	Server      ServerConfig
	Destination DatabaseConfig
	Legacy      LegacyConfig
	IdentityMap IdentityMapConfig
	App         AppConfig
}

// ServerConfig holds configuration for the audit API server
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds destination (Postgres) database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LegacyConfig holds the read-only legacy (MySQL) source configuration
type LegacyConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// IdentityMapConfig selects and configures the identity-map store backend
type IdentityMapConfig struct {
	// Backend is one of "file", "redis", "table"
	Backend  string
	Dir      string
	RedisURL string
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment string
	LogLevel    string
	NATSUrl     string
	ChunkSize   int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8095),
		},
		Destination: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "migration_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Legacy: LegacyConfig{
			Host:     getEnv("LEGACY_DB_HOST", "localhost"),
			Port:     getEnvAsInt("LEGACY_DB_PORT", 3306),
			User:     getEnv("LEGACY_DB_USER", "root"),
			Password: getEnv("LEGACY_DB_PASSWORD", ""),
			DBName:   getEnv("LEGACY_DB_NAME", "legacy_pos"),
		},
		IdentityMap: IdentityMapConfig{
			Backend:  getEnv("IDMAP_BACKEND", "file"),
			Dir:      getEnv("IDMAP_DIR", "./idmaps"),
			RedisURL: getEnv("REDIS_URL", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			NATSUrl:     getEnv("NATS_URL", ""),
			ChunkSize:   getEnvAsInt("MIGRATION_CHUNK_SIZE", 500),
		},
	}

	if config.App.ChunkSize <= 0 {
		return nil, fmt.Errorf("MIGRATION_CHUNK_SIZE must be a positive integer, got %d", config.App.ChunkSize)
	}

	switch config.IdentityMap.Backend {
	case "file", "redis", "table":
	default:
		return nil, fmt.Errorf("IDMAP_BACKEND must be one of file, redis, table; got %q", config.IdentityMap.Backend)
	}

	return config, nil
}

// GetDestinationDSN returns the destination database connection string
func (c *Config) GetDestinationDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Destination.Host,
		c.Destination.Port,
		c.Destination.User,
		c.Destination.Password,
		c.Destination.DBName,
		c.Destination.SSLMode,
	)
}

// GetLegacyDSN returns the legacy source connection string
func (c *Config) GetLegacyDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.Legacy.User,
		c.Legacy.Password,
		c.Legacy.Host,
		c.Legacy.Port,
		c.Legacy.DBName,
	)
}

// GetServerAddress returns the audit API server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
