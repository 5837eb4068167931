// Package config loads runtime settings from an optional .env file, the
// process environment and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Port       string
	DBDriver   string
	DBURL      string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
	MediaRoot  string
	MediaURL   string
	ClientURL  string
	Origins    []string
	GinMode    string
}

// Defaults registers the fallback value of every key on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "bazaar")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("media_root", "media")
	v.SetDefault("media_url", "/media/")
	v.SetDefault("gin_mode", "debug")
}

// New returns a viper instance bound to the environment. A missing .env file
// is not an error.
func New() *viper.Viper {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	v := viper.New()
	Defaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// DATABASE_URL is the conventional name; db_url is the key used internally.
	_ = v.BindEnv("db_url", "DATABASE_URL", "DB_URL")

	return v
}

// Load reads a Config out of v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:       v.GetString("port"),
		DBDriver:   strings.ToLower(v.GetString("db_driver")),
		DBURL:      v.GetString("db_url"),
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetInt("db_port"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
		DBSSLMode:  v.GetString("db_sslmode"),
		JWTSecret:  v.GetString("jwt_secret"),
		MediaRoot:  v.GetString("media_root"),
		MediaURL:   v.GetString("media_url"),
		ClientURL:  v.GetString("client_url"),
		GinMode:    v.GetString("gin_mode"),
	}

	for _, origin := range strings.Split(v.GetString("allowed_origins"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.Origins = append(cfg.Origins, trimmed)
		}
	}

	if cfg.DBDriver == "postgresql" {
		cfg.DBDriver = DriverPostgres
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverMySQL {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	if !strings.HasSuffix(cfg.MediaURL, "/") {
		cfg.MediaURL += "/"
	}

	return cfg, nil
}

// RequireSecret fails when no JWT secret is configured. Only the server
// needs one.
func (c *Config) RequireSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	return nil
}
