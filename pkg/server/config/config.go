/* Copyright 2025 Plume Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads and validates the application configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/plumeapp/plume/pkg/dirs"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// AppEnvTest represents an app environment for tests.
	AppEnvTest string = "TEST"
	// DefaultDBDir is the default directory name for Plume data
	DefaultDBDir = "plume"
	// DefaultDBFilename is the default database filename
	DefaultDBFilename = "server.db"
)

var (
	// DefaultDBPath is the default path to the sqlite database file
	DefaultDBPath = filepath.Join(dirs.DataHome, DefaultDBDir, DefaultDBFilename)
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB path is empty")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("invalid port")
	// ErrJWTSecretMissing is an error for a production configuration without token secrets
	ErrJWTSecretMissing = errors.New("JWT_SECRET and JWT_REFRESH_SECRET must be set")
)

func readBoolEnv(name string) bool {
	return os.Getenv(name) == "true"
}

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

func getIntEnv(envKey string, defaultVal int) int {
	env := os.Getenv(envKey)
	if env == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(env)
	if err != nil {
		return defaultVal
	}

	return n
}

func getDurationEnv(envKey string, defaultVal time.Duration) time.Duration {
	env := os.Getenv(envKey)
	if env == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(env)
	if err != nil {
		return defaultVal
	}

	return d
}

// DB holds the relational store connection parameters
type DB struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// JWT holds the token signing parameters
type JWT struct {
	Secret        string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// SMTP holds the mail delivery parameters
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Config is an application configuration
type Config struct {
	AppEnv              string
	Port                string
	DB                  DB
	JWT                 JWT
	SMTP                SMTP
	DisableRegistration bool
	LogLevel            string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv              string
	Port                string
	DBDriver            string
	DBPath              string
	DisableRegistration bool
	LogLevel            string
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
// A .env file in the working directory is loaded first, if present.
func New(p Params) (Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	c := Config{
		AppEnv: getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:   getOrEnv(p.Port, "PORT", "3000"),
		DB: DB{
			Driver:   getOrEnv(p.DBDriver, "DB_DRIVER", "sqlite"),
			Path:     getOrEnv(p.DBPath, "DB_PATH", DefaultDBPath),
			Host:     getOrEnv("", "DB_HOST", "localhost"),
			Port:     getIntEnv("DB_PORT", 3306),
			User:     getOrEnv("", "DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getOrEnv("", "DB_NAME", "plume"),
		},
		JWT: JWT{
			Secret:        os.Getenv("JWT_SECRET"),
			RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
			AccessTTL:     getDurationEnv("JWT_EXPIRES_IN", 7*24*time.Hour),
			RefreshTTL:    getDurationEnv("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getIntEnv("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		DisableRegistration: p.DisableRegistration || readBoolEnv("DisableRegistration"),
		LogLevel:            getOrEnv(p.LogLevel, "LOG_LEVEL", "info"),
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if c.Port == "" {
		return ErrPortInvalid
	}

	if c.DB.Driver == "sqlite" && c.DB.Path == "" {
		return ErrDBMissingPath
	}

	// There are no secrets suitable for production use.
	if c.IsProd() && (c.JWT.Secret == "" || c.JWT.RefreshSecret == "") {
		return ErrJWTSecretMissing
	}

	return nil
}
