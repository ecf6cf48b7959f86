package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set
const DefaultPath = "./config/config.yml"

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	PolicyStoreMemory = "memory"
	PolicyStoreMongo  = "mongo"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	RBAC     RBACConfig     `yaml:"rbac"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	TrustedProxies []string `yaml:"trustedProxies"`
}

type DatabaseConfig struct {
	Driver      string            `yaml:"driver"`
	URI         string            `yaml:"uri"`
	Name        string            `yaml:"name"`
	Collections CollectionsConfig `yaml:"collections"`
	// Seed fills an empty store with demo data at startup
	Seed bool `yaml:"seed"`
}

type CollectionsConfig struct {
	Users       string `yaml:"users"`
	Contests    string `yaml:"contests"`
	Submissions string `yaml:"submissions"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiryHours"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// RBACConfig switches on role checks for the admin views. Policies live in
// memory or in the casbin_rule collection of the main database.
type RBACConfig struct {
	Enabled     bool   `yaml:"enabled"`
	PolicyStore string `yaml:"policyStore"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used before the file and environment
// are applied
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           5000,
			TrustedProxies: []string{"127.0.0.1"},
		},
		Database: DatabaseConfig{
			Driver: DriverMongo,
			Name:   "EndGame",
			Collections: CollectionsConfig{
				Users:       "UserData",
				Contests:    "ContestData",
				Submissions: "SubmitData",
			},
		},
		JWT: JWTConfig{ExpiryHours: 24},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:5173", "http://localhost:4173"},
		},
		RBAC: RBACConfig{PolicyStore: PolicyStoreMemory},
		Log:  LogConfig{Level: "info"},
	}
}

// LoadConfig reads the YAML file at path, if it exists, and overlays the
// environment (.env included)
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns CONFIG_PATH or DefaultPath
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server port must be positive, got %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("SECRET is required")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry must be positive, got %d", c.JWT.ExpiryHours)
	}
	switch c.RBAC.PolicyStore {
	case PolicyStoreMemory:
	case PolicyStoreMongo:
		if c.RBAC.Enabled && c.Database.Driver != DriverMongo {
			return fmt.Errorf("rbac policy store %q needs the mongo database driver", PolicyStoreMongo)
		}
	default:
		return fmt.Errorf("unknown rbac policy store %q", c.RBAC.PolicyStore)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.URI, "MONGODB_URI")
	setString(&cfg.Database.Name, "MONGODB_DATABASE")
	if v := os.Getenv("DB_SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DB_SEED %q: %w", v, err)
		}
		cfg.Database.Seed = seed
	}
	setString(&cfg.JWT.Secret, "SECRET")
	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRY_HOURS %q: %w", v, err)
		}
		cfg.JWT.ExpiryHours = hours
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowOrigins = origins
	}
	if v := os.Getenv("RBAC_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RBAC_ENABLED %q: %w", v, err)
		}
		cfg.RBAC.Enabled = enabled
	}
	setString(&cfg.RBAC.PolicyStore, "RBAC_POLICY_STORE")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("LOG_DEVELOPMENT"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEVELOPMENT %q: %w", v, err)
		}
		cfg.Log.Development = dev
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
