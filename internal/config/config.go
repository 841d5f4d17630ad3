package config

import (
	"os"
	"strconv"

	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Server Server `yaml:"server"`
	Auth   Auth   `yaml:"auth"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	MaxOpenConns  int    `yaml:"maxOpenConns"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	FrontendURL   string `yaml:"frontendURL"`
}

type Auth struct {
	// AdminToken guards moderation. Empty disables every admin action.
	AdminToken     string `yaml:"adminToken"`
	CredentialCost int    `yaml:"credentialCost"`
	ScanBatchSize  int    `yaml:"scanBatchSize"`
}

const (
	defaultListen         = ":3001"
	defaultPostgresDsn    = "host=localhost user=postgres password=postgres dbname=platos_lair port=5432 sslmode=disable"
	defaultMaxOpenConns   = 20
	defaultCredentialCost = 10
	defaultScanBatchSize  = 100
	defaultFrontendURL    = "https://your-frontend.onrender.com"
)

// Load reads the yaml file at path (optional when empty), then a .env file if
// present, then environment overrides.
func Load(path string) (Config, error) {
	var config Config

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "open config")
		}
		defer file.Close()

		err = yaml.NewDecoder(file).Decode(&config)
		if err != nil {
			return Config{}, errors.Wrap(err, "decode config")
		}
	}

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	applyEnv(&config)
	applyDefaults(&config)

	return config, nil
}

func applyEnv(config *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Server.PostgresDsn = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		config.Auth.AdminToken = v
	}
	if v := os.Getenv("PORT"); v != "" {
		config.Server.Listen = ":" + v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		config.Server.FrontendURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Server.RedisAddr = v
	}
	if v := os.Getenv("MEMCACHED_ADDR"); v != "" {
		config.Server.MemcachedAddr = v
	}
	if v := os.Getenv("CREDENTIAL_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			config.Auth.CredentialCost = cost
		}
	}
}

func applyDefaults(config *Config) {
	if config.Server.Listen == "" {
		config.Server.Listen = defaultListen
	}
	if config.Server.PostgresDsn == "" {
		config.Server.PostgresDsn = defaultPostgresDsn
	}
	if config.Server.MaxOpenConns <= 0 {
		config.Server.MaxOpenConns = defaultMaxOpenConns
	}
	if config.Server.FrontendURL == "" {
		config.Server.FrontendURL = defaultFrontendURL
	}
	if config.Auth.CredentialCost <= 0 {
		config.Auth.CredentialCost = defaultCredentialCost
	}
	if config.Auth.ScanBatchSize <= 0 {
		config.Auth.ScanBatchSize = defaultScanBatchSize
	}
}
