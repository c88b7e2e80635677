package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const minBcryptCost = 12

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Security SecurityConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host  string
	Port  string
	Debug bool
}

// Addr is the listen address.
func (s ServerConfig) Addr() string { return s.Host + ":" + s.Port }

type DatabaseConfig struct {
	URL string
}

// RedisConfig is optional; an empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type SecurityConfig struct {
	BcryptCost  int
	WorkerCount int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment and, when CONFIG_FILE is
// set, from that file (dotenv, yaml or json).
func Load() (*Config, error) {
	vp := viper.New()
	vp.AutomaticEnv()
	vp.SetDefault("HOST", "127.0.0.1")
	vp.SetDefault("PORT", "8080")
	vp.SetDefault("DEBUG", false)
	vp.SetDefault("BCRYPT_COST", minBcryptCost)
	vp.SetDefault("WORKER_COUNT", runtime.NumCPU())
	vp.SetDefault("REDIS_DB", 0)
	vp.SetDefault("CACHE_TTL", 5*time.Minute)
	vp.SetDefault("LOG_LEVEL", "info")
	vp.SetDefault("LOG_FORMAT", "json")

	if p := os.Getenv("CONFIG_FILE"); p != "" {
		vp.SetConfigFile(p)
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", p, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:  vp.GetString("HOST"),
			Port:  vp.GetString("PORT"),
			Debug: vp.GetBool("DEBUG"),
		},
		Database: DatabaseConfig{
			URL: vp.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     vp.GetString("REDIS_ADDR"),
			Password: vp.GetString("REDIS_PASSWORD"),
			DB:       vp.GetInt("REDIS_DB"),
			TTL:      vp.GetDuration("CACHE_TTL"),
		},
		Security: SecurityConfig{
			BcryptCost:  vp.GetInt("BCRYPT_COST"),
			WorkerCount: vp.GetInt("WORKER_COUNT"),
		},
		Log: LogConfig{
			Level:  vp.GetString("LOG_LEVEL"),
			Format: vp.GetString("LOG_FORMAT"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is not set")
	}
	if c.Security.BcryptCost < minBcryptCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("invalid BCRYPT_COST %d: must be between %d and %d", c.Security.BcryptCost, minBcryptCost, bcrypt.MaxCost)
	}
	if c.Security.WorkerCount <= 0 {
		return fmt.Errorf("invalid WORKER_COUNT %d", c.Security.WorkerCount)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid REDIS_DB %d", c.Redis.DB)
	}
	if c.Redis.TTL <= 0 {
		return fmt.Errorf("invalid CACHE_TTL %s", c.Redis.TTL)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}
