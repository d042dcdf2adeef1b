package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/jobs"
)

// Storage and lock drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StorageDriver  string
	DatabaseURL    string
	EnableDBCheck  bool
	DBMaxConns     int32
	MigrationsPath string

	// JWTSecret empty leaves the API open; every write is then audited as "system".
	JWTSecret string
	JWTIssuer string

	RedisAddress string
	LockDriver   string
	LockTTL      time.Duration

	RateLimitPerMinute int64
	CORSAllowedOrigins []string

	// DailyCloseCron is a robfig/cron spec; empty disables the job.
	DailyCloseCron string
	Timezone       *time.Location

	LogLevel string
	LogFile  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", DriverMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "manancial-finance")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("LOCK_DRIVER", DriverMemory)
	v.SetDefault("LOCK_TTL", "10s")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 300)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DAILY_CLOSE_CRON", "0 0 23 * * *")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RedisAddress:   v.GetString("REDIS_ADDRESS"),
		LockDriver:     strings.ToLower(v.GetString("LOCK_DRIVER")),
		DailyCloseCron: strings.TrimSpace(v.GetString("DAILY_CLOSE_CRON")),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFile:        v.GetString("LOG_FILE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case DriverMemory:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	switch cfg.LockDriver {
	case DriverMemory:
	case DriverRedis:
		if cfg.RedisAddress == "" {
			return nil, fmt.Errorf("REDIS_ADDRESS is required when LOCK_DRIVER=%s", DriverRedis)
		}
	default:
		return nil, fmt.Errorf("unknown LOCK_DRIVER %q", cfg.LockDriver)
	}

	lockTTLStr := v.GetString("LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 10 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL)
	}
	cfg.LockTTL = lockTTL

	cfg.DBMaxConns = v.GetInt32("DB_MAX_CONNS")
	if cfg.DBMaxConns <= 0 {
		cfg.DBMaxConns = 10
	}

	cfg.RateLimitPerMinute = v.GetInt64("RATE_LIMIT_PER_MINUTE")
	if cfg.RateLimitPerMinute < 0 {
		cfg.RateLimitPerMinute = 0
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.DailyCloseCron != "" {
		if err := jobs.ValidateSpec(cfg.DailyCloseCron); err != nil {
			return nil, fmt.Errorf("invalid DAILY_CLOSE_CRON: %w", err)
		}
	}

	tzName := v.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = loc

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. The API accepts unauthenticated requests.")
	}

	return cfg, nil
}
