package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the root configuration tree, loaded once at startup from the
// environment (and an optional .env file) the way the teacher's gateway
// does.
type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Cache     CompileCacheConfig
	JobQueue  JobQueueConfig
	Generator GeneratorConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CompileCacheConfig governs the Redis-backed constraint-compilation cache.
type CompileCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// JobQueueConfig sizes the worker pool that runs generate() jobs in the
// background.
type JobQueueConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
	JobTTL     time.Duration
}

// GeneratorConfig carries the engine.Options defaults a deployment wants to
// apply when a request omits them; zero fields fall back to the engine's
// own defaults (§4.7).
type GeneratorConfig struct {
	DefaultTarget     int
	DefaultBatchLimit int
	DefaultHardCap    int
	AllGradesMarker   string
	OpenPoolBlocklist []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CompileCacheConfig{
		Enabled: v.GetBool("ENABLE_COMPILE_CACHE"),
		TTL:     parseDuration(v.GetString("COMPILE_CACHE_TTL"), 10*time.Minute),
	}

	cfg.JobQueue = JobQueueConfig{
		Workers:    v.GetInt("JOB_QUEUE_WORKERS"),
		MaxRetries: v.GetInt("JOB_QUEUE_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("JOB_QUEUE_RETRY_DELAY"), time.Second),
		JobTTL:     parseDuration(v.GetString("JOB_TTL"), 30*time.Minute),
	}

	cfg.Generator = GeneratorConfig{
		DefaultTarget:     v.GetInt("GENERATOR_DEFAULT_TARGET"),
		DefaultBatchLimit: v.GetInt("GENERATOR_DEFAULT_BATCH_LIMIT"),
		DefaultHardCap:    v.GetInt("GENERATOR_DEFAULT_HARD_CAP"),
		AllGradesMarker:   v.GetString("GENERATOR_ALL_GRADES_MARKER"),
		OpenPoolBlocklist: splitAndTrim(v.GetString("GENERATOR_OPEN_POOL_BLOCKLIST")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_COMPILE_CACHE", false)
	v.SetDefault("COMPILE_CACHE_TTL", "10m")

	v.SetDefault("JOB_QUEUE_WORKERS", 4)
	v.SetDefault("JOB_QUEUE_MAX_RETRIES", 1)
	v.SetDefault("JOB_QUEUE_RETRY_DELAY", "1s")
	v.SetDefault("JOB_TTL", "30m")

	v.SetDefault("GENERATOR_DEFAULT_TARGET", 0)
	v.SetDefault("GENERATOR_DEFAULT_BATCH_LIMIT", 0)
	v.SetDefault("GENERATOR_DEFAULT_HARD_CAP", 0)
	v.SetDefault("GENERATOR_ALL_GRADES_MARKER", "전학년")
	v.SetDefault("GENERATOR_OPEN_POOL_BLOCKLIST", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
