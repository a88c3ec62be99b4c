package config

import (
	"time"

	"chronotes/utils"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "chronotes"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

// LocalStoreConfig configures the embedded guest-mode database.
type LocalStoreConfig struct {
	Path string
}

func LoadLocalStoreConfig() LocalStoreConfig {
	return LocalStoreConfig{
		Path: utils.GetEnvAsString("LOCAL_STORE_PATH", "chronotes-guest.db"),
	}
}

type RetryConfig struct {
	MaxAttempts     uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func LoadRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     utils.GetEnvAsUint64("STORE_RETRY_MAX_ATTEMPTS", 3),
		InitialInterval: utils.GetEnvAsDuration("STORE_RETRY_INITIAL_INTERVAL", 100*time.Millisecond),
		MaxInterval:     utils.GetEnvAsDuration("STORE_RETRY_MAX_INTERVAL", 2*time.Second),
	}
}

type GeneratorConfig struct {
	Endpoint string
}

func LoadGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Endpoint: utils.GetEnvAsString("FLASHCARD_GENERATOR_URL", ""),
	}
}

type ServerConfig struct {
	Port            string
	RedisURL        string
	SessionDuration time.Duration
	MaxRequestBytes int64
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            utils.GetEnvAsString("PORT", "8080"),
		RedisURL:        utils.GetEnvAsString("REDIS_URL", ""),
		SessionDuration: utils.GetEnvAsDuration("SESSION_DURATION", 24*time.Hour),
		MaxRequestBytes: int64(utils.GetEnvAsInt("MAX_REQUEST_BYTES", 1<<20)),
	}
}
