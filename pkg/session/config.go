package session

import (
	"time"

	"github.com/dmitrymomot/mongosession/pkg/config"
	"github.com/dmitrymomot/mongosession/pkg/mongo"
	"github.com/dmitrymomot/mongosession/pkg/redis"
)

const (
	// DefaultCollectionName is used when Config.CollectionName is empty.
	DefaultCollectionName = "sessions"
	// DefaultKeyPrefix namespaces RedisStore keys.
	DefaultKeyPrefix = "session:"
)

// Config holds the MongoStore configuration.
// Mongo fields read SESSION_MONGODB_* variables, e.g. SESSION_MONGODB_DATABASE.
type Config struct {
	Mongo mongo.Config `envPrefix:"SESSION_"`

	// CollectionName is the collection holding one document per session (default: "sessions")
	CollectionName string `env:"SESSION_COLLECTION" envDefault:"sessions"`
}

// DefaultConfig returns the defaults for everything except the database name,
// which has none.
func DefaultConfig() Config {
	return Config{
		Mongo: mongo.Config{
			Host:            mongo.DefaultHost,
			Port:            mongo.DefaultPort,
			ConnectTimeout:  10 * time.Second,
			MaxPoolSize:     100,
			MinPoolSize:     1,
			MaxConnIdleTime: 5 * time.Minute,
			RetryWrites:     true,
			RetryReads:      true,
			RetryAttempts:   3,
			RetryInterval:   5 * time.Second,
		},
		CollectionName: DefaultCollectionName,
	}
}

// Validate reports a configuration error when the database name is unset.
func (c Config) Validate() error {
	if c.Mongo.Database == "" {
		return ErrMissingDatabaseName
	}
	return nil
}

func (c Config) collectionName() string {
	if c.CollectionName == "" {
		return DefaultCollectionName
	}
	return c.CollectionName
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RedisConfig holds the RedisStore configuration.
// Redis fields read SESSION_REDIS_* variables, e.g. SESSION_REDIS_URL.
type RedisConfig struct {
	Redis redis.Config `envPrefix:"SESSION_"`

	KeyPrefix string        `env:"SESSION_REDIS_PREFIX" envDefault:"session:"`
	TTL       time.Duration `env:"SESSION_REDIS_TTL" envDefault:"0s"`
}

// LoadRedisConfig reads RedisConfig from the environment.
func LoadRedisConfig() (RedisConfig, error) {
	var cfg RedisConfig
	if err := config.Load(&cfg); err != nil {
		return RedisConfig{}, err
	}
	return cfg, nil
}
