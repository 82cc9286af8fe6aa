package session

import (
	"log/slog"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
)

// Option is a functional option for configuring a store
type Option func(*storeOptions)

type storeOptions struct {
	logger    *slog.Logger
	keyPrefix string
	ttl       time.Duration

	mongoClient *mongodriver.Client
}

func newStoreOptions(opts []Option) storeOptions {
	o := storeOptions{keyPrefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithLogger sets the logger used to report soft failures
func WithLogger(l *slog.Logger) Option {
	return func(o *storeOptions) {
		o.logger = l
	}
}

// WithKeyPrefix sets the key prefix used by RedisStore
func WithKeyPrefix(prefix string) Option {
	return func(o *storeOptions) {
		o.keyPrefix = prefix
	}
}

// WithTTL sets an expiry on keys written by RedisStore (0 keeps them forever).
// Every Flush renews it.
func WithTTL(ttl time.Duration) Option {
	return func(o *storeOptions) {
		o.ttl = ttl
	}
}

// WithMongoClient gives MongoStore the client behind its collection so that
// Healthcheck can ping it. The store does not take ownership of the client.
func WithMongoClient(client *mongodriver.Client) Option {
	return func(o *storeOptions) {
		o.mongoClient = client
	}
}
