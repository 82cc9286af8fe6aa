package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Handle is an established connection together with the configured database.
// It is created once and shared by everything that talks to that database.
type Handle struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Collection returns a handle to the named collection of the database.
func (h *Handle) Collection(name string) *mongo.Collection {
	return h.Database.Collection(name)
}

// Close disconnects the client.
func (h *Handle) Close(ctx context.Context) error {
	return h.Client.Disconnect(ctx)
}

// Connect dials the server and resolves cfg.Database.
// An empty database name is rejected before dialing.
func Connect(ctx context.Context, cfg Config) (*Handle, error) {
	if cfg.Database == "" {
		return nil, ErrEmptyDatabaseName
	}
	client, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Handle{Client: client, Database: client.Database(cfg.Database)}, nil
}

// New creates a new mongo client.
// It returns an error if the server does not answer a ping after
// cfg.RetryAttempts attempts or the context is done.
func New(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts := clientOptions(cfg)

	var lastErr error
	attempts := cfg.attempts()
	for i := range attempts {
		client, err := mongo.Connect(opts)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(context.Background())
		}
		lastErr = err

		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnectToMongo, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToConnectToMongo, lastErr)
}

// NewWithDatabase creates a new mongo client and returns the database named
// by cfg.Database. An empty database name is rejected before dialing.
func NewWithDatabase(ctx context.Context, cfg Config) (*mongo.Database, error) {
	h, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return h.Database, nil
}

func clientOptions(cfg Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites).
		SetRetryReads(cfg.RetryReads)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username:   cfg.Username,
			Password:   cfg.Password,
			AuthSource: cfg.Database,
		})
	}
	return opts
}
