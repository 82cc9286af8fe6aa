package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/mongosession/pkg/logger"
	"github.com/dmitrymomot/mongosession/pkg/redis"
)

// RedisStore keeps each session as a BSON blob under prefix+id.
// Ids use the same ObjectID format as MongoStore, so sessions can move
// between the two backends.
type RedisStore struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
	owned  bool
	log    *slog.Logger
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client goredis.UniversalClient, opts ...Option) *RedisStore {
	o := newStoreOptions(opts)
	return &RedisStore{
		client: client,
		prefix: o.keyPrefix,
		ttl:    o.ttl,
		log:    o.logger.With(logger.Component("session"), logger.Collection(o.keyPrefix)),
	}
}

// OpenRedis connects using cfg and returns a store that owns the client.
// Prefix and TTL from cfg take precedence over WithKeyPrefix and WithTTL.
func OpenRedis(ctx context.Context, cfg RedisConfig, opts ...Option) (*RedisStore, error) {
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if cfg.KeyPrefix != "" {
		opts = append(opts, WithKeyPrefix(cfg.KeyPrefix))
	}
	if cfg.TTL > 0 {
		opts = append(opts, WithTTL(cfg.TTL))
	}
	s := NewRedisStore(client, opts...)
	s.owned = true
	return s, nil
}

// Create writes an empty document under a freshly generated id.
func (s *RedisStore) Create(ctx context.Context) (*Session, error) {
	id := bson.NewObjectID().Hex()
	if err := s.client.Set(ctx, s.key(id), []byte(emptyDocument), s.ttl).Err(); err != nil {
		return nil, errors.Join(ErrCreateFailed, err)
	}
	return newSession(id), nil
}

// Retrieve loads the session stored under id.
func (s *RedisStore) Retrieve(ctx context.Context, id string) (*Session, bool, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, false, nil
	}

	raw, err := s.client.Get(ctx, s.key(oid.Hex())).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Join(ErrRetrieveFailed, err)
	}

	sess, err := decodeSession(oid.Hex(), raw)
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// Flush overwrites the stored blob, creating it when missing.
func (s *RedisStore) Flush(ctx context.Context, sess *Session) (*Session, error) {
	if sess == nil {
		return nil, ErrInvalidSession
	}
	oid, ok := ParseID(sess.ID)
	if !ok {
		return nil, ErrInvalidSession
	}

	doc, err := encodeFields(sess.Data)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, s.key(oid.Hex()), []byte(doc), s.ttl).Err(); err != nil {
		return nil, errors.Join(ErrFlushFailed, err)
	}
	return sess, nil
}

// Destroy deletes the stored blob. Failures are logged and returned as a *Warning.
func (s *RedisStore) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil {
		return destroyWarning(ctx, s.log, "", ErrInvalidSession)
	}
	oid, ok := ParseID(sess.ID)
	if !ok {
		return destroyWarning(ctx, s.log, sess.ID, ErrInvalidSession)
	}
	if err := s.client.Del(ctx, s.key(oid.Hex())).Err(); err != nil {
		return destroyWarning(ctx, s.log, sess.ID, errors.Join(ErrDestroyFailed, err))
	}
	return nil
}

// Healthcheck pings the redis server.
func (s *RedisStore) Healthcheck(ctx context.Context) error {
	return redis.Healthcheck(s.client)(ctx)
}

// Close releases the client opened by OpenRedis.
func (s *RedisStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}
