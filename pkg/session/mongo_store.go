package session

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/mongosession/pkg/logger"
	"github.com/dmitrymomot/mongosession/pkg/mongo"
)

// Collection is the subset of *mongo.Collection the store depends on.
type Collection interface {
	Name() string
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongodriver.InsertOneResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongodriver.SingleResult
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongodriver.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongodriver.DeleteResult, error)
}

// MongoStore keeps one document per session in a MongoDB collection.
// The document _id is the session id.
//
// The collection handle is shared by every operation and never mutated after
// construction. Concurrent flushes of the same session are not coordinated:
// the last full-document replace wins.
type MongoStore struct {
	coll   Collection
	client *mongodriver.Client
	owned  bool
	log    *slog.Logger
}

// NewMongoStore creates a store on an already resolved collection.
func NewMongoStore(coll Collection, opts ...Option) *MongoStore {
	o := newStoreOptions(opts)
	return &MongoStore{
		coll:   coll,
		client: o.mongoClient,
		log:    o.logger.With(logger.Component("session"), logger.Collection(coll.Name())),
	}
}

// Open validates cfg, connects to MongoDB and resolves the session collection.
// A missing database name fails with ErrMissingDatabaseName before any
// connection is attempted. The returned store owns the connection; release
// it with Close.
func Open(ctx context.Context, cfg Config, opts ...Option) (*MongoStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h, err := mongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}

	s := NewMongoStore(h.Collection(cfg.collectionName()), opts...)
	s.client = h.Client
	s.owned = true
	return s, nil
}

// Create inserts an empty document and returns a session holding its id.
func (s *MongoStore) Create(ctx context.Context) (*Session, error) {
	res, err := s.coll.InsertOne(ctx, bson.D{})
	if err != nil {
		return nil, errors.Join(ErrCreateFailed, err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.Join(ErrCreateFailed, errors.New("inserted id is not an ObjectID"))
	}
	return newSession(oid.Hex()), nil
}

// Retrieve loads the session document with the given id.
func (s *MongoStore) Retrieve(ctx context.Context, id string) (*Session, bool, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, false, nil
	}

	raw, err := s.coll.FindOne(ctx, byID(oid)).Raw()
	if errors.Is(err, mongodriver.ErrNoDocuments) {
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

// Flush replaces the stored document with the session's fields, upserting.
func (s *MongoStore) Flush(ctx context.Context, sess *Session) (*Session, error) {
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

	res, err := s.coll.ReplaceOne(ctx, byID(oid), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, errors.Join(ErrFlushFailed, err)
	}
	if !res.Acknowledged {
		return nil, ErrFlushFailed
	}
	return sess, nil
}

// Destroy removes at most one document. Failures are logged and returned as a *Warning.
func (s *MongoStore) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil {
		return destroyWarning(ctx, s.log, "", ErrInvalidSession)
	}
	oid, ok := ParseID(sess.ID)
	if !ok {
		return destroyWarning(ctx, s.log, sess.ID, ErrInvalidSession)
	}

	res, err := s.coll.DeleteOne(ctx, byID(oid))
	if err != nil {
		return destroyWarning(ctx, s.log, sess.ID, errors.Join(ErrDestroyFailed, err))
	}
	if !res.Acknowledged {
		return destroyWarning(ctx, s.log, sess.ID, ErrDestroyFailed)
	}
	return nil
}

// Healthcheck pings the server. Stores built with NewMongoStore only ping
// when a client was supplied via WithMongoClient; without one there is
// nothing to ping and it always returns nil.
func (s *MongoStore) Healthcheck(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return mongo.Healthcheck(s.client)(ctx)
}

// Close disconnects the client opened by Open. Stores built with
// NewMongoStore leave the connection to their creator, including a client
// passed through WithMongoClient.
func (s *MongoStore) Close(ctx context.Context) error {
	if !s.owned {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func byID(oid bson.ObjectID) bson.D {
	return bson.D{{Key: idField, Value: oid}}
}
