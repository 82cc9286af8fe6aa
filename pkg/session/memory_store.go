package session

import (
	"context"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/mongosession/pkg/logger"
)

// MemoryStore implements Store in process memory.
// Documents are kept BSON-encoded so values round-trip exactly as they do
// through MongoStore. Suitable for tests and single-process deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[bson.ObjectID]bson.Raw
	log      *slog.Logger
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := newStoreOptions(opts)
	return &MemoryStore{
		sessions: make(map[bson.ObjectID]bson.Raw),
		log:      o.logger.With(logger.Component("session"), logger.Collection("memory")),
	}
}

// Create stores an empty document under a fresh id.
func (m *MemoryStore) Create(ctx context.Context) (*Session, error) {
	oid := bson.NewObjectID()

	m.mu.Lock()
	m.sessions[oid] = emptyDocument
	m.mu.Unlock()

	return newSession(oid.Hex()), nil
}

// Retrieve returns a copy of the stored session.
func (m *MemoryStore) Retrieve(ctx context.Context, id string) (*Session, bool, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, false, nil
	}

	m.mu.RLock()
	raw, exists := m.sessions[oid]
	m.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	sess, err := decodeSession(oid.Hex(), raw)
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// Flush stores an encoded snapshot of the session, replacing any previous one.
func (m *MemoryStore) Flush(ctx context.Context, sess *Session) (*Session, error) {
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

	m.mu.Lock()
	m.sessions[oid] = doc
	m.mu.Unlock()

	return sess, nil
}

// Destroy removes the session. Removing an unknown id is a no-op.
func (m *MemoryStore) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil {
		return destroyWarning(ctx, m.log, "", ErrInvalidSession)
	}
	oid, ok := ParseID(sess.ID)
	if !ok {
		return destroyWarning(ctx, m.log, sess.ID, ErrInvalidSession)
	}

	m.mu.Lock()
	delete(m.sessions, oid)
	m.mu.Unlock()

	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reset drops every stored session.
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	clear(m.sessions)
	m.mu.Unlock()
}
