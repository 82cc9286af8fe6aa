package session

import "context"

// Store is the capability set every session backend provides.
// Construction of a concrete store is its initialization step.
type Store interface {
	// Create persists a new empty document and returns a session holding
	// only the id the backend assigned to it.
	Create(ctx context.Context) (*Session, error)

	// Retrieve loads the session with the given id. Unknown and malformed ids
	// both report found == false with a nil error; err is reserved for
	// backend failures.
	Retrieve(ctx context.Context, id string) (sess *Session, found bool, err error)

	// Flush replaces the stored document with the session's full field set,
	// creating it when missing. It returns sess so calls can be chained.
	Flush(ctx context.Context, sess *Session) (*Session, error)

	// Destroy removes the stored document. A removal the backend does not
	// acknowledge is logged and returned as a *Warning, never as a hard error.
	Destroy(ctx context.Context, sess *Session) error
}

var (
	_ Store = (*MongoStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
