// Package session binds a generic session lifecycle to a document store.
//
// A session is an id assigned by the backend plus a bag of application
// values. Every backend implements Store:
//
//   - Create   – persist an empty document and return its id
//   - Retrieve – load a session by id; unknown and malformed ids are both
//     reported as "not found", never as an error
//   - Flush    – replace the whole stored document (upsert)
//   - Destroy  – remove the document; failures degrade to a logged *Warning
//
// MongoStore is the primary backend: one document per session, keyed by the
// native ObjectID `_id`. RedisStore and MemoryStore are drop-in alternatives
// that use the same id format and BSON encoding.
//
// # Architecture
//
//	┌───────────┐  Create / Retrieve / Flush / Destroy  ┌────────────┐
//	│ framework │ ────────────────────────────────────► │   Store    │
//	└───────────┘                                       └────────────┘
//	                                                          │
//	                                       ┌──────────────────┼───────────────┐
//	                                       ▼                  ▼               ▼
//	                                  MongoStore         RedisStore     MemoryStore
//
// The hosting framework owns id transport (cookies, headers); this package
// never touches requests or responses.
//
// # Usage
//
//	cfg, err := session.LoadConfig() // SESSION_MONGODB_DATABASE is required
//	if err != nil {
//	    return err
//	}
//	store, err := session.Open(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer store.Close(context.Background())
//
//	sess, err := store.Create(ctx)
//	sess.Set("user", "alice")
//	if _, err := store.Flush(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, found, err := store.Retrieve(ctx, idFromCookie)
//	if err != nil {
//	    return err
//	}
//	if !found {
//	    // start a fresh session
//	}
//
// # Configuration
//
// Config is read from SESSION_MONGODB_* variables (host, port, database and
// pool settings) and SESSION_COLLECTION. Host defaults to localhost, port to
// 27017 and the collection to "sessions". The database name has no default:
// Open and LoadConfig fail with ErrMissingDatabaseName before connecting.
//
// # Concurrency
//
// Stores are safe for concurrent use; the underlying driver handles
// connection sharing. Flushes of the same session are not coordinated and
// the last write wins.
//
// # Error Handling
//
//   - ErrMissingDatabaseName – configuration error, returned by Open
//   - ErrFlushFailed         – write not acknowledged, returned by Flush
//   - ErrInvalidSession      – nil session or malformed id passed to Flush
//   - *Warning               – soft failure from Destroy, already logged;
//     test with IsWarning
package session
