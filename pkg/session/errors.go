package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/mongosession/pkg/logger"
)

var (
	// ErrMissingDatabaseName indicates the store was initialized without a database name
	ErrMissingDatabaseName = errors.New("session.missing_database_name")

	// ErrInvalidSession indicates a nil session or one without a valid id
	ErrInvalidSession = errors.New("session.invalid")

	// ErrCreateFailed indicates the backend did not persist a new session
	ErrCreateFailed = errors.New("session.create_failed")

	// ErrRetrieveFailed indicates the backend could not be queried
	ErrRetrieveFailed = errors.New("session.retrieve_failed")

	// ErrFlushFailed indicates the backend did not acknowledge a write
	ErrFlushFailed = errors.New("session.flush_failed")

	// ErrDestroyFailed indicates the backend did not acknowledge a removal
	ErrDestroyFailed = errors.New("session.destroy_failed")

	// ErrEncodeFailed indicates session data could not be encoded
	ErrEncodeFailed = errors.New("session.encode_failed")

	// ErrDecodeFailed indicates a stored document could not be decoded
	ErrDecodeFailed = errors.New("session.decode_failed")
)

// Warning is a soft failure: the operation did not complete, the failure has
// already been logged, and the caller's flow may continue.
type Warning struct {
	Op  string
	ID  string
	Err error
}

func (w *Warning) Error() string {
	return fmt.Sprintf("session: %s %s: %v", w.Op, w.ID, w.Err)
}

func (w *Warning) Unwrap() error {
	return w.Err
}

// IsWarning reports whether err is, or wraps, a *Warning.
func IsWarning(err error) bool {
	var w *Warning
	return errors.As(err, &w)
}

// destroyWarning logs a failed removal and wraps it as a *Warning.
func destroyWarning(ctx context.Context, log *slog.Logger, id string, err error) error {
	log.WarnContext(ctx, "session destroy failed",
		logger.Operation("destroy"),
		logger.SessionID(id),
		logger.Error(err),
	)
	return &Warning{Op: "destroy", ID: id, Err: err}
}
