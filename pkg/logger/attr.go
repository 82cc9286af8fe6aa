package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// SessionID records the session identifier under the key "session_id".
func SessionID(id string) slog.Attr {
	return slog.String("session_id", id)
}

// Collection records the backing collection (or key prefix) under the key "collection".
func Collection(name string) slog.Attr {
	return slog.String("collection", name)
}

// Operation records the store operation under the key "op".
func Operation(name string) slog.Attr {
	return slog.String("op", name)
}
