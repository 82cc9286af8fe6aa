package session

import (
	"maps"
	"slices"
)

// Session is a bag of application values keyed by string, identified by the
// store-native id assigned at creation.
//
// ID is never part of Data: stores strip it before writing and reattach it
// after reading. Data values must be BSON-encodable; after a round trip
// numbers come back as int32, int64 or float64, nested documents as
// map[string]any and sequences as []any.
type Session struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data,omitempty"`
}

// newSession returns an empty session with the given id.
func newSession(id string) *Session {
	return &Session{ID: id, Data: make(map[string]any)}
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an integer value from session data.
// Whole floats are accepted so values written by other clients still read back.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// GetFloat retrieves a numeric value from session data as float64.
func (s *Session) GetFloat(key string) (float64, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session data
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// GetMap retrieves a nested document from session data
func (s *Session) GetMap(key string) (map[string]any, bool) {
	val, ok := s.Get(key)
	if !ok {
		return nil, false
	}
	m, ok := val.(map[string]any)
	return m, ok
}

// GetSlice retrieves a sequence from session data
func (s *Session) GetSlice(key string) ([]any, bool) {
	val, ok := s.Get(key)
	if !ok {
		return nil, false
	}
	a, ok := val.([]any)
	return a, ok
}

// Set stores a value in session data. The reserved "_id" key is ignored.
func (s *Session) Set(key string, value any) {
	if s == nil || key == idField {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all data from the session. The id is kept.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
}

// Len returns the number of application fields.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Data)
}

// Keys returns the application field names in sorted order.
func (s *Session) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.Data))
}
