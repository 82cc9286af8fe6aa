package session

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// idField is the store-native identifier field of every session document.
const idField = "_id"

// emptyDocument is the encoding of a session without application fields.
var emptyDocument = mustEncode(nil)

// ParseID reports whether id is a valid store-native identifier
// (a 24 character hex ObjectID) and returns its parsed form.
func ParseID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, false
	}
	return oid, true
}

// encodeFields encodes the application fields of data in sorted key order,
// leaving out the id. Top-level keys starting with "$" are rejected: MongoDB
// reads them as operators in a replacement document.
func encodeFields(data map[string]any) (bson.Raw, error) {
	doc := make(bson.D, 0, len(data))
	for _, k := range slices.Sorted(maps.Keys(data)) {
		if k == idField {
			continue
		}
		if strings.HasPrefix(k, "$") {
			return nil, errors.Join(ErrEncodeFailed, fmt.Errorf("field %q: keys must not start with '$'", k))
		}
		doc = append(doc, bson.E{Key: k, Value: data[k]})
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Join(ErrEncodeFailed, err)
	}
	return raw, nil
}

func mustEncode(data map[string]any) bson.Raw {
	raw, err := encodeFields(data)
	if err != nil {
		panic(err)
	}
	return raw
}

// decodeSession builds a session from a stored document, attaching id and
// dropping any id field stored in the document itself.
func decodeSession(id string, raw bson.Raw) (*Session, error) {
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrDecodeFailed, err)
	}
	sess := newSession(id)
	for k, v := range doc {
		if k == idField {
			continue
		}
		sess.Data[k] = normalize(v)
	}
	return sess, nil
}

// normalize converts driver container types into plain Go maps and slices.
func normalize(v any) any {
	switch val := v.(type) {
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.M:
		return normalizeMap(val)
	case map[string]any:
		return normalizeMap(val)
	case bson.A:
		return normalizeSlice(val)
	case []any:
		return normalizeSlice(val)
	default:
		return v
	}
}

func normalizeMap(in map[string]any) map[string]any {
	m := make(map[string]any, len(in))
	for k, v := range in {
		m[k] = normalize(v)
	}
	return m
}

func normalizeSlice(in []any) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = normalize(v)
	}
	return out
}
