package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/mongosession/pkg/session"
)

// storeFixture is a store under test plus a hook that removes every
// persisted session behind the store's back.
type storeFixture struct {
	store session.Store
	wipe  func(t *testing.T)
}

// runStoreContract checks the lifecycle guarantees every Store must provide.
func runStoreContract(t *testing.T, setup func(t *testing.T) storeFixture) {
	t.Helper()
	ctx := context.Background()

	t.Run("create then retrieve returns empty session", func(t *testing.T) {
		f := setup(t)

		created, err := f.store.Create(ctx)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 0, created.Len())

		_, valid := session.ParseID(created.ID)
		assert.True(t, valid, "id must be a native ObjectID")

		got, found, err := f.store.Retrieve(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, 0, got.Len())
	})

	t.Run("created ids are unique", func(t *testing.T) {
		f := setup(t)

		seen := make(map[string]struct{})
		for range 50 {
			sess, err := f.store.Create(ctx)
			require.NoError(t, err)
			_, dup := seen[sess.ID]
			require.False(t, dup, "duplicate id %s", sess.ID)
			seen[sess.ID] = struct{}{}
		}
	})

	t.Run("flush round trip", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)
		sess.Set("user", "alice")

		flushed, err := f.store.Flush(ctx, sess)
		require.NoError(t, err)
		assert.Same(t, sess, flushed, "flush returns the session for chaining")

		got, found, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, found)
		user, ok := got.GetString("user")
		assert.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, []string{"user"}, got.Keys())
	})

	t.Run("value types round trip", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)
		sess.Set("name", "bob")
		sess.Set("visits", 42)
		sess.Set("big", int64(1)<<40)
		sess.Set("ratio", 0.75)
		sess.Set("admin", true)
		sess.Set("prefs", map[string]any{"theme": "dark", "layout": map[string]any{"cols": 3}})
		sess.Set("tags", []string{"a", "b"})
		sess.Set("nothing", nil)
		_, err = f.store.Flush(ctx, sess)
		require.NoError(t, err)

		got, found, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, found)

		name, _ := got.GetString("name")
		assert.Equal(t, "bob", name)

		visits, ok := got.GetInt("visits")
		assert.True(t, ok)
		assert.Equal(t, 42, visits)

		big, ok := got.GetInt("big")
		assert.True(t, ok)
		assert.Equal(t, 1<<40, big)

		ratio, ok := got.GetFloat("ratio")
		assert.True(t, ok)
		assert.InDelta(t, 0.75, ratio, 1e-9)

		admin, ok := got.GetBool("admin")
		assert.True(t, ok)
		assert.True(t, admin)

		prefs, ok := got.GetMap("prefs")
		require.True(t, ok)
		assert.Equal(t, "dark", prefs["theme"])
		layout, ok := prefs["layout"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 3, layout["cols"])

		tags, ok := got.GetSlice("tags")
		require.True(t, ok)
		assert.Equal(t, []any{"a", "b"}, tags)

		val, ok := got.Get("nothing")
		assert.True(t, ok)
		assert.Nil(t, val)
	})

	t.Run("flush replaces the whole document", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)
		sess.Set("a", "1")
		sess.Set("b", "2")
		_, err = f.store.Flush(ctx, sess)
		require.NoError(t, err)

		sess.Delete("a")
		_, err = f.store.Flush(ctx, sess)
		require.NoError(t, err)

		got, found, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, found)
		_, ok := got.Get("a")
		assert.False(t, ok)
		assert.Equal(t, []string{"b"}, got.Keys())
	})

	t.Run("flush upserts a missing document", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)
		f.wipe(t)

		_, found, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		require.False(t, found)

		sess.Set("k", "v")
		_, err = f.store.Flush(ctx, sess)
		require.NoError(t, err)

		got, found, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, found)
		v, _ := got.GetString("k")
		assert.Equal(t, "v", v)
	})

	t.Run("unknown and malformed ids are indistinguishable", func(t *testing.T) {
		f := setup(t)

		ids := []string{
			bson.NewObjectID().Hex(),
			"not-an-object-id",
			"",
			"zzzzzzzzzzzzzzzzzzzzzzzz",
			"65f0c0ffee65f0c0ffee65f0c0",
		}
		for _, id := range ids {
			sess, found, err := f.store.Retrieve(ctx, id)
			assert.NoError(t, err, "id %q", id)
			assert.False(t, found, "id %q", id)
			assert.Nil(t, sess, "id %q", id)
		}
	})

	t.Run("destroy then retrieve is not found", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)
		sess.Set("k", "v")
		_, err = f.store.Flush(ctx, sess)
		require.NoError(t, err)

		require.NoError(t, f.store.Destroy(ctx, sess))

		got, found, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("destroy twice is not fatal", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)

		require.NoError(t, f.store.Destroy(ctx, sess))
		err = f.store.Destroy(ctx, sess)
		assert.True(t, err == nil || session.IsWarning(err), "unexpected error: %v", err)
	})

	t.Run("destroy only removes its own session", func(t *testing.T) {
		f := setup(t)

		keep, err := f.store.Create(ctx)
		require.NoError(t, err)
		drop, err := f.store.Create(ctx)
		require.NoError(t, err)

		require.NoError(t, f.store.Destroy(ctx, drop))

		_, found, err := f.store.Retrieve(ctx, keep.ID)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("flush rejects invalid sessions", func(t *testing.T) {
		f := setup(t)

		_, err := f.store.Flush(ctx, nil)
		assert.ErrorIs(t, err, session.ErrInvalidSession)

		_, err = f.store.Flush(ctx, &session.Session{ID: "bogus"})
		assert.ErrorIs(t, err, session.ErrInvalidSession)
	})

	t.Run("destroy of invalid session degrades to warning", func(t *testing.T) {
		f := setup(t)

		err := f.store.Destroy(ctx, &session.Session{ID: "bogus"})
		assert.True(t, session.IsWarning(err))
		assert.ErrorIs(t, err, session.ErrInvalidSession)

		err = f.store.Destroy(ctx, nil)
		assert.True(t, session.IsWarning(err))
	})

	t.Run("identifier is never stored as a field", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)
		sess.Set("_id", "hijack")
		sess.Data["_id"] = "hijack"
		sess.Set("k", "v")
		_, err = f.store.Flush(ctx, sess)
		require.NoError(t, err)

		got, found, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, sess.ID, got.ID)
		assert.Equal(t, []string{"k"}, got.Keys())
	})

	t.Run("dollar-prefixed keys are rejected consistently", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)
		sess.Set("$price", 1)
		sess.Set("a", 1)
		sess.Set("b", 2)

		for range 20 {
			_, err := f.store.Flush(ctx, sess)
			require.ErrorIs(t, err, session.ErrEncodeFailed)
		}

		sess.Delete("$price")
		_, err = f.store.Flush(ctx, sess)
		require.NoError(t, err)

		got, found, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []string{"a", "b"}, got.Keys())
	})

	t.Run("last writer wins", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)

		first, _, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		second, _, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)

		first.Set("writer", "first")
		second.Set("writer", "second")
		_, err = f.store.Flush(ctx, first)
		require.NoError(t, err)
		_, err = f.store.Flush(ctx, second)
		require.NoError(t, err)

		got, _, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		writer, _ := got.GetString("writer")
		assert.Equal(t, "second", writer)
	})

	t.Run("retrieved sessions are independent", func(t *testing.T) {
		f := setup(t)

		sess, err := f.store.Create(ctx)
		require.NoError(t, err)
		sess.Set("k", "v")
		_, err = f.store.Flush(ctx, sess)
		require.NoError(t, err)

		sess.Set("k", "unflushed")

		got, _, err := f.store.Retrieve(ctx, sess.ID)
		require.NoError(t, err)
		v, _ := got.GetString("k")
		assert.Equal(t, "v", v)
	})
}
