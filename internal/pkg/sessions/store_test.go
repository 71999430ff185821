package sessions

import (
	"testing"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(config.SessionConfig{}, zap.NewNop())
}

func TestStoreCreateAndGet(t *testing.T) {
	store := newTestStore(t)

	entry := store.Create("news", map[string]int{"articles": 3})
	require.NotEmpty(t, entry.ID)

	got, err := store.Get(entry.ID, "news")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, map[string]int{"articles": 3}, got.Payload)
}

func TestStoreGetUnknownID(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get("no-such-id", "news")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestStoreGetWrongApp(t *testing.T) {
	store := newTestStore(t)
	entry := store.Create("rag", nil)

	_, err := store.Get(entry.ID, "news")
	assert.ErrorIs(t, err, entity.ErrWrongSessionApp)
}

func TestStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	entry := store.Create("blogger", "v1")

	require.NoError(t, store.Update(entry.ID, "v2"))

	got, err := store.Get(entry.ID, "blogger")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Payload)

	assert.ErrorIs(t, store.Update("missing", "x"), entity.ErrSessionNotFound)
}

func TestStoreDeleteFiresHook(t *testing.T) {
	store := newTestStore(t)

	var reaped []Entry
	store.OnExpired(func(e Entry) {
		reaped = append(reaped, e)
	})

	entry := store.Create("rag", nil)
	store.Delete(entry.ID)

	require.Len(t, reaped, 1)
	assert.Equal(t, entry.ID, reaped[0].ID)
	assert.Equal(t, "rag", reaped[0].App)

	_, err := store.Get(entry.ID, "rag")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}
