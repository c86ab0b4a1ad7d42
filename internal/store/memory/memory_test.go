package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/atbot/internal/store"
	"github.com/edgard/atbot/internal/store/memory"
)

func TestStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.New()

	_, err := s.Load(ctx, "bob")
	require.ErrorIs(t, err, store.ErrRead)
	assert.True(t, store.IsNotFound(err))

	require.NoError(t, s.Save(ctx, store.NewProfile("Bob", "a tester")))
	got, err := s.Load(ctx, store.Fold("BOB"))
	require.NoError(t, err)
	assert.Equal(t, "a tester", got.Description)

	got.Description = "mutated"
	again, err := s.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "a tester", again.Description, "callers must not alias stored records")

	require.NoError(t, s.Save(ctx, store.NewProfile("bob", "second")))
	again, err = s.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "second", again.Description)
	assert.Equal(t, 1, s.Len())

	assert.ErrorIs(t, s.Save(ctx, nil), store.ErrWrite)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := memory.New()
	assert.ErrorIs(t, s.Save(ctx, store.NewProfile("bob", "x")), store.ErrWrite)
	_, err := s.Load(ctx, "bob")
	assert.ErrorIs(t, err, store.ErrRead)
	assert.ErrorIs(t, err, context.Canceled)
}
