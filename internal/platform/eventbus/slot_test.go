package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/philly/looper/internal/platform/affinity"
	"github.com/philly/looper/internal/platform/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOwner() affinity.ThreadID {
	id, _ := affinity.FromContext(affinity.NewThread(context.Background()))
	return id
}

func TestNewSlot_FastPaths(t *testing.T) {
	plain, err := newSlot(testOwner(), func() {})
	require.NoError(t, err)
	assert.NotNil(t, plain.plain)

	withCtx, err := newSlot(testOwner(), func(context.Context) {})
	require.NoError(t, err)
	assert.NotNil(t, withCtx.withCtx)

	reflected, err := newSlot(testOwner(), func(int) {})
	require.NoError(t, err)
	assert.Nil(t, reflected.plain)
	assert.Nil(t, reflected.withCtx)
	assert.Equal(t, "(int)", reflected.Signature().String())
}

func TestSlot_RecoverChecksBeforeBinding(t *testing.T) {
	called := false
	slot, err := newSlot(testOwner(), func(n int, s string) { called = true })
	require.NoError(t, err)

	args := []any{"x", 1}
	thunk, ok := slot.Recover(signature.ForArgs(args), args)

	assert.False(t, ok)
	assert.Nil(t, thunk)
	assert.False(t, called)
}

func TestSlot_RecoverZeroArgs(t *testing.T) {
	calls := 0
	slot, err := newSlot(testOwner(), func() { calls++ })
	require.NoError(t, err)

	_, ok := slot.Recover(signature.ForArgs([]any{1}), []any{1})
	assert.False(t, ok)

	thunk, ok := slot.Recover(signature.ForArgs(nil), nil)
	require.True(t, ok)
	require.NoError(t, thunk(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestSlot_ThunkInjectsExecutingContext(t *testing.T) {
	type key struct{}
	var got []any
	slot, err := newSlot(testOwner(), func(ctx context.Context, n int) error {
		got = append(got, ctx.Value(key{}), n)
		return nil
	})
	require.NoError(t, err)

	thunk, ok := slot.Recover(signature.ForArgs([]any{3}), []any{3})
	require.True(t, ok)

	require.NoError(t, thunk(context.WithValue(context.Background(), key{}, "loop")))
	assert.Equal(t, []any{"loop", 3}, got)
}

func TestSlot_ThunkReturnsHandlerError(t *testing.T) {
	boom := errors.New("boom")
	slot, err := newSlot(testOwner(), func(string) error { return boom })
	require.NoError(t, err)

	thunk, ok := slot.Recover(signature.ForArgs([]any{"a"}), []any{"a"})
	require.True(t, ok)
	assert.ErrorIs(t, thunk(context.Background()), boom)
}

func TestSlot_CopiesShareCallable(t *testing.T) {
	calls := 0
	slot, err := newSlot(testOwner(), func(int) { calls++ })
	require.NoError(t, err)
	copied := slot

	for _, s := range []Slot{slot, copied} {
		thunk, ok := s.Recover(signature.ForArgs([]any{1}), []any{1})
		require.True(t, ok)
		require.NoError(t, thunk(nil))
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, slot.Owner(), copied.Owner())
}
