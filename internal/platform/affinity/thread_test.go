package affinity_test

import (
	"context"
	"testing"

	"github.com/philly/looper/internal/platform/affinity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThread(t *testing.T) {
	ctx := affinity.NewThread(context.Background())

	id, ok := affinity.FromContext(ctx)
	require.True(t, ok)
	assert.False(t, id.IsZero())

	// Derived contexts keep the identity.
	child, cancel := context.WithCancel(ctx)
	defer cancel()
	childID, ok := affinity.FromContext(child)
	require.True(t, ok)
	assert.True(t, affinity.Same(id, childID))
}

func TestNewThread_Distinct(t *testing.T) {
	a, _ := affinity.FromContext(affinity.NewThread(context.Background()))
	b, _ := affinity.FromContext(affinity.NewThread(context.Background()))

	assert.False(t, affinity.Same(a, b))
}

func TestFromContext_None(t *testing.T) {
	id, ok := affinity.FromContext(context.Background())
	assert.False(t, ok)
	assert.True(t, id.IsZero())
	assert.Equal(t, "none", id.String())

	//nolint:staticcheck // nil context is tolerated on purpose
	_, ok = affinity.FromContext(nil)
	assert.False(t, ok)
}

func TestSame_ZeroNeverMatches(t *testing.T) {
	assert.False(t, affinity.Same(affinity.ThreadID{}, affinity.ThreadID{}))
}

func TestWithThread_ZeroIsIgnored(t *testing.T) {
	ctx := affinity.WithThread(context.Background(), affinity.ThreadID{})
	_, ok := affinity.FromContext(ctx)
	assert.False(t, ok)
}
