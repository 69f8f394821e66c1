package eventbus

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(event string) queuedCall {
	return queuedCall{
		event:    event,
		thunk:    func(context.Context) error { return nil },
		queuedAt: time.Now(),
	}
}

func never() bool  { return false }
func always() bool { return true }

func TestCallQueue_FIFO(t *testing.T) {
	q := newCallQueue()
	for i := 0; i < 5; i++ {
		require.True(t, q.push(call(fmt.Sprint(i))))
	}
	assert.Equal(t, 5, q.len())

	for i := 0; i < 5; i++ {
		c, ok, closed := q.next(never)
		require.True(t, ok)
		assert.False(t, closed)
		assert.Equal(t, fmt.Sprint(i), c.event)
	}

	_, ok, closed := q.next(never)
	assert.False(t, ok)
	assert.False(t, closed)
}

func TestCallQueue_PushSignalsReady(t *testing.T) {
	q := newCallQueue()

	q.push(call("a"))
	q.push(call("b"))

	select {
	case <-q.ready:
	default:
		t.Fatal("push did not leave a wake-up token")
	}
	select {
	case <-q.ready:
		t.Fatal("ready should hold at most one token")
	default:
	}
}

func TestCallQueue_ClosesOnlyWhenEmpty(t *testing.T) {
	q := newCallQueue()
	q.push(call("a"))

	c, ok, closed := q.next(always)
	require.True(t, ok)
	assert.False(t, closed)
	assert.Equal(t, "a", c.event)

	_, ok, closed = q.next(always)
	assert.False(t, ok)
	assert.True(t, closed)

	assert.False(t, q.push(call("late")))
	assert.Zero(t, q.len())
}

func TestCallQueue_Discard(t *testing.T) {
	q := newCallQueue()
	q.push(call("a"))
	q.push(call("b"))

	dropped := q.discard()

	require.Len(t, dropped, 2)
	assert.Equal(t, "a", dropped[0].event)
	assert.Zero(t, q.len())
	assert.False(t, q.push(call("c")))
}
