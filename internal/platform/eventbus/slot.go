package eventbus

import (
	"context"
	"reflect"

	"github.com/philly/looper/internal/platform/affinity"
	"github.com/philly/looper/internal/platform/signature"
)

// Thunk is a deferred call with its arguments already bound. ctx is the
// context of the thread that executes it.
type Thunk func(ctx context.Context) error

// Slot holds one registered handler behind a uniform handle. Copies share
// the underlying callable; a slot is never modified once stored.
type Slot struct {
	owner affinity.ThreadID
	shape signature.Shape
	fn    reflect.Value

	// typed fast paths, skipping reflect.Value.Call
	plain   func()
	withCtx func(context.Context)
}

func newSlot(owner affinity.ThreadID, handler any) (Slot, error) {
	shape, err := signature.Inspect(handler)
	if err != nil {
		return Slot{}, err
	}

	s := Slot{owner: owner, shape: shape, fn: reflect.ValueOf(handler)}
	switch h := handler.(type) {
	case func():
		s.plain = h
	case func(context.Context):
		s.withCtx = h
	}
	return s, nil
}

// Owner is the thread that registered the handler.
func (s Slot) Owner() affinity.ThreadID { return s.owner }

// Signature is the handler's parameter list, without a leading context.
func (s Slot) Signature() signature.Tag { return s.shape.Params }

// Recover checks emitted against the handler's signature and, on success,
// returns a Thunk bound to a snapshot of args. It never calls the handler.
func (s Slot) Recover(emitted signature.Tag, args []any) (Thunk, bool) {
	if !s.shape.Params.Accepts(emitted) {
		return nil, false
	}

	switch {
	case s.plain != nil:
		plain := s.plain
		return func(context.Context) error {
			plain()
			return nil
		}, true
	case s.withCtx != nil:
		withCtx := s.withCtx
		return func(ctx context.Context) error {
			withCtx(orBackground(ctx))
			return nil
		}, true
	}

	offset := 0
	if s.shape.Context {
		offset = 1
	}
	in := make([]reflect.Value, offset+len(args))
	for i, a := range args {
		if a == nil {
			in[offset+i] = reflect.Zero(s.shape.Type.In(offset + i))
		} else {
			in[offset+i] = reflect.ValueOf(a)
		}
	}

	fn, returnsError := s.fn, s.shape.ReturnsError
	return func(ctx context.Context) error {
		call := in
		if offset == 1 {
			call = make([]reflect.Value, len(in))
			copy(call, in)
			call[0] = reflect.ValueOf(orBackground(ctx))
		}
		out := fn.Call(call)
		if returnsError {
			if err, _ := out[0].Interface().(error); err != nil {
				return err
			}
		}
		return nil
	}, true
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
