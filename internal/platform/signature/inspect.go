package signature

import (
	"context"
	"errors"
	"reflect"
)

var (
	ErrNotFunc  = errors.New("handler is not a function")
	ErrVariadic = errors.New("variadic handlers are not supported")
	ErrResults  = errors.New("handler may only return nothing or a single error")
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Shape describes a handler function.
type Shape struct {
	Params       Tag          // parameters after an optional leading context
	Context      bool         // first parameter is a context.Context
	ReturnsError bool         // single error result
	Type         reflect.Type // the function type itself
}

// Inspect derives the Shape of fn.
func Inspect(fn any) (Shape, error) {
	typ := reflect.TypeOf(fn)
	if typ == nil || typ.Kind() != reflect.Func || reflect.ValueOf(fn).IsNil() {
		return Shape{}, ErrNotFunc
	}
	if typ.IsVariadic() {
		return Shape{}, ErrVariadic
	}

	s := Shape{Type: typ}
	switch typ.NumOut() {
	case 0:
	case 1:
		if typ.Out(0) != errorType {
			return Shape{}, ErrResults
		}
		s.ReturnsError = true
	default:
		return Shape{}, ErrResults
	}

	start := 0
	if typ.NumIn() > 0 && typ.In(0) == contextType {
		s.Context = true
		start = 1
	}
	params := make([]reflect.Type, 0, typ.NumIn()-start)
	for i := start; i < typ.NumIn(); i++ {
		params = append(params, typ.In(i))
	}
	s.Params = Of(params...)
	return s, nil
}
