// Package signature fingerprints handler parameter lists so a type-erased
// handler can be checked against the arguments of an emit before it is called.
package signature

import (
	"reflect"
	"strings"
)

// Tag is the fingerprint of an ordered parameter-type list. A nil entry
// stands for an untyped nil argument on the emit side.
type Tag struct {
	types []reflect.Type
}

// Of builds a Tag from types.
func Of(types ...reflect.Type) Tag {
	if len(types) == 0 {
		return Tag{}
	}
	return Tag{types: append([]reflect.Type(nil), types...)}
}

// ForArgs builds the Tag of an emitted argument list from the dynamic types
// of args.
func ForArgs(args []any) Tag {
	if len(args) == 0 {
		return Tag{}
	}
	types := make([]reflect.Type, len(args))
	for i, a := range args {
		types[i] = reflect.TypeOf(a)
	}
	return Tag{types: types}
}

// Arity is the number of parameters.
func (t Tag) Arity() int { return len(t.types) }

// Equal reports whether t and o describe the same list. Two empty lists are
// equal without looking any further.
func (t Tag) Equal(o Tag) bool {
	if len(t.types) != len(o.types) {
		return false
	}
	if len(t.types) == 0 {
		return true
	}
	for i := range t.types {
		if t.types[i] != o.types[i] {
			return false
		}
	}
	return true
}

// Accepts reports whether a handler with parameter list t can be called with
// an argument list fingerprinted as emitted. Each position must be the same
// type, a type implementing an interface parameter, or an untyped nil for a
// nillable parameter.
func (t Tag) Accepts(emitted Tag) bool {
	if len(t.types) != len(emitted.types) {
		return false
	}
	if len(t.types) == 0 {
		return true
	}
	for i, param := range t.types {
		if !accepts(param, emitted.types[i]) {
			return false
		}
	}
	return true
}

func accepts(param, arg reflect.Type) bool {
	if arg == nil {
		return nillable(param.Kind())
	}
	if param == arg {
		return true
	}
	return param.Kind() == reflect.Interface && arg.Implements(param)
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}

// String renders the list as "(int, string)".
func (t Tag) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, typ := range t.types {
		if i > 0 {
			b.WriteString(", ")
		}
		if typ == nil {
			b.WriteString("nil")
		} else {
			b.WriteString(typ.String())
		}
	}
	b.WriteByte(')')
	return b.String()
}
