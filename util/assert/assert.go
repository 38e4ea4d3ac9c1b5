// Package assert checks internal invariants. A failed assertion is a programming error and panics.
package assert

import (
	"fmt"
	"reflect"
)

// Assert panics if cond is false.
// msgAndArgs is an optional format string followed by its arguments.
func Assert(cond bool, msgAndArgs ...any) {
	if cond {
		return
	}
	panic("assertion failed: " + format(msgAndArgs))
}

// IsNil panics if v is not nil.
func IsNil(v any, msgAndArgs ...any) {
	if isNil(v) {
		return
	}
	panic(fmt.Sprintf("expected nil, got %v: %s", v, format(msgAndArgs)))
}

// IsNotNil panics if v is nil, including typed nil pointers stored in an interface.
func IsNotNil(v any, msgAndArgs ...any) {
	if !isNil(v) {
		return
	}
	panic("unexpected nil: " + format(msgAndArgs))
}

// Never panics unconditionally. It marks code that must be unreachable.
func Never(msgAndArgs ...any) {
	panic("unreachable code reached: " + format(msgAndArgs))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func format(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	msg, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprint(msgAndArgs...)
	}
	return fmt.Sprintf(msg, msgAndArgs[1:]...)
}
