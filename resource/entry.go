package resource

import (
	"fmt"
	"io"
	"reflect"
)

// Releaser is implemented by resources that own something needing teardown.
type Releaser interface {
	Release() error
}

// Destroyer is implemented by resources with an infallible teardown,
// such as wgpu HAL devices and instances.
type Destroyer interface {
	Destroy()
}

// entry is a cached value together with the release routine resolved for it
// at insert time. release is nil when the value has nothing to tear down.
type entry struct {
	key     string
	value   any
	release func() error
}

func newEntry(key string, value any) *entry {
	return &entry{
		key:     key,
		value:   value,
		release: releaserOf(value),
	}
}

// releaserOf resolves the release capability of v, or nil if it has none.
func releaserOf(v any) func() error {
	switch r := v.(type) {
	case Releaser:
		return r.Release
	case io.Closer:
		return r.Close
	case Destroyer:
		return func() error {
			r.Destroy()
			return nil
		}
	default:
		return nil
	}
}

// releasable reports whether the entry carries a release routine.
func (e *entry) releasable() bool {
	return e.release != nil
}

// run invokes the release routine, converting a panic into an error.
func (e *entry) run() (err error) {
	if e.release == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("release panicked: %v", r)
		}
	}()
	return e.release()
}

// isNil reports whether v is a nil interface or a typed nil of a nilable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// typeName returns the printable name of type T.
func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
