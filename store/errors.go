package store

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// ErrUnknownKey matches every UnknownKeyError via errors.Is.
var ErrUnknownKey = errors.New("unknown store key")

// UnknownKeyError reports access to a key the store was not built with.
type UnknownKeyError struct {
	Key any
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf(`There is no key "%s" in the store`, renderKey(e.Key))
}

// Unwrap returns ErrUnknownKey.
func (e *UnknownKeyError) Unwrap() error {
	return ErrUnknownKey
}

// renderKey returns the string or numeric form of key, else a type tag.
func renderKey(key any) string {
	if key == nil {
		return "typeof nil"
	}
	v := reflect.ValueOf(key)
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(key)
	default:
		return fmt.Sprintf("typeof %T", key)
	}
}

// keyName is the name handed to listeners.
func keyName(key any) string {
	if s, ok := key.(fmt.Stringer); ok {
		return s.String()
	}
	v := reflect.ValueOf(key)
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(key)
}

// Reporter receives validation failures.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function into a Reporter.
type ReporterFunc func(error)

// Report calls f.
func (f ReporterFunc) Report(err error) {
	if f == nil || err == nil {
		return
	}
	f(err)
}

// NopReporter discards reports.
var NopReporter Reporter = ReporterFunc(func(error) {})

// PanicReporter panics with the reported error.
var PanicReporter Reporter = ReporterFunc(func(err error) {
	panic(err)
})

// LogReporter writes reports to a zap logger at error level.
type LogReporter struct {
	Logger *zap.Logger
}

// Report logs err.
func (r LogReporter) Report(err error) {
	if r.Logger == nil || err == nil {
		return
	}
	var unknown *UnknownKeyError
	if errors.As(err, &unknown) {
		r.Logger.Error("store key validation failed",
			zap.String("key", renderKey(unknown.Key)),
			zap.Error(err))
		return
	}
	r.Logger.Error("store error", zap.Error(err))
}
