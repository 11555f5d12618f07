package state

// Readable exposes read-only observable state.
type Readable[T any] interface {
	Get() T
	Observe(fn func(T)) func()
}

// Watchable emits untyped change notifications.
type Watchable interface {
	Watch(fn func()) func()
}

var (
	_ Readable[int] = (*Subject[int])(nil)
	_ Watchable     = (*Subject[int])(nil)
)
