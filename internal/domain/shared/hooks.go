package shared

import "context"

// HookEvent identifies a repository lifecycle stage
type HookEvent int

const (
	BeforeCreate HookEvent = iota
	AfterCreate
	BeforeUpdate
	AfterUpdate
	BeforeDelete
	AfterDelete
)

// String returns the event name
func (e HookEvent) String() string {
	switch e {
	case BeforeCreate:
		return "before_create"
	case AfterCreate:
		return "after_create"
	case BeforeUpdate:
		return "before_update"
	case AfterUpdate:
		return "after_update"
	case BeforeDelete:
		return "before_delete"
	case AfterDelete:
		return "after_delete"
	default:
		return "unknown"
	}
}

// HookFunc is a lifecycle callback. A non-nil error from a before-hook
// aborts the operation.
type HookFunc[T any] func(ctx context.Context, entity *T) error

// Hooks holds ordered lifecycle callbacks for an entity type.
// Registration is expected at construction time; Run is safe for
// concurrent use once registration is done.
type Hooks[T any] struct {
	listeners map[HookEvent][]HookFunc[T]
}

// NewHooks creates an empty hook registry
func NewHooks[T any]() *Hooks[T] {
	return &Hooks[T]{listeners: make(map[HookEvent][]HookFunc[T])}
}

// Register appends a callback for the given event
func (h *Hooks[T]) Register(event HookEvent, fn HookFunc[T]) {
	h.listeners[event] = append(h.listeners[event], fn)
}

// Run invokes the callbacks registered for event in registration order.
// The first error stops the chain and is returned.
func (h *Hooks[T]) Run(ctx context.Context, event HookEvent, entity *T) error {
	for _, fn := range h.listeners[event] {
		if err := fn(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}
