package ssim

// Event is an opaque, user-defined payload carried by an Event action. The
// core never inspects an Event beyond the Destroyable interface below; it
// treats every Event as an owned value shared by the queue entries that
// reference it.
//
// Payloads are recommended to be pointer-typed (or any value Go considers
// comparable) because the Simulator uses == to recognize when a handler
// re-signals the exact payload it is currently being handed, so that the
// two queue entries share one reference count instead of two independent
// ones. A non-comparable payload (a struct holding a slice or map field,
// passed by value rather than by pointer) cannot be re-signaled this way;
// signaling a fresh copy of it simply starts a fresh, independent lifetime.
type Event interface{}

// Destroyable may optionally be implemented by an Event payload that needs
// to release a resource (a file handle, a pooled buffer) exactly once, at
// the moment its last queue reference is released. Payloads that do not
// need this are not required to implement it; Go's garbage collector
// reclaims the rest.
type Destroyable interface {
	Destroy()
}

// eventHandle wraps a user Event with the reference count the spec requires:
// one count per queue entry that currently references it, plus one more for
// the duration it is being delivered to a handler.
type eventHandle struct {
	payload Event
	refs    int
}

func newEventHandle(payload Event) *eventHandle {
	if payload == nil {
		return nil
	}
	return &eventHandle{payload: payload, refs: 0}
}

// retain increments the reference count. Called once per queue insertion
// that shares this handle.
func (h *eventHandle) retain() {
	if h == nil {
		return
	}
	h.refs++
}

// release decrements the reference count and destroys the payload exactly
// once, when the count reaches zero.
func (h *eventHandle) release() {
	if h == nil {
		return
	}

	h.refs--
	if h.refs <= 0 {
		if d, ok := h.payload.(Destroyable); ok {
			d.Destroy()
		}
	}
}
