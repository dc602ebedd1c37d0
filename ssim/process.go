package ssim

// A Process is any entity a Simulator can dispatch actions to.
//
// Init is invoked exactly once, before any event delivery, when the
// process is registered. ProcessEvent is invoked whenever an Event action
// targeting this process is dispatched; event may be nil. Stop is invoked
// when a Stop action targeting this process is dispatched; after Stop
// returns the process is marked terminated and will receive no further
// actions.
//
// The event passed to ProcessEvent is valid for the duration of that call
// only. An implementation may re-signal the same payload to other
// processes (extending its lifetime via new queue entries) but must not
// retain the reference past return.
type Process interface {
	Init()
	ProcessEvent(event Event)
	Stop()
}

// ProcessBase supplies empty bodies for all three Process methods, the way
// the teacher's EventBase/ComponentBase supply defaults for embedding
// types that only care about one or two of an interface's methods.
type ProcessBase struct{}

// Init does nothing.
func (ProcessBase) Init() {}

// ProcessEvent does nothing.
func (ProcessBase) ProcessEvent(Event) {}

// Stop does nothing.
func (ProcessBase) Stop() {}

// ProcessWithID is an embeddable helper that gives a Process its own
// registry id, mirroring the original ssim::ProcessWithPId. Activate is
// idempotent-once: a second call returns NullProcessID without registering
// again. The zero value is "not yet activated" (tracked by the activated
// flag, not by id) so a ProcessWithID mixed into a struct literal (without
// going through NewProcessWithID) still activates correctly; the zero id
// cannot serve as that sentinel since 0 is the id assigned to the first
// process created.
type ProcessWithID struct {
	activated bool
	id        ProcessID
}

// NewProcessWithID returns a ProcessWithID not yet activated.
func NewProcessWithID() ProcessWithID {
	return ProcessWithID{id: NullProcessID}
}

// Activate registers p with the Simulator and remembers the resulting id.
// p must be the full Process value that embeds this ProcessWithID (the
// helper cannot infer that on its own, exactly as ProcessWithPId::activate
// requires the subclass to pass itself along implicitly via "this").
func (h *ProcessWithID) Activate(s *Simulator, p Process) ProcessID {
	if h.activated {
		return NullProcessID
	}

	h.activated = true
	h.id = s.CreateProcess(p)

	return h.id
}

// PID returns the id assigned by Activate, or NullProcessID if Activate
// has not been called.
func (h *ProcessWithID) PID() ProcessID {
	if !h.activated {
		return NullProcessID
	}
	return h.id
}
