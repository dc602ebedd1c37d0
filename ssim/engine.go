package ssim

import (
	"log"
	"reflect"
	"sync"
)

// Simulator holds the global state of one simulation run: the virtual
// clock, the currently dispatching process, the optional stop time, the
// action queue, the process registry, and the optional error handler.
//
// A Simulator is not safe for concurrent use by multiple goroutines except
// for Clock, which is guarded so a monitoring goroutine may poll the virtual
// time of a running simulation — the same carve-out the teacher's
// SerialEngine makes around its own clock field. ProcessCount, QueueLen and
// the other introspection accessors take no lock.
type Simulator struct {
	HookableBase

	clockLock sync.RWMutex
	now       Time

	currentProcess ProcessID
	dispatching    *eventHandle

	stopTime Time
	running  bool
	locked   bool

	queue    *actionQueue
	registry *registry
	errorH   ErrorHandler

	nextSeq uint64
}

// New creates a Simulator ready to run.
func New() *Simulator {
	return &Simulator{
		currentProcess: NullProcessID,
		stopTime:       InitTime,
		queue:          newActionQueue(),
		registry:       newRegistry(),
	}
}

var (
	defaultOnce sync.Once
	defaultSim  *Simulator
)

// Default returns a package-level Simulator, created on first use,
// matching the original ssim::Sim's "one simulator per process image"
// feel for callers who do not want to thread a *Simulator through their
// own code. Most programs should prefer New and pass the result
// explicitly; Default exists for parity with the original API.
func Default() *Simulator {
	defaultOnce.Do(func() {
		defaultSim = New()
	})
	return defaultSim
}

func (s *Simulator) readNow() Time {
	s.clockLock.RLock()
	t := s.now
	s.clockLock.RUnlock()
	return t
}

func (s *Simulator) writeNow(t Time) {
	s.clockLock.Lock()
	s.now = t
	s.clockLock.Unlock()
}

// Clock returns the current virtual time.
func (s *Simulator) Clock() Time {
	return s.readNow()
}

// ThisProcess returns the id of the process currently being dispatched, or
// NullProcessID outside of dispatch.
func (s *Simulator) ThisProcess() ProcessID {
	return s.currentProcess
}

// ProcessCount returns the number of processes ever registered in this
// run (terminated or not). It reads the registry without taking the clock's
// RWMutex or any other lock.
func (s *Simulator) ProcessCount() int {
	return s.registry.len()
}

// QueueLen returns the number of actions currently queued. Intended for
// monitoring; like ProcessCount it reads registry/queue state without the
// clock's RWMutex, so a concurrent poll during Run can observe a length
// from a moment slightly before or after the one a caller expects.
func (s *Simulator) QueueLen() int {
	return s.queue.len()
}

// ProcessSnapshot describes one registered process's externally visible
// lifecycle state, for monitoring and introspection.
type ProcessSnapshot struct {
	ID          ProcessID
	Terminated  bool
	AvailableAt Time
}

// Process returns the Process registered as pid, or nil if pid is not
// valid. Intended for introspection (e.g. monitoring serialization), not
// for dispatch — callers must not invoke its methods directly.
func (s *Simulator) Process(pid ProcessID) Process {
	if !s.registry.valid(pid) {
		return nil
	}
	return s.registry.get(pid).process
}

// ProcessSnapshots returns a snapshot of every process ever registered in
// this run, in registration order.
func (s *Simulator) ProcessSnapshots() []ProcessSnapshot {
	n := s.registry.len()
	out := make([]ProcessSnapshot, n)
	for i := 0; i < n; i++ {
		d := s.registry.get(ProcessID(i))
		out[i] = ProcessSnapshot{
			ID:          ProcessID(i),
			Terminated:  d.terminated,
			AvailableAt: d.availableAt,
		}
	}
	return out
}

// CreateProcess registers p, returns its new id, and schedules an
// immediate Init action for it at the current time.
func (s *Simulator) CreateProcess(p Process) ProcessID {
	pid := s.registry.create(p)
	s.enqueue(action{
		time: s.readNow(),
		kind: ActionInit,
		pid:  pid,
	})
	return pid
}

// StopProcess schedules an immediate Stop action for pid. It returns false
// if pid is already terminated (a distinct failure indication, per spec),
// true otherwise.
func (s *Simulator) StopProcess(pid ProcessID) bool {
	if s.registry.get(pid).terminated {
		return false
	}

	s.enqueue(action{
		time: s.readNow(),
		kind: ActionStop,
		pid:  pid,
	})
	return true
}

// StopCurrentProcess schedules an immediate Stop action for the currently
// dispatching process.
func (s *Simulator) StopCurrentProcess() {
	s.enqueue(action{
		time: s.readNow(),
		kind: ActionStop,
		pid:  s.currentProcess,
	})
}

// resolveHandle decides whether event shares a reference count with the
// event currently being delivered (the handler re-signaling the exact
// payload it was just handed) or starts a fresh, independently-counted
// lifetime. The sharing check only ever looks at s.dispatching, so it only
// catches a re-signal made from inside the handler that owns that payload
// right now: signaling the same payload value to two processes from
// outside any dispatch (e.g. two back-to-back top-level SignalEvent calls
// before Run) always starts two independent handles, and a Destroyable
// payload shared that way is destroyed once per handle rather than once
// overall. Callers who need a payload destroyed exactly once across
// several independent deliveries must not implement Destroyable on it, or
// must make it reference-counted themselves.
func (s *Simulator) resolveHandle(event Event) *eventHandle {
	if event == nil {
		return nil
	}

	if s.dispatching != nil && reflect.TypeOf(event).Comparable() && s.dispatching.payload == event {
		return s.dispatching
	}

	return newEventHandle(event)
}

// SignalEvent enqueues an Event action for pid at current time + delay.
// delay must be non-negative; a negative delay is a caller error and its
// detection is implementation-defined (this implementation panics, the
// same way the teacher's SerialEngine.Schedule panics on "event scheduled
// earlier than current time").
func (s *Simulator) SignalEvent(pid ProcessID, event Event, delay Time) {
	if delay < 0 {
		log.Panicf("ssim: negative delay %v passed to SignalEvent", delay)
	}

	handle := s.resolveHandle(event)
	handle.retain()

	s.enqueue(action{
		time:  s.readNow() + delay,
		kind:  ActionEvent,
		pid:   pid,
		event: handle,
	})
}

// SelfSignalEvent is shorthand for SignalEvent(s.ThisProcess(), event, delay).
func (s *Simulator) SelfSignalEvent(event Event, delay Time) {
	s.SignalEvent(s.currentProcess, event, delay)
}

// AdvanceDelay increments the current time by d within the current
// dispatch. Subsequent schedules made in the same handler use the advanced
// time. A no-op if the simulation is not running.
func (s *Simulator) AdvanceDelay(d Time) {
	if !s.running {
		return
	}
	s.writeNow(s.readNow() + d)
}

// SetStopTime sets the absolute virtual time at which Run exits.
// InitTime cancels any previously configured stop time.
func (s *Simulator) SetStopTime(t Time) {
	s.stopTime = t
}

// StopSimulation clears the running flag; Run exits after the current
// handler returns and before any further action is popped.
func (s *Simulator) StopSimulation() {
	s.running = false
}

// SetErrorHandler installs h, replacing any previously installed handler.
// A nil h clears it, restoring the silent-drop default.
func (s *Simulator) SetErrorHandler(h ErrorHandler) {
	s.errorH = h
}

// RemoveEvent removes every queued Event action whose payload satisfies
// pred. Init and Stop actions are never removed.
func (s *Simulator) RemoveEvent(pred func(Event) bool) {
	s.queue.removeMatching(pred)
}

// Clear resets all global state: the queue is emptied (releasing every
// payload reference), the process table is cleared, the clock and current
// process reset, and the installed error handler's Clear is invoked. It
// does not touch any Process objects the caller still holds references to
// — ownership of those remains with the caller.
func (s *Simulator) Clear() {
	s.queue.clear()
	s.registry.clear()
	s.writeNow(InitTime)
	s.currentProcess = NullProcessID
	s.stopTime = InitTime
	s.running = false
	s.dispatching = nil
	s.nextSeq = 0

	if s.errorH != nil {
		s.errorH.Clear()
	}
}

func (s *Simulator) enqueue(a action) {
	a.seq = s.nextSeq
	s.nextSeq++
	a.id = GetIDGenerator().Generate()
	s.queue.push(a)
}

// Run processes all scheduled actions in non-decreasing time order until
// the queue is exhausted, the stop time is crossed, or a handler calls
// StopSimulation. A nested call (Run invoked from within a handler that is
// itself running inside Run) is a silent no-op, matching the reentrancy
// guard of the original Sim::run_simulation.
func (s *Simulator) Run() {
	if s.locked {
		return
	}

	s.locked = true
	s.running = true

	for s.running && s.queue.len() > 0 {
		a := s.queue.pop()
		s.writeNow(a.time)

		if s.stopTime != InitTime && s.readNow() > s.stopTime {
			a.event.release()
			break
		}

		s.currentProcess = a.pid
		s.dispatchOne(a)

		a.event.release()
	}

	s.locked = false
	s.running = false
	s.dispatching = nil
}

// dispatchOne runs the handler, error-handler diversion, or silent drop for
// a single popped action, and advances the target process's availableAt.
// It never holds a *descriptor across the handler call: create/stop calls
// made from within that handler can grow the registry and invalidate any
// pointer taken before the call.
func (s *Simulator) dispatchOne(a action) {
	var payload Event
	if a.event != nil {
		payload = a.event.payload
	}

	hookCtx := HookCtx{
		Domain: s,
		Pos:    HookPosBeforeAction,
		Action: ActionSnapshot{ID: a.id, Time: a.time, Kind: a.kind, Process: a.pid, Event: payload},
	}
	s.InvokeHook(hookCtx)

	if !s.registry.valid(a.pid) {
		hookCtx.Pos = HookPosAfterAction
		s.InvokeHook(hookCtx)
		return
	}

	d := s.registry.get(a.pid)

	switch {
	case d.terminated:
		if s.errorH != nil {
			s.errorH.HandleTerminated(a.pid, payload)
		}
	case a.time < d.availableAt:
		if s.errorH != nil {
			s.errorH.HandleBusy(a.pid, payload)
		}
	default:
		s.dispatching = a.event

		switch a.kind {
		case ActionEvent:
			s.registry.get(a.pid).process.ProcessEvent(payload)
		case ActionInit:
			s.registry.get(a.pid).process.Init()
		case ActionStop:
			s.registry.get(a.pid).process.Stop()
			s.registry.get(a.pid).terminated = true
		default:
			// Unknown action kind: defensively ignored, per spec §7.5.
		}

		s.dispatching = nil
		s.registry.get(a.pid).availableAt = s.readNow()
	}

	hookCtx.Pos = HookPosAfterAction
	s.InvokeHook(hookCtx)
}
