package tracing

import (
	"fmt"

	"github.com/NIASC/ssim/ssim"
)

// Recorder is an ssim.Hook that turns every dispatched action into a
// Record and fans it out to one or more Backends. It hooks
// HookPosAfterAction only — a trace entry should reflect an action that
// has actually run (or been diverted), not one about to run.
type Recorder struct {
	backends []Backend
}

// NewRecorder creates a Recorder over the given backends, calling Init on
// each of them immediately, mirroring the teacher's convention of an
// explicit Init step separate from construction (NewCSVTracerBackend vs.
// CSVTracerBackend.Init).
func NewRecorder(backends ...Backend) *Recorder {
	for _, b := range backends {
		b.Init()
	}
	return &Recorder{backends: backends}
}

// Func implements ssim.Hook.
func (r *Recorder) Func(ctx ssim.HookCtx) {
	if ctx.Pos != ssim.HookPosAfterAction {
		return
	}

	rec := Record{
		ID:      ctx.Action.ID,
		Process: ctx.Action.Process,
		Kind:    ctx.Action.Kind.String(),
		Time:    float64(ctx.Action.Time),
		Payload: fmt.Sprintf("%v", ctx.Action.Event),
	}

	for _, b := range r.backends {
		b.Write(rec)
	}
}

// Flush flushes every backend. Call this explicitly at the end of a run
// that does not exit the process (backends also register an atexit flush
// for the common case where it does).
func (r *Recorder) Flush() {
	for _, b := range r.backends {
		b.Flush()
	}
}
