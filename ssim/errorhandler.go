package ssim

// ErrorHandler is invoked by the dispatch loop when an action targets a
// terminated or busy process. It is invoked from within dispatch, in the
// context of the targeted process: it sees Clock() and may itself schedule
// against the Simulator.
//
// The default behavior when no handler is registered is a silent drop.
type ErrorHandler interface {
	// Clear is called by Simulator.Clear, giving the handler a chance to
	// reset any internal counters.
	Clear()

	// HandleBusy is called when an Event action's time falls before the
	// target process's availableAt.
	HandleBusy(pid ProcessID, event Event)

	// HandleTerminated is called when an action targets a process that has
	// already run Stop.
	HandleTerminated(pid ProcessID, event Event)
}
