package ssim

// descriptor tracks the lifecycle of one registered process, per spec §3's
// ProcessDescriptor.
type descriptor struct {
	process     Process
	terminated  bool
	availableAt Time
}

// registry is a dense, append-only table of process descriptors indexed by
// ProcessID, grounded on the teacher's Simulation.components/compNameIndex
// pattern (a slice plus an index) and the original's PsTable.
//
// Descriptors are accessed exclusively by re-indexing this slice by id;
// nothing outside registry.go ever holds a *descriptor across a call into
// user code, because CreateProcess (called from a handler) can grow the
// slice and reallocate its backing array.
type registry struct {
	descriptors []descriptor
}

func newRegistry() *registry {
	return &registry{}
}

// create appends p and returns its new id. Does not itself schedule the
// Init action; the caller (Simulator.CreateProcess) owns that.
func (r *registry) create(p Process) ProcessID {
	r.descriptors = append(r.descriptors, descriptor{process: p})
	return ProcessID(len(r.descriptors) - 1)
}

func (r *registry) get(pid ProcessID) *descriptor {
	return &r.descriptors[pid]
}

func (r *registry) valid(pid ProcessID) bool {
	return pid >= 0 && int(pid) < len(r.descriptors)
}

func (r *registry) len() int {
	return len(r.descriptors)
}

func (r *registry) clear() {
	r.descriptors = nil
}
