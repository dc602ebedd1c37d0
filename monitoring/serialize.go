package monitoring

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/syifan/goseth"

	"github.com/NIASC/ssim/ssim"
)

// handleProcessDetail serializes one process's exported state as JSON
// using goseth, grounded on the teacher's Monitor.listComponentDetails and
// Monitor.listFieldValue. A depth of 1 mirrors the teacher's default: the
// process's direct fields, not everything reachable from them.
func (s *Server) handleProcessDetail(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]

	id, err := parseProcessID(idStr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	proc := s.sim.Process(id)
	if proc == nil {
		http.Error(w, "process not found", http.StatusNotFound)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(proc)
	serializer.SetMaxDepth(1)

	if err := serializer.Serialize(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseProcessID(s string) (ssim.ProcessID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return ssim.NullProcessID, err
	}
	return ssim.ProcessID(n), nil
}
