// Package monitoring turns a running Simulator into an HTTP-inspectable
// server, grounded on the teacher's monitoring.Monitor: a small set of
// JSON endpoints for the virtual clock, the process table, the queue
// depth, host resource usage, and on-demand CPU profiles.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	// Registers pprof's own debug handlers on http.DefaultServeMux; the
	// router built in Start does not route to them.
	_ "net/http/pprof"

	"github.com/gorilla/mux"

	"github.com/NIASC/ssim/ssim"
)

// Server exposes a Simulator's state over HTTP.
type Server struct {
	sim        *ssim.Simulator
	portNumber int
	sampler    *ResourceSampler
}

// NewServer creates a Server that monitors sim.
func NewServer(sim *ssim.Simulator) *Server {
	return &Server{
		sim:     sim,
		sampler: NewResourceSampler(),
	}
}

// WithPortNumber sets the port the server listens on. Ports below 1000 are
// rejected in favor of an OS-assigned port, the same guard the teacher's
// Monitor applies.
func (s *Server) WithPortNumber(port int) *Server {
	if port < 1000 {
		fmt.Fprintf(os.Stderr,
			"ssim: monitoring port %d is not allowed, using a random port instead\n", port)
		port = 0
	}
	s.portNumber = port
	return s
}

// Start starts serving in a background goroutine and returns the address
// it bound to.
func (s *Server) Start() string {
	r := mux.NewRouter()
	r.HandleFunc("/clock", s.handleClock)
	r.HandleFunc("/processes", s.handleProcesses)
	r.HandleFunc("/processes/{id}", s.handleProcessDetail)
	r.HandleFunc("/queue", s.handleQueue)
	r.HandleFunc("/resources", s.handleResources)
	r.HandleFunc("/debug/profile", s.handleProfile)

	addr := ":0"
	if s.portNumber >= 1000 {
		addr = ":" + strconv.Itoa(s.portNumber)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Panic(err)
	}

	go func() {
		if err := http.Serve(listener, r); err != nil {
			log.Panic(err)
		}
	}()

	return listener.Addr().String()
}

type clockResponse struct {
	Now float64 `json:"now"`
}

func (s *Server) handleClock(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, clockResponse{Now: float64(s.sim.Clock())})
}

type processResponse struct {
	ID          ssim.ProcessID `json:"id"`
	Terminated  bool           `json:"terminated"`
	AvailableAt float64        `json:"available_at"`
}

func (s *Server) handleProcesses(w http.ResponseWriter, _ *http.Request) {
	snaps := s.sim.ProcessSnapshots()
	out := make([]processResponse, len(snaps))
	for i, p := range snaps {
		out[i] = processResponse{
			ID:          p.ID,
			Terminated:  p.Terminated,
			AvailableAt: float64(p.AvailableAt),
		}
	}
	writeJSON(w, out)
}

type queueResponse struct {
	Length int `json:"length"`
}

func (s *Server) handleQueue(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, queueResponse{Length: s.sim.QueueLen()})
}

func (s *Server) handleResources(w http.ResponseWriter, _ *http.Request) {
	usage, err := s.sampler.Sample()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, usage)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	summary, err := CaptureProfile(profileDuration(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, summary)
}

func profileDuration(r *http.Request) int {
	const defaultSeconds = 1
	s := r.URL.Query().Get("seconds")
	if s == "" {
		return defaultSeconds
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return defaultSeconds
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Panic(err)
	}
}
