package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/NIASC/ssim/ssim"
)

type quietProcess struct {
	ssim.ProcessBase
}

var _ = Describe("Server", func() {
	var (
		sim    *ssim.Simulator
		server *Server
	)

	BeforeEach(func() {
		sim = ssim.New()
		server = NewServer(sim)
	})

	It("reports the current clock", func() {
		pid := sim.CreateProcess(&quietProcess{})
		sim.SignalEvent(pid, "x", 5)
		sim.Run()

		req := httptest.NewRequest(http.MethodGet, "/clock", nil)
		rec := httptest.NewRecorder()
		server.handleClock(rec, req)

		var resp clockResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Now).To(Equal(5.0))
	})

	It("lists every registered process", func() {
		sim.CreateProcess(&quietProcess{})
		sim.CreateProcess(&quietProcess{})
		sim.Run()

		req := httptest.NewRequest(http.MethodGet, "/processes", nil)
		rec := httptest.NewRecorder()
		server.handleProcesses(rec, req)

		var resp []processResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp).To(HaveLen(2))
	})

	It("reports the queue length", func() {
		pid := sim.CreateProcess(&quietProcess{})
		sim.SignalEvent(pid, "a", 1)
		sim.SignalEvent(pid, "b", 2)

		req := httptest.NewRequest(http.MethodGet, "/queue", nil)
		rec := httptest.NewRecorder()
		server.handleQueue(rec, req)

		var resp queueResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Length).To(Equal(3)) // Init + two signaled events
	})

	It("404s on an unknown process id", func() {
		req := httptest.NewRequest(http.MethodGet, "/processes/99", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		server.handleProcessDetail(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("400s on a malformed process id", func() {
		req := httptest.NewRequest(http.MethodGet, "/processes/nope", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "nope"})
		rec := httptest.NewRecorder()
		server.handleProcessDetail(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})

var _ = Describe("profileDuration", func() {
	It("defaults to one second when unset", func() {
		req := httptest.NewRequest(http.MethodGet, "/debug/profile", nil)
		Expect(profileDuration(req)).To(Equal(1))
	})

	It("parses an explicit seconds query parameter", func() {
		req := httptest.NewRequest(http.MethodGet, "/debug/profile?seconds=3", nil)
		Expect(profileDuration(req)).To(Equal(3))
	})

	It("falls back to the default on a non-numeric value", func() {
		req := httptest.NewRequest(http.MethodGet, "/debug/profile?seconds=abc", nil)
		Expect(profileDuration(req)).To(Equal(1))
	})
})
