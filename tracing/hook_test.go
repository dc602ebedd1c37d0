package tracing

import (
	"github.com/NIASC/ssim/ssim"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeBackend is a hand-written test double, used instead of a
// mockgen-generated mock (see DESIGN.md).
type fakeBackend struct {
	initCalled  int
	flushCalled int
	written     []Record
}

func (b *fakeBackend) Init()          { b.initCalled++ }
func (b *fakeBackend) Write(r Record) { b.written = append(b.written, r) }
func (b *fakeBackend) Flush()         { b.flushCalled++ }

var _ = Describe("Recorder", func() {
	var (
		backend  *fakeBackend
		recorder *Recorder
	)

	BeforeEach(func() {
		backend = &fakeBackend{}
		recorder = NewRecorder(backend)
	})

	It("initializes every backend on construction", func() {
		Expect(backend.initCalled).To(Equal(1))
	})

	It("ignores the before-action hook position", func() {
		recorder.Func(ssim.HookCtx{
			Pos:    ssim.HookPosBeforeAction,
			Action: ssim.ActionSnapshot{Kind: ssim.ActionEvent, Process: 0, Time: 1},
		})

		Expect(backend.written).To(BeEmpty())
	})

	It("records the after-action hook position", func() {
		recorder.Func(ssim.HookCtx{
			Pos: ssim.HookPosAfterAction,
			Action: ssim.ActionSnapshot{
				ID: "act-1", Kind: ssim.ActionEvent, Process: 3, Time: 4.5, Event: "payload",
			},
		})

		Expect(backend.written).To(HaveLen(1))
		Expect(backend.written[0].ID).To(Equal("act-1"))
		Expect(backend.written[0].Process).To(Equal(ssim.ProcessID(3)))
		Expect(backend.written[0].Kind).To(Equal("Event"))
		Expect(backend.written[0].Time).To(Equal(4.5))
		Expect(backend.written[0].Payload).To(Equal("payload"))
	})

	It("flushes every backend", func() {
		recorder.Flush()
		Expect(backend.flushCalled).To(Equal(1))
	})
})
