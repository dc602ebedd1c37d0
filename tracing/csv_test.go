package tracing

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CSVBackend", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "trace.csv")
	})

	It("writes a header and flushed records", func() {
		b := NewCSVBackend(path)
		b.Init()

		b.Write(Record{ID: "abc", Process: 1, Kind: "Event", Time: 1.5, Payload: "x"})
		b.Flush()

		contents, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(contents)).To(ContainSubstring("ID, Process, Kind, Time, Payload"))
		Expect(string(contents)).To(ContainSubstring("abc, 1, Event, 1.5000000000, x"))
	})

	It("flushes automatically once the buffer fills", func() {
		b := NewCSVBackend(path)
		b.bufferSize = 2
		b.Init()

		b.Write(Record{Process: 0, Kind: "Init", Time: 0})
		Expect(b.records).To(HaveLen(1))

		b.Write(Record{Process: 0, Kind: "Stop", Time: 1})
		Expect(b.records).To(BeEmpty())
	})
})
