package monitoring

import (
	"bytes"
	"runtime/pprof"
	"time"

	"github.com/google/pprof/profile"
)

// ProfileSummary is a condensed view of a captured CPU profile: the
// sampled functions and their cumulative sample counts, rather than the
// full pprof wire format, so it serializes cleanly to JSON for the
// /debug/profile endpoint.
type ProfileSummary struct {
	DurationSeconds int             `json:"duration_seconds"`
	SampleCount     int64           `json:"sample_count"`
	Functions       []FunctionCount `json:"functions"`
}

// FunctionCount is one function's share of the sampled profile.
type FunctionCount struct {
	Name   string `json:"name"`
	Counts int64  `json:"counts"`
}

// CaptureProfile records a CPU profile for seconds and summarizes it,
// grounded on the teacher's Monitor.collectProfile.
func CaptureProfile(seconds int) (ProfileSummary, error) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		return ProfileSummary{}, err
	}
	time.Sleep(time.Duration(seconds) * time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		return ProfileSummary{}, err
	}

	return summarize(prof, seconds), nil
}

func summarize(prof *profile.Profile, seconds int) ProfileSummary {
	counts := map[string]int64{}
	var total int64

	for _, sample := range prof.Sample {
		var value int64
		if len(sample.Value) > 0 {
			value = sample.Value[0]
		}
		total += value

		for _, loc := range sample.Location {
			for _, line := range loc.Line {
				if line.Function == nil {
					continue
				}
				counts[line.Function.Name] += value
			}
		}
	}

	functions := make([]FunctionCount, 0, len(counts))
	for name, c := range counts {
		functions = append(functions, FunctionCount{Name: name, Counts: c})
	}

	return ProfileSummary{
		DurationSeconds: seconds,
		SampleCount:     total,
		Functions:       functions,
	}
}
