// Package tracing records dispatched simulation actions to a durable
// backend (CSV, SQLite, MySQL), adapted from the teacher's task-tracing
// backends (tracing/csv.go, tracing/sqlite.go, tracing/mysql.go) to the
// shape of a dispatched ssim.Action rather than an Akita Task.
package tracing

import "github.com/NIASC/ssim/ssim"

// Record is one dispatched action, captured at HookPosAfterAction. ID is
// the action's stable ssim.ActionSnapshot.ID, minted through ssim's
// IDGenerator; it lets a caller correlate the same action's rows across
// multiple Backends even though each backend assigns its own storage-level
// key (an autoincrement row id, say).
type Record struct {
	ID      string
	Process ssim.ProcessID
	Kind    string
	Time    float64
	Payload string
}

// Backend receives Records from a Recorder and is responsible for
// persisting them. Init is called once before the first Write; Flush may
// be called any number of times and must be safe to call from an
// atexit-registered callback.
type Backend interface {
	Init()
	Write(r Record)
	Flush()
}
