package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NIASC/ssim/ssim"
	"github.com/NIASC/ssim/examples/pingpong"
	"github.com/NIASC/ssim/monitoring"
	"github.com/NIASC/ssim/tracing"
)

var (
	rounds      int
	tracePath   string
	traceKind   string
	monitorPort int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a sample ping/pong simulation.",
	Long: `run builds a Simulator, wires a Pinger and a Ponger together, ` +
		`optionally attaches tracing and a monitoring server, and runs the ` +
		`exchange to completion.`,
	Run: func(_ *cobra.Command, _ []string) {
		runDemo()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&rounds, "rounds", 5, "number of ping/pong exchanges")
	runCmd.Flags().StringVar(&tracePath, "trace", "", "path to write a trace to (empty disables tracing)")
	runCmd.Flags().StringVar(&traceKind, "trace-kind", "csv", "trace backend: csv, sqlite, or mysql (mysql reads trace as a DSN)")
	runCmd.Flags().IntVar(&monitorPort, "monitor-port", 0, "port for the monitoring server (0 disables monitoring)")
}

func runDemo() {
	sim := ssim.New()

	if tracePath != "" {
		backend := newTraceBackend(traceKind, tracePath)
		recorder := tracing.NewRecorder(backend)
		sim.AcceptHook(recorder)
		defer recorder.Flush()
	}

	if monitorPort > 0 {
		addr := monitoring.NewServer(sim).WithPortNumber(monitorPort).Start()
		fmt.Printf("monitoring at http://%s\n", addr)
		time.Sleep(200 * time.Millisecond)
	}

	results := pingpong.Run(sim, rounds)
	pingpong.Report(results)
}

func newTraceBackend(kind, path string) tracing.Backend {
	switch kind {
	case "sqlite":
		return tracing.NewSQLiteBackend(path)
	case "mysql":
		return tracing.NewMySQLBackend(path)
	default:
		return tracing.NewCSVBackend(path)
	}
}
