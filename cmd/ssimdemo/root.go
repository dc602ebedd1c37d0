package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ssimdemo",
	Short: "ssimdemo runs sample simulations built on ssim.",
	Long: `ssimdemo runs sample simulations built on ssim. It exists to ` +
		`exercise the library's process, tracing, and monitoring surface ` +
		`end to end, the way akita's own example binaries exercise akita.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "ssimdemo: error loading .env: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
