package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Alijeyrad/ghasedak/cmd/http"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "ghasedak",
	Short: "Request instrumentation toolkit for Fiber services.",
	Long: `Ghasedak enriches diagnostic events with request context: middleware
spans, redaction-aware body extraction, route-based transaction names
and authenticated user identity. The http command runs a demo server
showing the full pipeline.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "ghasedak.yaml", "config file path")

	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
