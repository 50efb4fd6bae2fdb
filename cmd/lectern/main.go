package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ┌─┐┌─┐┌┬┐┌─┐┬─┐┌┐┌
  ║  ├┤ │   │ ├┤ ├┬┘│││
  ╩═╝└─┘└─┘ ┴ └─┘┴└─┘└┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "lectern",
		Short: "Course resource portal server and tools",
		Long: `Lectern serves a course resource portal: subject pages generated
from JSON catalogs, the PDF files behind them, and a WebSocket-driven
in-page navigation runtime.

Commands:

  • serve   Run the portal server
  • gen     Generate subject pages from the data directory
  • repair  Rewrite broken file links in generated pages
  • version Print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		genCmd(),
		repairCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Lectern ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
