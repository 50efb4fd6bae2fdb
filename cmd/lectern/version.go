package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if !verbose {
				fmt.Printf("lectern %s (%s)\n", version, commit)
				return
			}

			printBanner()
			fmt.Println()
			info("version: %s", version)
			info("commit:  %s", commit)
			info("built:   %s with %s", date, runtime.Version())
			info("target:  %s/%s", runtime.GOOS, runtime.GOARCH)
			fmt.Println()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include build details")

	return cmd
}
