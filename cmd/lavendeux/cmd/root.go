package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lavendeux",
	Short: "Lavendeux inline expression evaluator",
	Long: `lavendeux-parser is a Go implementation of the Lavendeux expression
language: a small calculator-like grammar meant to be evaluated inline,
line by line, with optional output decorators and host-extensible
functions.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("allow-network", false, "grant script functions network access")
	rootCmd.PersistentFlags().Bool("allow-filesystem", false, "grant script functions filesystem access")
}
