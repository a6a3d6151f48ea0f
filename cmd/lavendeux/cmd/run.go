package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rscarson/lavendeux-parser/internal/errors"
	"github.com/rscarson/lavendeux-parser/pkg/lavendeux"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lavendeux script or expression",
	Long: `Evaluate a Lavendeux script line by line and print each line's result.

Examples:
  # Run a script file
  lavendeux run script.lav

  # Evaluate an inline expression
  lavendeux run -e "3 + 4 * 2"

  # Run with the parsed token tree dumped first (for debugging)
  lavendeux run --dump-ast script.lav`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed token tree before evaluating")
}

func readSource(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		return string(content), filename, nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

func runScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	allowNetwork, _ := cmd.Flags().GetBool("allow-network")
	allowFS, _ := cmd.Flags().GetBool("allow-filesystem")
	verbose, _ := cmd.Flags().GetBool("verbose")

	ps := lavendeux.New(lavendeux.WithCapabilities(lavendeux.Capabilities{
		Network:    allowNetwork,
		FileSystem: allowFS,
	}))

	if dumpAST {
		script, perrs := lavendeux.Parse(input)
		if len(perrs) > 0 {
			printParseErrors(perrs, input)
			return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
		}
		fmt.Println("Token tree:")
		for _, line := range script.Lines {
			fmt.Println(line.Text())
		}
		fmt.Println()
	}

	results, perrs := ps.Evaluate(input)
	if len(perrs) > 0 {
		printParseErrors(perrs, input)
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprint(os.Stderr, r.Err.Format(input, true))
			fmt.Fprintln(os.Stderr)
			continue
		}
		fmt.Println(r.Text)
	}

	if failed > 0 {
		return fmt.Errorf("%s: evaluation failed on %d line(s)", filename, failed)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %d line(s) evaluated\n", filename, len(results))
	}
	return nil
}

func printParseErrors(perrs []*errors.Error, source string) {
	for _, e := range perrs {
		fmt.Fprint(os.Stderr, e.Format(source, true))
		fmt.Fprintln(os.Stderr)
	}
}
