// Command lavendeux is the CLI front end for the Lavendeux expression
// evaluator: lex, parse, and run scripts from files, inline expressions,
// or stdin.
package main

import (
	"os"

	"github.com/rscarson/lavendeux-parser/cmd/lavendeux/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
