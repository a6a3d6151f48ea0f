package lavendeux

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEndToEndFixtures runs the worked scripts from the language
// specification's end-to-end scenarios through a fresh ParserState and
// snapshots each line's rendered text, grounded on the teacher's own
// go-snaps fixture harness (internal/interp/fixture_test.go).
func TestEndToEndFixtures(t *testing.T) {
	fixtures := []struct {
		name   string
		script string
	}{
		{
			name:   "SqrtBinDecorator",
			script: "x=9\nsqrt(x) @bin",
		},
		{
			name:   "ArithmeticAndBitwise",
			script: "5 + 5.56 + .2e+3\n0xFFA & 0b110 & 0777\nconcat(\"foo\",\"bar\")",
		},
		{
			name:   "UserFunctionPresentation",
			script: "f(x) = 2*x**2 + 3*x + 5\nf(2)",
		},
		{
			name:   "ArrayIndexAndBroadcast",
			script: "a = [1,2,3]\na[1]\n2*a",
		},
		{
			name:   "RecursiveUserFunction",
			script: "factorial(x) = x==0 ? 1 : x*factorial(x-1)\nfactorial(5)",
		},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			ps := New()
			results, perrs := ps.Evaluate(fx.script)
			if len(perrs) > 0 {
				t.Fatalf("unexpected parse errors: %v", perrs)
			}
			var out strings.Builder
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(&out, "ERROR: %s\n", r.Err.Message)
					continue
				}
				fmt.Fprintf(&out, "%s\n", r.Text)
			}
			snaps.MatchSnapshot(t, out.String())
		})
	}
}

// TestEndToEndFixturesReportErrors snapshots the per-line error reporting
// behavior: one bad line does not stop the rest of the script.
func TestEndToEndFixturesReportErrors(t *testing.T) {
	ps := New()
	results, perrs := ps.Evaluate("1/0\n2+2")
	if len(perrs) > 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	var out strings.Builder
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&out, "ERROR[%s]: %s\n", r.Err.Kind, r.Err.Message)
			continue
		}
		fmt.Fprintf(&out, "%s\n", r.Text)
	}
	snaps.MatchSnapshot(t, out.String())
}
