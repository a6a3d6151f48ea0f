package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rscarson/lavendeux-parser/pkg/ast"
	"github.com/rscarson/lavendeux-parser/pkg/lavendeux"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lavendeux script and display its token tree",
	Long: `Parse Lavendeux source and display the parsed expression tree, one
line at a time.

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	var input string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	script, perrs := lavendeux.Parse(input)
	if len(perrs) > 0 {
		printParseErrors(perrs, input)
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	for i, line := range script.Lines {
		fmt.Printf("Line %d: %q\n", i+1, line.Text())
		if line.Expr == nil {
			fmt.Println("  (blank)")
			continue
		}
		if line.HasDecorator {
			fmt.Printf("  @%s\n", line.Decorator)
		}
		dumpASTNode(line.Expr, 1)
	}

	return nil
}

func dumpASTNode(node ast.Node, indent int) {
	indentStr := ""
	for i := 0; i < indent; i++ {
		indentStr += "  "
	}

	switch n := node.(type) {
	case *ast.IntegerLiteral:
		fmt.Printf("%sIntegerLiteral: %d\n", indentStr, n.Value)
	case *ast.FloatLiteral:
		fmt.Printf("%sFloatLiteral: %g\n", indentStr, n.Value)
	case *ast.CurrencyLiteral:
		fmt.Printf("%sCurrencyLiteral: %s%g\n", indentStr, n.Symbol, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral: %q\n", indentStr, n.Value)
	case *ast.BooleanLiteral:
		fmt.Printf("%sBooleanLiteral: %v\n", indentStr, n.Value)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", indentStr, n.Name)
	case *ast.ArrayLiteral:
		fmt.Printf("%sArrayLiteral (%d elements)\n", indentStr, len(n.Elements))
		for _, e := range n.Elements {
			dumpASTNode(e, indent+1)
		}
	case *ast.ObjectLiteral:
		fmt.Printf("%sObjectLiteral (%d pairs)\n", indentStr, len(n.Keys))
		for i, k := range n.Keys {
			dumpASTNode(k, indent+1)
			dumpASTNode(n.Values[i], indent+1)
		}
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr (%s)\n", indentStr, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.UnaryExpr:
		fmt.Printf("%sUnaryExpr (%s)\n", indentStr, n.Operator)
		dumpASTNode(n.Operand, indent+1)
	case *ast.PostfixExpr:
		fmt.Printf("%sPostfixExpr (%s)\n", indentStr, n.Operator)
		dumpASTNode(n.Operand, indent+1)
	case *ast.TernaryExpr:
		fmt.Printf("%sTernaryExpr\n", indentStr)
		dumpASTNode(n.Cond, indent+1)
		dumpASTNode(n.Then, indent+1)
		dumpASTNode(n.Else, indent+1)
	case *ast.IndexExpr:
		fmt.Printf("%sIndexExpr\n", indentStr)
		dumpASTNode(n.Target, indent+1)
		dumpASTNode(n.Index, indent+1)
	case *ast.CallExpr:
		fmt.Printf("%sCallExpr: %s (%d args)\n", indentStr, n.Callee, len(n.Args))
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.VariableAssignment:
		fmt.Printf("%sVariableAssignment: %s\n", indentStr, n.Name)
		dumpASTNode(n.Value, indent+1)
	case *ast.IndexedAssignment:
		fmt.Printf("%sIndexedAssignment: %s (%d indices)\n", indentStr, n.Base, len(n.Indices))
		for _, idx := range n.Indices {
			dumpASTNode(idx, indent+1)
		}
		dumpASTNode(n.Value, indent+1)
	case *ast.FunctionAssignment:
		fmt.Printf("%sFunctionAssignment: %s(%v)\n", indentStr, n.Name, n.Params)
		dumpASTNode(n.Body, indent+1)
	default:
		fmt.Printf("%s%T: %v\n", indentStr, node, node)
	}
}
