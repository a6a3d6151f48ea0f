// Package evaluator walks the parse tree produced by internal/parser and
// produces a value.Value per line, applying decorators and user/built-in
// function dispatch along the way. A tree-walking interpreter loop,
// flattened to Lavendeux's single expression-per-line model.
package evaluator

import (
	"github.com/rscarson/lavendeux-parser/internal/errors"
	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/internal/state"
	"github.com/rscarson/lavendeux-parser/internal/token"
	"github.com/rscarson/lavendeux-parser/pkg/ast"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

// Result is one line's outcome: either a Value (rendered through its
// decorator, if any) or an Error.
type Result struct {
	Line  *ast.Line
	Value value.Value
	Text  string
	Err   *errors.Error
}

// Evaluator threads a State and Registry through a script run.
type Evaluator struct {
	State    *state.State
	Registry *registry.Registry
}

func New(st *state.State, reg *registry.Registry) *Evaluator {
	return &Evaluator{State: st, Registry: reg}
}

// Run evaluates every line of script in order, left to right, letting
// variable and function assignments from earlier lines affect later ones.
// A line that errors still produces a Result (with Err set); evaluation of
// later lines continues, matching a REPL that prints each line's own
// outcome independently.
func (e *Evaluator) Run(script *ast.Script) []Result {
	results := make([]Result, 0, len(script.Lines))
	for _, line := range script.Lines {
		results = append(results, e.runLine(line))
	}
	return results
}

func (e *Evaluator) runLine(line *ast.Line) Result {
	if line.Expr == nil {
		return Result{Line: line, Value: value.NewString(""), Text: ""}
	}

	if fn, ok := line.Expr.(*ast.FunctionAssignment); ok {
		e.State.DefineFunction(&state.UserFunction{
			Name:       fn.Name,
			Params:     fn.Params,
			Body:       fn.Body,
			SourceText: fn.Body.Text(),
		})
		return Result{Line: line, Value: value.NewString(fn.Body.Text()), Text: fn.Body.Text()}
	}

	v, err := e.eval(line.Expr)
	if err != nil {
		return Result{Line: line, Err: err}
	}

	text := v.String()
	if line.HasDecorator {
		dec, ok := e.Registry.DecoratorByName(line.Decorator)
		if !ok {
			return Result{Line: line, Value: v, Err: errors.New(errors.UnknownDecorator, line.DecoratorPos, line.Decorator,
				"no decorator named %q is registered", line.Decorator)}
		}
		rendered, derr := dec.Handler(v)
		if derr != nil {
			return Result{Line: line, Value: v, Err: errors.New(errors.ExtensionFailure, line.DecoratorPos, line.Decorator,
				"%s", derr.Error())}
		}
		text = rendered
	}
	return Result{Line: line, Value: v, Text: text}
}

// eval dispatches on concrete expression type, mirroring the grammar's
// node vocabulary one-for-one.
func (e *Evaluator) eval(expr ast.Expression) (value.Value, *errors.Error) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return value.NewInteger(n.Value), nil
	case *ast.FloatLiteral:
		return value.NewFloat(n.Value), nil
	case *ast.CurrencyLiteral:
		return value.NewCurrency(n.Value, n.Symbol), nil
	case *ast.StringLiteral:
		return value.NewString(n.Value), nil
	case *ast.BooleanLiteral:
		return value.NewBoolean(n.Value), nil
	case *ast.Identifier:
		return e.evalIdentifier(n)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(n)
	case *ast.UnaryExpr:
		return e.evalUnary(n)
	case *ast.PostfixExpr:
		return e.evalPostfix(n)
	case *ast.BinaryExpr:
		return e.evalBinary(n)
	case *ast.TernaryExpr:
		return e.evalTernary(n)
	case *ast.IndexExpr:
		return e.evalIndex(n)
	case *ast.CallExpr:
		return e.evalCall(n)
	case *ast.VariableAssignment:
		return e.evalVariableAssignment(n)
	case *ast.IndexedAssignment:
		return e.evalIndexedAssignment(n)
	default:
		return value.Value{}, errors.New(errors.UnexpectedToken, expr.Pos(), expr.Text(), "cannot evaluate %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(n *ast.Identifier) (value.Value, *errors.Error) {
	if v, ok := e.State.Get(n.Name); ok {
		return v, nil
	}
	return value.Value{}, errors.New(errors.UnknownVariable, n.Pos(), n.Name, "variable %q is not defined", n.Name)
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral) (value.Value, *errors.Error) {
	elems := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.eval(el)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	return value.NewArray(elems), nil
}

func (e *Evaluator) evalObjectLiteral(n *ast.ObjectLiteral) (value.Value, *errors.Error) {
	m := value.NewOrderedMap()
	for i, keyExpr := range n.Keys {
		k, err := e.eval(keyExpr)
		if err != nil {
			return value.Value{}, err
		}
		v, err := e.eval(n.Values[i])
		if err != nil {
			return value.Value{}, err
		}
		m.Set(k.String(), v)
	}
	return value.NewObject(m), nil
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpr) (value.Value, *errors.Error) {
	operand, err := e.eval(n.Operand)
	if err != nil {
		return value.Value{}, err
	}
	var v value.Value
	var aerr error
	switch n.Operator {
	case "-":
		v, aerr = value.Negate(operand)
	case "~":
		v, aerr = value.BitwiseNot(operand)
	}
	if aerr != nil {
		return value.Value{}, arithError(aerr, n.Pos(), n.Operator)
	}
	return v, nil
}

func (e *Evaluator) evalPostfix(n *ast.PostfixExpr) (value.Value, *errors.Error) {
	operand, err := e.eval(n.Operand)
	if err != nil {
		return value.Value{}, err
	}
	v, aerr := value.Factorial(operand)
	if aerr != nil {
		return value.Value{}, arithError(aerr, n.Pos(), "!")
	}
	return v, nil
}

// evalBinary evaluates left-to-right, short-circuiting && and ||.
func (e *Evaluator) evalBinary(n *ast.BinaryExpr) (value.Value, *errors.Error) {
	if n.Operator == "&&" || n.Operator == "||" {
		left, err := e.eval(n.Left)
		if err != nil {
			return value.Value{}, err
		}
		if n.Operator == "&&" && !left.Truthy() {
			return value.NewBoolean(false), nil
		}
		if n.Operator == "||" && left.Truthy() {
			return value.NewBoolean(true), nil
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBoolean(right.Truthy()), nil
	}

	left, err := e.eval(n.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := e.eval(n.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Operator {
	case "==":
		return value.NewBoolean(value.Equal(left, right)), nil
	case "!=":
		return value.NewBoolean(!value.Equal(left, right)), nil
	case "<", "<=", ">", ">=":
		cmp, ok := value.Compare(left, right)
		if !ok {
			return value.Value{}, errors.New(errors.ArgumentType, n.Pos(), n.Operator,
				"cannot compare %s and %s", left.Kind(), right.Kind())
		}
		return value.NewBoolean(compareResult(n.Operator, cmp)), nil
	}

	var v value.Value
	var aerr error
	switch n.Operator {
	case "+":
		v, aerr = value.Add(left, right)
	case "-":
		v, aerr = value.Sub(left, right)
	case "*":
		v, aerr = value.Mul(left, right)
	case "/":
		v, aerr = value.Div(left, right)
	case "%":
		v, aerr = value.Mod(left, right)
	case "**":
		v, aerr = value.Pow(left, right)
	case "|":
		v, aerr = value.BitOr(left, right)
	case "^":
		v, aerr = value.BitXor(left, right)
	case "&":
		v, aerr = value.BitAnd(left, right)
	case "<<":
		v, aerr = value.Shl(left, right)
	case ">>":
		v, aerr = value.Shr(left, right)
	default:
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Pos(), n.Operator, "unknown operator %q", n.Operator)
	}
	if aerr != nil {
		return value.Value{}, arithError(aerr, n.Pos(), n.Operator)
	}
	return v, nil
}

func compareResult(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	}
	return false
}

// evalTernary short-circuits: only the chosen branch is ever evaluated.
func (e *Evaluator) evalTernary(n *ast.TernaryExpr) (value.Value, *errors.Error) {
	cond, err := e.eval(n.Cond)
	if err != nil {
		return value.Value{}, err
	}
	if cond.Truthy() {
		return e.eval(n.Then)
	}
	return e.eval(n.Else)
}

func (e *Evaluator) evalIndex(n *ast.IndexExpr) (value.Value, *errors.Error) {
	target, err := e.eval(n.Target)
	if err != nil {
		return value.Value{}, err
	}
	idx, err := e.eval(n.Index)
	if err != nil {
		return value.Value{}, err
	}
	return indexInto(target, idx, n.Pos())
}

func indexInto(target, idx value.Value, pos token.Position) (value.Value, *errors.Error) {
	switch target.Kind() {
	case value.Array:
		i, ok := idx.ToInt()
		if !ok {
			return value.Value{}, errors.New(errors.IndexType, pos, "", "array index must be numeric, got %s", idx.Kind())
		}
		arr := target.AsArray()
		if i < 0 {
			i += int64(len(arr))
		}
		if i < 0 || i >= int64(len(arr)) {
			return value.Value{}, errors.New(errors.IndexOutOfRange, pos, "", "index %d is out of range for an array of length %d", i, len(arr))
		}
		return arr[i], nil
	case value.Object:
		key := idx.String()
		v, ok := target.AsObject().Get(key)
		if !ok {
			return value.Value{}, errors.New(errors.KeyMissing, pos, key, "no key %q in object", key)
		}
		return v, nil
	case value.String:
		i, ok := idx.ToInt()
		if !ok {
			return value.Value{}, errors.New(errors.IndexType, pos, "", "string index must be numeric, got %s", idx.Kind())
		}
		runes := []rune(target.AsString())
		if i < 0 {
			i += int64(len(runes))
		}
		if i < 0 || i >= int64(len(runes)) {
			return value.Value{}, errors.New(errors.IndexOutOfRange, pos, "", "index %d is out of range for a string of length %d", i, len(runes))
		}
		return value.NewString(string(runes[i])), nil
	default:
		return value.Value{}, errors.New(errors.IndexType, pos, "", "cannot index into %s", target.Kind())
	}
}

func (e *Evaluator) evalCall(n *ast.CallExpr) (value.Value, *errors.Error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.eval(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	if fn, ok := e.State.UserFunction(n.Callee); ok {
		return e.callUserFunction(fn, args, n.Pos())
	}

	fn, ok := e.Registry.Function(n.Callee)
	if !ok {
		return value.Value{}, errors.New(errors.UnknownFunction, n.Pos(), n.Callee, "no function named %q is defined", n.Callee)
	}
	v, cerr := registry.Call(fn, args)
	if cerr != nil {
		return value.Value{}, callError(cerr, n.Pos(), n.Callee)
	}
	return v, nil
}

func (e *Evaluator) callUserFunction(fn *state.UserFunction, args []value.Value, pos token.Position) (value.Value, *errors.Error) {
	if len(args) != len(fn.Params) {
		return value.Value{}, errors.New(errors.ArgumentCount, pos, fn.Name,
			"%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	if !e.State.EnterCall() {
		err := errors.New(errors.RecursionLimit, pos, fn.Name, "recursion limit exceeded calling %q", fn.Name)
		err.Trace = e.State.CallStack()
		return value.Value{}, err
	}
	defer e.State.ExitCall()

	e.State.PushFrame(fn.Name, pos)
	defer e.State.PopFrame()

	saved := make(map[string]value.Value, len(fn.Params))
	savedOK := make(map[string]bool, len(fn.Params))
	for i, p := range fn.Params {
		v, ok := e.State.Get(p)
		saved[p], savedOK[p] = v, ok
		_ = e.State.Set(p, args[i])
	}
	defer func() {
		for _, p := range fn.Params {
			if savedOK[p] {
				_ = e.State.Set(p, saved[p])
			} else {
				e.State.Unset(p)
			}
		}
	}()

	return e.eval(fn.Body)
}

func (e *Evaluator) evalVariableAssignment(n *ast.VariableAssignment) (value.Value, *errors.Error) {
	v, err := e.eval(n.Value)
	if err != nil {
		return value.Value{}, err
	}
	if serr := e.State.Set(n.Name, v); serr != nil {
		return value.Value{}, errors.New(errors.ReadOnly, n.Pos(), n.Name, "%s", serr.Error())
	}
	return v, nil
}

func (e *Evaluator) evalIndexedAssignment(n *ast.IndexedAssignment) (value.Value, *errors.Error) {
	base, ok := e.State.Get(n.Base)
	if !ok {
		return value.Value{}, errors.New(errors.UnknownVariable, n.Pos(), n.Base, "variable %q is not defined", n.Base)
	}
	value_, err := e.eval(n.Value)
	if err != nil {
		return value.Value{}, err
	}

	idxVals := make([]value.Value, len(n.Indices))
	for i, idxExpr := range n.Indices {
		v, err := e.eval(idxExpr)
		if err != nil {
			return value.Value{}, err
		}
		idxVals[i] = v
	}

	updated, uerr := setInto(base, idxVals, value_, n.Pos())
	if uerr != nil {
		return value.Value{}, uerr
	}
	if serr := e.State.Set(n.Base, updated); serr != nil {
		return value.Value{}, errors.New(errors.ReadOnly, n.Pos(), n.Base, "%s", serr.Error())
	}
	return value_, nil
}

// setInto returns a copy of base with indices[0] applied, recursing for
// indices[1:]. Arrays/objects are copy-on-write so sibling references
// (e.g. another variable holding the same array) are unaffected.
func setInto(base value.Value, indices []value.Value, newVal value.Value, pos token.Position) (value.Value, *errors.Error) {
	if len(indices) == 0 {
		return newVal, nil
	}
	idx := indices[0]
	switch base.Kind() {
	case value.Array:
		i, ok := idx.ToInt()
		if !ok {
			return value.Value{}, errors.New(errors.IndexType, pos, "", "array index must be numeric, got %s", idx.Kind())
		}
		src := base.AsArray()
		out := make([]value.Value, len(src))
		copy(out, src)
		if i < 0 {
			i += int64(len(out))
		}
		if i < 0 || i >= int64(len(out)) {
			return value.Value{}, errors.New(errors.IndexOutOfRange, pos, "", "index %d is out of range for an array of length %d", i, len(out))
		}
		child, err := setInto(out[i], indices[1:], newVal, pos)
		if err != nil {
			return value.Value{}, err
		}
		out[i] = child
		return value.NewArray(out), nil

	case value.Object:
		if idx.Kind() != value.String {
			return value.Value{}, errors.New(errors.IndexType, pos, "", "object key must be a string, got %s", idx.Kind())
		}
		out := base.AsObject().Clone()
		existing, _ := out.Get(idx.AsString())
		child, err := setInto(existing, indices[1:], newVal, pos)
		if err != nil {
			return value.Value{}, err
		}
		out.Set(idx.AsString(), child)
		return value.NewObject(out), nil

	default:
		return value.Value{}, errors.New(errors.IndexType, pos, "", "cannot index-assign into %s", base.Kind())
	}
}

// arithError maps a value.ArithError into a positioned evaluator error.
func arithError(err error, pos token.Position, tok string) *errors.Error {
	if ae, ok := err.(*value.ArithError); ok {
		return errors.New(errors.Kind(ae.Kind), pos, tok, "%s", ae.Message)
	}
	return errors.New(errors.DomainError, pos, tok, "%s", err.Error())
}

// callError maps a registry dispatch error into a positioned evaluator error.
func callError(err error, pos token.Position, name string) *errors.Error {
	switch e := err.(type) {
	case *registry.ArityError:
		return errors.New(errors.ArgumentCount, pos, name, "%s", e.Error())
	case *registry.TypeError:
		return errors.New(errors.ArgumentType, pos, name, "%s", e.Error())
	case *value.ArithError:
		return errors.New(errors.Kind(e.Kind), pos, name, "%s", e.Message)
	default:
		return errors.New(errors.ExtensionFailure, pos, name, "%s", err.Error())
	}
}
