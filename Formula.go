package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"sheetEngine/contracts"
)

const FormulaPrefix = "="

const EscapePrefix = "'"

var compilerOptions = append([]expr.Option{
	expr.Env(map[string]any{}),
	expr.AllowUndefinedVariables(),
	expr.Optimize(false),
	expr.DisableAllBuiltins(),
}, mathFunctions...)

var formulaVMPool = sync.Pool{
	New: func() any {
		return new(vm.VM)
	},
}

// Formula is a parsed and compiled formula expression (without the leading
// prefix). The expression text is the AST's canonical re-printing, so two
// formulas differing only in whitespace compare equal after parsing.
type Formula struct {
	program    *vm.Program
	expression string
	refNames   []string
	refs       []contracts.Position
}

func ParseFormula(expression string) (*Formula, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expression, contracts.FormulaSyntaxError)
	}

	visitor := &FindCellRefsVisitor{}
	ast.Walk(&tree.Node, visitor)

	canonical := tree.Node.String()

	program, err := expr.Compile(canonical, compilerOptions...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expression, contracts.FormulaSyntaxError)
	}

	refNames := visitor.CellRefs()

	refs := make([]contracts.Position, 0, len(refNames))
	for _, name := range refNames {
		if pos, ok := contracts.PositionFromString(name); ok {
			refs = append(refs, pos)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Less(refs[j])
	})

	return &Formula{
		program:    program,
		expression: canonical,
		refNames:   refNames,
		refs:       refs,
	}, nil
}

func (f *Formula) Expression() string {
	return f.expression
}

// ReferencedCells lists the valid positions only; an identifier naming an
// out-of-grid position stays out of the list but still fails the evaluation
// with #REF!.
func (f *Formula) ReferencedCells() []contracts.Position {
	return f.refs
}

func (f *Formula) Evaluate(resolve contracts.PositionResolver) (float64, error) {
	vars := make(map[string]any, len(f.refNames))

	for _, name := range f.refNames {
		pos, ok := contracts.PositionFromString(name)
		if !ok {
			return 0, contracts.NewFormulaError(contracts.FormulaErrorRef)
		}

		value, err := resolve(pos)
		if err != nil {
			return 0, asFormulaError(err)
		}

		vars[name] = value
	}

	machine := formulaVMPool.Get().(*vm.VM)
	output, err := machine.Run(f.program, vars)
	formulaVMPool.Put(machine)

	if err != nil {
		return 0, asFormulaError(err)
	}

	result, ok := outputToNumber(output)
	if !ok {
		return 0, contracts.NewFormulaError(contracts.FormulaErrorValue)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, contracts.NewFormulaError(contracts.FormulaErrorDiv0)
	}

	return result, nil
}

// asFormulaError keeps a typed formula error intact and folds every other
// runtime failure into #DIV/0!.
func asFormulaError(err error) *contracts.FormulaError {
	var formulaErr *contracts.FormulaError
	if errors.As(err, &formulaErr) {
		return formulaErr
	}

	return contracts.NewFormulaError(contracts.FormulaErrorDiv0)
}

func outputToNumber(output any) (float64, bool) {
	switch v := output.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	}

	return 0, false
}
