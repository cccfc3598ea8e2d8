package main

import (
	"errors"
	"strings"

	"sheetEngine/contracts"
)

// cellContent is the variant behind a cell: empty, text, or formula. Only the
// formula variant carries a cache; the others report HasCache true with a
// no-op reset so cache invalidation flows through them to their dependents.
type cellContent interface {
	Value() contracts.Value
	Text() string
	ReferencedCells() []contracts.Position
	HasCache() bool
	ResetCache()
}

type emptyContent struct{}

func (emptyContent) Value() contracts.Value { return "" }

func (emptyContent) Text() string { return "" }

func (emptyContent) ReferencedCells() []contracts.Position { return nil }

func (emptyContent) HasCache() bool { return true }

func (emptyContent) ResetCache() {}

type textContent struct {
	text string
}

// Value strips the leading escape character; GetText keeps it.
func (c *textContent) Value() contracts.Value {
	if strings.HasPrefix(c.text, EscapePrefix) {
		return c.text[len(EscapePrefix):]
	}
	return c.text
}

func (c *textContent) Text() string { return c.text }

func (c *textContent) ReferencedCells() []contracts.Position { return nil }

func (c *textContent) HasCache() bool { return true }

func (c *textContent) ResetCache() {}

type formulaContent struct {
	formula contracts.Formula
	sheet   *Sheet
	cache   *contracts.Value
}

func (c *formulaContent) Value() contracts.Value {
	if c.cache == nil {
		value := c.evaluate()
		c.cache = &value
	}
	return *c.cache
}

// evaluate never fails: evaluation errors become the cell's value and
// propagate to dependent formulas through the resolver.
func (c *formulaContent) evaluate() contracts.Value {
	result, err := c.formula.Evaluate(c.sheet.resolveCellNumber)
	if err != nil {
		var formulaErr *contracts.FormulaError
		if errors.As(err, &formulaErr) {
			return formulaErr
		}
		return contracts.NewFormulaError(contracts.FormulaErrorDiv0)
	}
	return result
}

func (c *formulaContent) Text() string {
	return FormulaPrefix + c.formula.Expression()
}

func (c *formulaContent) ReferencedCells() []contracts.Position {
	return c.formula.ReferencedCells()
}

func (c *formulaContent) HasCache() bool {
	return c.cache != nil
}

func (c *formulaContent) ResetCache() {
	c.cache = nil
}
