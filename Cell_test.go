package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sheetEngine/contracts"
)

func TestCellContentVariants(t *testing.T) {
	sheet := NewSheet()

	t.Run("empty", func(t *testing.T) {
		content, err := sheet.newCellContent("")

		assert.NoError(t, err)
		assert.Equal(t, "", content.Value())
		assert.Equal(t, "", content.Text())
		assert.Empty(t, content.ReferencedCells())
	})

	t.Run("text", func(t *testing.T) {
		content, err := sheet.newCellContent("hello")

		assert.NoError(t, err)
		assert.Equal(t, "hello", content.Value())
		assert.Equal(t, "hello", content.Text())
		assert.Empty(t, content.ReferencedCells())
	})

	t.Run("text_escape_stripped_from_value_only", func(t *testing.T) {
		content, err := sheet.newCellContent("'hello")

		assert.NoError(t, err)
		assert.Equal(t, "hello", content.Value())
		assert.Equal(t, "'hello", content.Text())
	})

	t.Run("escaped_formula_is_text", func(t *testing.T) {
		content, err := sheet.newCellContent("'=A1+1")

		assert.NoError(t, err)
		assert.Equal(t, "=A1+1", content.Value())
		assert.Empty(t, content.ReferencedCells())
	})

	t.Run("lone_formula_prefix_is_text", func(t *testing.T) {
		content, err := sheet.newCellContent("=")

		assert.NoError(t, err)
		assert.Equal(t, "=", content.Value())
		assert.Equal(t, "=", content.Text())
	})

	t.Run("formula", func(t *testing.T) {
		content, err := sheet.newCellContent("=A1+3")

		assert.NoError(t, err)
		assert.Equal(t, "=A1 + 3", content.Text())
		assert.Equal(t, []contracts.Position{{Row: 0, Col: 0}}, content.ReferencedCells())
	})

	t.Run("formula_syntax_error", func(t *testing.T) {
		_, err := sheet.newCellContent("=(A1")

		assert.ErrorIs(t, err, contracts.FormulaSyntaxError)
	})
}

func TestCell_FormulaCache(t *testing.T) {
	sheet := NewSheet()

	assert.NoError(t, sheet.SetCell(_pos(t, "A1"), "2"))
	assert.NoError(t, sheet.SetCell(_pos(t, "A2"), "=A1+3"))

	cell := sheet.GetConcreteCell(_pos(t, "A2"))
	content := cell.content.(*formulaContent)

	assert.False(t, content.HasCache())

	assert.Equal(t, 5.0, cell.GetValue())
	assert.True(t, content.HasCache())

	// second read hits the memo
	assert.Equal(t, 5.0, cell.GetValue())

	t.Run("edit_of_precedent_resets_cache", func(t *testing.T) {
		assert.NoError(t, sheet.SetCell(_pos(t, "A1"), "7"))

		assert.False(t, content.HasCache())
		assert.Equal(t, 10.0, cell.GetValue())
	})

	t.Run("unrelated_edit_keeps_cache", func(t *testing.T) {
		assert.Equal(t, 10.0, cell.GetValue())
		assert.NoError(t, sheet.SetCell(_pos(t, "Z99"), "5"))

		assert.True(t, content.HasCache())
	})
}

func TestCell_TransitiveCacheInvalidation(t *testing.T) {
	sheet := NewSheet()

	assert.NoError(t, sheet.SetCell(_pos(t, "A1"), "1"))
	assert.NoError(t, sheet.SetCell(_pos(t, "A2"), "=A1+1"))
	assert.NoError(t, sheet.SetCell(_pos(t, "A3"), "=A2+1"))
	assert.NoError(t, sheet.SetCell(_pos(t, "A4"), "=A3+1"))

	assert.Equal(t, 4.0, sheet.GetConcreteCell(_pos(t, "A4")).GetValue())

	assert.NoError(t, sheet.SetCell(_pos(t, "A1"), "10"))

	for _, ref := range []string{"A2", "A3", "A4"} {
		content := sheet.GetConcreteCell(_pos(t, ref)).content.(*formulaContent)
		assert.False(t, content.HasCache(), ref)
	}

	assert.Equal(t, 13.0, sheet.GetConcreteCell(_pos(t, "A4")).GetValue())
}

func TestCell_AdjacencySymmetry(t *testing.T) {
	sheet := NewSheet()

	assert.NoError(t, sheet.SetCell(_pos(t, "A1"), "1"))
	assert.NoError(t, sheet.SetCell(_pos(t, "B1"), "2"))
	assert.NoError(t, sheet.SetCell(_pos(t, "C1"), "=A1+B1"))

	c1 := sheet.GetConcreteCell(_pos(t, "C1"))
	a1 := sheet.GetConcreteCell(_pos(t, "A1"))
	b1 := sheet.GetConcreteCell(_pos(t, "B1"))

	assert.Contains(t, c1.precedents, a1)
	assert.Contains(t, c1.precedents, b1)
	assert.Contains(t, a1.dependents, c1)
	assert.Contains(t, b1.dependents, c1)

	t.Run("rewire_on_edit", func(t *testing.T) {
		assert.NoError(t, sheet.SetCell(_pos(t, "C1"), "=B1*2"))

		assert.NotContains(t, c1.precedents, a1)
		assert.Contains(t, c1.precedents, b1)
		assert.NotContains(t, a1.dependents, c1)
		assert.Contains(t, b1.dependents, c1)
	})

	t.Run("clear_on_non_formula_edit", func(t *testing.T) {
		assert.NoError(t, sheet.SetCell(_pos(t, "C1"), "plain"))

		assert.Empty(t, c1.precedents)
		assert.Empty(t, b1.dependents)
	})
}

func TestCell_CircularDependency(t *testing.T) {
	t.Run("self_reference", func(t *testing.T) {
		sheet := NewSheet()

		err := sheet.SetCell(_pos(t, "E1"), "=E1")

		assert.ErrorIs(t, err, contracts.CircularDependencyError)

		cell, getErr := sheet.GetCell(_pos(t, "E1"))
		assert.NoError(t, getErr)
		assert.Equal(t, "", cell.GetText())
	})

	t.Run("two_cell_cycle", func(t *testing.T) {
		sheet := NewSheet()

		assert.NoError(t, sheet.SetCell(_pos(t, "D1"), "=D2"))

		err := sheet.SetCell(_pos(t, "D2"), "=D1")
		assert.ErrorIs(t, err, contracts.CircularDependencyError)

		assert.Equal(t, "", sheet.GetConcreteCell(_pos(t, "D2")).GetText())
	})

	t.Run("long_cycle", func(t *testing.T) {
		sheet := NewSheet()

		assert.NoError(t, sheet.SetCell(_pos(t, "A1"), "=A2+1"))
		assert.NoError(t, sheet.SetCell(_pos(t, "A2"), "=A3+1"))
		assert.NoError(t, sheet.SetCell(_pos(t, "A3"), "=A4+1"))

		err := sheet.SetCell(_pos(t, "A4"), "=A1")
		assert.ErrorIs(t, err, contracts.CircularDependencyError)

		// pre-edit state preserved
		assert.Equal(t, "", sheet.GetConcreteCell(_pos(t, "A4")).GetText())
		assert.Equal(t, 3.0, sheet.GetConcreteCell(_pos(t, "A1")).GetValue())
	})

	t.Run("diamond_is_not_a_cycle", func(t *testing.T) {
		sheet := NewSheet()

		assert.NoError(t, sheet.SetCell(_pos(t, "A1"), "1"))
		assert.NoError(t, sheet.SetCell(_pos(t, "B1"), "=A1+1"))
		assert.NoError(t, sheet.SetCell(_pos(t, "B2"), "=A1+2"))
		assert.NoError(t, sheet.SetCell(_pos(t, "C1"), "=B1+B2"))

		assert.Equal(t, 5.0, sheet.GetConcreteCell(_pos(t, "C1")).GetValue())
	})

	t.Run("failed_edit_keeps_previous_formula", func(t *testing.T) {
		sheet := NewSheet()

		assert.NoError(t, sheet.SetCell(_pos(t, "B1"), "=A1+1"))

		err := sheet.SetCell(_pos(t, "A1"), "=B1")
		assert.ErrorIs(t, err, contracts.CircularDependencyError)

		assert.Equal(t, "=A1 + 1", sheet.GetConcreteCell(_pos(t, "B1")).GetText())
		assert.Equal(t, 1.0, sheet.GetConcreteCell(_pos(t, "B1")).GetValue())
	})
}

func TestCell_TransitiveDependents(t *testing.T) {
	sheet := NewSheet()

	assert.NoError(t, sheet.SetCell(_pos(t, "A1"), "1"))
	assert.NoError(t, sheet.SetCell(_pos(t, "A2"), "=A1+1"))
	assert.NoError(t, sheet.SetCell(_pos(t, "A3"), "=A2+1"))
	assert.NoError(t, sheet.SetCell(_pos(t, "B1"), "=A1*2"))

	dependents := sheet.GetConcreteCell(_pos(t, "A1")).TransitiveDependents()

	refs := make(map[string]bool, len(dependents))
	for _, dependent := range dependents {
		refs[dependent.Pos().String()] = true
	}

	assert.Equal(t, map[string]bool{"A2": true, "A3": true, "B1": true}, refs)

	assert.Empty(t, sheet.GetConcreteCell(_pos(t, "A3")).TransitiveDependents())
}
