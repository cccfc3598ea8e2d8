package main

import (
	"fmt"

	"sheetEngine/contracts"
)

// Cell is one sheet entry: a content variant plus the two adjacency sets of
// the dependency graph. The sheet owns every cell; precedents and dependents
// are back-references, never ownership.
type Cell struct {
	sheet   *Sheet
	pos     contracts.Position
	content cellContent

	// precedents: cells this cell reads. dependents: cells that read this
	// cell. The two sets stay symmetric: a cell is in precedents exactly when
	// this cell is in its dependents.
	precedents map[*Cell]struct{}
	dependents map[*Cell]struct{}
}

func newCell(sheet *Sheet, pos contracts.Position) *Cell {
	return &Cell{
		sheet:      sheet,
		pos:        pos,
		content:    emptyContent{},
		precedents: map[*Cell]struct{}{},
		dependents: map[*Cell]struct{}{},
	}
}

// Set runs the edit transaction: build the candidate content, materialise the
// cells it references, reject cycles, then swap the content in, rewire the
// adjacency sets and invalidate caches. A failed edit leaves the cell and the
// graph exactly as they were (placeholder cells may remain).
func (c *Cell) Set(text string) error {
	candidate, err := c.sheet.newCellContent(text)
	if err != nil {
		return err
	}

	for _, pos := range candidate.ReferencedCells() {
		if c.sheet.GetConcreteCell(pos) == nil {
			c.sheet.materializeCell(pos)
		}
	}

	if c.hasCircularDependency(candidate.ReferencedCells()) {
		return fmt.Errorf("cell %s: %w", c.pos, contracts.CircularDependencyError)
	}

	c.content = candidate

	for used := range c.precedents {
		delete(used.dependents, c)
	}
	c.precedents = map[*Cell]struct{}{}

	for _, pos := range c.content.ReferencedCells() {
		used := c.sheet.GetConcreteCell(pos)
		if used == nil {
			used = c.sheet.materializeCell(pos)
		}
		c.precedents[used] = struct{}{}
		used.dependents[c] = struct{}{}
	}

	c.ResetCache(true)

	return nil
}

// Clear resets the content to empty. The cell object itself is dropped by the
// sheet, and only when nothing depends on it.
func (c *Cell) Clear() {
	_ = c.Set("")
}

func (c *Cell) GetValue() contracts.Value {
	return c.content.Value()
}

func (c *Cell) GetText() string {
	return c.content.Text()
}

func (c *Cell) GetReferencedCells() []contracts.Position {
	return c.content.ReferencedCells()
}

func (c *Cell) Pos() contracts.Position {
	return c.pos
}

// IsReferenced reports whether any formula cell still links to this one.
func (c *Cell) IsReferenced() bool {
	return len(c.dependents) > 0
}

// ResetCache drops this cell's memoised value and recursively the values of
// all dependents. The recursion stops at formula cells whose cache is already
// empty, which terminates because the graph is acyclic.
func (c *Cell) ResetCache(force bool) {
	if c.content.HasCache() || force {
		c.content.ResetCache()
		for dependent := range c.dependents {
			dependent.ResetCache(false)
		}
	}
}

// TransitiveDependents returns every cell whose memoised value is affected by
// an edit of this cell.
func (c *Cell) TransitiveDependents() []*Cell {
	visited := map[*Cell]struct{}{c: {}}
	var result []*Cell
	c.collectDependents(&result, visited)
	return result
}

func (c *Cell) collectDependents(result *[]*Cell, visited map[*Cell]struct{}) {
	for dependent := range c.dependents {
		if _, ok := visited[dependent]; ok {
			continue
		}
		visited[dependent] = struct{}{}
		*result = append(*result, dependent)
		dependent.collectDependents(result, visited)
	}
}

// hasCircularDependency checks the candidate out-edges against the committed
// graph. Nothing has been mutated yet when this runs: the candidate refs are
// only followed at the top level, each traversed cell contributes its current
// committed references.
func (c *Cell) hasCircularDependency(refs []contracts.Position) bool {
	visited := map[*Cell]struct{}{}

	for _, pos := range refs {
		if pos == c.pos {
			return true
		}

		ref := c.sheet.GetConcreteCell(pos)
		if ref == nil {
			continue
		}
		if ref == c {
			return true
		}

		visited[ref] = struct{}{}
		if c.searchCircular(ref, visited) {
			return true
		}
	}

	return false
}

func (c *Cell) searchCircular(cell *Cell, visited map[*Cell]struct{}) bool {
	for _, pos := range cell.GetReferencedCells() {
		next := c.sheet.GetConcreteCell(pos)
		if pos == c.pos || next == c {
			return true
		}
		if next == nil {
			continue
		}

		if _, ok := visited[next]; !ok {
			visited[next] = struct{}{}
			if c.searchCircular(next, visited) {
				return true
			}
		}
	}

	return false
}
