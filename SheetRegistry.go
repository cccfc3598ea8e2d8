package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"sheetEngine/contracts"
)

// SheetRegistry keeps every live sheet in memory, keyed by lower-cased id,
// and serialises access per sheet: the engine assumes exclusive access for
// the duration of each call.
type SheetRegistry struct {
	mu         sync.RWMutex
	sheets     map[string]*registeredSheet
	dispatcher contracts.ChangeDispatcher
}

type registeredSheet struct {
	mu    sync.Mutex
	sheet *Sheet
}

func NewSheetRegistry(dispatcher contracts.ChangeDispatcher) *SheetRegistry {
	return &SheetRegistry{
		sheets:     map[string]*registeredSheet{},
		dispatcher: dispatcher,
	}
}

func (r *SheetRegistry) SetCell(sheetId string, cellId string, value string) (*contracts.Cell, error) {
	pos, err := parseCellId(cellId)
	if err != nil {
		return nil, err
	}

	canonicalId := canonicalSheetId(sheetId)
	entry := r.obtainSheet(canonicalId)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err = entry.sheet.SetCell(pos, value); err != nil {
		return nil, err
	}

	cell := entry.sheet.GetConcreteCell(pos)

	changed := []*contracts.Cell{makeCellDto(cell)}
	for _, dependent := range cell.TransitiveDependents() {
		changed = append(changed, makeCellDto(dependent))
	}

	if r.dispatcher != nil {
		r.dispatcher.Notify(canonicalId, changed)
	}

	return changed[0], nil
}

func (r *SheetRegistry) GetCell(sheetId string, cellId string) (*contracts.Cell, error) {
	pos, err := parseCellId(cellId)
	if err != nil {
		return nil, err
	}

	entry := r.lookupSheet(canonicalSheetId(sheetId))
	if entry == nil {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	cell, err := entry.sheet.GetCell(pos)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, fmt.Errorf("%s: %w", cellId, contracts.CellNotFoundError)
	}

	return makeCellDto(cell), nil
}

func (r *SheetRegistry) ClearCell(sheetId string, cellId string) error {
	pos, err := parseCellId(cellId)
	if err != nil {
		return err
	}

	entry := r.lookupSheet(canonicalSheetId(sheetId))
	if entry == nil {
		return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.sheet.ClearCell(pos)
}

func (r *SheetRegistry) GetCellList(sheetId string) (*contracts.CellList, error) {
	entry := r.lookupSheet(canonicalSheetId(sheetId))
	if entry == nil {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	cellList := entry.sheet.CellList()
	return &cellList, nil
}

func (r *SheetRegistry) GetPrintableSize(sheetId string) (contracts.Size, error) {
	entry := r.lookupSheet(canonicalSheetId(sheetId))
	if entry == nil {
		return contracts.Size{}, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.sheet.GetPrintableSize(), nil
}

func (r *SheetRegistry) PrintValues(sheetId string, out io.Writer) error {
	return r.printSheet(sheetId, out, (*Sheet).PrintValues)
}

func (r *SheetRegistry) PrintTexts(sheetId string, out io.Writer) error {
	return r.printSheet(sheetId, out, (*Sheet).PrintTexts)
}

func (r *SheetRegistry) printSheet(sheetId string, out io.Writer, print func(*Sheet, io.Writer) error) error {
	entry := r.lookupSheet(canonicalSheetId(sheetId))
	if entry == nil {
		return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return print(entry.sheet, out)
}

func (r *SheetRegistry) obtainSheet(canonicalId string) *registeredSheet {
	r.mu.RLock()
	entry := r.sheets[canonicalId]
	r.mu.RUnlock()

	if entry != nil {
		return entry
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry = r.sheets[canonicalId]; entry == nil {
		entry = &registeredSheet{sheet: NewSheet()}
		r.sheets[canonicalId] = entry
	}

	return entry
}

func (r *SheetRegistry) lookupSheet(canonicalId string) *registeredSheet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sheets[canonicalId]
}

func makeCellDto(cell *Cell) *contracts.Cell {
	return &contracts.Cell{
		CanonicalKey: cell.Pos().String(),
		Value:        cell.GetText(),
		Result:       contracts.FormatValue(cell.GetValue()),
	}
}

// parseCellId upper-cases the incoming reference before strict parsing, so
// the API accepts a1 and A1 alike.
func parseCellId(cellId string) (contracts.Position, error) {
	pos, ok := contracts.PositionFromString(strings.ToUpper(cellId))
	if !ok {
		return pos, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.InvalidPositionError)
	}

	return pos, nil
}

func canonicalSheetId(sheetId string) string {
	return strings.ToLower(sheetId)
}
