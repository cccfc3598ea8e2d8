package contracts

import "io"

type SheetService interface {
	SetCell(sheetId string, cellId string, value string) (*Cell, error)
	GetCell(sheetId string, cellId string) (*Cell, error)
	ClearCell(sheetId string, cellId string) error
	GetCellList(sheetId string) (*CellList, error)
	GetPrintableSize(sheetId string) (Size, error)
	PrintValues(sheetId string, out io.Writer) error
	PrintTexts(sheetId string, out io.Writer) error
}
