package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/tabplot/internal/table"
)

// TableView shows a loaded table with its column names as the first row
type TableView struct {
	widget *widget.Table
	data   *table.Table
}

// NewTableView creates an empty table view
func NewTableView() *TableView {
	tv := &TableView{}
	tv.widget = widget.NewTable(
		tv.length,
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		tv.updateCell,
	)
	return tv
}

// Widget returns the canvas object to place in a layout
func (tv *TableView) Widget() fyne.CanvasObject {
	return tv.widget
}

// SetTable replaces the shown data
func (tv *TableView) SetTable(t *table.Table) {
	tv.data = t
	if t != nil {
		for col := range t.Columns {
			tv.widget.SetColumnWidth(col, TableCellWidth)
		}
	}
	tv.widget.Refresh()
}

// Table returns the shown data
func (tv *TableView) Table() *table.Table {
	return tv.data
}

// CellText returns the text of a cell; row 0 holds column names
func (tv *TableView) CellText(row, col int) string {
	if tv.data == nil || col < 0 || col >= tv.data.NumCols() {
		return ""
	}
	if row == 0 {
		return tv.data.Columns[col]
	}
	if row-1 >= tv.data.NumRows() {
		return ""
	}
	return tv.data.Row(row - 1)[col]
}

func (tv *TableView) length() (int, int) {
	if tv.data == nil {
		return 0, 0
	}
	return tv.data.NumRows() + 1, tv.data.NumCols()
}

func (tv *TableView) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)
	label.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
	label.SetText(tv.CellText(id.Row, id.Col))
}
