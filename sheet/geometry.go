package sheet

import (
	"fmt"
	"image"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"
)

// Grid dimensions of the Greeny sprite sheet.
const (
	DefaultColumns = 5
	DefaultRows    = 4
)

// Geometry describes how a sheet of SheetWidth x SheetHeight pixels is cut
// into Columns x Rows cells of CellWidth x CellHeight pixels each.
type Geometry struct {
	SheetWidth, SheetHeight int
	Columns, Rows           int
	CellWidth, CellHeight   int
}

// ComputeGeometry derives the cell size for img split into columns x rows.
//
// Cell width and height are floor divisions of the sheet size. Non-positive
// column or row counts leave the corresponding cell size at zero; Validate
// reports those.
func ComputeGeometry(img image.Image, columns, rows int) Geometry {
	size := img.Bounds().Size()
	return ComputeGeometrySize(size.X, size.Y, columns, rows)
}

// ComputeGeometrySize is ComputeGeometry for a sheet whose pixel size is
// already known.
func ComputeGeometrySize(width, height, columns, rows int) Geometry {
	g := Geometry{
		SheetWidth:  width,
		SheetHeight: height,
		Columns:     columns,
		Rows:        rows,
	}
	if columns > 0 {
		g.CellWidth = width / columns
	}
	if rows > 0 {
		g.CellHeight = height / rows
	}
	return g
}

// Validate returns an error if the geometry cannot produce non-empty cells,
// which happens when the sheet is smaller than one pixel per cell.
func (g Geometry) Validate() error {
	if g.Columns <= 0 || g.Rows <= 0 {
		return errors.Errorf("grid must have positive dimensions; got %dx%d", g.Columns, g.Rows)
	}
	if g.CellWidth < 1 || g.CellHeight < 1 {
		return errors.Errorf("sheet of %dx%d pixels is too small for a %dx%d grid", g.SheetWidth, g.SheetHeight, g.Columns, g.Rows)
	}
	return nil
}

// Contains reports whether (row, column) addresses a cell of the grid.
func (g Geometry) Contains(row, column int) bool {
	return row >= 0 && row < g.Rows && column >= 0 && column < g.Columns
}

// CellRect returns the pixel bounds of the cell at (row, column), relative to
// the sheet's top left corner. The rectangle is half-open, as usual for
// image.Rectangle.
func (g Geometry) CellRect(row, column int) image.Rectangle {
	left := column * g.CellWidth
	top := row * g.CellHeight
	return image.Rect(left, top, left+g.CellWidth, top+g.CellHeight)
}

// Cells returns the bounds of every cell in row-major order.
func (g Geometry) Cells() []image.Rectangle {
	if g.Columns <= 0 || g.Rows <= 0 {
		return nil
	}
	var cells []image.Rectangle
	for row := range iter.N(g.Rows) {
		for column := range iter.N(g.Columns) {
			cells = append(cells, g.CellRect(row, column))
		}
	}
	return cells
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d sheet, %dx%d grid of %dx%d cells", g.SheetWidth, g.SheetHeight, g.Columns, g.Rows, g.CellWidth, g.CellHeight)
}
