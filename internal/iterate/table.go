package iterate

import (
	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Table is a rows x columns grid of states: one column per parameter value,
// one row per recorded iteration.
type Table struct {
	// Params holds the parameter value of each column.
	Params dynamo.State
	// Start is the number of map applications performed before row 0.
	Start int

	rows int
	data []float64
}

func newTable(params dynamo.State, rows, start int) *Table {
	return &Table{
		Params: params.Clone(),
		Start:  start,
		rows:   rows,
		data:   make([]float64, rows*len(params)),
	}
}

func (t *Table) NumRows() int { return t.rows }
func (t *Table) NumCols() int { return len(t.Params) }

// At returns the state recorded at row i for column k.
func (t *Table) At(i, k int) float64 {
	return t.data[i*len(t.Params)+k]
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	k := len(t.Params)
	row := make([]float64, k)
	copy(row, t.data[i*k:(i+1)*k])
	return row
}

// Column returns a copy of the states recorded for column k.
func (t *Table) Column(k int) []float64 {
	col := make([]float64, t.rows)
	for i := range col {
		col[i] = t.At(i, k)
	}
	return col
}

func (t *Table) setRow(i int, lanes []float64, offset int) {
	k := len(t.Params)
	copy(t.data[i*k+offset:], lanes)
}

// Point is one scatter point of a table.
type Point struct {
	R     float64
	Index int
	X     float64
}

// Points flattens the table row by row. Index is the row number.
func (t *Table) Points() []Point {
	pts := make([]Point, 0, len(t.data))
	for i := 0; i < t.rows; i++ {
		for k, r := range t.Params {
			pts = append(pts, Point{R: r, Index: i, X: t.At(i, k)})
		}
	}
	return pts
}

// NewTable builds a table from rows of recorded states, one value per
// parameter in each row. It is the inverse of reading Row for every row.
func NewTable(params dynamo.State, start int, rows [][]float64) (*Table, error) {
	if len(params) == 0 {
		return nil, dynamo.ShapeMismatch("NewTable", 0, len(params))
	}
	t := newTable(params, len(rows), start)
	for i, row := range rows {
		if len(row) != len(params) {
			return nil, dynamo.ShapeMismatch("NewTable", len(row), len(params))
		}
		t.setRow(i, row, 0)
	}
	return t, nil
}
