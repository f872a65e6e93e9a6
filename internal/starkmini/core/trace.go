package core

import "fmt"

// Trace is an execution trace: a rectangular matrix of field elements with
// rows indexed by step and columns by state component. Traces are immutable
// once constructed.
type Trace struct {
	field *Field
	rows  [][]*FieldElement
}

// NewTrace creates a trace from the given rows, validating that the matrix
// is rectangular and that every element belongs to the same field.
func NewTrace(field *Field, rows [][]*FieldElement) (*Trace, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("trace must have at least one row")
	}
	columns := len(rows[0])
	if columns == 0 {
		return nil, fmt.Errorf("trace must have at least one column")
	}

	copied := make([][]*FieldElement, len(rows))
	for i, row := range rows {
		if len(row) != columns {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), columns)
		}
		copied[i] = make([]*FieldElement, columns)
		for j, elem := range row {
			if !elem.Field().Equals(field) {
				return nil, fmt.Errorf("element at row %d column %d is from a different field", i, j)
			}
			copied[i][j] = elem
		}
	}

	return &Trace{field: field, rows: copied}, nil
}

// Field returns the field the trace is defined over
func (t *Trace) Field() *Field {
	return t.field
}

// Length returns the number of steps in the trace
func (t *Trace) Length() int {
	return len(t.rows)
}

// Columns returns the number of state components per step
func (t *Trace) Columns() int {
	return len(t.rows[0])
}

// At returns the element at the given step and column
func (t *Trace) At(step, column int) *FieldElement {
	return t.rows[step][column]
}

// Row returns a copy of the row at the given step
func (t *Trace) Row(step int) []*FieldElement {
	row := make([]*FieldElement, len(t.rows[step]))
	copy(row, t.rows[step])
	return row
}

// Column returns a copy of the given column across all steps
func (t *Trace) Column(column int) []*FieldElement {
	col := make([]*FieldElement, len(t.rows))
	for i, row := range t.rows {
		col[i] = row[column]
	}
	return col
}

// Window returns the rows [step, step+size) used by a transition constraint
func (t *Trace) Window(step, size int) [][]*FieldElement {
	window := make([][]*FieldElement, size)
	for i := 0; i < size; i++ {
		window[i] = t.Row(step + i)
	}
	return window
}

// RowBytes serializes a row into the fixed-width encoding fed to the hasher.
// The concatenation order is the column order, so identical rows always
// produce identical bytes.
func RowBytes(row []*FieldElement) []byte {
	out := make([]byte, 0, len(row)*ElementByteLen)
	for _, elem := range row {
		out = append(out, elem.Bytes()...)
	}
	return out
}
