package mincov

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// A Matrix is a sparse 0/1 covering table.
// Each row lists the columns that cover it; a cover is a set of columns
// such that every row holds at least one of them.
type Matrix struct {
	rows  [][]int
	nbCol int // 1 + biggest column index
	seen  map[string]bool
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{seen: make(map[string]bool)}
}

// AddRow adds a row containing the given columns. Duplicate rows are ignored.
// It returns false if the row was a duplicate.
// cols is copied and sorted.
func (m *Matrix) AddRow(cols []int) bool {
	row := make([]int, len(cols))
	copy(row, cols)
	sort.Ints(row)
	key := fmt.Sprint(row)
	if m.seen[key] {
		return false
	}
	m.seen[key] = true
	m.rows = append(m.rows, row)
	if n := len(row); n > 0 && row[n-1] >= m.nbCol {
		m.nbCol = row[n-1] + 1
	}
	return true
}

// NumRows returns the number of rows in m.
func (m *Matrix) NumRows() int {
	return len(m.rows)
}

// NumCols returns 1 + the biggest column index in m.
func (m *Matrix) NumCols() int {
	return m.nbCol
}

// Row returns the columns of the i-th row. The slice must not be modified.
func (m *Matrix) Row(i int) []int {
	return m.rows[i]
}

// Write writes m to w, one "row col" pair per line.
func (m *Matrix) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, row := range m.rows {
		for _, col := range row {
			fmt.Fprintf(bw, "%d %d\n", i, col)
		}
	}
	return bw.Flush()
}

// Covered is true iff the given columns cover every row of m.
func (m *Matrix) Covered(cols []int) bool {
	sel := make(map[int]bool, len(cols))
	for _, c := range cols {
		sel[c] = true
	}
	for _, row := range m.rows {
		ok := false
		for _, c := range row {
			if sel[c] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
