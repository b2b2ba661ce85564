package display

import (
	"fmt"
	"strconv"
	"strings"
)

// Mock is a Display that renders into an in-memory character buffer
// and records every operation. Used for development on PC and testing.
type Mock struct {
	rows, cols int
	buf        [][]byte
	row, col   int

	// Ops is the ordered operation log ("clear", "cursor 1,0",
	// "print \"NE\"", ...).
	Ops []string
}

// NewMock creates a 16x2 in-memory display.
func NewMock() *Mock {
	m := &Mock{rows: 2, cols: 16}
	m.reset()
	return m
}

func (m *Mock) reset() {
	m.buf = make([][]byte, m.rows)
	for i := range m.buf {
		m.buf[i] = []byte(strings.Repeat(" ", m.cols))
	}
	m.row, m.col = 0, 0
}

func (m *Mock) Clear() error {
	m.reset()
	m.Ops = append(m.Ops, "clear")
	return nil
}

func (m *Mock) SetCursor(row, col int) error {
	m.row, m.col = row, col
	m.Ops = append(m.Ops, fmt.Sprintf("cursor %d,%d", row, col))
	return nil
}

func (m *Mock) Print(s string) error {
	m.Ops = append(m.Ops, fmt.Sprintf("print %q", s))
	for i := 0; i < len(s); i++ {
		if m.row < 0 || m.row >= m.rows || m.col < 0 || m.col >= m.cols {
			break // off-screen characters are dropped, like real hardware
		}
		m.buf[m.row][m.col] = s[i]
		m.col++
	}
	return nil
}

func (m *Mock) PrintInt(v int) error {
	return m.Print(strconv.Itoa(v))
}

func (m *Mock) Close() error {
	m.Ops = append(m.Ops, "close")
	return nil
}

// Line returns the current contents of one row, right-trimmed.
func (m *Mock) Line(row int) string {
	if row < 0 || row >= m.rows {
		return ""
	}
	return strings.TrimRight(string(m.buf[row]), " ")
}
