package backend

import "strings"

// Cell is one screen position recorded by Grid.
type Cell struct {
	Ch      byte
	Reverse bool
}

// Grid is an in-memory CellWriter for tests. It behaves like a terminal
// without auto-margins: writing past the last column is dropped.
type Grid struct {
	cols, rows int
	cells      [][]Cell
	row, col   int
	reverse    bool

	// Counters for assertions.
	Flushes int
	Scrolls int
	Clears  int
}

// NewGrid creates a blank grid.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{}
	g.Resize(cols, rows)
	return g
}

// Resize changes the grid size and blanks it.
func (g *Grid) Resize(cols, rows int) {
	g.cols, g.rows = cols, rows
	g.cells = make([][]Cell, rows)
	for y := range g.cells {
		g.cells[y] = blankRow(cols)
	}
	g.row, g.col = 0, 0
}

func blankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for x := range row {
		row[x] = Cell{Ch: ' '}
	}
	return row
}

func (g *Grid) Size() (int, int) { return g.cols, g.rows }

func (g *Grid) WriteCell(b byte) {
	if g.row >= 0 && g.row < g.rows && g.col >= 0 && g.col < g.cols {
		g.cells[g.row][g.col] = Cell{Ch: b, Reverse: g.reverse}
	}
	if g.col < g.cols {
		g.col++
	}
}

func (g *Grid) MoveCursorTo(row, col int) {
	g.row, g.col = row, col
}

func (g *Grid) ClearToEndOfLine() {
	if g.row < 0 || g.row >= g.rows {
		return
	}
	for x := max(g.col, 0); x < g.cols; x++ {
		g.cells[g.row][x] = Cell{Ch: ' '}
	}
}

func (g *Grid) ClearScreen() {
	for y := range g.cells {
		g.cells[y] = blankRow(g.cols)
	}
	g.row, g.col = 0, 0
	g.Clears++
}

func (g *Grid) SetReverseVideo(on bool) { g.reverse = on }

func (g *Grid) ScrollRegion(top, bottom int, dir Direction) {
	top = max(top, 0)
	bottom = min(bottom, g.rows-1)
	if top >= bottom {
		return
	}
	if dir == ScrollUp {
		copy(g.cells[top:bottom], g.cells[top+1:bottom+1])
		g.cells[bottom] = blankRow(g.cols)
	} else {
		copy(g.cells[top+1:bottom+1], g.cells[top:bottom])
		g.cells[top] = blankRow(g.cols)
	}
	g.row, g.col = 0, 0
	g.Scrolls++
}

func (g *Grid) Flush() error {
	g.Flushes++
	return nil
}

// Cursor returns the cursor position.
func (g *Grid) Cursor() (row, col int) { return g.row, g.col }

// Cell returns the cell at row, col.
func (g *Grid) Cell(row, col int) Cell { return g.cells[row][col] }

// Line returns the text of a row with trailing blanks removed.
func (g *Grid) Line(row int) string {
	var sb strings.Builder
	for _, c := range g.cells[row] {
		sb.WriteByte(c.Ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

// ReverseMask returns a row's video attributes: '#' for reverse cells and
// '.' for normal ones.
func (g *Grid) ReverseMask(row int) string {
	var sb strings.Builder
	for _, c := range g.cells[row] {
		if c.Reverse {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// String returns every row, one per line.
func (g *Grid) String() string {
	lines := make([]string, g.rows)
	for y := range lines {
		lines[y] = g.Line(y)
	}
	return strings.Join(lines, "\n")
}
