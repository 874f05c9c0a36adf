package screen

// Buffer provides double-buffered rendering with change tracking.
// It maintains two grids: front (displayed) and back (drawing). Diff
// computes the cells that differ; Flip promotes back to front after
// the changes were applied to the backend.
type Buffer struct {
	width, height int
	front         [][]Cell
	back          [][]Cell
	fullRedraw    bool
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		width:      width,
		height:     height,
		fullRedraw: true,
	}
	b.allocate()
	return b
}

// allocate creates the internal grids.
func (b *Buffer) allocate() {
	b.front = make([][]Cell, b.height)
	b.back = make([][]Cell, b.height)

	for y := 0; y < b.height; y++ {
		b.front[y] = make([]Cell, b.width)
		b.back[y] = make([]Cell, b.width)

		for x := 0; x < b.width; x++ {
			b.front[y][x] = EmptyCell()
			b.back[y][x] = EmptyCell()
		}
	}
}

// Resize reallocates both grids and forces a full redraw. Content is
// not preserved; the frame is redrawn every tick anyway.
func (b *Buffer) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	b.width = width
	b.height = height
	b.allocate()
	b.fullRedraw = true
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// SetCell sets a cell in the back grid.
// Positions outside the grid are silently ignored.
func (b *Buffer) SetCell(x, y int, cell Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.back[y][x] = cell
}

// Cell returns a cell from the back grid.
func (b *Buffer) Cell(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return EmptyCell()
	}
	return b.back[y][x]
}

// FrontCell returns a cell from the front grid (currently displayed).
func (b *Buffer) FrontCell(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return EmptyCell()
	}
	return b.front[y][x]
}

// Clear fills the back grid with empty cells.
func (b *Buffer) Clear() {
	empty := EmptyCell()
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.back[y][x] = empty
		}
	}
}

// FillRow fills one row of the back grid with the cell.
func (b *Buffer) FillRow(y int, cell Cell) {
	if y < 0 || y >= b.height {
		return
	}
	for x := 0; x < b.width; x++ {
		b.back[y][x] = cell
	}
}

// SetString writes a string with the given style starting at the
// position, emitting continuation cells after wide runes. Returns the
// column after the last written cell.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= b.height {
		return x
	}
	col := x
	for _, r := range s {
		if col >= b.width {
			break
		}
		width := RuneWidth(r)
		if width == 0 {
			continue
		}
		if col >= 0 {
			b.back[y][col] = Cell{Rune: r, Width: width, Style: style}
		}
		col++
		if width == 2 && col < b.width {
			if col >= 0 {
				b.back[y][col] = ContinuationCell(style)
			}
			col++
		}
	}
	return col
}

// DiffChange represents a cell change for synchronization.
type DiffChange struct {
	X, Y int
	Cell Cell
}

// Diff returns the cells that must be re-emitted: every back cell
// differing from its front counterpart, or every cell after a forced
// full redraw. Returns nil when the frame is unchanged.
func (b *Buffer) Diff() []DiffChange {
	var changes []DiffChange
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.fullRedraw || !b.back[y][x].Equals(b.front[y][x]) {
				changes = append(changes, DiffChange{X: x, Y: y, Cell: b.back[y][x]})
			}
		}
	}
	return changes
}

// Flip copies the back grid to the front grid.
// Call after applying Diff changes to the backend.
func (b *Buffer) Flip() {
	for y := 0; y < b.height; y++ {
		copy(b.front[y], b.back[y])
	}
	b.fullRedraw = false
}

// MarkFullRedraw forces a complete re-emit on the next Diff.
func (b *Buffer) MarkFullRedraw() {
	b.fullRedraw = true
}

// Surface couples a buffer with a backend: draw into the buffer, then
// Present applies only the diff and flips.
type Surface struct {
	backend Backend
	buffer  *Buffer
}

// NewSurface creates a surface sized to the backend.
func NewSurface(backend Backend) *Surface {
	width, height := backend.Size()
	return &Surface{
		backend: backend,
		buffer:  NewBuffer(width, height),
	}
}

// Buffer returns the underlying buffer for drawing.
func (s *Surface) Buffer() *Buffer {
	return s.buffer
}

// Size returns the surface dimensions.
func (s *Surface) Size() (int, int) {
	return s.buffer.Size()
}

// Resize adjusts the buffer to new terminal dimensions and forces a
// full repaint.
func (s *Surface) Resize(width, height int) {
	s.buffer.Resize(width, height)
	s.buffer.MarkFullRedraw()
}

// Present pushes changed cells to the backend and flips the buffers.
// Returns the number of cells emitted.
func (s *Surface) Present() int {
	changes := s.buffer.Diff()
	for _, ch := range changes {
		s.backend.SetCell(ch.X, ch.Y, ch.Cell)
	}
	s.buffer.Flip()
	if len(changes) > 0 {
		s.backend.Show()
	}
	return len(changes)
}
