package vtcore

// ScreenBuffer stores a 2D grid of cells plus the cursor (spec.md §3). It
// is a pure data container: control logic such as deciding when to scroll
// on wrap lives in the Controller, which owns the buffer (spec.md §9,
// "Back-reference from buffer to controller").
type ScreenBuffer struct {
	rows   int
	cols   int
	cells  [][]Cell
	cursor Cursor
}

// NewScreenBuffer creates a rows×cols buffer of empty cells with the
// cursor at the origin. Panics if rows or cols is less than 1.
func NewScreenBuffer(rows, cols int) *ScreenBuffer {
	if rows < 1 || cols < 1 {
		panic("vtcore: ScreenBuffer requires rows >= 1 and cols >= 1")
	}
	b := &ScreenBuffer{
		rows:   rows,
		cols:   cols,
		cells:  make([][]Cell, rows),
		cursor: NewCursor(),
	}
	for i := range b.cells {
		b.cells[i] = newEmptyRow(cols)
	}
	return b
}

func newEmptyRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

// Rows returns the buffer height in character rows.
func (b *ScreenBuffer) Rows() int { return b.rows }

// Cols returns the buffer width in character columns.
func (b *ScreenBuffer) Cols() int { return b.cols }

// Cursor returns the buffer's current cursor.
func (b *ScreenBuffer) Cursor() Cursor { return b.cursor }

// Get returns the cell at (x,y), or ErrOutOfBounds if the coordinates fall
// outside [0,cols) × [0,rows).
func (b *ScreenBuffer) Get(x, y int) (Cell, error) {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return Cell{}, ErrOutOfBounds
	}
	return b.cells[y][x], nil
}

// Set writes cell at (x,y), or returns ErrOutOfBounds.
func (b *ScreenBuffer) Set(x, y int, cell Cell) error {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return ErrOutOfBounds
	}
	b.cells[y][x] = cell
	return nil
}

// GetRow returns a copy of row y, or ErrOutOfBounds.
func (b *ScreenBuffer) GetRow(y int) ([]Cell, error) {
	if y < 0 || y >= b.rows {
		return nil, ErrOutOfBounds
	}
	row := make([]Cell, b.cols)
	copy(row, b.cells[y])
	return row, nil
}

// SetRow replaces row y with the given cells. row must have exactly Cols()
// elements, else ErrLengthMismatch; y out of range yields ErrOutOfBounds.
func (b *ScreenBuffer) SetRow(y int, row []Cell) error {
	if y < 0 || y >= b.rows {
		return ErrOutOfBounds
	}
	if len(row) != b.cols {
		return ErrLengthMismatch
	}
	copy(b.cells[y], row)
	return nil
}

// Clear empties every cell in the buffer.
func (b *ScreenBuffer) Clear() {
	for y := range b.cells {
		b.cells[y] = newEmptyRow(b.cols)
	}
}

// ClearRow empties row y, or returns ErrOutOfBounds.
func (b *ScreenBuffer) ClearRow(y int) error {
	if y < 0 || y >= b.rows {
		return ErrOutOfBounds
	}
	b.cells[y] = newEmptyRow(b.cols)
	return nil
}

// ClearFromCursor empties cells from the cursor to end-of-line, and all
// rows below the cursor's row.
func (b *ScreenBuffer) ClearFromCursor() {
	cx, cy := b.cursor.X, b.cursor.Y
	for x := cx; x < b.cols; x++ {
		b.cells[cy][x] = NewCell()
	}
	for y := cy + 1; y < b.rows; y++ {
		b.cells[y] = newEmptyRow(b.cols)
	}
}

// ClearToCursor empties all rows above the cursor's row, and cells from
// start-of-line to the cursor inclusive.
func (b *ScreenBuffer) ClearToCursor() {
	cx, cy := b.cursor.X, b.cursor.Y
	for y := 0; y < cy; y++ {
		b.cells[y] = newEmptyRow(b.cols)
	}
	end := cx
	if end >= b.cols {
		end = b.cols - 1
	}
	for x := 0; x <= end; x++ {
		b.cells[cy][x] = NewCell()
	}
}

// ScrollUp drops the top n rows and appends n empty rows at the bottom.
// n >= Rows() clears the whole buffer; n <= 0 is a no-op.
func (b *ScreenBuffer) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	if n >= b.rows {
		b.Clear()
		return
	}
	copy(b.cells, b.cells[n:])
	for y := b.rows - n; y < b.rows; y++ {
		b.cells[y] = newEmptyRow(b.cols)
	}
}

// ScrollDown drops the bottom n rows and inserts n empty rows at the top,
// symmetric with ScrollUp.
func (b *ScreenBuffer) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	if n >= b.rows {
		b.Clear()
		return
	}
	copy(b.cells[n:], b.cells[:b.rows-n])
	for y := 0; y < n; y++ {
		b.cells[y] = newEmptyRow(b.cols)
	}
}

// ScrollRegionUp is the region-aware counterpart of ScrollUp, restricted to
// rows [top, bottom] inclusive. See spec.md §9's open question on whether
// scroll-on-wrap should ultimately call this instead of full-buffer
// ScrollUp; the Controller does not call this yet.
func (b *ScreenBuffer) ScrollRegionUp(top, bottom, n int) {
	if n <= 0 || top < 0 || bottom >= b.rows || top > bottom {
		return
	}
	height := bottom - top + 1
	if n >= height {
		for y := top; y <= bottom; y++ {
			b.cells[y] = newEmptyRow(b.cols)
		}
		return
	}
	copy(b.cells[top:bottom+1], b.cells[top+n:bottom+1])
	for y := bottom - n + 1; y <= bottom; y++ {
		b.cells[y] = newEmptyRow(b.cols)
	}
}

// ScrollRegionDown is the region-aware counterpart of ScrollDown.
func (b *ScreenBuffer) ScrollRegionDown(top, bottom, n int) {
	if n <= 0 || top < 0 || bottom >= b.rows || top > bottom {
		return
	}
	height := bottom - top + 1
	if n >= height {
		for y := top; y <= bottom; y++ {
			b.cells[y] = newEmptyRow(b.cols)
		}
		return
	}
	for y := bottom; y >= top+n; y-- {
		b.cells[y] = b.cells[y-n]
	}
	for y := top; y < top+n; y++ {
		b.cells[y] = newEmptyRow(b.cols)
	}
}

// Resize changes the buffer's dimensions, copying content within the
// intersection of old and new bounds and padding new area with empty
// cells. The cursor is not re-clamped here; that is the Controller's
// responsibility.
func (b *ScreenBuffer) Resize(newRows, newCols int) {
	if newRows < 1 || newCols < 1 {
		panic("vtcore: Resize requires rows >= 1 and cols >= 1")
	}
	newCells := make([][]Cell, newRows)
	minRows := newRows
	if b.rows < minRows {
		minRows = b.rows
	}
	minCols := newCols
	if b.cols < minCols {
		minCols = b.cols
	}
	for y := 0; y < newRows; y++ {
		row := newEmptyRow(newCols)
		if y < minRows {
			copy(row, b.cells[y][:minCols])
		}
		newCells[y] = row
	}
	b.rows, b.cols, b.cells = newRows, newCols, newCells
}

// SetCursor stores c after clamping it into the buffer's valid range.
func (b *ScreenBuffer) SetCursor(c Cursor) {
	b.cursor = b.clampCursor(c)
}

// MoveCursorRelative adds (dx,dy) to the cursor position, then clamps.
func (b *ScreenBuffer) MoveCursorRelative(dx, dy int) {
	c := b.cursor
	c.X += dx
	c.Y += dy
	b.cursor = b.clampCursor(c)
}

func (b *ScreenBuffer) clampCursor(c Cursor) Cursor {
	switch {
	case c.X < 0:
		c.X = 0
	case c.X >= b.cols:
		c.X = b.cols - 1
	}
	switch {
	case c.Y < 0:
		c.Y = 0
	case c.Y >= b.rows:
		c.Y = b.rows - 1
	}
	return c
}

// InsertLines inserts n blank rows at y, shifting rows at and below y down
// and truncating at the bottom (CSI L / IL).
func (b *ScreenBuffer) InsertLines(y, n int) {
	if y < 0 || y >= b.rows || n <= 0 {
		return
	}
	if n > b.rows-y {
		n = b.rows - y
	}
	for row := b.rows - 1; row >= y+n; row-- {
		b.cells[row] = b.cells[row-n]
	}
	for row := y; row < y+n; row++ {
		b.cells[row] = newEmptyRow(b.cols)
	}
}

// DeleteLines deletes n rows at y, shifting rows below y up and padding the
// bottom with empty rows (CSI M / DL).
func (b *ScreenBuffer) DeleteLines(y, n int) {
	if y < 0 || y >= b.rows || n <= 0 {
		return
	}
	if n > b.rows-y {
		n = b.rows - y
	}
	copy(b.cells[y:], b.cells[y+n:])
	for row := b.rows - n; row < b.rows; row++ {
		b.cells[row] = newEmptyRow(b.cols)
	}
}

// InsertChars inserts n blank cells at (x,y), shifting the remainder of the
// row right and truncating at the row's end (CSI @ / ICH).
func (b *ScreenBuffer) InsertChars(x, y, n int) {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows || n <= 0 {
		return
	}
	if n > b.cols-x {
		n = b.cols - x
	}
	row := b.cells[y]
	for c := b.cols - 1; c >= x+n; c-- {
		row[c] = row[c-n]
	}
	for c := x; c < x+n; c++ {
		row[c] = NewCell()
	}
}

// DeleteChars deletes n cells at (x,y), shifting the remainder of the row
// left and padding the row's end with empty cells (CSI P / DCH).
func (b *ScreenBuffer) DeleteChars(x, y, n int) {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows || n <= 0 {
		return
	}
	if n > b.cols-x {
		n = b.cols - x
	}
	row := b.cells[y]
	copy(row[x:], row[x+n:])
	for c := b.cols - n; c < b.cols; c++ {
		row[c] = NewCell()
	}
}

// EraseChars erases n cells starting at (x,y) in place, without shifting
// the rest of the row (CSI X / ECH).
func (b *ScreenBuffer) EraseChars(x, y, n int) {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows || n <= 0 {
		return
	}
	end := x + n
	if end > b.cols {
		end = b.cols
	}
	row := b.cells[y]
	for c := x; c < end; c++ {
		row[c] = NewCell()
	}
}

// String renders the grid as rows joined by "\n", each row the
// concatenation of its cell characters, per spec.md §6's reader API.
func (b *ScreenBuffer) String() string {
	out := make([]rune, 0, b.rows*(b.cols+1))
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			out = append(out, b.cells[y][x].Ch)
		}
		if y < b.rows-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}
