package vtcore

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// Cursor is a pure value: position, visibility, and rendering style
// (spec.md §3). Screen-buffer operations clamp it to [0,cols) x [0,rows);
// Cursor itself never clamps.
type Cursor struct {
	X       int
	Y       int
	Visible bool
	Style   CursorStyle
}

// NewCursor returns a cursor at (0,0), visible, block style.
func NewCursor() Cursor {
	return Cursor{Visible: true, Style: CursorBlock}
}
