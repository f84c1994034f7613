package vtcore

import "testing"

func TestNewScreenBuffer(t *testing.T) {
	b := NewScreenBuffer(24, 80)

	if b.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", b.Rows())
	}
	if b.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", b.Cols())
	}
}

func TestScreenBufferGetSet(t *testing.T) {
	b := NewScreenBuffer(24, 80)

	if err := b.Set(0, 0, Cell{Ch: 'A'}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cell, err := b.Get(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cell.Ch != 'A' {
		t.Errorf("expected 'A', got %q", cell.Ch)
	}
}

func TestScreenBufferOutOfBounds(t *testing.T) {
	b := NewScreenBuffer(24, 80)

	if _, err := b.Get(-1, 0); err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.Get(0, -1); err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.Get(80, 0); err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := b.Get(0, 24); err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if err := b.Set(80, 0, Cell{}); err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestScreenBufferSetRowLengthMismatch(t *testing.T) {
	b := NewScreenBuffer(5, 10)

	err := b.SetRow(0, make([]Cell, 9))
	if err != ErrLengthMismatch {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}

	err = b.SetRow(10, make([]Cell, 10))
	if err != ErrOutOfBounds {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestScreenBufferClearRow(t *testing.T) {
	b := NewScreenBuffer(24, 80)

	_ = b.Set(0, 0, Cell{Ch: 'A'})
	_ = b.Set(1, 0, Cell{Ch: 'B'})

	if err := b.ClearRow(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cell, _ := b.Get(0, 0)
	if cell.Ch != ' ' {
		t.Error("expected cell to be cleared")
	}
	cell, _ = b.Get(1, 0)
	if cell.Ch != ' ' {
		t.Error("expected cell to be cleared")
	}
}

func TestScreenBufferScrollUp(t *testing.T) {
	b := NewScreenBuffer(5, 10)

	for y := 0; y < 5; y++ {
		_ = b.Set(0, y, Cell{Ch: rune('0' + y)})
	}

	b.ScrollUp(1)

	cell, _ := b.Get(0, 0)
	if cell.Ch != '1' {
		t.Errorf("expected '1', got %q", cell.Ch)
	}
	cell, _ = b.Get(0, 4)
	if cell.Ch != ' ' {
		t.Errorf("expected space, got %q", cell.Ch)
	}
}

func TestScreenBufferScrollUpFull(t *testing.T) {
	b := NewScreenBuffer(5, 10)
	_ = b.Set(0, 0, Cell{Ch: 'X'})

	b.ScrollUp(10)

	cell, _ := b.Get(0, 0)
	if cell.Ch != ' ' {
		t.Error("expected full clear when n >= rows")
	}
}

func TestScreenBufferScrollDown(t *testing.T) {
	b := NewScreenBuffer(5, 10)

	for y := 0; y < 5; y++ {
		_ = b.Set(0, y, Cell{Ch: rune('0' + y)})
	}

	b.ScrollDown(1)

	cell, _ := b.Get(0, 1)
	if cell.Ch != '0' {
		t.Errorf("expected '0', got %q", cell.Ch)
	}
	cell, _ = b.Get(0, 0)
	if cell.Ch != ' ' {
		t.Errorf("expected space, got %q", cell.Ch)
	}
}

func TestScreenBufferResize(t *testing.T) {
	b := NewScreenBuffer(10, 20)

	_ = b.Set(0, 0, Cell{Ch: 'A'})
	_ = b.Set(10, 5, Cell{Ch: 'B'})

	b.Resize(20, 40)

	if b.Rows() != 20 || b.Cols() != 40 {
		t.Errorf("expected 20x40, got %dx%d", b.Rows(), b.Cols())
	}

	cell, _ := b.Get(0, 0)
	if cell.Ch != 'A' {
		t.Error("expected content to be preserved")
	}
	cell, _ = b.Get(10, 5)
	if cell.Ch != 'B' {
		t.Error("expected content to be preserved")
	}
}

func TestScreenBufferResizeShrink(t *testing.T) {
	b := NewScreenBuffer(10, 20)
	_ = b.Set(0, 0, Cell{Ch: 'A'})

	b.Resize(5, 10)

	if b.Rows() != 5 || b.Cols() != 10 {
		t.Errorf("expected 5x10, got %dx%d", b.Rows(), b.Cols())
	}
	cell, _ := b.Get(0, 0)
	if cell.Ch != 'A' {
		t.Error("expected content within new bounds to be preserved")
	}
}

func TestScreenBufferInsertChars(t *testing.T) {
	b := NewScreenBuffer(1, 5)
	_ = b.Set(0, 0, Cell{Ch: 'A'})
	_ = b.Set(1, 0, Cell{Ch: 'B'})
	_ = b.Set(2, 0, Cell{Ch: 'C'})

	b.InsertChars(1, 0, 2)

	row, _ := b.GetRow(0)
	got := cellChars(row)
	if got != "A  BC" {
		t.Errorf("expected \"A  BC\", got %q", got)
	}
}

func TestScreenBufferDeleteChars(t *testing.T) {
	b := NewScreenBuffer(1, 5)
	_ = b.Set(0, 0, Cell{Ch: 'A'})
	_ = b.Set(1, 0, Cell{Ch: 'B'})
	_ = b.Set(2, 0, Cell{Ch: 'C'})
	_ = b.Set(3, 0, Cell{Ch: 'D'})

	b.DeleteChars(1, 0, 2)

	row, _ := b.GetRow(0)
	got := cellChars(row)
	if got != "AD   " {
		t.Errorf("expected \"AD   \", got %q", got)
	}
}

func TestScreenBufferInsertLines(t *testing.T) {
	b := NewScreenBuffer(3, 1)
	_ = b.Set(0, 0, Cell{Ch: 'A'})
	_ = b.Set(0, 1, Cell{Ch: 'B'})
	_ = b.Set(0, 2, Cell{Ch: 'C'})

	b.InsertLines(1, 1)

	if got := b.String(); got != "A\n \nB" {
		t.Errorf("unexpected grid:\n%s", got)
	}
}

func TestScreenBufferDeleteLines(t *testing.T) {
	b := NewScreenBuffer(3, 1)
	_ = b.Set(0, 0, Cell{Ch: 'A'})
	_ = b.Set(0, 1, Cell{Ch: 'B'})
	_ = b.Set(0, 2, Cell{Ch: 'C'})

	b.DeleteLines(0, 1)

	if got := b.String(); got != "B\nC\n " {
		t.Errorf("unexpected grid:\n%s", got)
	}
}

func TestScreenBufferCursorClamp(t *testing.T) {
	b := NewScreenBuffer(5, 10)

	b.SetCursor(Cursor{X: 100, Y: -5, Visible: true})
	c := b.Cursor()
	if c.X != 9 || c.Y != 0 {
		t.Errorf("expected clamp to (9,0), got (%d,%d)", c.X, c.Y)
	}

	b.MoveCursorRelative(-20, 20)
	c = b.Cursor()
	if c.X != 0 || c.Y != 4 {
		t.Errorf("expected clamp to (0,4), got (%d,%d)", c.X, c.Y)
	}
}

func cellChars(row []Cell) string {
	out := make([]rune, len(row))
	for i, c := range row {
		out[i] = c.Ch
	}
	return string(out)
}
