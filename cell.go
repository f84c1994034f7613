package vtcore

import "image/color"

// CellFlags is a bitmask of the text attributes a Cell can carry.
type CellFlags uint8

const (
	CellBold CellFlags = 1 << iota
	CellItalic
	CellUnderline
	CellFaint
)

// Hyperlink associates a Cell with a clickable link (OSC 8). Not part of
// spec.md's base Cell; supplemented from the teacher's hyperlink support
// since spec.md's Non-goals never name it (SPEC_FULL.md, "Supplemented
// features").
type Hyperlink struct {
	ID  string
	URI string
}

// Cell is a fully-styled single character position: one codepoint plus
// optional 24-bit colors and boolean attribute flags. A nil Fg or Bg means
// "use the active default" (spec.md §3). Cells are value types; every
// mutating helper here returns a new Cell rather than mutating in place.
type Cell struct {
	Ch        rune
	Fg        *color.RGBA
	Bg        *color.RGBA
	Flags     CellFlags
	Hyperlink *Hyperlink
}

// NewCell returns an empty cell: a space with no colors or attributes.
func NewCell() Cell {
	return Cell{Ch: ' '}
}

// IsEmpty reports whether the cell is a space with no color or attribute
// state set, per spec.md §3.
func (c Cell) IsEmpty() bool {
	return c.Ch == ' ' && c.Fg == nil && c.Bg == nil && c.Flags == 0 && c.Hyperlink == nil
}

// WithChar returns a copy of c with Ch replaced. Printing clones the active
// style template and overwrites Ch, per spec.md §9 ("current style as
// template cell").
func (c Cell) WithChar(ch rune) Cell {
	c.Ch = ch
	return c
}

// HasFlag reports whether the given flag is set.
func (c Cell) HasFlag(f CellFlags) bool {
	return c.Flags&f != 0
}

// SetFlag returns a copy of c with the given flag set.
func (c Cell) SetFlag(f CellFlags) Cell {
	c.Flags |= f
	return c
}

// ClearFlag returns a copy of c with the given flag cleared.
func (c Cell) ClearFlag(f CellFlags) Cell {
	c.Flags &^= f
	return c
}

// Equal reports whether two cells have identical character, colors,
// attribute flags, and hyperlink.
func (c Cell) Equal(other Cell) bool {
	if c.Ch != other.Ch || c.Flags != other.Flags {
		return false
	}
	if !colorEqual(c.Fg, other.Fg) || !colorEqual(c.Bg, other.Bg) {
		return false
	}
	if (c.Hyperlink == nil) != (other.Hyperlink == nil) {
		return false
	}
	if c.Hyperlink != nil && *c.Hyperlink != *other.Hyperlink {
		return false
	}
	return true
}

// ResolveForeground returns the cell's effective foreground: the explicit
// Fg if set, else defaultFg, dimmed toward black if CellFaint is set
// (spec.md §4.5 Color Resolver; SPEC_FULL.md's dim-blend wiring).
func (c Cell) ResolveForeground(defaultFg color.RGBA) color.RGBA {
	fg := defaultFg
	if c.Fg != nil {
		fg = *c.Fg
	}
	if c.HasFlag(CellFaint) {
		fg = DimColor(fg)
	}
	return fg
}

func colorEqual(a, b *color.RGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
