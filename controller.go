package vtcore

import "image/color"

// ModeFlags is a bitmask of the Controller's ambient mode state
// (spec.md §3, TerminalState mode flags).
type ModeFlags uint8

const (
	ModeCursorKeys ModeFlags = 1 << iota
	ModeBracketedPaste
	ModeInsert
	ModeNewline
	ModeCursorVisible
)

const (
	// DefaultRows is the Controller's default height when none is given.
	DefaultRows = 24
	// DefaultCols is the Controller's default width when none is given.
	DefaultCols = 80
)

// Controller owns a primary and an alternate ScreenBuffer, the current
// style template, saved cursor, scroll region, mode flags, title/icon
// strings, and palette overrides. It consumes a Parser's command stream
// and applies each Command to the active buffer (spec.md §4.3).
//
// Controller is deliberately not internally synchronized: each method runs
// synchronously to completion, and callers needing cross-goroutine access
// own their own lock (spec.md §5).
type Controller struct {
	rows, cols int

	mainBuf *ScreenBuffer
	altBuf  *ScreenBuffer
	active  *ScreenBuffer
	usingAlt bool

	parser *Parser

	currentStyle Cell
	savedCursor  *Cursor

	scrollTop, scrollBottom int

	modes ModeFlags

	title, iconName string

	paletteOverrides map[int]color.RGBA
	defaultFg        *color.RGBA
	defaultBg        *color.RGBA

	currentHyperlink *Hyperlink

	middleware        *Middleware
	clipboardProvider ClipboardProvider
}

// Option configures a Controller during construction.
type Option func(*Controller)

// WithSize sets the controller's dimensions. Values <= 0 fall back to the
// defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return func(c *Controller) {
		c.rows = rows
		c.cols = cols
	}
}

// WithClipboard sets the handler for OSC 52 clipboard requests. Defaults
// to a no-op if not set.
func WithClipboard(p ClipboardProvider) Option {
	return func(c *Controller) {
		c.clipboardProvider = p
	}
}

// WithMiddleware sets functions to intercept Controller operations. Each
// middleware receives the original parameters and a next function to
// call the default implementation.
func WithMiddleware(mw *Middleware) Option {
	return func(c *Controller) {
		if c.middleware == nil {
			c.middleware = &Middleware{}
		}
		c.middleware.Merge(mw)
	}
}

// New creates a Controller with the given options. Defaults to 24x80,
// cursor visible.
func New(opts ...Option) *Controller {
	c := &Controller{
		rows:              DefaultRows,
		cols:              DefaultCols,
		clipboardProvider: NoopClipboard{},
		paletteOverrides:  make(map[int]color.RGBA),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mainBuf = NewScreenBuffer(c.rows, c.cols)
	c.altBuf = NewScreenBuffer(c.rows, c.cols)
	c.active = c.mainBuf
	c.parser = NewParser()
	c.currentStyle = NewCell()
	c.scrollTop = 0
	c.scrollBottom = c.rows - 1
	c.modes = ModeCursorVisible

	return c
}

// Rows returns the controller height in character rows.
func (c *Controller) Rows() int { return c.rows }

// Cols returns the controller width in character columns.
func (c *Controller) Cols() int { return c.cols }

// Cursor returns the active buffer's current cursor.
func (c *Controller) Cursor() Cursor { return c.active.Cursor() }

// Title returns the current window title string.
func (c *Controller) Title() string { return c.title }

// IconName returns the current icon name string.
func (c *Controller) IconName() string { return c.iconName }

// HasMode reports whether the given mode flag is enabled.
func (c *Controller) HasMode(m ModeFlags) bool { return c.modes&m != 0 }

// IsAlternateScreen reports whether the alternate buffer is active.
func (c *Controller) IsAlternateScreen() bool { return c.usingAlt }

// ScrollRegion returns the current scrolling region bounds (0-indexed,
// inclusive).
func (c *Controller) ScrollRegion() (top, bottom int) { return c.scrollTop, c.scrollBottom }

// GetCell returns the cell at (x,y) in the active buffer.
func (c *Controller) GetCell(x, y int) (Cell, error) { return c.active.Get(x, y) }

// GetRow returns a copy of row y in the active buffer.
func (c *Controller) GetRow(y int) ([]Cell, error) { return c.active.GetRow(y) }

// String renders the active buffer's grid, rows joined by "\n".
func (c *Controller) String() string { return c.active.String() }

// SetMiddleware replaces the middleware at runtime.
func (c *Controller) SetMiddleware(mw *Middleware) { c.middleware = mw }

// SetClipboardProvider replaces the clipboard provider at runtime.
func (c *Controller) SetClipboardProvider(p ClipboardProvider) { c.clipboardProvider = p }

// Write feeds input bytes through the Parser and applies the resulting
// commands to the active buffer. Implements io.Writer.
func (c *Controller) Write(data []byte) (int, error) {
	c.WriteString(string(data))
	return len(data), nil
}

// WriteString feeds input through the Parser and applies the resulting
// commands (spec.md §6, "write(bytes_or_chars)").
func (c *Controller) WriteString(s string) {
	for _, cmd := range c.parser.FeedString(s) {
		c.apply(cmd)
	}
}

func (c *Controller) apply(cmd Command) {
	switch cmd.Kind {
	case CmdPrint:
		c.dispatchPrint(cmd.Ch)
	case CmdControl:
		c.dispatchControl(cmd.Control)
	case CmdCsi:
		c.dispatchCsi(cmd.Final, cmd.Params, cmd.Intermediates)
	case CmdOsc:
		c.dispatchOsc(cmd.OscCommand, cmd.OscData)
	}
}

func (c *Controller) dispatchPrint(ch rune) {
	if c.middleware != nil && c.middleware.Print != nil {
		c.middleware.Print(ch, c.printInternal)
		return
	}
	c.printInternal(ch)
}

// printInternal implements spec.md §4.3's Printing rules.
func (c *Controller) printInternal(ch rune) {
	cur := c.active.Cursor()

	if c.modes&ModeInsert != 0 {
		c.active.InsertChars(cur.X, cur.Y, 1)
	}

	cell := c.currentStyle.WithChar(ch)
	cell.Hyperlink = c.currentHyperlink
	_ = c.active.Set(cur.X, cur.Y, cell)

	cur.X++
	if cur.X == c.cols {
		cur.X = 0
		cur.Y++
	}
	if cur.Y > c.scrollBottom {
		c.active.ScrollUp(1)
		cur.Y = c.scrollBottom
	}
	c.active.SetCursor(cur)
}

func (c *Controller) dispatchControl(b byte) {
	if c.middleware != nil && c.middleware.Control != nil {
		c.middleware.Control(b, c.controlInternal)
		return
	}
	c.controlInternal(b)
}

// controlInternal implements spec.md §4.3's control-character handling.
func (c *Controller) controlInternal(b byte) {
	cur := c.active.Cursor()
	switch b {
	case 0x0A: // LF
		cur.Y++
		if c.modes&ModeNewline != 0 {
			cur.X = 0
		}
		if cur.Y > c.scrollBottom {
			c.active.ScrollUp(1)
			cur.Y = c.scrollBottom
		}
		c.active.SetCursor(cur)
	case 0x0D: // CR
		cur.X = 0
		c.active.SetCursor(cur)
	case 0x09: // HT
		next := ((cur.X / 8) + 1) * 8
		if next >= c.cols {
			c.controlInternal(0x0A)
			return
		}
		cur.X = next
		c.active.SetCursor(cur)
	case 0x08: // BS
		if cur.X > 0 {
			cur.X--
			c.active.SetCursor(cur)
		}
	}
}

func (c *Controller) dispatchCsi(final byte, params []int, intermediates string) {
	if c.middleware != nil && c.middleware.Csi != nil {
		c.middleware.Csi(final, params, intermediates, c.csiInternal)
		return
	}
	c.csiInternal(final, params, intermediates)
}

func param(params []int, idx, def int) int {
	if idx >= len(params) || params[idx] == 0 {
		return def
	}
	return params[idx]
}

func paramRaw(params []int, idx, def int) int {
	if idx >= len(params) {
		return def
	}
	return params[idx]
}

// csiInternal dispatches keyed on final byte, per spec.md §4.3's CSI
// dispatch table. Unknown final bytes are silently ignored.
func (c *Controller) csiInternal(final byte, params []int, intermediates string) {
	isPrivate := intermediates == "?"

	switch final {
	case 'A': // CUU
		c.moveCursor(0, -param(params, 0, 1))
	case 'B': // CUD
		c.moveCursor(0, param(params, 0, 1))
	case 'C': // CUF
		c.moveCursor(param(params, 0, 1), 0)
	case 'D': // CUB
		c.moveCursor(-param(params, 0, 1), 0)
	case 'E': // CNL
		c.moveCursor(0, param(params, 0, 1))
		c.setCursorX(0)
	case 'F': // CPL
		c.moveCursor(0, -param(params, 0, 1))
		c.setCursorX(0)
	case 'G': // CHA
		c.setCursorX(param(params, 0, 1) - 1)
	case 'H', 'f': // CUP
		c.setCursorPos(param(params, 1, 1)-1, param(params, 0, 1)-1)
	case 'd': // VPA
		c.setCursorY(param(params, 0, 1) - 1)
	case 'J': // ED
		c.eraseInDisplay(param(params, 0, 0))
	case 'K': // EL
		c.eraseInLine(param(params, 0, 0))
	case 'S': // SU
		c.active.ScrollUp(param(params, 0, 1))
	case 'T': // SD
		c.active.ScrollDown(param(params, 0, 1))
	case 'L': // IL
		c.active.InsertLines(c.active.Cursor().Y, param(params, 0, 1))
	case 'M': // DL
		c.active.DeleteLines(c.active.Cursor().Y, param(params, 0, 1))
	case '@': // ICH
		cur := c.active.Cursor()
		c.active.InsertChars(cur.X, cur.Y, param(params, 0, 1))
	case 'P': // DCH
		cur := c.active.Cursor()
		c.active.DeleteChars(cur.X, cur.Y, param(params, 0, 1))
	case 'X': // ECH
		cur := c.active.Cursor()
		c.active.EraseChars(cur.X, cur.Y, param(params, 0, 1))
	case 'm': // SGR
		c.applySGR(params)
	case 'h': // SM
		c.setModes(params, isPrivate, true)
	case 'l': // RM
		c.setModes(params, isPrivate, false)
	case 's': // SCP
		cur := c.active.Cursor()
		saved := cur
		c.savedCursor = &saved
	case 'u': // RCP
		if c.savedCursor != nil {
			c.active.SetCursor(*c.savedCursor)
		}
	case 'r': // DECSTBM
		top := param(params, 0, 1) - 1
		bottom := paramRaw(params, 1, c.rows) - 1
		if bottom < 0 || bottom >= c.rows {
			bottom = c.rows - 1
		}
		if top < 0 {
			top = 0
		}
		if top <= bottom {
			c.scrollTop, c.scrollBottom = top, bottom
		}
	}
}

func (c *Controller) moveCursor(dx, dy int) {
	cur := c.active.Cursor()
	cur.X += dx
	cur.Y += dy
	cur = clampToRegion(cur, 0, c.cols-1, c.scrollTop, c.scrollBottom)
	c.active.SetCursor(cur)
}

func clampToRegion(cur Cursor, xMin, xMax, yMin, yMax int) Cursor {
	if cur.X < xMin {
		cur.X = xMin
	}
	if cur.X > xMax {
		cur.X = xMax
	}
	if cur.Y < yMin {
		cur.Y = yMin
	}
	if cur.Y > yMax {
		cur.Y = yMax
	}
	return cur
}

func (c *Controller) setCursorX(x int) {
	cur := c.active.Cursor()
	cur.X = x
	c.active.SetCursor(cur)
}

func (c *Controller) setCursorY(y int) {
	cur := c.active.Cursor()
	cur.Y = y
	cur = clampToRegion(cur, 0, c.cols-1, c.scrollTop, c.scrollBottom)
	c.active.SetCursor(cur)
}

func (c *Controller) setCursorPos(x, y int) {
	cur := Cursor{X: x, Y: y, Visible: c.active.Cursor().Visible, Style: c.active.Cursor().Style}
	c.active.SetCursor(cur)
}

// eraseInDisplay implements CSI J.
func (c *Controller) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		c.active.ClearFromCursor()
	case 1:
		c.active.ClearToCursor()
	case 2, 3:
		c.active.Clear()
	}
}

// eraseInLine implements CSI K.
func (c *Controller) eraseInLine(mode int) {
	cur := c.active.Cursor()
	switch mode {
	case 0:
		c.active.EraseChars(cur.X, cur.Y, c.cols-cur.X)
	case 1:
		for x := 0; x <= cur.X && x < c.cols; x++ {
			_ = c.active.Set(x, cur.Y, NewCell())
		}
	case 2:
		_ = c.active.ClearRow(cur.Y)
	}
}

// applySGR applies SGR parameters left-to-right, mutating currentStyle
// (spec.md §4.3).
func (c *Controller) applySGR(params []int) {
	if len(params) == 0 {
		c.currentStyle = NewCell()
		return
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			c.currentStyle = NewCell()
		case p == 1:
			c.currentStyle = c.currentStyle.SetFlag(CellBold)
		case p == 22:
			c.currentStyle = c.currentStyle.ClearFlag(CellBold).ClearFlag(CellFaint)
		case p == 2:
			c.currentStyle = c.currentStyle.SetFlag(CellFaint)
		case p == 3:
			c.currentStyle = c.currentStyle.SetFlag(CellItalic)
		case p == 23:
			c.currentStyle = c.currentStyle.ClearFlag(CellItalic)
		case p == 4:
			c.currentStyle = c.currentStyle.SetFlag(CellUnderline)
		case p == 24:
			c.currentStyle = c.currentStyle.ClearFlag(CellUnderline)
		case p >= 30 && p <= 37:
			rgb := Palette16[p-30]
			c.currentStyle.Fg = &rgb
		case p >= 90 && p <= 97:
			rgb := Palette16[p-90+8]
			c.currentStyle.Fg = &rgb
		case p >= 40 && p <= 47:
			rgb := Palette16[p-40]
			c.currentStyle.Bg = &rgb
		case p >= 100 && p <= 107:
			rgb := Palette16[p-100+8]
			c.currentStyle.Bg = &rgb
		case p == 39:
			c.currentStyle.Fg = nil
		case p == 49:
			c.currentStyle.Bg = nil
		case p == 38, p == 48:
			i = c.applyExtendedColor(params, i, p == 38)
		}
	}
}

// applyExtendedColor handles SGR 38/48 and returns the index of the last
// param consumed (spec.md §4.3, §9's unrecognized-type-byte note).
func (c *Controller) applyExtendedColor(params []int, i int, isFg bool) int {
	if i+1 >= len(params) {
		return i
	}
	kind := params[i+1]
	switch kind {
	case 5:
		if i+2 >= len(params) {
			return i + 1
		}
		idx := params[i+2]
		rgb := c.resolve256(idx)
		c.setExtendedColor(isFg, rgb)
		return i + 2
	case 2:
		if i+4 >= len(params) {
			return i + 1
		}
		r, g, b := params[i+2], params[i+3], params[i+4]
		rgb := FromRGB(r, g, b)
		c.setExtendedColor(isFg, rgb)
		return i + 4
	default:
		return i + 1
	}
}

func (c *Controller) setExtendedColor(isFg bool, rgb color.RGBA) {
	if isFg {
		c.currentStyle.Fg = &rgb
	} else {
		c.currentStyle.Bg = &rgb
	}
}

func (c *Controller) resolve256(idx int) color.RGBA {
	if override, ok := c.paletteOverrides[idx]; ok {
		return override
	}
	if idx < 0 {
		return Palette256[0]
	}
	if idx > 255 {
		return Palette256[255]
	}
	return Palette256[idx]
}

// setModes implements DECSET/DECRST (CSI h/l), standard and DEC private.
func (c *Controller) setModes(params []int, private, set bool) {
	for _, p := range params {
		if private {
			switch p {
			case 1:
				c.setMode(ModeCursorKeys, set)
			case 25:
				c.setCursorVisible(set)
			case 1049:
				if set {
					c.enterAltScreen()
				} else {
					c.leaveAltScreen()
				}
			case 2004:
				c.setMode(ModeBracketedPaste, set)
			}
		} else {
			switch p {
			case 4:
				c.setMode(ModeInsert, set)
			case 20:
				c.setMode(ModeNewline, set)
			}
		}
	}
}

func (c *Controller) setMode(m ModeFlags, on bool) {
	if on {
		c.modes |= m
	} else {
		c.modes &^= m
	}
}

func (c *Controller) setCursorVisible(visible bool) {
	cur := c.active.Cursor()
	cur.Visible = visible
	c.active.SetCursor(cur)
	c.setMode(ModeCursorVisible, visible)
}

// enterAltScreen implements DECSET 1049. A no-op if already on alt.
func (c *Controller) enterAltScreen() {
	if c.usingAlt {
		return
	}
	run := func() {
		c.altBuf = NewScreenBuffer(c.rows, c.cols)
		c.active = c.altBuf
		c.usingAlt = true
	}
	if c.middleware != nil && c.middleware.EnterAltScreen != nil {
		c.middleware.EnterAltScreen(run)
		return
	}
	run()
}

// leaveAltScreen implements DECRST 1049. A no-op if already on main. The
// alt buffer does not preserve state across enter/leave cycles
// (spec.md §4.4) — it is simply discarded.
func (c *Controller) leaveAltScreen() {
	if !c.usingAlt {
		return
	}
	run := func() {
		c.active = c.mainBuf
		c.usingAlt = false
	}
	if c.middleware != nil && c.middleware.LeaveAltScreen != nil {
		c.middleware.LeaveAltScreen(run)
		return
	}
	run()
}

func (c *Controller) dispatchOsc(command int, data string) {
	if c.middleware != nil && c.middleware.Osc != nil {
		c.middleware.Osc(command, data, c.oscInternal)
		return
	}
	c.oscInternal(command, data)
}

// oscInternal dispatches keyed on OSC command number, per spec.md §4.3.
func (c *Controller) oscInternal(command int, data string) {
	switch command {
	case 0:
		c.setTitle(data, data)
	case 1:
		c.setTitle(c.title, data)
	case 2:
		c.setTitle(data, c.iconName)
	case 4:
		c.setPaletteEntries(data)
	case 8:
		c.setHyperlink(data)
	case 10:
		if rgb, ok := ParseColorSpec(data); ok {
			c.defaultFg = &rgb
		}
	case 11:
		if rgb, ok := ParseColorSpec(data); ok {
			c.defaultBg = &rgb
		}
	case 52:
		c.dispatchClipboard(data)
	}
}

func (c *Controller) setTitle(title, iconName string) {
	run := func(t, i string) {
		c.title, c.iconName = t, i
	}
	if c.middleware != nil && c.middleware.SetTitle != nil {
		c.middleware.SetTitle(title, iconName, run)
		return
	}
	run(title, iconName)
}

// setPaletteEntries implements OSC 4, "idx;spec[;idx;spec...]".
func (c *Controller) setPaletteEntries(data string) {
	fields := splitOscFields(data)
	for i := 0; i+1 < len(fields); i += 2 {
		idx, ok := parseOscInt(fields[i])
		if !ok || idx < 0 || idx >= 256 {
			continue
		}
		rgb, ok := ParseColorSpec(fields[i+1])
		if !ok {
			continue
		}
		c.paletteOverrides[idx] = rgb
	}
}

// setHyperlink implements OSC 8, "params;uri" (SPEC_FULL.md's hyperlink
// supplement). A missing ';' leaves the active hyperlink untouched.
func (c *Controller) setHyperlink(data string) {
	idx := indexByte(data, ';')
	if idx < 0 {
		return
	}
	uri := data[idx+1:]
	if uri == "" {
		c.currentHyperlink = nil
		return
	}
	c.currentHyperlink = &Hyperlink{ID: data[:idx], URI: uri}
}

func (c *Controller) dispatchClipboard(data string) {
	idx := indexByte(data, ';')
	if idx < 0 {
		return
	}
	selector := data[:idx]
	var sel byte = 'c'
	if len(selector) > 0 {
		sel = selector[0]
	}
	payload := []byte(data[idx+1:])

	run := func(s byte, d []byte) {
		c.clipboardProvider.Write(s, d)
	}
	if c.middleware != nil && c.middleware.ClipboardStore != nil {
		c.middleware.ClipboardStore(sel, payload, run)
		return
	}
	run(sel, payload)
}

func splitOscFields(s string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			fields = append(fields, s[start:i])
			start = i + 1
		}
	}
	fields = append(fields, s[start:])
	return fields
}

func parseOscInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// Resize changes both buffers' dimensions, re-clamps the cursor, and
// resets the scroll region's bottom to the last new row; the top is kept
// unless it falls outside the new height, in which case it becomes 0
// (spec.md §6).
func (c *Controller) Resize(newRows, newCols int) {
	if newRows <= 0 || newCols <= 0 {
		return
	}
	c.rows, c.cols = newRows, newCols
	c.mainBuf.Resize(newRows, newCols)
	c.altBuf.Resize(newRows, newCols)

	c.mainBuf.SetCursor(c.mainBuf.Cursor())
	c.altBuf.SetCursor(c.altBuf.Cursor())

	c.scrollBottom = newRows - 1
	if c.scrollTop >= newRows {
		c.scrollTop = 0
	}
}

// Clear performs a full screen clear and moves the cursor to the origin.
func (c *Controller) Clear() {
	c.active.Clear()
	c.active.SetCursor(Cursor{Visible: c.active.Cursor().Visible, Style: c.active.Cursor().Style})
}

// Reset performs a full reset: both buffers cleared, cursor at origin,
// current style reset, parser reset, modes default, title/icon cleared,
// scroll region full, saved cursor dropped (spec.md §6).
func (c *Controller) Reset() {
	c.mainBuf.Clear()
	c.altBuf.Clear()
	c.mainBuf.SetCursor(NewCursor())
	c.altBuf.SetCursor(NewCursor())
	c.active = c.mainBuf
	c.usingAlt = false

	c.currentStyle = NewCell()
	c.savedCursor = nil
	c.parser.Reset()
	c.modes = ModeCursorVisible
	c.title = ""
	c.iconName = ""
	c.scrollTop = 0
	c.scrollBottom = c.rows - 1
	c.currentHyperlink = nil
	c.paletteOverrides = make(map[int]color.RGBA)
	c.defaultFg = nil
	c.defaultBg = nil
}

// DefaultForeground returns the OSC-10 default foreground override, if
// any.
func (c *Controller) DefaultForeground() (color.RGBA, bool) {
	if c.defaultFg == nil {
		return color.RGBA{}, false
	}
	return *c.defaultFg, true
}

// DefaultBackground returns the OSC-11 default background override, if
// any.
func (c *Controller) DefaultBackground() (color.RGBA, bool) {
	if c.defaultBg == nil {
		return color.RGBA{}, false
	}
	return *c.defaultBg, true
}

// PaletteOverride returns the palette override installed at idx via
// OSC 4, if any.
func (c *Controller) PaletteOverride(idx int) (color.RGBA, bool) {
	rgb, ok := c.paletteOverrides[idx]
	return rgb, ok
}
