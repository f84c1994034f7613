// Package vtcore implements the core state machine of a VT-style terminal
// emulator: an escape-sequence parser, a screen buffer, a terminal
// controller that wires the two together, and a color resolver. It has no
// notion of a PTY, a rendering surface, or a terminal device — it is a
// pure, in-memory engine driven by bytes in and queried by cell/cursor
// reads out.
//
// # Quick Start
//
// Create a controller and write escape sequences to it:
//
//	c := vtcore.New()
//	c.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(c.String())
//
// # Architecture
//
//   - [Parser]: Consumes runes and emits a stream of [Command] values —
//     Print, Control, Csi, Osc.
//   - [ScreenBuffer]: A rows×cols grid of [Cell] plus a [Cursor]. Pure data;
//     its methods are primitive mutations (Set, ScrollUp, InsertLines, ...)
//     with no knowledge of escape sequences.
//   - [Controller]: Owns a primary and an alternate ScreenBuffer, dispatches
//     parsed Commands onto the active one, and tracks the ambient state a
//     Buffer alone can't: current SGR style, scroll region, mode flags,
//     window title, palette overrides.
//   - [Cell]: One styled character position. Cells are value types — every
//     mutating method returns a new Cell rather than mutating in place.
//
// # Controller
//
// Controller implements [io.Writer], so it can sit at the end of any byte
// stream:
//
//	c := vtcore.New(vtcore.WithSize(24, 80))
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = c
//	cmd.Run()
//
//	for y := 0; y < c.Rows(); y++ {
//	    row, _ := c.GetRow(y)
//	    fmt.Println(cellsToString(row))
//	}
//
// # Alternate Screen
//
// DECSET/DECRST 1049 (CSI ?1049h / CSI ?1049l) switches between the primary
// and alternate buffers. The alternate buffer is rebuilt empty every time
// it's entered — it never preserves state across an enter/leave cycle:
//
//	if c.IsAlternateScreen() {
//	    // a full-screen app (vim, less, htop) is in control
//	}
//
// # Colors
//
// Colors are [image/color.RGBA] values. [Palette16] and [Palette256] give
// the fixed ANSI and xterm-256 tables; [ParseColorSpec] parses the
// "#RRGGBB" and "rgb:RR/GG/BB" grammars used by OSC 4/10/11.
//
// A [Cell]'s ResolveForeground method applies the SGR faint attribute by
// blending the resolved color toward black:
//
//	fg := cell.ResolveForeground(defaultFg)
//
// # Providers
//
// [ClipboardProvider] handles OSC 52 clipboard read/write. It defaults to
// [NoopClipboard] if not configured:
//
//	c := vtcore.New(vtcore.WithClipboard(&myClipboard{}))
//
// # Middleware
//
// [Middleware] intercepts Controller operations for logging, recording, or
// overriding default behavior:
//
//	mw := &vtcore.Middleware{
//	    Print: func(ch rune, next func(rune)) {
//	        log.Printf("print %q", ch)
//	        next(ch)
//	    },
//	}
//	c := vtcore.New(vtcore.WithMiddleware(mw))
//
// # Terminal Modes
//
// Mode flags track ambient toggles set via DECSET/DECRST and the standard
// insert/newline modes:
//
//	c.HasMode(vtcore.ModeCursorVisible)
//	c.HasMode(vtcore.ModeBracketedPaste)
//
// # Concurrency
//
// Controller carries no internal lock. Write/WriteString, Resize, Clear and
// Reset mutate its state, each running synchronously to completion; a
// caller driving a Controller from multiple goroutines owns its own
// synchronization.
//
// # Supported Sequences
//
// Cursor movement (CUU/CUD/CUF/CUB/CNL/CPL/CHA/CUP/VPA), cursor save/
// restore (SCP/RCP), erase (ED/EL/ECH), insert/delete (ICH/DCH/IL/DL),
// scrolling (SU/SD/DECSTBM), SGR character attributes with 16/256/24-bit
// color, DECSET/DECRST terminal modes, the alternate screen buffer, window
// title (OSC 0/1/2), palette redefinition (OSC 4), default fg/bg (OSC
// 10/11), clipboard (OSC 52), and hyperlinks (OSC 8).
package vtcore
