package vtcore

// Middleware intercepts Controller operations, letting a caller observe or
// override default behavior. Each field wraps one operation: it receives
// the original arguments and a next function that invokes the default
// implementation.
type Middleware struct {
	// Print wraps the handling of a Print command.
	Print func(ch rune, next func(rune))

	// Control wraps the handling of a Control command.
	Control func(b byte, next func(byte))

	// Csi wraps CSI dispatch.
	Csi func(final byte, params []int, intermediates string, next func(byte, []int, string))

	// Osc wraps OSC dispatch.
	Osc func(command int, data string, next func(int, string))

	// SetTitle wraps title/icon changes (OSC 0/1/2).
	SetTitle func(title, iconName string, next func(string, string))

	// EnterAltScreen wraps DECSET 1049.
	EnterAltScreen func(next func())

	// LeaveAltScreen wraps DECRST 1049.
	LeaveAltScreen func(next func())

	// ClipboardStore wraps OSC 52 store requests.
	ClipboardStore func(selector byte, data []byte, next func(byte, []byte))
}

// Merge copies non-nil middleware functions from other into m, overwriting
// existing values.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.Print != nil {
		m.Print = other.Print
	}
	if other.Control != nil {
		m.Control = other.Control
	}
	if other.Csi != nil {
		m.Csi = other.Csi
	}
	if other.Osc != nil {
		m.Osc = other.Osc
	}
	if other.SetTitle != nil {
		m.SetTitle = other.SetTitle
	}
	if other.EnterAltScreen != nil {
		m.EnterAltScreen = other.EnterAltScreen
	}
	if other.LeaveAltScreen != nil {
		m.LeaveAltScreen = other.LeaveAltScreen
	}
	if other.ClipboardStore != nil {
		m.ClipboardStore = other.ClipboardStore
	}
}
