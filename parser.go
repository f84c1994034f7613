package vtcore

import "strconv"

// parserState is the parser's current position in the VT500-family state
// machine (spec.md §3, ParserState).
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsPassthrough
)

// CommandKind tags the variant a Command holds.
type CommandKind int

const (
	// CmdPrint carries one printable codepoint.
	CmdPrint CommandKind = iota
	// CmdControl carries a C0 control byte.
	CmdControl
	// CmdCsi carries a parsed CSI sequence.
	CmdCsi
	// CmdOsc carries a parsed OSC sequence.
	CmdOsc
)

// Command is the tagged variant the Parser emits (spec.md §3). Only the
// fields relevant to Kind are meaningful.
type Command struct {
	Kind CommandKind

	Ch rune // CmdPrint

	Control byte // CmdControl

	Final         byte   // CmdCsi
	Params        []int  // CmdCsi
	Intermediates string // CmdCsi

	OscCommand int    // CmdOsc
	OscData    string // CmdOsc
}

// Parser is a DEC VT500-family escape-sequence state machine. It consumes
// a stream of runes and emits a stream of Commands, preserving state
// across Feed calls so a sequence split mid-stream still parses correctly
// (spec.md §4.1).
type Parser struct {
	state parserState

	paramBuf      []byte
	params        []int
	intermediates []byte

	oscNumBuf   []byte
	oscData     []byte
	oscHasSplit bool
}

// NewParser returns a parser in the Ground state.
func NewParser() *Parser {
	return &Parser{}
}

// Reset returns the parser to the Ground state and clears all
// accumulators.
func (p *Parser) Reset() {
	p.state = stateGround
	p.paramBuf = p.paramBuf[:0]
	p.params = p.params[:0]
	p.intermediates = p.intermediates[:0]
	p.oscNumBuf = p.oscNumBuf[:0]
	p.oscData = p.oscData[:0]
	p.oscHasSplit = false
}

// Feed consumes input left to right and returns the Commands it produces,
// in emission order. It never blocks and never loses bytes.
func (p *Parser) Feed(input []rune) []Command {
	var out []Command
	for _, r := range input {
		if cmd, ok := p.step(r); ok {
			out = append(out, cmd)
		}
	}
	return out
}

// FeedString is a convenience wrapper around Feed for string input.
func (p *Parser) FeedString(s string) []Command {
	return p.Feed([]rune(s))
}

func (p *Parser) step(r rune) (Command, bool) {
	switch p.state {
	case stateGround:
		return p.stepGround(r)
	case stateEscape:
		return p.stepEscape(r)
	case stateEscapeIntermediate:
		return p.stepEscapeIntermediate(r)
	case stateCsiEntry:
		return p.stepCsiEntry(r)
	case stateCsiParam:
		return p.stepCsiParam(r)
	case stateCsiIntermediate:
		return p.stepCsiIntermediate(r)
	case stateOscString:
		return p.stepOscString(r)
	case stateDcsEntry, stateDcsParam, stateDcsPassthrough:
		return p.stepDcs(r)
	default:
		p.state = stateGround
		return Command{}, false
	}
}

func (p *Parser) stepGround(r rune) (Command, bool) {
	switch {
	case r == 0x1B:
		p.state = stateEscape
		return Command{}, false
	case r < 0x20:
		return Command{Kind: CmdControl, Control: byte(r)}, true
	case r == 0x7F:
		return Command{}, false
	default:
		return Command{Kind: CmdPrint, Ch: r}, true
	}
}

func (p *Parser) stepEscape(r rune) (Command, bool) {
	switch {
	case r == '[':
		p.clearCsi()
		p.state = stateCsiEntry
	case r == ']':
		p.clearOsc()
		p.state = stateOscString
	case r == 'P':
		p.state = stateDcsEntry
	case r == '\\':
		p.state = stateGround
	case r == 'D', r == 'M', r == 'E':
		p.state = stateGround
	case r >= 0x20 && r <= 0x2F:
		p.state = stateEscapeIntermediate
	default:
		p.state = stateGround
	}
	return Command{}, false
}

func (p *Parser) stepEscapeIntermediate(r rune) (Command, bool) {
	switch {
	case r >= 0x20 && r <= 0x2F:
		// stay
	default:
		p.state = stateGround
	}
	return Command{}, false
}

func (p *Parser) clearCsi() {
	p.paramBuf = p.paramBuf[:0]
	p.params = p.params[:0]
	p.intermediates = p.intermediates[:0]
}

func (p *Parser) stepCsiEntry(r rune) (Command, bool) {
	switch {
	case r >= '0' && r <= '9':
		p.paramBuf = append(p.paramBuf, byte(r))
		p.state = stateCsiParam
	case r == ';':
		p.params = append(p.params, 0)
		p.state = stateCsiParam
	case r >= 0x3C && r <= 0x3F:
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateCsiParam
	case r >= 0x20 && r <= 0x2F:
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateCsiIntermediate
	case r >= 0x40 && r <= 0x7E:
		return p.finishCsi(r)
	default:
		p.state = stateGround
	}
	return Command{}, false
}

func (p *Parser) stepCsiParam(r rune) (Command, bool) {
	switch {
	case r >= '0' && r <= '9':
		p.paramBuf = append(p.paramBuf, byte(r))
	case r == ';':
		p.pushCsiParam()
	case r >= 0x3C && r <= 0x3F:
		p.intermediates = append(p.intermediates, byte(r))
	case r >= 0x20 && r <= 0x2F:
		p.finalizeCsiParam()
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateCsiIntermediate
	case r >= 0x40 && r <= 0x7E:
		return p.finishCsi(r)
	default:
		p.state = stateGround
	}
	return Command{}, false
}

func (p *Parser) stepCsiIntermediate(r rune) (Command, bool) {
	switch {
	case r >= 0x20 && r <= 0x2F:
		p.intermediates = append(p.intermediates, byte(r))
	case r >= 0x40 && r <= 0x7E:
		return p.finishCsi(r)
	default:
		p.state = stateGround
	}
	return Command{}, false
}

// pushCsiParam finalizes the current digit buffer (empty ⇒ 0) as a
// finished param, per spec.md §4.1's "empty parameter defaults to 0".
func (p *Parser) pushCsiParam() {
	p.params = append(p.params, parseCsiParam(p.paramBuf))
	p.paramBuf = p.paramBuf[:0]
}

func (p *Parser) finalizeCsiParam() {
	if len(p.paramBuf) > 0 {
		p.pushCsiParam()
	}
}

func parseCsiParam(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	v, err := strconv.Atoi(string(buf))
	if err != nil {
		return 0
	}
	return v
}

func (p *Parser) finishCsi(final rune) (Command, bool) {
	if len(p.paramBuf) > 0 {
		p.pushCsiParam()
	}
	cmd := Command{
		Kind:          CmdCsi,
		Final:         byte(final),
		Params:        append([]int(nil), p.params...),
		Intermediates: string(p.intermediates),
	}
	p.clearCsi()
	p.state = stateGround
	return cmd, true
}

func (p *Parser) clearOsc() {
	p.oscNumBuf = p.oscNumBuf[:0]
	p.oscData = p.oscData[:0]
	p.oscHasSplit = false
}

func (p *Parser) stepOscString(r rune) (Command, bool) {
	switch {
	case r == 0x07:
		return p.finishOsc()
	case r == 0x1B:
		cmd, ok := p.finishOsc()
		p.state = stateEscape
		return cmd, ok
	case r == ';' && !p.oscHasSplit:
		p.oscHasSplit = true
	default:
		if p.oscHasSplit {
			p.oscData = append(p.oscData, []byte(string(r))...)
		} else {
			p.oscNumBuf = append(p.oscNumBuf, []byte(string(r))...)
		}
	}
	return Command{}, false
}

// finishOsc emits the accumulated OSC command. If no ';' was ever seen,
// command=0 and the whole string is data, per spec.md §4.1's edge case.
func (p *Parser) finishOsc() (Command, bool) {
	var cmdNum int
	var data string
	if p.oscHasSplit {
		cmdNum, _ = strconv.Atoi(string(p.oscNumBuf))
		data = string(p.oscData)
	} else {
		cmdNum = 0
		data = string(p.oscNumBuf)
	}
	cmd := Command{Kind: CmdOsc, OscCommand: cmdNum, OscData: data}
	p.clearOsc()
	p.state = stateGround
	return cmd, true
}

// stepDcs accumulates and discards DCS payloads (parsed-and-dropped per
// spec.md §2 and §4.1's Non-goals).
func (p *Parser) stepDcs(r rune) (Command, bool) {
	switch {
	case r == 0x07:
		p.state = stateGround
	case r == 0x1B:
		p.state = stateEscape
	default:
		p.state = stateDcsPassthrough
	}
	return Command{}, false
}
