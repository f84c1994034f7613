package vtcore

import (
	"reflect"
	"testing"
)

func TestParserPrint(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("AB")

	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Kind != CmdPrint || cmds[0].Ch != 'A' {
		t.Errorf("expected Print('A'), got %+v", cmds[0])
	}
	if cmds[1].Kind != CmdPrint || cmds[1].Ch != 'B' {
		t.Errorf("expected Print('B'), got %+v", cmds[1])
	}
}

func TestParserControl(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\n")

	if len(cmds) != 1 || cmds[0].Kind != CmdControl || cmds[0].Control != '\n' {
		t.Fatalf("expected Control(LF), got %+v", cmds)
	}
}

func TestParserDel(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x7F")

	if len(cmds) != 0 {
		t.Fatalf("expected DEL to be dropped, got %+v", cmds)
	}
}

func TestParserCsiBasic(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1b[31m")

	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %d", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Kind != CmdCsi || cmd.Final != 'm' {
		t.Fatalf("expected Csi final 'm', got %+v", cmd)
	}
	if !reflect.DeepEqual(cmd.Params, []int{31}) {
		t.Errorf("expected params [31], got %v", cmd.Params)
	}
}

func TestParserCsiEmptyParamDefaultsZero(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1b[;5H")

	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %+v", cmds)
	}
	if !reflect.DeepEqual(cmds[0].Params, []int{0, 5}) {
		t.Errorf("expected params [0,5], got %v", cmds[0].Params)
	}
}

func TestParserCsiPrivateMarker(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1b[?1049h")

	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %+v", cmds)
	}
	cmd := cmds[0]
	if cmd.Intermediates != "?" {
		t.Errorf("expected intermediates \"?\", got %q", cmd.Intermediates)
	}
	if !reflect.DeepEqual(cmd.Params, []int{1049}) {
		t.Errorf("expected params [1049], got %v", cmd.Params)
	}
}

func TestParserCsiRGB(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1b[38;2;255;0;0m")

	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %+v", cmds)
	}
	want := []int{38, 2, 255, 0, 0}
	if !reflect.DeepEqual(cmds[0].Params, want) {
		t.Errorf("expected params %v, got %v", want, cmds[0].Params)
	}
}

func TestParserOscWithBEL(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1b]2;Hello\x07")

	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %+v", cmds)
	}
	cmd := cmds[0]
	if cmd.Kind != CmdOsc || cmd.OscCommand != 2 || cmd.OscData != "Hello" {
		t.Errorf("expected Osc(2, \"Hello\"), got %+v", cmd)
	}
}

func TestParserOscWithST(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1b]0;Title\x1b\\")

	if len(cmds) < 1 {
		t.Fatalf("expected at least 1 command, got %+v", cmds)
	}
	if cmds[0].Kind != CmdOsc || cmds[0].OscCommand != 0 || cmds[0].OscData != "Title" {
		t.Errorf("expected Osc(0, \"Title\"), got %+v", cmds[0])
	}
}

func TestParserOscNoSeparator(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1b]nosplit\x07")

	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %+v", cmds)
	}
	if cmds[0].OscCommand != 0 || cmds[0].OscData != "nosplit" {
		t.Errorf("expected Osc(0, \"nosplit\"), got %+v", cmds[0])
	}
}

func TestParserDcsParsedAndDropped(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1bPsome dcs payload\x07A")

	if len(cmds) != 1 || cmds[0].Kind != CmdPrint || cmds[0].Ch != 'A' {
		t.Fatalf("expected only Print('A') after dropped DCS, got %+v", cmds)
	}
}

func TestParserSplitFeedEquivalence(t *testing.T) {
	whole := NewParser()
	wholeCmds := whole.FeedString("\x1b[31mZ")

	split := NewParser()
	first := split.FeedString("\x1b")
	second := split.FeedString("[31mZ")
	splitCmds := append(first, second...)

	if !reflect.DeepEqual(wholeCmds, splitCmds) {
		t.Errorf("split feed mismatch: whole=%+v split=%+v", wholeCmds, splitCmds)
	}
}

func TestParserSplitMidCsiParam(t *testing.T) {
	a := NewParser()
	cmdsA := a.FeedString("\x1b[12;34H")

	b := NewParser()
	part1 := b.FeedString("\x1b[1")
	part2 := b.FeedString("2;34H")
	cmdsB := append(part1, part2...)

	if !reflect.DeepEqual(cmdsA, cmdsB) {
		t.Errorf("split mid-param mismatch: whole=%+v split=%+v", cmdsA, cmdsB)
	}
}

func TestParserUnknownEscapeReturnsToGround(t *testing.T) {
	p := NewParser()
	cmds := p.FeedString("\x1bZA")

	if len(cmds) != 1 || cmds[0].Kind != CmdPrint || cmds[0].Ch != 'A' {
		t.Fatalf("expected only Print('A'), got %+v", cmds)
	}
}

func TestParserReset(t *testing.T) {
	p := NewParser()
	p.FeedString("\x1b[3")
	p.Reset()

	cmds := p.FeedString("1m")
	if len(cmds) != 2 || cmds[0].Kind != CmdPrint || cmds[0].Ch != '1' || cmds[1].Kind != CmdPrint || cmds[1].Ch != 'm' {
		t.Fatalf("expected pending CSI dropped and \"1m\" printed after reset mid-sequence, got %+v", cmds)
	}
}
