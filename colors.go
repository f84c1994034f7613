package vtcore

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette16 is the fixed 16-color VGA-family table (standard 8 + bright 8)
// with the canonical xterm values named in spec.md §4.5.
var Palette16 = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF}, // black
	{0xCD, 0x00, 0x00, 0xFF}, // red
	{0x00, 0xCD, 0x00, 0xFF}, // green
	{0xCD, 0xCD, 0x00, 0xFF}, // yellow
	{0x00, 0x00, 0xEE, 0xFF}, // blue
	{0xCD, 0x00, 0xCD, 0xFF}, // magenta
	{0x00, 0xCD, 0xCD, 0xFF}, // cyan
	{0xE5, 0xE5, 0xE5, 0xFF}, // white
	{0x7F, 0x7F, 0x7F, 0xFF}, // bright black
	{0xFF, 0x00, 0x00, 0xFF}, // bright red
	{0x00, 0xFF, 0x00, 0xFF}, // bright green
	{0xFF, 0xFF, 0x00, 0xFF}, // bright yellow
	{0x5C, 0x5C, 0xFF, 0xFF}, // bright blue
	{0xFF, 0x00, 0xFF, 0xFF}, // bright magenta
	{0x00, 0xFF, 0xFF, 0xFF}, // bright cyan
	{0xFF, 0xFF, 0xFF, 0xFF}, // bright white
}

// Palette256 is the constant 256-color palette per spec.md §4.5: indices
// 0-15 mirror Palette16, 16-231 form a 6x6x6 color cube, 232-255 are a
// 24-step grayscale ramp.
var Palette256 [256]color.RGBA

// cubeLevel converts a 0-5 cube coordinate into its 0-255 channel value,
// per spec.md §4.5's formula.
func cubeLevel(c int) uint8 {
	if c == 0 {
		return 0
	}
	return uint8(55 + 40*c)
}

func init() {
	for i := 0; i < 16; i++ {
		Palette256[i] = Palette16[i]
	}

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				Palette256[i] = color.RGBA{R: cubeLevel(r), G: cubeLevel(g), B: cubeLevel(b), A: 0xFF}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + 10*j)
		Palette256[232+j] = color.RGBA{R: gray, G: gray, B: gray, A: 0xFF}
	}
}

// FromRGB builds an opaque color.RGBA from three channel values, clamping
// each to [0, 255] (spec.md §6, "Palette accessors").
func FromRGB(r, g, b int) color.RGBA {
	return color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 0xFF}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// FgFromSGR resolves an SGR foreground code (30-37 standard, 90-97 bright)
// to its Palette16 entry. ok is false for codes outside those ranges.
func FgFromSGR(code int) (c color.RGBA, ok bool) {
	return colorFromSGR(code, 30, 90)
}

// BgFromSGR resolves an SGR background code (40-47 standard, 100-107
// bright) to its Palette16 entry. ok is false for codes outside those
// ranges.
func BgFromSGR(code int) (c color.RGBA, ok bool) {
	return colorFromSGR(code, 40, 100)
}

func colorFromSGR(code, stdBase, brightBase int) (color.RGBA, bool) {
	switch {
	case code >= stdBase && code <= stdBase+7:
		return Palette16[code-stdBase], true
	case code >= brightBase && code <= brightBase+7:
		return Palette16[code-brightBase+8], true
	default:
		return color.RGBA{}, false
	}
}

// DimColor blends c halfway toward black, approximating the SGR "faint"
// attribute (code 2) the way a resolver without a renderer must: by baking
// the dim into the resolved color rather than deferring it to paint time.
func DimColor(c color.RGBA) color.RGBA {
	base, _ := colorful.MakeColor(c)
	blended := base.BlendRgb(colorful.Color{}, 0.5).Clamped()
	r, g, b := blended.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

// ParseColorSpec parses the color-spec grammar recognized by OSC 4/10/11
// (spec.md §4.3): "rgb:RR/GG/BB" or "rgb:RRRR/GGGG/BBBB" (4-hex components
// use the high byte), and "#RRGGBB". Malformed specs return ok=false and no
// change, per spec.md §7.
func ParseColorSpec(spec string) (c color.RGBA, ok bool) {
	if strings.HasPrefix(spec, "#") {
		parsed, err := colorful.Hex(spec)
		if err != nil {
			return color.RGBA{}, false
		}
		r, g, b := parsed.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xFF}, true
	}

	if rest, found := strings.CutPrefix(spec, "rgb:"); found {
		parts := strings.Split(rest, "/")
		if len(parts) != 3 {
			return color.RGBA{}, false
		}
		var channels [3]uint8
		for i, p := range parts {
			v, err := parseHexComponent(p)
			if err != nil {
				return color.RGBA{}, false
			}
			channels[i] = v
		}
		return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: 0xFF}, true
	}

	return color.RGBA{}, false
}

// parseHexComponent accepts a 2-hex-digit component (used directly) or a
// 4-hex-digit component (high byte used), per spec.md §4.3.
func parseHexComponent(s string) (uint8, error) {
	switch len(s) {
	case 2:
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, err
		}
		return uint8(v), nil
	case 4:
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return 0, err
		}
		return uint8(v >> 8), nil
	default:
		return 0, strconv.ErrSyntax
	}
}
