package material

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an RGB color with channels nominally in [0,1].
type Color [3]float32

// RGB is shorthand for Color{r, g, b}.
func RGB(r, g, b float32) Color {
	return Color{r, g, b}
}

// Clamp limits every channel to [0,1].
func (c Color) Clamp() Color {
	for i, v := range c {
		switch {
		case v < 0:
			c[i] = 0
		case v > 1:
			c[i] = 1
		}
	}
	return c
}

// ParseColor parses "#RRGGBB", "#RGB" or an SVG color name such as "teal".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	rgba, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	return Color{float32(rgba.R) / 255, float32(rgba.G) / 255, float32(rgba.B) / 255}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// Intended for color literals in code.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(hex string) (Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("hex color #%s: want 3 or 6 digits", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("hex color #%s: %w", hex, err)
	}
	return Color{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// UnmarshalText lets colors be written as strings in YAML config.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText writes the color as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	c = c.Clamp()
	return []byte(fmt.Sprintf("#%02x%02x%02x",
		uint8(c[0]*255+0.5), uint8(c[1]*255+0.5), uint8(c[2]*255+0.5))), nil
}
