package chart

import (
	"fmt"
	"image/color"
	"strings"
)

type ColorToken string

const (
	Blue   ColorToken = "blue"
	Green  ColorToken = "green"
	Purple ColorToken = "purple"
	Yellow ColorToken = "yellow"
	Red    ColorToken = "red"
)

var palette = map[ColorToken]color.RGBA{
	Blue:   {0x3b, 0x82, 0xf6, 0xff},
	Green:  {0x10, 0xb9, 0x81, 0xff},
	Purple: {0x8b, 0x5c, 0xf6, 0xff},
	Yellow: {0xf5, 0x9e, 0x0b, 0xff},
	Red:    {0xef, 0x44, 0x44, 0xff},
}

var (
	GridColor  = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	LabelColor = color.RGBA{0x6b, 0x72, 0x80, 0xff}
)

// Tokens lists the palette in display order.
func Tokens() []ColorToken {
	return []ColorToken{Blue, Green, Purple, Yellow, Red}
}

// Resolve maps a token to its palette color, unknown tokens resolve to Blue.
func Resolve(token ColorToken) color.RGBA {
	if c, ok := palette[ColorToken(strings.ToLower(string(token)))]; ok {
		return c
	}
	return palette[Blue]
}

// Hex returns the resolved color as #rrggbb.
func Hex(token ColorToken) string {
	c := Resolve(token)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type Kind int

const (
	Line Kind = iota
	Bar
)

func (k Kind) String() string {
	switch k {
	case Bar:
		return "bar"
	default:
		return "line"
	}
}

// ParseKind accepts "line" and "bar", anything else is Line.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), "bar") {
		return Bar
	}
	return Line
}
