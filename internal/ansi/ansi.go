// Package ansi renders card art and ink colors for the terminal
package ansi

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"unicode/utf8"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// FromImage converts an image to truecolor ANSI art of width x height character cells.
// Each cell is an upper half block: top pixels as foreground, bottom pixels as background.
func FromImage(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			c1, _ := colorful.MakeColor(colorAt(resized, x, y))
			c2, _ := colorful.MakeColor(colorAt(resized, x+1, y))
			c3, _ := colorful.MakeColor(colorAt(resized, x, y+1))
			c4, _ := colorful.MakeColor(colorAt(resized, x+1, y+1))

			fg := average(c1, c2)
			bg := average(c3, c4)

			buffer.WriteString(cell('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// colorAt returns black outside the image bounds
func colorAt(img image.Image, x, y int) color.Color {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}.Clamped()
}

func cell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// Strip removes CSI escape sequences (ESC [ params final-byte) from a string
func Strip(s string) string {
	var result strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\x1b' || i+1 >= len(s) || s[i+1] != '[' {
			result.WriteByte(s[i])
			continue
		}
		// skip parameter and intermediate bytes up to the final byte in 0x40-0x7E
		j := i + 2
		for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
			j++
		}
		i = j
	}
	return result.String()
}

// Width returns the number of visible runes in s
func Width(s string) int {
	return utf8.RuneCountInString(Strip(s))
}

// inkHex holds the printed color of each ink
var inkHex = map[string]string{
	"amber":    "#F4B223",
	"amethyst": "#7C4182",
	"emerald":  "#329044",
	"ruby":     "#D50037",
	"sapphire": "#0093C9",
	"steel":    "#97A3AE",
}

var hues = []struct {
	hue   float64
	color colorize.Attribute
}{
	{0, colorize.FgHiRed},
	{60, colorize.FgHiYellow},
	{120, colorize.FgHiGreen},
	{180, colorize.FgHiCyan},
	{240, colorize.FgHiBlue},
	{300, colorize.FgHiMagenta},
}

// InkColor returns the terminal color closest to an ink. Dual inks such as "Amber-Steel"
// use the first ink. Unknown inks get plain white.
func InkColor(ink string) *colorize.Color {
	return colorize.New(InkAttribute(ink))
}

// InkAttribute picks the basic terminal color whose hue is nearest the ink's
func InkAttribute(ink string) colorize.Attribute {
	first, _, _ := strings.Cut(ink, "-")
	hex, ok := inkHex[strings.ToLower(strings.TrimSpace(first))]
	if !ok {
		return colorize.FgHiWhite
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return colorize.FgHiWhite
	}

	h, s, _ := c.Hsv()
	if s < 0.25 {
		return colorize.FgWhite
	}

	best := hues[0]
	bestDist := math.MaxFloat64
	for _, candidate := range hues {
		d := math.Abs(h - candidate.hue)
		if d > 180 {
			d = 360 - d
		}
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best.color
}

// WrapText breaks text into lines of at most width runes. Words longer than
// width get a line of their own. Widths under 10 fall back to 40.
func WrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range words {
		wordWidth := utf8.RuneCountInString(word)
		if lineWidth > 0 && lineWidth+1+wordWidth > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += wordWidth
	}
	return append(lines, line.String())
}
