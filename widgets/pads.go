package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single colored pad
func RenderPad(color [3]uint8, symbol rune) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render(string(symbol))
}

// RenderPadRow renders a row of colored pads with spacing
func RenderPadRow(colors [][3]uint8, symbol rune) string {
	var out strings.Builder
	for i, c := range colors {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(RenderPad(c, symbol))
	}
	return out.String()
}

// Channel is one line of the channel view.
type Channel struct {
	Number     uint8
	Instrument string
	Color      [3]uint8
	Held       []string // names of the notes sounding now
}

// RenderChannels renders one line per channel: pad, number, instrument and
// the notes it holds. Channels without notes get the silent symbol.
func RenderChannels(channels []Channel, sounding, silent rune) string {
	var lines []string
	for _, ch := range channels {
		symbol := silent
		if len(ch.Held) > 0 {
			symbol = sounding
		}
		lines = append(lines, fmt.Sprintf("  %s %2d %-20s %s",
			RenderPad(ch.Color, symbol), ch.Number+1, ch.Instrument, strings.Join(ch.Held, " ")))
	}
	return strings.Join(lines, "\n")
}

// RenderProgress renders a bar width cells wide with frac of it filled.
func RenderProgress(width int, frac float64, done, pending rune, fg, bg [3]uint8) string {
	filled := int(frac * float64(width))
	filled = max(0, min(filled, width))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(fg)))
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(bg)))
	return doneStyle.Render(strings.Repeat(string(done), filled)) +
		pendingStyle.Render(strings.Repeat(string(pending), width-filled))
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(color [3]uint8, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(color, '■'), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
