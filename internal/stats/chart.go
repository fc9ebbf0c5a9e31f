package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// BarGroup is one category of a grouped bar chart, one value per series.
type BarGroup struct {
	Label  string
	Values []float64
}

type barStyle struct {
	name  string
	glyph rune
}

type ansiColor struct {
	name string
	code string
}

const (
	minBarWidth         = 10
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var barStyles = []barStyle{
	{name: "solid", glyph: '█'},
	{name: "shaded", glyph: '▒'},
	{name: "light", glyph: '░'},
}

var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
}

// RenderBars prints a grouped horizontal bar chart. A width of 0 sizes the
// chart to the terminal.
func RenderBars(w io.Writer, title string, series []string, groups []BarGroup, width int, forceColor bool) error {
	if len(series) == 0 || len(groups) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}

	labelWidth := 0
	for _, g := range groups {
		if lw := displayWidth(g.Label); lw > labelWidth {
			labelWidth = lw
		}
	}
	seriesWidth := 0
	for _, s := range series {
		if sw := displayWidth(s); sw > seriesWidth {
			seriesWidth = sw
		}
	}
	maxVal := 0.0
	valueWidth := 1
	for _, g := range groups {
		for _, v := range g.Values {
			maxVal = math.Max(maxVal, v)
			if vw := len(fmt.Sprintf("%.0f", v)); vw > valueWidth {
				valueWidth = vw
			}
		}
	}
	barWidth := BarWidthFor(width, labelWidth, seriesWidth, valueWidth)
	useColor := shouldUseColor(w, forceColor)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, g := range groups {
		for si, name := range series {
			v := 0.0
			if si < len(g.Values) {
				v = g.Values[si]
			}
			label := ""
			if si == 0 {
				label = g.Label
			}
			bar := strings.Repeat(string(barStyles[si%len(barStyles)].glyph), barLength(v, maxVal, barWidth))
			if useColor && bar != "" {
				bar = colorPalette[si%len(colorPalette)].code + bar + colorReset
			}
			line := fmt.Sprintf("%s %s %s %.0f",
				padCell(label, labelWidth, false),
				padCell(name, seriesWidth, false),
				bar,
				v,
			)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(w, renderBarLegend(series, useColor)); err != nil {
		return err
	}
	return nil
}

// BarWidthFor computes the bar area that fits the total width next to the labels.
func BarWidthFor(totalWidth, labelWidth, seriesWidth, valueWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	barWidth := totalWidth - labelWidth - seriesWidth - valueWidth - 3
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	return barWidth
}

func barLength(v, maxVal float64, width int) int {
	if v <= 0 || maxVal <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(v / maxVal * float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

func renderBarLegend(series []string, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, name := range series {
		style := barStyles[i%len(barStyles)]
		label := fmt.Sprintf("%c %s (%s)", style.glyph, name, style.name)
		if useColor {
			color := colorPalette[i%len(colorPalette)]
			label = color.code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
