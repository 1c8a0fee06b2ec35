package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/alertkit/internal/core/dom"
)

// render draws the background and, while the modal's screen is attached,
// the window centered on top of it. Hit regions are rebuilt on every call.
func (m Model) render() string {
	m.hits.Clear()

	w, h := max(m.width, 1), max(m.height, 1)
	el := m.ctrl.Elements()

	if el.Screen == nil || !el.Screen.IsAttached() {
		return canvas(m.opts.Background, w, h, lipgloss.NewStyle())
	}

	backdrop := backdropStyle
	if toggle := m.ctrl.Config().Screen.ToggleClass; toggle != "" && el.Screen.HasClass(toggle) {
		backdrop = backdropFadedStyle
	}
	bg := canvas(m.opts.Background, w, h, backdrop)
	m.hits.Add(el.Screen, Rect{X: 0, Y: 0, W: w, H: h})

	inner := clamp(w-2*(windowBorder+windowPadX)-2, minWindowInner, maxWindowInner)

	message := m.renderMessage(el.Message, inner)
	row, cells := m.renderButtons(el.Buttons, inner)

	content := lipgloss.JoinVertical(lipgloss.Left,
		message,
		"",
		row,
		helpStyle.Render(m.keys.helpLine()),
	)
	window := windowStyle.Width(inner + 2*windowPadX).Render(content)

	winW, winH := lipgloss.Width(window), lipgloss.Height(window)
	x0 := max((w-winW)/2, 0)
	y0 := max((h-winH)/2, 0)
	m.hits.Add(el.Window, Rect{X: x0, Y: y0, W: winW, H: winH})

	cx := x0 + windowBorder + windowPadX
	cy := y0 + windowBorder + windowPadY
	msgH := lipgloss.Height(message)
	m.hits.Add(el.Message, Rect{X: cx, Y: cy, W: inner, H: msgH})

	by := cy + msgH + 1
	m.hits.Add(el.Buttons, Rect{X: cx, Y: by, W: inner, H: 1})
	for _, c := range cells {
		m.hits.Add(c.el, Rect{X: cx + c.x, Y: by, W: c.w, H: 1})
	}

	return overlay(bg, window, x0, y0, w)
}

func (m Model) renderMessage(el *dom.Element, width int) string {
	text := el.Text()

	if m.ctrl.Config().Message.Markdown {
		if out, err := m.md.render(text, width); err == nil {
			return out
		}
	}

	return messageStyle.Width(width).Render(text)
}

type buttonCell struct {
	el *dom.Element
	x  int
	w  int
}

// renderButtons lays out the buttons in one row. A button with a width
// percentage gets that share of the row; others are sized to their label.
func (m Model) renderButtons(container *dom.Element, width int) (string, []buttonCell) {
	buttons := container.Children()
	cells := make([]buttonCell, 0, len(buttons))

	var sb strings.Builder
	x := 0
	for i, btn := range buttons {
		label := btn.Text()

		cw := ansi.StringWidth(label) + 4
		if pct := btn.Width(); pct > 0 {
			cw = int(float64(width) * pct / 100)
			if i < len(buttons)-1 {
				cw -= buttonGap
			}
		}
		cw = max(cw, 1)

		style := buttonStyle
		if i == m.focus {
			style = buttonFocusedStyle
		}

		if i > 0 {
			sb.WriteString(strings.Repeat(" ", buttonGap))
			x += buttonGap
		}
		sb.WriteString(style.Width(cw).MaxWidth(cw).Render(ansi.Truncate(label, cw, "…")))

		cells = append(cells, buttonCell{el: btn, x: x, w: cw})
		x += cw
	}

	return sb.String(), cells
}

// canvas pads or truncates text to exactly w by h cells.
func canvas(text string, w, h int, style lipgloss.Style) string {
	lines := strings.Split(text, "\n")
	out := make([]string, h)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], w, "")
		}
		line += strings.Repeat(" ", w-ansi.StringWidth(line))
		out[i] = style.Render(line)
	}
	return strings.Join(out, "\n")
}

// overlay draws top over base with its top-left corner at (x, y).
func overlay(base, top string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	topW := lipgloss.Width(top)

	for i, line := range topLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		pad := topW - ansi.StringWidth(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		left := ansi.Cut(baseLines[row], 0, x)
		right := ansi.Cut(baseLines[row], x+topW, width)
		baseLines[row] = left + line + right
	}

	return strings.Join(baseLines, "\n")
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// markdownCache keeps a glamour renderer per wrap width.
type markdownCache struct {
	width    int
	renderer *glamour.TermRenderer
}

func (c *markdownCache) render(text string, width int) (string, error) {
	if c.renderer == nil || c.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		c.renderer = r
		c.width = width
	}

	out, err := c.renderer.Render(text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
