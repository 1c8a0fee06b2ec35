// Package tui implements the Bubble Tea front end that renders an alert
// modal in the terminal and feeds mouse and keyboard input back into it.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorBlue  = lipgloss.Color("#7aa2f7") // blue
	colorGray  = lipgloss.Color("#565f89") // comment
	colorWhite = lipgloss.Color("#c0caf5") // foreground
	colorDark  = lipgloss.Color("#1a1b26") // background
	colorPanel = lipgloss.Color("#414868") // selection
)

// Window frame geometry. Hit regions are computed from these, so the window
// style must not add anything else around its content.
const (
	windowBorder   = 1
	windowPadX     = 2
	windowPadY     = 1
	maxWindowInner = 56
	minWindowInner = 8
	buttonGap      = 1
)

var (
	windowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(windowPadY, windowPadX)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorPanel).
			Align(lipgloss.Center)

	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(colorDark).
				Background(colorBlue).
				Bold(true).
				Align(lipgloss.Center)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			MarginTop(1)

	// Backdrop behind an open modal, before and after the screen's toggle
	// class is applied.
	backdropStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	backdropFadedStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				Faint(true)
)
