package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorGreen  = lipgloss.Color("#00FF00")
	ColorYellow = lipgloss.Color("#FFFF00")
	ColorCyan   = lipgloss.Color("#00FFFF")
)

// Tone is the emphasis of a report line, independent of how it is drawn
type Tone int

const (
	// Neutral lines are printed without colour
	Neutral Tone = iota
	// Success marks committed tickets the tracker knows about
	Success
	// Warning marks committed keys the tracker does not know about
	Warning
	// Info marks a tracker field shown in place of a missing value
	Info
)

// String returns the tone name
func (t Tone) String() string {
	switch t {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "neutral"
	}
}

// ToneColor returns the colour for a tone; Neutral has none
func ToneColor(t Tone) (lipgloss.Color, bool) {
	switch t {
	case Success:
		return ColorGreen, true
	case Warning:
		return ColorYellow, true
	case Info:
		return ColorCyan, true
	default:
		return "", false
	}
}
