// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Installer palette, tuned for dark terminals. Step output is line-oriented
// (one status line per pipeline step), so there are no card or box styles.
const (
	// colorAccent is teal, for the tool name and headers.
	colorAccent = lipgloss.Color("#2DD4BF")

	// colorDim is slate, for the install target and secondary lines.
	colorDim = lipgloss.Color("#94A3B8")

	// colorPass is green, for satisfied prerequisites and finished steps.
	colorPass = lipgloss.Color("#22C55E")

	// colorFail is red, for the step that stopped the run.
	colorFail = lipgloss.Color("#DC2626")

	// colorCaution is yellow, for the non-fatal launcher warning.
	colorCaution = lipgloss.Color("#EAB308")
)

var (
	// TitleStyle renders the tool name and install banner.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	// SubtitleStyle renders the target directory and descriptive lines.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// SuccessStyle renders check marks and the completion line.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorPass)

	// ErrorStyle renders the failed-step marker and error prefix.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFail)

	// WarningStyle renders the launcher warning line.
	WarningStyle = lipgloss.NewStyle().
			Foreground(colorCaution)
)
