package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/topicradar/internal/model"
)

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorWarn      = lipgloss.Color("214") // Orange
	colorHot       = lipgloss.Color("196") // Red
)

// SelectedItem style for the currently highlighted topic.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected topics.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// Header style for the title line.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// CategoryBadge style for category labels.
var CategoryBadge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// Label style for field names in the detail pane.
var Label = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// Muted style for secondary text.
var Muted = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DetailPane wraps the selected topic's metadata.
var DetailPane = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorHot).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// GrowthStyle returns the badge style for a growth bucket.
func GrowthStyle(g model.Growth) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Width(9)
	switch g {
	case model.GrowthExplosive:
		return base.Foreground(colorHot)
	case model.GrowthHigh:
		return base.Foreground(colorWarn)
	case model.GrowthMedium:
		return base.Foreground(colorSuccess)
	default:
		return base.Foreground(colorSecondary)
	}
}
