// Package cli provides styled terminal output and line prompts for the
// one-shot grievance commands.
package cli

import (
	"strings"

	"github.com/Veraticus/grievance-intel/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C3AED")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#10B981")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F59E0B")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#EF4444")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#3B82F6")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#737373")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// TagStyle renders category tags.
	TagStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// CardStyle frames one grievance.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#404040")).
			Padding(0, 1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	AppIcon     = "📣"
	SchemeIcon  = "•"
)

// priorityColors maps badge classes to colors. Unknown classes use WarningColor.
var priorityColors = map[string]lipgloss.Color{
	"critical": ErrorColor,
	"high":     ErrorColor,
	"medium":   WarningColor,
	"low":      SuccessColor,
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the app icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(AppIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// FormatBadge renders a priority badge.
func FormatBadge(badge viewmodel.Badge) string {
	color, ok := priorityColors[strings.ToLower(badge.Class)]
	if !ok {
		color = WarningColor
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render("[" + badge.Text + "]")
}

// RenderGrievance renders one grievance card.
func RenderGrievance(card viewmodel.GrievanceCard) string {
	heading := BoldStyle.Render(card.Title) + " " + FormatBadge(card.Badge)

	meta := TagStyle.Render("#" + card.Category)
	if card.Date != "" {
		meta += " " + SubtleStyle.Render(card.Date)
	}

	lines := []string{heading}
	if card.Description != "" {
		lines = append(lines, card.Description)
	}
	lines = append(lines, meta)

	if card.ShowSchemes {
		lines = append(lines, SubtleStyle.Render(viewmodel.SchemesHeading))
		for _, scheme := range card.Schemes {
			lines = append(lines, "  "+SchemeIcon+" "+scheme)
		}
	}

	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
