// Package themes holds the lipgloss styles used by the grievance TUI and the
// list command.
package themes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	badges map[string]lipgloss.Style

	Header        lipgloss.Style
	Subtitle      lipgloss.Style
	SectionTitle  lipgloss.Style
	Normal        lipgloss.Style
	Faint         lipgloss.Style
	Label         lipgloss.Style
	Card          lipgloss.Style
	FocusedCard   lipgloss.Style
	Button        lipgloss.Style
	ButtonBusy    lipgloss.Style
	Banner        lipgloss.Style
	Notice        lipgloss.Style
	Hint          lipgloss.Style
	CategoryTag   lipgloss.Style
	Scheme        lipgloss.Style
	StatValue     lipgloss.Style
	StatLabel     lipgloss.Style
	DefaultBadge  lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Info          lipgloss.Color
	ActiveBorder  lipgloss.Color
	ButtonText    lipgloss.Color
	TagBackground lipgloss.Color
}

type palette struct {
	primary, secondary, success, warning, danger, info lipgloss.Color
	foreground, subtle, muted, border, surface, onPrimary lipgloss.Color
}

func newTheme(p palette) Theme {
	badge := func(fg lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			Foreground(fg).
			Bold(true).
			Border(lipgloss.RoundedBorder(), false, true).
			BorderForeground(fg)
	}

	t := Theme{
		Primary:       p.primary,
		Muted:         p.muted,
		Border:        p.border,
		Foreground:    p.foreground,
		Success:       p.success,
		Warning:       p.warning,
		Error:         p.danger,
		Info:          p.info,
		ActiveBorder:  p.primary,
		ButtonText:    p.onPrimary,
		TagBackground: p.surface,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		SectionTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground).
			MarginBottom(1),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Faint: lipgloss.NewStyle().
			Foreground(p.muted),
		Label: lipgloss.NewStyle().
			Foreground(p.subtle).
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		FocusedCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(p.onPrimary).
			Background(p.primary).
			Bold(true).
			Padding(0, 2),
		ButtonBusy: lipgloss.NewStyle().
			Foreground(p.subtle).
			Background(p.border).
			Italic(true).
			Padding(0, 2),
		Banner: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.success).
			PaddingLeft(1),
		Notice: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		Hint: lipgloss.NewStyle().
			Foreground(p.warning),
		CategoryTag: lipgloss.NewStyle().
			Foreground(p.info).
			Background(p.surface).
			Padding(0, 1),
		Scheme: lipgloss.NewStyle().
			Foreground(p.secondary),
		StatValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted),
		DefaultBadge: badge(p.warning),
	}

	t.badges = map[string]lipgloss.Style{
		"critical": badge(p.danger).Underline(true),
		"high":     badge(p.danger),
		"medium":   badge(p.warning),
		"low":      badge(p.success),
	}
	return t
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    lipgloss.Color("#7c3aed"),
	secondary:  lipgloss.Color("#a78bfa"),
	success:    lipgloss.Color("#10b981"),
	warning:    lipgloss.Color("#f59e0b"),
	danger:     lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
	foreground: lipgloss.Color("#fafafa"),
	subtle:     lipgloss.Color("#a3a3a3"),
	muted:      lipgloss.Color("#737373"),
	border:     lipgloss.Color("#404040"),
	surface:    lipgloss.Color("#262626"),
	onPrimary:  lipgloss.Color("#fafafa"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    lipgloss.Color("#cba6f7"),
	secondary:  lipgloss.Color("#f5c2e7"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	danger:     lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
	foreground: lipgloss.Color("#cdd6f4"),
	subtle:     lipgloss.Color("#a6adc8"),
	muted:      lipgloss.Color("#6c7086"),
	border:     lipgloss.Color("#45475a"),
	surface:    lipgloss.Color("#313244"),
	onPrimary:  lipgloss.Color("#1e1e2e"),
})

// Names lists the selectable theme names.
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// BadgeStyle returns the style for a priority class. Classes the theme does
// not know get the neutral badge.
func (t Theme) BadgeStyle(class string) lipgloss.Style {
	if style, ok := t.badges[strings.ToLower(class)]; ok {
		return style
	}
	return t.DefaultBadge
}
