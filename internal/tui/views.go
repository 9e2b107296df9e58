package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const (
	// wideLayoutMin is the width at which the form and the list sit side by side.
	wideLayoutMin     = 100
	descriptionHeight = 5
	minListHeight     = 3
	headerHeight      = 3
	statsHeight       = 3
	listHeadingHeight = 2
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.wide() {
		formWidth, listWidth := m.columns()
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.formView(formWidth),
			" ",
			m.listPanel(listWidth),
		)
	} else {
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			m.formView(m.width),
			m.listPanel(m.width),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		body,
		m.helpView(),
	)
}

func (m Model) wide() bool {
	return m.width >= wideLayoutMin
}

// columns splits the width between the form and the list panel.
func (m Model) columns() (int, int) {
	if !m.wide() {
		return m.width, m.width
	}
	formWidth := m.width / 2
	return formWidth, m.width - formWidth - 1
}

// layout sizes the inputs and the list viewport for the current state.
func (m *Model) layout() {
	formWidth, listWidth := m.columns()

	inner := max(formWidth-4, 10)
	m.title.Width = inner - 1
	m.description.SetWidth(inner)
	m.help.Width = m.width

	listHeight := m.height - headerHeight - statsHeight - listHeadingHeight
	listHeight -= lipgloss.Height(m.helpView())
	if m.store.LastFetchErr() != nil {
		listHeight--
	}
	if !m.wide() {
		listHeight -= lipgloss.Height(m.formView(formWidth))
	}

	m.list.Width = listWidth
	m.list.Height = max(listHeight, minListHeight)
	m.list.SetContent(m.listContent(listWidth))
}

func (m Model) headerView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Header.Render(appTitle),
		m.theme.Subtitle.Render(appSubtitle),
		"",
	)
}

func (m Model) helpView() string {
	return m.help.View(m.keymap)
}

func (m Model) formView(width int) string {
	style := m.theme.Card
	if m.focus != fieldNone {
		style = m.theme.FocusedCard
	}

	lines := []string{
		m.theme.SectionTitle.Render(formHeading),
		m.theme.Label.Render(titleLabel),
		m.title.View(),
		"",
		m.theme.Label.Render(descriptionLabel),
		m.description.View(),
		"",
	}

	if m.hint != nil {
		lines = append(lines, m.theme.Hint.Render(hintText(m.hint)))
	}
	if m.store.Success() {
		lines = append(lines, m.theme.Banner.Render(viewmodel.SuccessText))
	}
	if m.store.LastSubmitErr() != nil && !m.store.Loading() {
		lines = append(lines, m.theme.Notice.Render(submitNotice))
	}
	lines = append(lines, m.buttonView())

	return style.Width(max(width-2, 0)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) buttonView() string {
	button := viewmodel.BuildSubmitButton(m.store.Loading())
	if button.Disabled {
		return m.theme.ButtonBusy.Render(button.Label)
	}
	return m.theme.Button.Render(button.Label)
}

func (m Model) listPanel(width int) string {
	stats := viewmodel.BuildStats(m.store.Grievances())
	boxWidth := max(width/2-3, 0)

	statsRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.statBox(totalLabel, strconv.Itoa(stats.TotalGrievances), boxWidth),
		" ",
		m.statBox(clearanceLabel, stats.ClearanceRate, boxWidth),
	)

	lines := []string{
		statsRow,
		m.theme.SectionTitle.Render(listHeading),
	}
	if m.store.LastFetchErr() != nil {
		lines = append(lines, m.theme.Notice.Render(fetchNotice))
	}
	lines = append(lines, m.list.View())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) statBox(label, value string, width int) string {
	content := m.theme.StatLabel.Render(label+": ") + m.theme.StatValue.Render(value)
	return m.theme.Card.Width(width).Render(content)
}

// listContent renders every card for the viewport.
func (m Model) listContent(width int) string {
	cards := viewmodel.BuildList(m.store.Grievances(), m.config.Locale)
	if len(cards) == 0 {
		return m.theme.Faint.Render(viewmodel.EmptyListText)
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, m.cardView(card, width))
	}
	return strings.Join(rendered, "\n")
}

func (m Model) cardView(card viewmodel.GrievanceCard, width int) string {
	heading := lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.theme.StatValue.Render(card.Title),
		" ",
		m.theme.BadgeStyle(card.Badge.Class).Render(card.Badge.Text),
	)

	meta := m.theme.CategoryTag.Render(card.Category)
	if card.Date != "" {
		meta += " " + m.theme.Faint.Render(card.Date)
	}

	lines := []string{
		heading,
		m.theme.Normal.Render(card.Description),
		meta,
	}

	if card.ShowSchemes {
		lines = append(lines, m.theme.Label.Render(viewmodel.SchemesHeading))
		for _, scheme := range card.Schemes {
			lines = append(lines, m.theme.Scheme.Render("• "+scheme))
		}
	}

	return m.theme.Card.Width(max(width-2, 0)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func hintText(err error) string {
	switch {
	case errors.Is(err, common.ErrTitleRequired):
		return "Please enter a title."
	case errors.Is(err, common.ErrDescriptionRequired):
		return "Please describe the issue."
	default:
		return err.Error()
	}
}
