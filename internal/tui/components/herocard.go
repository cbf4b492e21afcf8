package components

import (
	"github.com/Veraticus/app-strategy/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// HeroCard is one headline metric of the overview.
type HeroCard struct {
	Key    string
	Label  string
	Value  string
	Active bool
}

// RenderHeroCards lays the cards out in a row, or in two rows when the
// terminal is too narrow.
func RenderHeroCards(theme themes.Theme, cards []HeroCard, width int) string {
	if len(cards) == 0 {
		return ""
	}

	perRow := len(cards)
	if width < 100 {
		perRow = (len(cards) + 1) / 2
	}
	cardWidth := max(16, width/perRow-4)

	rendered := make([]string, len(cards))
	for i, c := range cards {
		style := theme.Card
		if c.Active {
			style = theme.ActiveCard
		}
		value := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(c.Value)
		label := lipgloss.NewStyle().Foreground(theme.Muted).Render("[" + c.Key + "] " + c.Label)
		rendered[i] = style.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Center, value, label))
	}

	var rows []string
	for start := 0; start < len(rendered); start += perRow {
		end := min(start+perRow, len(rendered))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
