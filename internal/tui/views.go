package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/navigation"
	"github.com/Veraticus/app-strategy/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	state := m.nav.State()
	switch state.View {
	case navigation.ViewSegmentDetail:
		body = m.renderSegmentDetail(state.SelectedSegment)
	case navigation.ViewCategoryDetail:
		body = m.renderCategoryDetail()
	default:
		body = m.renderOverview()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatus(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Shopify App Store Product Strategy Dashboard")
	subtitle := m.theme.Subtitle.Render(fmt.Sprintf("%s · %d categories · %s",
		m.table.Source(), m.table.Len(), m.breadcrumb()))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m Model) breadcrumb() string {
	state := m.nav.State()
	switch state.View {
	case navigation.ViewSegmentDetail:
		return "Overview › " + state.SelectedSegment
	case navigation.ViewCategoryDetail:
		return "Overview › " + state.SelectedCategory
	default:
		crumb := "Overview › " + m.tab.String()
		if m.tab == TabStrategicOverview && m.spotlight != metrics.SpotlightNone {
			crumb += " › " + m.spotlight.String()
		}
		return crumb
	}
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		style := m.theme.InactiveTab
		if t == m.tab {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderOverview() string {
	sections := []string{m.renderTabs(), ""}

	switch m.tab {
	case TabStrategicOverview:
		sections = append(sections, m.renderHeroCards(), "")
		if m.spotlight == metrics.SpotlightNone {
			sections = append(sections, m.segments.View())
		} else {
			if summary := m.renderSpotlightSummary(); summary != "" {
				sections = append(sections, summary)
			}
			sections = append(sections, m.renderPanels())
		}

	case TabPriorityAnalysis:
		sections = append(sections, m.renderPanels())

	case TabPerformanceInsights:
		sections = append(sections, m.renderQuadrants(m.table), "", m.renderPanels())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeroCards() string {
	summary := metrics.Overview(m.table)
	cards := []components.HeroCard{
		{Key: "1", Label: "Actionable Priorities", Value: numbers.Sprintf("%d", summary.Actionable)},
		{Key: "2", Label: "Severity Issues", Value: numbers.Sprintf("%d", summary.HighSeverity)},
		{Key: "3", Label: "Very High Demand", Value: numbers.Sprintf("%d", summary.VeryHighDemand)},
		{Key: "4", Label: "Merchants Affected", Value: numbers.Sprintf("%.0f", summary.MerchantsAffectedByGaps)},
	}
	for i := range cards {
		cards[i].Active = metrics.Spotlight(i+1) == m.spotlight
	}
	return components.RenderHeroCards(m.theme, cards, m.width)
}

// renderSpotlightSummary renders the figures shown above a spotlight table.
func (m Model) renderSpotlightSummary() string {
	switch m.spotlight {
	case metrics.SpotlightDemand:
		d := metrics.VeryHighDemand(m.table)
		return m.theme.Subtitle.Render(numbers.Sprintf(
			"%d categories · market size (%s) %.0f · avg rating %.2f · merchants %.0f",
			d.Count, components.ShortHeader(d.MarketSizeField), d.MarketSize, d.AvgRating, d.ActiveMerchants))

	case metrics.SpotlightAffected:
		a := metrics.MerchantsAffected(m.table)
		return m.theme.Subtitle.Render(numbers.Sprintf(
			"%d categories below median · %.0f merchants affected · avg gap %.3f★",
			a.GapCategories, a.TotalAffected, a.AvgGap))

	case metrics.SpotlightSeverity:
		issues := metrics.FilterBy(m.table, metrics.AtLeast(model.FieldQualitySeverity, metrics.SeverityThreshold))
		return m.renderQuadrants(issues)

	default:
		return ""
	}
}

// renderQuadrants summarises severity against impact around their means.
func (m Model) renderQuadrants(t *model.Table) string {
	if t.Len() == 0 {
		return ""
	}
	xm, ym, err := metrics.MeanThresholds(t, model.FieldQualitySeverity, model.FieldMerchantImpact)
	if err != nil {
		return m.theme.StatusWarn.Render("Quadrants unavailable: " + err.Error())
	}
	q, err := metrics.QuadrantSplit(t, model.FieldQualitySeverity, model.FieldMerchantImpact, xm, ym)
	if err != nil {
		return m.theme.StatusWarn.Render("Quadrants unavailable: " + err.Error())
	}

	cell := func(label string, n int) string {
		return m.theme.RoundedBox.Width(26).Render(fmt.Sprintf("%s\n%d categories", label, n))
	}
	title := m.theme.Bold.Render(fmt.Sprintf("Severity vs Impact (means %.1f / %.1f)", xm, ym))
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Low severity, high impact", q.LowHigh.Len()),
		cell("Fix first: high both", q.HighHigh.Len()))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Monitor: low both", q.LowLow.Len()),
		cell("High severity, low impact", q.HighLow.Len()))
	return lipgloss.JoinVertical(lipgloss.Left, title, top, bottom)
}

// renderPanels renders the focused listing, with a selector when the view
// has more than one.
func (m Model) renderPanels() string {
	if len(m.panels) == 0 {
		return components.RenderNoData(m.theme, m.width)
	}
	if len(m.panels) == 1 {
		return m.listing.View()
	}

	names := make([]string, len(m.panels))
	for i, p := range m.panels {
		style := m.theme.InactiveTab
		if i == m.panel {
			style = m.theme.ActiveTab
		}
		names[i] = style.Render(p.Title)
	}
	selector := lipgloss.JoinHorizontal(lipgloss.Top, names...) +
		m.theme.Subtitle.Render("  (f to switch)")
	return lipgloss.JoinVertical(lipgloss.Left, selector, m.listing.View())
}

func (m Model) renderSegmentDetail(segment string) string {
	sv := metrics.SegmentDetail(m.table, segment)
	color := m.theme.SegmentColor(segment)
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render("Segment: " + segment)

	if sv.Count == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, components.RenderNoData(m.theme, m.width))
	}

	stats := m.theme.Subtitle.Render(numbers.Sprintf(
		"%d categories · avg severity %.1f · avg impact %.1f · %.0f merchants affected",
		sv.Count, sv.AvgSeverity, sv.AvgImpact, sv.TotalAffected))

	sections := []string{title, stats, ""}
	if sv.HasQualityIssues {
		sections = append(sections, m.renderQuadrants(sv.Rows), "")
	} else {
		sections = append(sections, m.theme.StatusInfo.Render("No quality issues in this segment."), "")
	}
	sections = append(sections, m.renderPanels())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCategoryDetail() string {
	if len(m.panels) == 0 {
		return components.RenderNoData(m.theme, m.width)
	}
	return m.detail.View()
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	style := m.theme.StatusInfo
	switch m.statusKind {
	case statusWarn:
		style = m.theme.StatusWarn
	case statusError:
		style = m.theme.StatusError
	}
	return style.Render(strings.TrimSpace(m.status))
}
