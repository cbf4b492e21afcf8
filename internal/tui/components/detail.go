package components

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/tui/themes"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// CategoryDetailModel shows the deep dive of one category.
type CategoryDetailModel struct {
	theme    themes.Theme
	markdown string
	record   model.CategoryRecord
	columns  []model.Field
	viewport viewport.Model
	width    int
	height   int
}

// NewCategoryDetail creates an empty detail view.
func NewCategoryDetail(theme themes.Theme) CategoryDetailModel {
	return CategoryDetailModel{
		theme:    theme,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   20,
	}
}

// SetRecord shows r. columns are the fields present in the source table;
// sections for missing fields are left out.
func (m *CategoryDetailModel) SetRecord(r model.CategoryRecord, columns []model.Field) {
	m.record = r
	m.columns = columns
	m.markdown = CategoryMarkdown(r, columns)
	m.render()
	m.viewport.GotoTop()
}

// Record returns the displayed record.
func (m CategoryDetailModel) Record() model.CategoryRecord {
	return m.record
}

// Resize sets the render area.
func (m *CategoryDetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(3, height)
	m.render()
}

func (m *CategoryDetailModel) render() {
	if m.markdown == "" {
		m.viewport.SetContent("")
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.Markdown),
		glamour.WithWordWrap(max(20, m.width-4)),
	)
	if err == nil {
		var out string
		if out, err = r.Render(m.markdown); err == nil {
			m.viewport.SetContent(out)
			return
		}
	}
	slog.Warn("Markdown rendering failed, showing plain text", "error", err)
	m.viewport.SetContent(m.markdown)
}

// Update scrolls the detail.
func (m CategoryDetailModel) Update(msg tea.Msg) (CategoryDetailModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail.
func (m CategoryDetailModel) View() string {
	return m.viewport.View()
}

// CategoryMarkdown renders the deep dive of r as markdown.
func CategoryMarkdown(r model.CategoryRecord, columns []model.Field) string {
	has := func(f model.Field) bool { return slices.Contains(columns, f) }
	num := func(f model.Field) float64 {
		v, _ := r.Number(f)
		return v
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Deep Dive: %s\n\n", r.Name)

	b.WriteString("| Current Rating | Quality Gap | Merchants Affected | Predicted Churn |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n",
		optional(has(model.FieldCurrentAvgRating), fmt.Sprintf("%.2f★", num(model.FieldCurrentAvgRating))),
		optional(has(model.FieldQualityVsMedian), fmt.Sprintf("%.3f★", num(model.FieldQualityVsMedian))),
		optional(has(model.FieldEstMerchantsAffected), fmt.Sprintf("~%dK", int(num(model.FieldEstMerchantsAffected)/1000))),
		optional(has(model.FieldPredictedChurnPct), fmt.Sprintf("%.1f%%", num(model.FieldPredictedChurnPct))),
	)

	b.WriteString("### Classification\n\n")
	fmt.Fprintf(&b, "- **Strategic Segment:** %s\n", r.StrategicSegment)
	fmt.Fprintf(&b, "- **Demand Level:** %s\n", r.DemandLevel)
	if has(model.FieldPriorityLevel) {
		fmt.Fprintf(&b, "- **Priority Level:** %s of 5\n", FormatNumber(r.PriorityLevel))
	}
	if has(model.FieldActionTimeline) {
		fmt.Fprintf(&b, "- **Action Timeline:** %s\n", r.ActionTimeline)
	}

	b.WriteString("\n### Severity Scores\n\n")
	fmt.Fprintf(&b, "- **Quality Severity:** %.0f/100\n", r.QualitySeverity)
	fmt.Fprintf(&b, "- **Merchant Impact:** %.0f/100\n", r.MerchantImpact)
	fmt.Fprintf(&b, "- **Business Priority:** %.0f/100\n", r.BusinessPriority)

	if has(model.FieldProblem) && strings.TrimSpace(r.Problem) != "" {
		b.WriteString("\n### What's Happening?\n\n")
		b.WriteString(strings.ReplaceAll(r.Problem, "?", ""))
		b.WriteString("\n")
	}
	if has(model.FieldAction) && strings.TrimSpace(r.Action) != "" {
		b.WriteString("\n### Recommended Action\n\n")
		b.WriteString(r.Action)
		b.WriteString("\n")
	}

	b.WriteString("\n### Additional Details\n\n")
	b.WriteString("**Market Context:**\n\n")
	if has(model.FieldAppCount) {
		fmt.Fprintf(&b, "- Total Apps: %s\n", FormatNumber(r.AppCount))
	}
	if has(model.FieldTotalReviews) {
		fmt.Fprintf(&b, "- Total Reviews: %.0f\n", r.TotalReviews)
	}
	if has(model.FieldReviewsPerApp) {
		fmt.Fprintf(&b, "- Reviews per App: %.0f\n", r.ReviewsPerApp)
	}
	b.WriteString("\n**Quality Distribution:**\n\n")
	if has(model.FieldPctAppsHighRated) {
		fmt.Fprintf(&b, "- Apps with 4.5+ Stars: %.1f%%\n", r.PctAppsHighRated)
	}
	fmt.Fprintf(&b, "- Statistical Significance: %s\n", r.Significant)
	if has(model.FieldCILower) && has(model.FieldCIUpper) {
		fmt.Fprintf(&b, "- Confidence Interval: %s to %s\n", FormatNumber(r.CILower), FormatNumber(r.CIUpper))
	}
	return b.String()
}

func optional(present bool, s string) string {
	if !present {
		return "n/a"
	}
	return s
}
