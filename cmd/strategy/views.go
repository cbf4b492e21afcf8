package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/export"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/tui/components"
)

// View names accepted by export and publish.
const (
	viewComplete    = "complete"
	viewSegments    = "segments"
	viewUrgent      = "urgent"
	viewSeverity    = "severity"
	viewDemand      = "demand"
	viewAffected    = "affected"
	viewTopProblems = "top-problems"
	viewTopSeverity = "top-severity"
	viewHeatmap     = "heatmap"
	viewSegmentPfx  = "segment:"
	viewCategoryPfx = "category:"
)

var viewNames = []string{
	viewComplete, viewSegments, viewUrgent, viewSeverity, viewDemand, viewAffected,
	viewTopProblems, viewTopSeverity, viewHeatmap, viewSegmentPfx + "<label>", viewCategoryPfx + "<name>",
}

// resolveListing returns the dashboard listing named by view.
func resolveListing(t *model.Table, view string, heatmapRows int) (metrics.Listing, error) {
	view = strings.TrimSpace(view)

	if segment, ok := strings.CutPrefix(view, viewSegmentPfx); ok {
		if !metrics.HasSegment(t, segment) {
			return metrics.Listing{}, fmt.Errorf("%w: segment %q", common.ErrUnknownEntity, segment)
		}
		return metrics.SegmentDetail(t, segment).Listing, nil
	}
	if name, ok := strings.CutPrefix(view, viewCategoryPfx); ok {
		return metrics.CategoryListing(t, name)
	}

	switch strings.ToLower(view) {
	case viewComplete, "":
		return metrics.CompleteTable(t), nil
	case viewUrgent:
		return metrics.UrgentCategories(t), nil
	case viewSeverity:
		return metrics.SeverityIssues(t), nil
	case viewDemand:
		return metrics.VeryHighDemand(t).Listing, nil
	case viewAffected:
		return metrics.MerchantsAffected(t).Listing, nil
	case viewTopProblems:
		return metrics.PriorityAnalysis(t).TopProblems, nil
	case viewTopSeverity:
		return metrics.PriorityAnalysis(t).TopSeverity, nil
	case viewHeatmap:
		return metrics.Heatmap(t, heatmapRows), nil
	default:
		return metrics.Listing{}, common.NewUserError(
			fmt.Sprintf("Unknown view %q; choose one of: %s", view, strings.Join(viewNames, ", ")),
			fmt.Errorf("%w: view %q", common.ErrUnknownEntity, view))
	}
}

// resolveSlice returns the export slice for view. The segment distribution
// is not a listing, so it is built here.
func resolveSlice(t *model.Table, view string, heatmapRows int) (export.Slice, error) {
	if strings.EqualFold(strings.TrimSpace(view), viewSegments) {
		return export.SegmentDistribution(metrics.Overview(t).Segments), nil
	}

	l, err := resolveListing(t, view, heatmapRows)
	if err != nil {
		return export.Slice{}, err
	}
	if l.Warning != nil {
		return export.Slice{}, fmt.Errorf("cannot export %q: %w", l.Title, l.Warning)
	}
	return export.FromListing(l), nil
}

// listingRows formats a listing's cells the way the dashboard shows them.
func listingRows(l metrics.Listing) ([]string, [][]string) {
	headers := make([]string, len(l.Columns))
	for i, f := range l.Columns {
		headers[i] = components.ShortHeader(f)
	}
	rows := make([][]string, 0, l.Rows.Len())
	for i := 0; i < l.Rows.Len(); i++ {
		r := l.Rows.At(i)
		cells := make([]string, len(l.Columns))
		for j, f := range l.Columns {
			cells[j] = components.FormatCell(r, f)
		}
		rows = append(rows, cells)
	}
	return headers, rows
}
