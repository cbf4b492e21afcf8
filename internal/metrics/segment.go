package metrics

import (
	"sort"
	"strings"

	"github.com/Veraticus/app-strategy/internal/model"
	"golang.org/x/text/unicode/norm"
)

// CanonicalizeSegment folds a raw segment label into its canonical form:
// Unicode NFC, collapsed whitespace, case-insensitive match against the
// known segments, and the synonym map. Unknown labels are returned
// normalized. Applying it twice gives the same result as applying it once.
func CanonicalizeSegment(label string) string {
	cleaned := strings.Join(strings.Fields(norm.NFC.String(label)), " ")

	for _, known := range model.SegmentOrder() {
		if strings.EqualFold(cleaned, known) {
			return known
		}
	}
	for raw, canonical := range model.SegmentSynonyms() {
		if strings.EqualFold(cleaned, raw) {
			return canonical
		}
	}

	return cleaned
}

// SegmentGroup holds the rows of one canonical segment.
type SegmentGroup struct {
	Rows    *model.Table
	Segment string
}

// GroupBySegment partitions t by canonical segment. Known segments come
// first in taxonomy order, then unknown labels in order of first appearance.
// Every row lands in exactly one group.
func GroupBySegment(t *model.Table) []SegmentGroup {
	var order []string
	members := make(map[string][]int)
	for i := 0; i < t.Len(); i++ {
		seg := CanonicalizeSegment(t.At(i).StrategicSegment)
		if _, seen := members[seg]; !seen {
			order = append(order, seg)
		}
		members[seg] = append(members[seg], i)
	}

	sort.SliceStable(order, func(a, b int) bool {
		return model.SegmentRank(order[a]) < model.SegmentRank(order[b])
	})

	groups := make([]SegmentGroup, 0, len(order))
	for _, seg := range order {
		groups = append(groups, SegmentGroup{
			Segment: seg,
			Rows:    t.Subset(members[seg]),
		})
	}
	return groups
}

// SegmentNames lists the canonical segments present in t in display order.
func SegmentNames(t *model.Table) []string {
	groups := GroupBySegment(t)
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Segment
	}
	return names
}

// HasSegment reports whether any row of t belongs to the canonical form of
// segment.
func HasSegment(t *model.Table, segment string) bool {
	want := CanonicalizeSegment(segment)
	for i := 0; i < t.Len(); i++ {
		if CanonicalizeSegment(t.At(i).StrategicSegment) == want {
			return true
		}
	}
	return false
}
