// Package navigation holds the dashboard's view state: which view is shown
// and which segment or category is selected.
package navigation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
)

// View is one of the dashboard's screens.
type View int

// Views.
const (
	ViewOverview View = iota
	ViewSegmentDetail
	ViewCategoryDetail
)

func (v View) String() string {
	switch v {
	case ViewOverview:
		return "overview"
	case ViewSegmentDetail:
		return "segment_detail"
	case ViewCategoryDetail:
		return "category_detail"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// State is the navigation state. At most one of the selections is set, and
// only in its detail view.
type State struct {
	SelectedSegment  string
	SelectedCategory string
	View             View
}

// Initial returns the state a session starts in.
func Initial() State {
	return State{View: ViewOverview}
}

func (s State) String() string {
	switch s.View {
	case ViewSegmentDetail:
		return fmt.Sprintf("%s(%s)", s.View, s.SelectedSegment)
	case ViewCategoryDetail:
		return fmt.Sprintf("%s(%s)", s.View, s.SelectedCategory)
	default:
		return s.View.String()
	}
}

// Transition records one state change.
type Transition struct {
	Event string
	From  State
	To    State
}

// Machine applies navigation events against a catalogue of known segments
// and categories. Rejected events leave the state unchanged.
type Machine struct {
	catalog *model.Table
	history []Transition
	state   State
}

// New creates a machine in the initial state.
func New(catalog *model.Table) *Machine {
	return &Machine{catalog: catalog, state: Initial()}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// History returns the accepted transitions, oldest first.
func (m *Machine) History() []Transition {
	out := make([]Transition, len(m.history))
	copy(out, m.history)
	return out
}

// SelectSegment shows the detail of a segment. The segment is stored in
// canonical form; any selected category is cleared.
func (m *Machine) SelectSegment(segment string) error {
	canonical := metrics.CanonicalizeSegment(segment)
	if canonical == "" || !metrics.HasSegment(m.catalog, canonical) {
		return fmt.Errorf("%w: segment %q", common.ErrUnknownEntity, segment)
	}

	m.apply("select_segment", State{View: ViewSegmentDetail, SelectedSegment: canonical})
	return nil
}

// SelectCategory shows the detail of a category and clears any selected
// segment.
func (m *Machine) SelectCategory(category string) error {
	name := strings.TrimSpace(category)
	if _, ok := m.catalog.Find(name); !ok || name == "" {
		return fmt.Errorf("%w: category %q", common.ErrUnknownEntity, category)
	}

	m.apply("select_category", State{View: ViewCategoryDetail, SelectedCategory: name})
	return nil
}

// Back returns to the overview from any view.
func (m *Machine) Back() {
	m.apply("back", Initial())
}

// Reset replaces the catalogue and returns to the overview, for when the
// table is reloaded.
func (m *Machine) Reset(catalog *model.Table) {
	m.catalog = catalog
	m.apply("reset", Initial())
}

func (m *Machine) apply(event string, to State) {
	t := Transition{Event: event, From: m.state, To: to}
	m.history = append(m.history, t)
	m.state = to

	slog.Debug("Navigation",
		"event", event,
		"from", t.From.String(),
		"to", t.To.String())
}
