package themes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Theme names accepted by GetTheme.
const (
	NameDefault  = "default"
	NameContrast = "contrast"
)

// Theme defines the visual style for the dashboard.
type Theme struct {
	Segments    map[string]lipgloss.Color
	Name        string
	Markdown    string
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Card        lipgloss.Style
	ActiveCard  lipgloss.Style
	RoundedBox  lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusWarn  lipgloss.Style
	Primary     lipgloss.Color
	Secondary   lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	Error       lipgloss.Color
	Warning     lipgloss.Color
	Success     lipgloss.Color
	Info        lipgloss.Color
	Unknown     lipgloss.Color
}

// palette holds the colours a theme is built from.
type palette struct {
	Segments   map[string]string `yaml:"segments"`
	Primary    string            `yaml:"primary"`
	Secondary  string            `yaml:"secondary"`
	Muted      string            `yaml:"muted"`
	Border     string            `yaml:"border"`
	Foreground string            `yaml:"foreground"`
	Error      string            `yaml:"error"`
	Warning    string            `yaml:"warning"`
	Success    string            `yaml:"success"`
	Info       string            `yaml:"info"`
	Unknown    string            `yaml:"unknown"`
	Markdown   string            `yaml:"markdown"`
}

var defaultPalette = palette{
	Primary:    "#3498DB",
	Secondary:  "#9B59B6",
	Muted:      "#7F8C8D",
	Border:     "#404040",
	Foreground: "#fafafa",
	Error:      "#E74C3C",
	Warning:    "#E67E22",
	Success:    "#27AE60",
	Info:       "#3498DB",
	Unknown:    "#95A5A6",
	Markdown:   "dark",
	Segments: map[string]string{
		model.SegmentBelowStandard:       "#C0392B",
		model.SegmentLowDemandQualityGap: "#E74C3C",
		model.SegmentHighDemandMinorGap:  "#F39C12",
		model.SegmentUnderutilized:       "#3498DB",
		model.SegmentHighDemandGoodQual:  "#27AE60",
	},
}

// contrastPalette keeps the red-to-green ordering but stays readable on
// light terminals and for red/green colour blindness.
var contrastPalette = palette{
	Primary:    "#0072B2",
	Secondary:  "#CC79A7",
	Muted:      "#555555",
	Border:     "#000000",
	Foreground: "#000000",
	Error:      "#D55E00",
	Warning:    "#E69F00",
	Success:    "#009E73",
	Info:       "#0072B2",
	Unknown:    "#999999",
	Markdown:   "light",
	Segments: map[string]string{
		model.SegmentBelowStandard:       "#D55E00",
		model.SegmentLowDemandQualityGap: "#E69F00",
		model.SegmentHighDemandMinorGap:  "#F0E442",
		model.SegmentUnderutilized:       "#56B4E9",
		model.SegmentHighDemandGoodQual:  "#009E73",
	},
}

// Default is the default theme.
var Default = build(NameDefault, defaultPalette)

// Contrast is the high-contrast theme.
var Contrast = build(NameContrast, contrastPalette)

func build(name string, p palette) Theme {
	t := Theme{
		Name:       name,
		Primary:    lipgloss.Color(p.Primary),
		Secondary:  lipgloss.Color(p.Secondary),
		Muted:      lipgloss.Color(p.Muted),
		Border:     lipgloss.Color(p.Border),
		Foreground: lipgloss.Color(p.Foreground),
		Error:      lipgloss.Color(p.Error),
		Warning:    lipgloss.Color(p.Warning),
		Success:    lipgloss.Color(p.Success),
		Info:       lipgloss.Color(p.Info),
		Unknown:    lipgloss.Color(p.Unknown),
		Markdown:   p.Markdown,
		Segments:   make(map[string]lipgloss.Color, len(p.Segments)),
	}
	for seg, hex := range p.Segments {
		t.Segments[seg] = lipgloss.Color(hex)
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Foreground).MarginBottom(1)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Normal = lipgloss.NewStyle().Foreground(t.Foreground)
	t.Bold = lipgloss.NewStyle().Bold(true).Foreground(t.Foreground)
	t.Selected = lipgloss.NewStyle().Background(t.Primary).Foreground(lipgloss.Color("#fafafa")).Bold(true)
	t.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Underline(true).Padding(0, 2)
	t.InactiveTab = lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 2)
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Align(lipgloss.Center)
	t.ActiveCard = t.Card.BorderForeground(t.Primary)
	t.RoundedBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.StatusError = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	t.StatusInfo = lipgloss.NewStyle().Foreground(t.Info)
	t.StatusWarn = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	return t
}

// GetTheme returns a theme by name.
func GetTheme(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameDefault:
		return Default, nil
	case NameContrast:
		return Contrast, nil
	default:
		return Theme{}, fmt.Errorf("%w: unknown theme %q", common.ErrInvalidConfig, name)
	}
}

// themeFile is the YAML layout of a custom theme: a base theme plus colour
// overrides.
type themeFile struct {
	Colors palette `yaml:",inline"`
	Base   string  `yaml:"base"`
}

// LoadFile reads a YAML theme. Colours left out of the file keep the base
// theme's values.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied theme path
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme %s: %w", path, err)
	}

	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Theme{}, fmt.Errorf("%w: theme %s: %w", common.ErrInvalidConfig, path, err)
	}

	var base palette
	switch strings.ToLower(strings.TrimSpace(f.Base)) {
	case "", NameDefault:
		base = defaultPalette
	case NameContrast:
		base = contrastPalette
	default:
		return Theme{}, fmt.Errorf("%w: theme %s: unknown base %q", common.ErrInvalidConfig, path, f.Base)
	}

	merged := merge(base, f.Colors)
	for seg, hex := range merged.Segments {
		if !validHex(hex) {
			return Theme{}, fmt.Errorf("%w: theme %s: segment %q has invalid colour %q", common.ErrInvalidConfig, path, seg, hex)
		}
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return build(name, merged), nil
}

func merge(base, over palette) palette {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}
	out := palette{
		Primary:    pick(base.Primary, over.Primary),
		Secondary:  pick(base.Secondary, over.Secondary),
		Muted:      pick(base.Muted, over.Muted),
		Border:     pick(base.Border, over.Border),
		Foreground: pick(base.Foreground, over.Foreground),
		Error:      pick(base.Error, over.Error),
		Warning:    pick(base.Warning, over.Warning),
		Success:    pick(base.Success, over.Success),
		Info:       pick(base.Info, over.Info),
		Unknown:    pick(base.Unknown, over.Unknown),
		Markdown:   pick(base.Markdown, over.Markdown),
		Segments:   make(map[string]string, len(base.Segments)),
	}
	for seg, hex := range base.Segments {
		out.Segments[seg] = hex
	}
	for seg, hex := range over.Segments {
		out.Segments[seg] = hex
	}
	return out
}

func validHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// SegmentColor returns the colour of a canonical segment. Synonyms use the
// colour of the segment they fold into; unknown labels get the neutral
// colour.
func (t Theme) SegmentColor(segment string) lipgloss.Color {
	if canonical, ok := model.SegmentSynonym(segment); ok {
		segment = canonical
	}
	if c, ok := t.Segments[segment]; ok {
		return c
	}
	return t.Unknown
}

// SegmentHex returns the segment colours as hex strings, for chart export.
func (t Theme) SegmentHex() map[string]string {
	out := make(map[string]string, len(t.Segments))
	for seg, c := range t.Segments {
		out[seg] = string(c)
	}
	return out
}
