package components

import (
	"strings"
	"testing"

	"github.com/Veraticus/app-strategy/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func TestRenderHeroCards(t *testing.T) {
	cards := []HeroCard{
		{Key: "1", Label: "Actionable", Value: "7"},
		{Key: "2", Label: "Severity", Value: "4", Active: true},
		{Key: "3", Label: "Demand", Value: "3"},
		{Key: "4", Label: "Affected", Value: "85,000"},
	}

	wide := RenderHeroCards(themes.Default, cards, 160)
	narrow := RenderHeroCards(themes.Default, cards, 80)

	for _, c := range cards {
		assert.Contains(t, wide, c.Value)
		assert.Contains(t, wide, "["+c.Key+"]")
	}
	assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
	assert.Empty(t, RenderHeroCards(themes.Default, nil, 80))
}
