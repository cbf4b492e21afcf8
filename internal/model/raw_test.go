package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Raw(t *testing.T) {
	records := []CategoryRecord{
		{Name: "Reviews", QualitySeverity: 80.5, Extra: map[string]string{"Owner": "growth"}},
		{Name: "Chat", QualitySeverity: 0.1},
	}
	table, err := NewTable("x.csv", records, []Field{FieldQualitySeverity, FieldName}, []string{"Owner"})
	require.NoError(t, err)

	raw := table.Raw()

	assert.Equal(t, []string{"Feature Category", "Quality Severity (0-100)", "Owner"}, raw.Headers)
	assert.Equal(t, [][]string{
		{"Reviews", "80.5", "growth"},
		{"Chat", "0.1", ""},
	}, raw.Rows)

	clone := raw.Clone()
	clone.Rows[0][0] = "changed"
	assert.Equal(t, "Reviews", raw.Rows[0][0])
}

func TestSnapshot_SourceID(t *testing.T) {
	assert.Equal(t, "snapshot:abc", Snapshot{ID: "abc"}.SourceID())
}
