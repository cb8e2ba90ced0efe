package inspector

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
)

func sampleRecords() []action.Record {
	pos := 3
	return []action.Record{
		{Stage: action.ContentCleaning, Action: "stripped fenced code block"},
		{Stage: action.StructuralRepair, Action: "closed unclosed object", Position: &pos},
	}
}

func TestNew_BuildsViewportContent(t *testing.T) {
	m := New(sampleRecords())
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_CursorMovesWithinBounds(t *testing.T) {
	m := New(sampleRecords())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	mm := updated.(Model)
	assert.Equal(t, 1, mm.cursor)

	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyDown})
	mm = updated.(Model)
	assert.Equal(t, 1, mm.cursor, "cursor should not exceed last record")
}

func TestUpdate_QuitSetsQuitting(t *testing.T) {
	m := New(sampleRecords())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	mm := updated.(Model)
	assert.True(t, mm.quitting)
	require.NotNil(t, cmd)
}

func TestView_EmptyRecordsNoPanic(t *testing.T) {
	m := New(nil)
	assert.Contains(t, m.View(), "Repair actions (0)")
}
