package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestInputModel(t *testing.T) {
	t.Run("enter returns trimmed value", func(t *testing.T) {
		var m tea.Model = newInputModel("Url1")
		m = typeText(m, " https://example.com/a ")
		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		im := m.(inputModel)
		require.NotNil(t, cmd)
		assert.True(t, im.done)
		assert.Equal(t, "https://example.com/a", im.value())
		assert.Empty(t, im.View())
	})

	t.Run("empty value is rejected", func(t *testing.T) {
		var m tea.Model = newInputModel("Name")
		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		im := m.(inputModel)
		assert.Nil(t, cmd)
		assert.False(t, im.done)
		assert.Contains(t, im.View(), "value cannot be empty")
	})

	t.Run("esc aborts", func(t *testing.T) {
		var m tea.Model = newInputModel("Name")
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.True(t, m.(inputModel).aborted)
	})
}

func TestSelectModel(t *testing.T) {
	items := []string{"content-length", "date", "etag"}

	t.Run("toggle and confirm", func(t *testing.T) {
		var m tea.Model = newSelectModel("Skip headers", items)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		sm := m.(selectModel)
		assert.True(t, sm.done)
		assert.Equal(t, []int{1, 2}, sm.chosen())
	})

	t.Run("cursor stays in range", func(t *testing.T) {
		var m tea.Model = newSelectModel("Skip headers", items)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
		assert.Equal(t, 0, m.(selectModel).cursor)
		for i := 0; i < 5; i++ {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		}
		assert.Equal(t, 2, m.(selectModel).cursor)
	})

	t.Run("select all then none", func(t *testing.T) {
		var m tea.Model = newSelectModel("Skip headers", items)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
		assert.Equal(t, []int{0, 1, 2}, m.(selectModel).chosen())
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
		assert.Empty(t, m.(selectModel).chosen())
	})

	t.Run("view marks selection", func(t *testing.T) {
		var m tea.Model = newSelectModel("Skip headers", items)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		view := m.View()
		assert.Contains(t, view, "Skip headers")
		assert.Contains(t, view, "content-length")
		assert.Contains(t, view, "[x]")
	})

	t.Run("ctrl+c aborts", func(t *testing.T) {
		var m tea.Model = newSelectModel("Skip headers", items)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.True(t, m.(selectModel).aborted)
	})
}

func TestMultiSelect_NoItems(t *testing.T) {
	got, err := New().MultiSelect("Skip headers", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
