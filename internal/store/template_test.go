package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateStore_CRUD(t *testing.T) {
	s := NewTemplateStore()

	id := s.CreateTemplate("weekly review", "wins", "losses")
	require.NotNil(t, s.Find(id))
	assert.Equal(t, []string{"wins", "losses"}, s.Find(id).Prompts)

	assert.True(t, s.AddPrompt(id, -1, "next steps"))
	assert.True(t, s.RenamePrompt(id, 1, "learnings"))
	assert.True(t, s.RemovePrompt(id, 0))
	assert.Equal(t, []string{"learnings", "next steps"}, s.Find(id).Prompts)

	assert.False(t, s.RenamePrompt("999", 0, "x"))
	assert.False(t, s.AddPrompt("999", -1, "x"))
	assert.False(t, s.RemovePrompt("999", 0))

	assert.True(t, s.DeleteTemplate(id))
	assert.Nil(t, s.Find(id))
	assert.False(t, s.DeleteTemplate(id))
}

func TestTemplateSnapshotRoundTrip(t *testing.T) {
	s := NewTemplateStore()
	a := s.CreateTemplate("daily intent", "focus")
	b := s.CreateTemplate("retro", "keep", "drop")

	restored := NewTemplateStore()
	restored.Restore(s.Snapshot())

	require.NotNil(t, restored.Find(a))
	require.NotNil(t, restored.Find(b))
	assert.Equal(t, []string{"keep", "drop"}, restored.Find(b).Prompts)

	c := restored.CreateTemplate("new")
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}
