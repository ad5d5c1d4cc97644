package models

import (
	"fmt"
	"strings"
)

// Template is an admin-authored reusable prompt set. Prompts keep their
// insertion order and are addressed by 0-based index.
type Template struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Prompts []string `json:"prompts"`
}

// RenamePrompt replaces the prompt at index. Returns false when the
// index is out of range.
func (t *Template) RenamePrompt(index int, name string) bool {
	if index < 0 || index >= len(t.Prompts) {
		return false
	}
	t.Prompts[index] = name
	return true
}

// AddPrompt inserts a prompt at index; index -1 or len(Prompts) appends.
func (t *Template) AddPrompt(index int, name string) bool {
	if index == -1 || index == len(t.Prompts) {
		t.Prompts = append(t.Prompts, name)
		return true
	}
	if index < 0 || index > len(t.Prompts) {
		return false
	}
	t.Prompts = append(t.Prompts[:index], append([]string{name}, t.Prompts[index:]...)...)
	return true
}

// RemovePrompt deletes the prompt at index.
func (t *Template) RemovePrompt(index int) bool {
	if index < 0 || index >= len(t.Prompts) {
		return false
	}
	t.Prompts = append(t.Prompts[:index], t.Prompts[index+1:]...)
	return true
}

// String renders the template with its numbered prompts.
func (t *Template) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "template #%s: %s\n", t.ID, t.Name)
	for i, p := range t.Prompts {
		fmt.Fprintf(&b, "  %d. %s\n", i, p)
	}
	return b.String()
}
