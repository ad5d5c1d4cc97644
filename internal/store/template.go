package store

import (
	"sort"
	"strconv"

	"github.com/julianstephens/plannerhub/internal/models"
)

// TemplateStore owns all templates by id. It performs no authorization:
// the admin-only gating lives in the access layer, the store trusts its
// caller.
type TemplateStore struct {
	byID   map[string]*models.Template
	nextID int
}

func NewTemplateStore() *TemplateStore {
	return &TemplateStore{
		byID:   make(map[string]*models.Template),
		nextID: 1,
	}
}

// CreateTemplate creates a template with the given name and prompts and
// returns its id.
func (s *TemplateStore) CreateTemplate(name string, prompts ...string) string {
	t := &models.Template{
		ID:      strconv.Itoa(s.nextID),
		Name:    name,
		Prompts: prompts,
	}
	s.nextID++
	s.byID[t.ID] = t
	return t.ID
}

// Find returns the template with the given id, nil when absent.
func (s *TemplateStore) Find(id string) *models.Template {
	return s.byID[id]
}

// RenamePrompt replaces the prompt at index.
func (s *TemplateStore) RenamePrompt(id string, index int, name string) bool {
	t := s.byID[id]
	return t != nil && t.RenamePrompt(index, name)
}

// AddPrompt inserts a prompt at index; -1 appends.
func (s *TemplateStore) AddPrompt(id string, index int, name string) bool {
	t := s.byID[id]
	return t != nil && t.AddPrompt(index, name)
}

// RemovePrompt deletes the prompt at index.
func (s *TemplateStore) RemovePrompt(id string, index int) bool {
	t := s.byID[id]
	return t != nil && t.RemovePrompt(index)
}

// DeleteTemplate removes the template. True iff it was present.
func (s *TemplateStore) DeleteTemplate(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

// All returns every template in numeric id order.
func (s *TemplateStore) All() []*models.Template {
	ts := make([]*models.Template, 0, len(s.byID))
	for _, t := range s.byID {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return lessID(ts[i].ID, ts[j].ID) })
	return ts
}

// TemplateSnapshot is the versioned persisted form of the store.
type TemplateSnapshot struct {
	Version   int                         `json:"version"`
	NextID    int                         `json:"next_id"`
	Templates map[string]*models.Template `json:"templates"`
}

func (s *TemplateStore) Snapshot() TemplateSnapshot {
	return TemplateSnapshot{
		Version:   SnapshotVersion,
		NextID:    s.nextID,
		Templates: s.byID,
	}
}

func (s *TemplateStore) Restore(snap TemplateSnapshot) {
	s.byID = snap.Templates
	if s.byID == nil {
		s.byID = make(map[string]*models.Template)
	}
	s.nextID = nextIDFloor(s.byID, snap.NextID)
}
