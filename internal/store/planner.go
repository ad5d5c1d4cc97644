package store

import (
	"sort"
	"strconv"

	"github.com/julianstephens/plannerhub/internal/models"
)

// PlannerStore owns all planners by id. Planners are created unowned
// and private; author binding and ownership bookkeeping are routed
// through the access layer.
type PlannerStore struct {
	byID   map[string]*models.Planner
	nextID int
}

func NewPlannerStore() *PlannerStore {
	return &PlannerStore{
		byID:   make(map[string]*models.Planner),
		nextID: 1,
	}
}

func (s *PlannerStore) add(p *models.Planner) string {
	p.ID = strconv.Itoa(s.nextID)
	s.nextID++
	p.Privacy = models.PrivacyPrivate
	s.byID[p.ID] = p
	return p.ID
}

// NewDailyPlanner creates a daily planner with a fixed slot grid from
// start to end at the given minute interval.
func (s *PlannerStore) NewDailyPlanner(name, start, end string, interval int) (string, error) {
	agenda, err := models.NewDailyAgenda(start, end, interval)
	if err != nil {
		return "", err
	}
	return s.add(&models.Planner{
		Name:  name,
		Type:  models.PlannerDaily,
		Daily: agenda,
	}), nil
}

// NewProjectPlanner creates a project planner with three status columns.
func (s *PlannerStore) NewProjectPlanner(name, first, second, third string) (string, error) {
	return s.add(&models.Planner{
		Name:    name,
		Type:    models.PlannerProject,
		Project: models.NewProjectBoard(first, second, third),
	}), nil
}

// NewReminderPlanner creates a reminder planner with the given column
// headings.
func (s *PlannerStore) NewReminderPlanner(name, taskHeading, dateHeading, statusHeading string) (string, error) {
	return s.add(&models.Planner{
		Name:     name,
		Type:     models.PlannerReminder,
		Reminder: models.NewReminderList(taskHeading, dateHeading, statusHeading),
	}), nil
}

// Find returns the planner with the given id, nil when absent.
func (s *PlannerStore) Find(id string) *models.Planner {
	return s.byID[id]
}

// SetAuthor binds the planner to its owning account id. Meant to be
// called once, right after creation.
func (s *PlannerStore) SetAuthor(id, author string) bool {
	p := s.byID[id]
	if p == nil {
		return false
	}
	p.Author = author
	return true
}

// Edit dispatches a type-polymorphic edit to the planner.
func (s *PlannerStore) Edit(id, key, value string) bool {
	p := s.byID[id]
	if p == nil {
		return false
	}
	return p.Edit(key, value)
}

// ChangeTaskStatus updates the completion flag of a reminder-planner
// task. False for other planner types.
func (s *PlannerStore) ChangeTaskStatus(id, task string, done bool) bool {
	p := s.byID[id]
	if p == nil || p.Type != models.PlannerReminder {
		return false
	}
	return p.Reminder.SetStatus(task, done)
}

// ChangePrivacyStatus moves the planner between private and public.
// False for an unknown id or an invalid status value.
func (s *PlannerStore) ChangePrivacyStatus(id string, status models.PrivacyStatus) bool {
	p := s.byID[id]
	if p == nil || !models.ValidPrivacyStatus(status) {
		return false
	}
	p.Privacy = status
	return true
}

// Delete removes the planner. True iff it was present.
func (s *PlannerStore) Delete(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

// PublicPlanners returns the ids of all public planners in numeric id
// order.
func (s *PlannerStore) PublicPlanners() []string {
	var ids []string
	for id, p := range s.byID {
		if p.Privacy == models.PrivacyPublic {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
	return ids
}

// PlannersByAuthor returns the ids of all planners authored by the
// given account id, in numeric id order.
func (s *PlannerStore) PlannersByAuthor(author string) []string {
	var ids []string
	for id, p := range s.byID {
		if p.Author == author {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
	return ids
}

// All returns every planner in numeric id order.
func (s *PlannerStore) All() []*models.Planner {
	ps := make([]*models.Planner, 0, len(s.byID))
	for _, p := range s.byID {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return lessID(ps[i].ID, ps[j].ID) })
	return ps
}

// String renders the planner with the given id, empty when absent.
func (s *PlannerStore) String(id string) string {
	p := s.byID[id]
	if p == nil {
		return ""
	}
	return p.String()
}

// PlannerSnapshot is the versioned persisted form of the store.
type PlannerSnapshot struct {
	Version  int                        `json:"version"`
	NextID   int                        `json:"next_id"`
	Planners map[string]*models.Planner `json:"planners"`
}

func (s *PlannerStore) Snapshot() PlannerSnapshot {
	return PlannerSnapshot{
		Version:  SnapshotVersion,
		NextID:   s.nextID,
		Planners: s.byID,
	}
}

func (s *PlannerStore) Restore(snap PlannerSnapshot) {
	s.byID = snap.Planners
	if s.byID == nil {
		s.byID = make(map[string]*models.Planner)
	}
	s.nextID = nextIDFloor(s.byID, snap.NextID)
}
