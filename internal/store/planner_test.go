package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/plannerhub/internal/models"
)

func TestNewPlanners_DefaultPrivate(t *testing.T) {
	s := NewPlannerStore()

	daily, err := s.NewDailyPlanner("Monday Plan", "09:00", "17:00", 60)
	require.NoError(t, err)
	project, err := s.NewProjectPlanner("Launch", "todo", "doing", "done")
	require.NoError(t, err)
	reminder, err := s.NewReminderPlanner("Chores", "task", "deadline", "status")
	require.NoError(t, err)

	for _, id := range []string{daily, project, reminder} {
		assert.Equal(t, models.PrivacyPrivate, s.Find(id).Privacy)
		assert.Empty(t, s.Find(id).Author)
	}
}

func TestNewDailyPlanner_InvalidTimes(t *testing.T) {
	s := NewPlannerStore()
	_, err := s.NewDailyPlanner("Broken", "17:00", "09:00", 60)
	assert.Error(t, err)
}

func TestChangePrivacyStatus(t *testing.T) {
	s := NewPlannerStore()
	id, err := s.NewDailyPlanner("Monday Plan", "09:00", "17:00", 60)
	require.NoError(t, err)

	assert.True(t, s.ChangePrivacyStatus(id, models.PrivacyPublic))
	assert.Contains(t, s.PublicPlanners(), id)

	// Toggling twice returns to the original state
	assert.True(t, s.ChangePrivacyStatus(id, models.PrivacyPrivate))
	assert.NotContains(t, s.PublicPlanners(), id)

	assert.False(t, s.ChangePrivacyStatus(id, models.PrivacyStatus("friends-only")))
	assert.False(t, s.ChangePrivacyStatus("999", models.PrivacyPublic))
}

func TestEditDispatch(t *testing.T) {
	s := NewPlannerStore()
	daily, _ := s.NewDailyPlanner("Monday Plan", "09:00", "12:00", 60)
	project, _ := s.NewProjectPlanner("Launch", "todo", "doing", "done")
	reminder, _ := s.NewReminderPlanner("Chores", "task", "deadline", "status")

	assert.True(t, s.Edit(daily, "10:10", "standup"))
	assert.Equal(t, "standup", s.Find(daily).Daily.Agenda["10:00"])

	assert.True(t, s.Edit(project, "todo", "ship it"))
	assert.True(t, s.Edit(reminder, "laundry", "2026-09-01"))

	assert.False(t, s.Edit("999", "k", "v"))
}

func TestChangeTaskStatus(t *testing.T) {
	s := NewPlannerStore()
	reminder, _ := s.NewReminderPlanner("Chores", "task", "deadline", "status")
	daily, _ := s.NewDailyPlanner("Monday Plan", "09:00", "12:00", 60)

	require.True(t, s.Edit(reminder, "laundry", "2026-09-01"))
	assert.True(t, s.ChangeTaskStatus(reminder, "laundry", true))
	assert.True(t, s.Find(reminder).Reminder.Tasks[0].Done)

	assert.False(t, s.ChangeTaskStatus(daily, "laundry", true), "wrong planner type")
	assert.False(t, s.ChangeTaskStatus("999", "laundry", true))
}

func TestDeletePlanner(t *testing.T) {
	s := NewPlannerStore()
	id, _ := s.NewDailyPlanner("Monday Plan", "09:00", "17:00", 60)

	assert.True(t, s.Delete(id))
	assert.Nil(t, s.Find(id))
	assert.False(t, s.Delete(id))
}

func TestScans_StableOrder(t *testing.T) {
	s := NewPlannerStore()
	var ids []string
	for i := 0; i < 5; i++ {
		id, err := s.NewProjectPlanner("p", "a", "b", "c")
		require.NoError(t, err)
		s.SetAuthor(id, "1")
		require.True(t, s.ChangePrivacyStatus(id, models.PrivacyPublic))
		ids = append(ids, id)
	}

	assert.Equal(t, ids, s.PublicPlanners())
	assert.Equal(t, ids, s.PlannersByAuthor("1"))
	assert.Empty(t, s.PlannersByAuthor("2"))
}

func TestPlannerSnapshotRoundTrip(t *testing.T) {
	s := NewPlannerStore()
	id, err := s.NewDailyPlanner("Monday Plan", "09:00", "12:00", 60)
	require.NoError(t, err)
	s.SetAuthor(id, "1")
	require.True(t, s.Edit(id, "09:00", "standup"))

	restored := NewPlannerStore()
	restored.Restore(s.Snapshot())

	p := restored.Find(id)
	require.NotNil(t, p)
	assert.Equal(t, "Monday Plan", p.Name)
	assert.Equal(t, "1", p.Author)
	assert.Equal(t, "standup", p.Daily.Agenda["09:00"])

	newID, err := restored.NewProjectPlanner("Next", "a", "b", "c")
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)
}

func TestPlannerRestore_MissingAllocator(t *testing.T) {
	s := NewPlannerStore()
	s.Restore(PlannerSnapshot{
		Version: SnapshotVersion,
		Planners: map[string]*models.Planner{
			"5": {ID: "5", Name: "Kept", Type: models.PlannerProject, Project: models.NewProjectBoard("a", "b", "c")},
		},
	})

	// The allocator resumes past the highest restored id even when the
	// snapshot carries no allocator value.
	newID, err := s.NewProjectPlanner("Next", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, "6", newID)
	assert.Equal(t, "Kept", s.Find("5").Name)
}
