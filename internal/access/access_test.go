package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/plannerhub/internal/models"
	"github.com/julianstephens/plannerhub/internal/store"
)

func newController(t *testing.T) (*Controller, *store.IdentityStore, *store.PlannerStore, *store.TemplateStore) {
	t.Helper()
	identity := store.NewIdentityStore()
	planners := store.NewPlannerStore()
	templates := store.NewTemplateStore()
	return NewController(identity, planners, templates), identity, planners, templates
}

func TestLogIn(t *testing.T) {
	c, identity, _, _ := newController(t)
	id, err := identity.CreateAccount("u@example.com", "user", "pw")
	require.NoError(t, err)

	assert.False(t, c.LogIn(id, "wrong"))
	assert.Empty(t, c.Subject(), "failed login must not bind a session")

	assert.True(t, c.LogIn("u@example.com", "pw"))
	assert.Equal(t, id, c.Subject())
	assert.NotEmpty(t, c.Token())

	token := c.Token()
	assert.True(t, c.LogIn(id, "pw"))
	assert.NotEqual(t, token, c.Token(), "each login mints a fresh token")

	c.LogOut()
	assert.Empty(t, c.Subject())
	assert.Empty(t, c.Token())
}

func TestCreatePlanner_OwnershipRouting(t *testing.T) {
	c, identity, planners, _ := newController(t)
	regID, _ := identity.CreateAccount("u@example.com", "user", "pw")
	require.True(t, c.LogIn(regID, "pw"))

	id, ok := c.CreateDailyPlanner("Monday Plan", "09:00", "17:00", 60)
	require.True(t, ok)
	assert.Equal(t, regID, planners.Find(id).Author)
	assert.Equal(t, []string{id}, c.OwnedPlanners(regID))
	assert.Equal(t, identity.Planners(regID), c.OwnedPlanners(regID), "projection reads through the authoritative record")
}

func TestCreatePlanner_NonRegularDenied(t *testing.T) {
	c, identity, planners, _ := newController(t)

	adminID, _ := identity.CreateAccount("a@admin.com", "boss", "pw")
	require.True(t, c.LogIn(adminID, "pw"))
	_, ok := c.CreateDailyPlanner("Nope", "09:00", "17:00", 60)
	assert.False(t, ok)
	assert.Empty(t, planners.All(), "denied creation leaves no planner behind")

	trialID, _ := identity.CreateAccount("", "guest", "pw")
	require.True(t, c.LogIn(trialID, "pw"))
	_, ok = c.CreateProjectPlanner("Nope", "a", "b", "c")
	assert.False(t, ok)
}

func TestEditAndPrivacyGating(t *testing.T) {
	c, identity, _, _ := newController(t)
	ownerID, _ := identity.CreateAccount("u@example.com", "user", "pw")
	otherID, _ := identity.CreateAccount("v@example.com", "other", "pw")
	adminID, _ := identity.CreateAccount("a@admin.com", "boss", "pw")

	require.True(t, c.LogIn(ownerID, "pw"))
	id, ok := c.CreateDailyPlanner("Monday Plan", "09:00", "17:00", 60)
	require.True(t, ok)

	// Owner edits
	assert.True(t, c.EditPlanner(id, "09:00", "standup"))

	// Stranger cannot touch a private planner
	require.True(t, c.LogIn(otherID, "pw"))
	assert.False(t, c.EditPlanner(id, "09:00", "hijack"))
	assert.False(t, c.ChangePrivacyStatus(id, models.PrivacyPublic))

	// Admin can
	require.True(t, c.LogIn(adminID, "pw"))
	assert.True(t, c.EditPlanner(id, "10:00", "audit"))
	assert.True(t, c.ChangePrivacyStatus(id, models.PrivacyPublic))

	// Public means viewable, not writable: non-owners still cannot edit
	require.True(t, c.LogIn(otherID, "pw"))
	assert.False(t, c.EditPlanner(id, "11:00", "guest note"))
	assert.False(t, c.ChangePrivacyStatus(id, models.PrivacyPrivate))
}

func TestDeletePlanner_Unlinks(t *testing.T) {
	c, identity, planners, _ := newController(t)
	ownerID, _ := identity.CreateAccount("u@example.com", "user", "pw")
	require.True(t, c.LogIn(ownerID, "pw"))
	id, _ := c.CreateDailyPlanner("Monday Plan", "09:00", "17:00", 60)

	assert.True(t, c.DeletePlanner(id))
	assert.Nil(t, planners.Find(id))
	assert.Empty(t, c.OwnedPlanners(ownerID))
	assert.False(t, c.DeletePlanner(id))
}

func TestRemoveAccount_Cascade(t *testing.T) {
	c, identity, planners, _ := newController(t)
	ownerID, _ := identity.CreateAccount("u@example.com", "user", "pw")
	require.True(t, c.LogIn(ownerID, "pw"))

	privateID, _ := c.CreateDailyPlanner("Private Plan", "09:00", "17:00", 60)
	publicID, _ := c.CreateProjectPlanner("Public Plan", "todo", "doing", "done")
	require.True(t, c.ChangePrivacyStatus(publicID, models.PrivacyPublic))

	assert.True(t, c.RemoveAccount(ownerID))

	// Private planners cascade; public ones survive author-orphaned
	assert.Nil(t, planners.Find(privateID))
	require.NotNil(t, planners.Find(publicID))
	assert.Equal(t, ownerID, planners.Find(publicID).Author)
	assert.Nil(t, identity.FindAccount(ownerID))

	// The session belonging to the removed account ends
	assert.Empty(t, c.Subject())
}

func TestTemplateGating(t *testing.T) {
	c, identity, _, _ := newController(t)
	regID, _ := identity.CreateAccount("u@example.com", "user", "pw")
	adminID, _ := identity.CreateAccount("a@admin.com", "boss", "pw")

	require.True(t, c.LogIn(regID, "pw"))
	_, ok := c.CreateTemplate("weekly review", "wins")
	assert.False(t, ok, "non-admin template creation")

	require.True(t, c.LogIn(adminID, "pw"))
	id, ok := c.CreateTemplate("weekly review", "wins")
	require.True(t, ok)
	assert.True(t, c.AddPrompt(id, -1, "losses"))
	assert.True(t, c.RenamePrompt(id, 0, "highlights"))

	require.True(t, c.LogIn(regID, "pw"))
	assert.False(t, c.AddPrompt(id, -1, "sneaky"))
	assert.False(t, c.RemovePrompt(id, 0))
	assert.False(t, c.DeleteTemplate(id))

	require.True(t, c.LogIn(adminID, "pw"))
	assert.True(t, c.DeleteTemplate(id))
}

// Full walkthrough: signup roles, privacy toggling, public listing and
// cascade deletion in one flow.
func TestPlanningWorkflow(t *testing.T) {
	c, identity, planners, _ := newController(t)

	adminID, err := identity.CreateAccount("a@admin.com", "boss", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, c.Role(adminID))

	trialID, err := identity.CreateAccount("", "guest", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTrial, c.Role(trialID))
	assert.Nil(t, identity.FindAccount("@"), "trial email lookup fails")
	assert.NotNil(t, identity.FindAccount(trialID), "trial id lookup succeeds")

	ownerID, err := identity.CreateAccount("u@example.com", "user", "pw")
	require.NoError(t, err)
	require.True(t, c.LogIn(ownerID, "pw"))

	plannerID, ok := c.CreateDailyPlanner("Monday Plan", "09:00", "17:00", 60)
	require.True(t, ok)
	assert.Equal(t, models.PrivacyPrivate, planners.Find(plannerID).Privacy)

	require.True(t, c.ChangePrivacyStatus(plannerID, models.PrivacyPublic))
	assert.Contains(t, planners.PublicPlanners(), plannerID)

	require.True(t, c.ChangePrivacyStatus(plannerID, models.PrivacyPrivate))
	assert.NotContains(t, planners.PublicPlanners(), plannerID)

	require.True(t, c.RemoveAccount(ownerID))
	assert.Nil(t, planners.Find(plannerID), "private planner cascades with its account")
}
