package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/plannerhub/internal/models"
)

func TestCreateAccount_Roles(t *testing.T) {
	s := NewIdentityStore()

	adminID, err := s.CreateAccount("a@admin.com", "boss", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, s.Role(adminID))

	trialID, err := s.CreateAccount("", "guest", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTrial, s.Role(trialID))

	regID, err := s.CreateAccount("u@example.com", "user", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleRegular, s.Role(regID))

	// Ids are unique and sequential, never reused
	assert.NotEqual(t, adminID, trialID)
	assert.NotEqual(t, trialID, regID)
}

func TestCreateAccount_TrialNotInEmailIndex(t *testing.T) {
	s := NewIdentityStore()
	trialID, err := s.CreateAccount("", "guest", "pw")
	require.NoError(t, err)

	// Email lookup fails, id lookup succeeds
	assert.Nil(t, s.FindAccount("@"))
	assert.NotNil(t, s.FindAccount(trialID))

	// A second trial account is fine: empty emails never collide
	_, err = s.CreateAccount("", "guest2", "pw")
	assert.NoError(t, err)
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	s := NewIdentityStore()
	_, err := s.CreateAccount("u@example.com", "user", "pw")
	require.NoError(t, err)

	before := len(s.Accounts())
	_, err = s.CreateAccount("u@example.com", "impostor", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Len(t, s.Accounts(), before, "failed signup must not mutate the store")
}

func TestFindAccount_Disambiguation(t *testing.T) {
	s := NewIdentityStore()
	id, err := s.CreateAccount("u@example.com", "user", "pw")
	require.NoError(t, err)

	assert.Equal(t, id, s.FindAccount("u@example.com").ID)
	assert.Equal(t, id, s.FindAccount(id).ID)
	assert.Nil(t, s.FindAccount("missing@example.com"))
	assert.Nil(t, s.FindAccount("999"))
}

func TestSetPassword(t *testing.T) {
	s := NewIdentityStore()
	id, err := s.CreateAccount("u@example.com", "user", "old")
	require.NoError(t, err)
	acc := s.FindAccount(id)

	assert.False(t, s.SetPassword(acc, "old"), "same password is a no-op")
	assert.True(t, s.CheckPassword(acc, "old"))

	assert.True(t, s.SetPassword(acc, "new"))
	assert.True(t, s.CheckPassword(acc, "new"))
	assert.False(t, s.CheckPassword(acc, "old"))
}

func TestRemoveAccount(t *testing.T) {
	s := NewIdentityStore()
	id, err := s.CreateAccount("u@example.com", "user", "pw")
	require.NoError(t, err)
	acc := s.FindAccount(id)

	assert.True(t, s.RemoveAccount(acc))
	assert.Nil(t, s.FindAccount(id))
	assert.Nil(t, s.FindAccount("u@example.com"))

	// Second removal is a no-op
	assert.False(t, s.RemoveAccount(acc))
}

func TestPlannerOwnership(t *testing.T) {
	s := NewIdentityStore()
	regID, _ := s.CreateAccount("u@example.com", "user", "pw")
	adminID, _ := s.CreateAccount("a@admin.com", "boss", "pw")

	assert.True(t, s.AddPlanner(regID, "10"))
	assert.False(t, s.AddPlanner(regID, "10"), "duplicate link")
	assert.Equal(t, []string{"10"}, s.Planners(regID))

	// Non-regular accounts never own planners
	assert.False(t, s.AddPlanner(adminID, "11"))
	assert.Nil(t, s.Planners(adminID))

	assert.True(t, s.RemovePlanner(regID, "10"))
	assert.False(t, s.RemovePlanner(regID, "10"))
}

func TestIdentitySnapshotRoundTrip(t *testing.T) {
	s := NewIdentityStore()
	regID, _ := s.CreateAccount("u@example.com", "user", "pw")
	trialID, _ := s.CreateAccount("", "guest", "pw")
	s.AddPlanner(regID, "3")

	restored := NewIdentityStore()
	restored.Restore(s.Snapshot())

	assert.Equal(t, "user", restored.FindAccount(regID).UserName)
	assert.Equal(t, []string{"3"}, restored.Planners(regID))
	assert.NotNil(t, restored.FindAccount(trialID))
	// Email index is rebuilt from entities; trial stays out of it
	assert.Equal(t, regID, restored.FindAccount("u@example.com").ID)

	// The allocator survives: new ids never collide with restored ones
	newID, err := restored.CreateAccount("v@example.com", "v", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, regID, newID)
	assert.NotEqual(t, trialID, newID)
}

func TestIdentityRestore_MissingAllocator(t *testing.T) {
	s := NewIdentityStore()
	s.Restore(IdentitySnapshot{
		Version: SnapshotVersion,
		Accounts: map[string]*models.Account{
			"7": {ID: "7", Email: "u@example.com", UserName: "user", Password: "pw", Role: models.RoleRegular},
		},
	})

	newID, err := s.CreateAccount("v@example.com", "v", "pw")
	require.NoError(t, err)
	assert.Equal(t, "8", newID)
	assert.Equal(t, "user", s.FindAccount("7").UserName)
}
