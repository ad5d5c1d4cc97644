package store

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/plannerhub/internal/models"
)

// ErrDuplicateEmail is returned by CreateAccount when a non-trial email
// is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// IdentityStore owns all accounts, indexed by id and, for non-trial
// accounts, by email. The per-account PlannerIDs list kept here is the
// authoritative ownership record.
type IdentityStore struct {
	byID    map[string]*models.Account
	byEmail map[string]*models.Account
	nextID  int
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]*models.Account),
		nextID:  1,
	}
}

// CreateAccount creates an account whose role is derived from the email
// and returns its id. Trial accounts (empty email) never enter the
// email index. A duplicate non-trial email fails without mutation.
func (s *IdentityStore) CreateAccount(email, userName, password string) (string, error) {
	role := models.RoleForEmail(email)
	if role != models.RoleTrial {
		if _, taken := s.byEmail[email]; taken {
			return "", ErrDuplicateEmail
		}
	}

	acc := &models.Account{
		ID:       strconv.Itoa(s.nextID),
		Email:    email,
		UserName: userName,
		Password: password,
		Role:     role,
	}
	s.nextID++

	s.byID[acc.ID] = acc
	if role != models.RoleTrial {
		s.byEmail[email] = acc
	}
	return acc.ID, nil
}

// FindAccount looks an account up by id or email. An identifier
// containing "@" selects email lookup. Returns nil when absent.
func (s *IdentityStore) FindAccount(identifier string) *models.Account {
	if strings.Contains(identifier, "@") {
		return s.byEmail[identifier]
	}
	return s.byID[identifier]
}

// CheckPassword compares a candidate against the stored password.
func (s *IdentityStore) CheckPassword(acc *models.Account, candidate string) bool {
	return acc != nil && acc.Password == candidate
}

// SetUserName updates the display name.
func (s *IdentityStore) SetUserName(acc *models.Account, userName string) {
	if acc != nil {
		acc.UserName = userName
	}
}

// SetPassword changes the password only when it differs from the
// current one. Verifying the old password first is the caller's job.
func (s *IdentityStore) SetPassword(acc *models.Account, newPassword string) bool {
	if acc == nil || acc.Password == newPassword {
		return false
	}
	acc.Password = newPassword
	return true
}

// RemoveAccount drops the account from both indices. Returns false when
// the account is not tracked.
func (s *IdentityStore) RemoveAccount(acc *models.Account) bool {
	if acc == nil {
		return false
	}
	if _, ok := s.byID[acc.ID]; !ok {
		return false
	}
	delete(s.byID, acc.ID)
	if acc.Role != models.RoleTrial {
		delete(s.byEmail, acc.Email)
	}
	return true
}

// Role returns the role of the account behind identifier, or the empty
// string when no such account exists.
func (s *IdentityStore) Role(identifier string) models.Role {
	acc := s.FindAccount(identifier)
	if acc == nil {
		return ""
	}
	return acc.Role
}

// Planners returns the planner ids owned by the account. Nil for
// unknown accounts and for variants without ownership.
func (s *IdentityStore) Planners(identifier string) []string {
	acc := s.FindAccount(identifier)
	if acc == nil || !acc.CanOwnPlanners() {
		return nil
	}
	return acc.PlannerIDs
}

// AddPlanner links a planner to the account's ownership record.
func (s *IdentityStore) AddPlanner(identifier, plannerID string) bool {
	acc := s.FindAccount(identifier)
	return acc != nil && acc.AddPlanner(plannerID)
}

// RemovePlanner unlinks a planner from the account's ownership record.
func (s *IdentityStore) RemovePlanner(identifier, plannerID string) bool {
	acc := s.FindAccount(identifier)
	return acc != nil && acc.RemovePlanner(plannerID)
}

// Accounts returns all accounts in ascending id order.
func (s *IdentityStore) Accounts() []*models.Account {
	accs := make([]*models.Account, 0, len(s.byID))
	for _, acc := range s.byID {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool { return lessID(accs[i].ID, accs[j].ID) })
	return accs
}

// IdentitySnapshot is the versioned persisted form of the store.
type IdentitySnapshot struct {
	Version  int                        `json:"version"`
	NextID   int                        `json:"next_id"`
	Accounts map[string]*models.Account `json:"accounts"`
}

// Snapshot captures the full id→account map and the id allocator.
func (s *IdentityStore) Snapshot() IdentitySnapshot {
	return IdentitySnapshot{
		Version:  SnapshotVersion,
		NextID:   s.nextID,
		Accounts: s.byID,
	}
}

// Restore replaces the store contents from a snapshot. The email index
// is rebuilt from the entities themselves.
func (s *IdentityStore) Restore(snap IdentitySnapshot) {
	s.byID = snap.Accounts
	if s.byID == nil {
		s.byID = make(map[string]*models.Account)
	}
	s.byEmail = make(map[string]*models.Account)
	for _, acc := range s.byID {
		if acc.Role != models.RoleTrial && acc.Email != "" {
			s.byEmail[acc.Email] = acc
		}
	}
	s.nextID = nextIDFloor(s.byID, snap.NextID)
}
