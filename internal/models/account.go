package models

import "strings"

type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
	RoleTrial   Role = "trial"
)

// AdminDomainSuffix marks signup emails that produce admin accounts.
const AdminDomainSuffix = "@admin.com"

// RoleForEmail derives the account role from the signup email: the
// reserved admin domain yields an admin, an empty email yields a trial
// account, anything else is a regular account.
func RoleForEmail(email string) Role {
	switch {
	case strings.HasSuffix(email, AdminDomainSuffix):
		return RoleAdmin
	case email == "":
		return RoleTrial
	default:
		return RoleRegular
	}
}

// Account is a user identity. Trial accounts have no email and are never
// indexed by email. Only regular accounts carry the planner-ownership
// list; PlannerIDs stays nil for the other variants.
type Account struct {
	ID         string   `json:"id"`
	Email      string   `json:"email,omitempty"`
	UserName   string   `json:"user_name"`
	Password   string   `json:"password"`
	Role       Role     `json:"role"`
	PlannerIDs []string `json:"planner_ids,omitempty"`
}

// CanOwnPlanners reports whether this account variant supports planner
// ownership.
func (a *Account) CanOwnPlanners() bool {
	return a.Role == RoleRegular
}

// AddPlanner links a planner id to the account. Returns false for
// variants without ownership and for ids already linked.
func (a *Account) AddPlanner(plannerID string) bool {
	if !a.CanOwnPlanners() {
		return false
	}
	for _, id := range a.PlannerIDs {
		if id == plannerID {
			return false
		}
	}
	a.PlannerIDs = append(a.PlannerIDs, plannerID)
	return true
}

// RemovePlanner unlinks a planner id. Returns false if the id is not
// linked.
func (a *Account) RemovePlanner(plannerID string) bool {
	for i, id := range a.PlannerIDs {
		if id == plannerID {
			a.PlannerIDs = append(a.PlannerIDs[:i], a.PlannerIDs[i+1:]...)
			return true
		}
	}
	return false
}
