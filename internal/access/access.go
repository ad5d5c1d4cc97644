// Package access binds the authenticated session to the entity stores:
// it authenticates users, tracks the current session subject, enforces
// role and ownership checks, and keeps the account→planner ownership
// record consistent with planner store mutations.
package access

import (
	"github.com/google/uuid"

	"github.com/julianstephens/plannerhub/internal/models"
	"github.com/julianstephens/plannerhub/internal/store"
)

// Controller is the authorization facade over the three stores. The
// per-account PlannerIDs list in the identity store is the single
// source of truth for ownership; the controller never keeps its own
// copy.
type Controller struct {
	identity  *store.IdentityStore
	planners  *store.PlannerStore
	templates *store.TemplateStore

	subject string // account id of the authenticated session
	token   string
}

func NewController(identity *store.IdentityStore, planners *store.PlannerStore, templates *store.TemplateStore) *Controller {
	return &Controller{
		identity:  identity,
		planners:  planners,
		templates: templates,
	}
}

// LogIn authenticates an account by id or email. On success the session
// subject is bound and a fresh session token minted; on failure session
// state is untouched.
func (c *Controller) LogIn(identifier, password string) bool {
	acc := c.identity.FindAccount(identifier)
	if acc == nil || !c.identity.CheckPassword(acc, password) {
		return false
	}
	c.subject = acc.ID
	c.token = uuid.NewString()
	return true
}

// LogOut clears the session subject and token.
func (c *Controller) LogOut() {
	c.subject = ""
	c.token = ""
}

// Subject returns the account id bound to the current session, empty
// when nobody is logged in.
func (c *Controller) Subject() string { return c.subject }

// Token returns the session token minted at login.
func (c *Controller) Token() string { return c.token }

// Role returns the role of the account behind identifier, empty for an
// unknown account.
func (c *Controller) Role(identifier string) models.Role {
	return c.identity.Role(identifier)
}

// IsAdmin reports whether identifier resolves to an admin account.
func (c *Controller) IsAdmin(identifier string) bool {
	return c.identity.Role(identifier) == models.RoleAdmin
}

// CreateAccount signs up a new account; the role is derived from the
// email. Duplicate non-trial emails fail with store.ErrDuplicateEmail.
func (c *Controller) CreateAccount(email, userName, password string) (string, error) {
	return c.identity.CreateAccount(email, userName, password)
}

// SetPlanner links a planner into the owner's ownership record. Every
// planner creation must route through here to keep the record in step
// with the planner store.
func (c *Controller) SetPlanner(owner, plannerID string) bool {
	return c.identity.AddPlanner(owner, plannerID)
}

// RemovePlanner unlinks a planner from the owner's ownership record.
func (c *Controller) RemovePlanner(owner, plannerID string) bool {
	return c.identity.RemovePlanner(owner, plannerID)
}

// OwnedPlanners is a read-through projection of the authoritative
// per-account ownership list. Nil for accounts that cannot own
// planners.
func (c *Controller) OwnedPlanners(identifier string) []string {
	return c.identity.Planners(identifier)
}

// createPlanner finishes planner creation for the current subject:
// author binding plus ownership linking. Only regular accounts may own
// planners.
func (c *Controller) createPlanner(id string, err error) (string, bool) {
	if err != nil {
		return "", false
	}
	acc := c.identity.FindAccount(c.subject)
	if acc == nil || !acc.CanOwnPlanners() {
		c.planners.Delete(id)
		return "", false
	}
	c.planners.SetAuthor(id, acc.ID)
	c.SetPlanner(acc.ID, id)
	return id, true
}

// CreateDailyPlanner creates a daily planner owned by the session
// subject.
func (c *Controller) CreateDailyPlanner(name, start, end string, interval int) (string, bool) {
	return c.createPlanner(c.planners.NewDailyPlanner(name, start, end, interval))
}

// CreateProjectPlanner creates a project planner owned by the session
// subject.
func (c *Controller) CreateProjectPlanner(name, first, second, third string) (string, bool) {
	return c.createPlanner(c.planners.NewProjectPlanner(name, first, second, third))
}

// CreateReminderPlanner creates a reminder planner owned by the session
// subject.
func (c *Controller) CreateReminderPlanner(name, taskHeading, dateHeading, statusHeading string) (string, bool) {
	return c.createPlanner(c.planners.NewReminderPlanner(name, taskHeading, dateHeading, statusHeading))
}

// CanEdit reports whether identifier may mutate the planner: the owner
// always may, admins may edit anything. Public planners are viewable by
// everyone but stay writable only by their owner.
func (c *Controller) CanEdit(identifier, plannerID string) bool {
	p := c.planners.Find(plannerID)
	if p == nil {
		return false
	}
	acc := c.identity.FindAccount(identifier)
	if acc == nil {
		return false
	}
	return acc.Role == models.RoleAdmin || p.Author == acc.ID
}

// EditPlanner applies a type-polymorphic edit on behalf of the session
// subject, refusing when the subject lacks edit rights.
func (c *Controller) EditPlanner(id, key, value string) bool {
	if !c.CanEdit(c.subject, id) {
		return false
	}
	return c.planners.Edit(id, key, value)
}

// ChangePrivacyStatus toggles planner visibility for the session
// subject. Only the owner or an admin may change it.
func (c *Controller) ChangePrivacyStatus(id string, status models.PrivacyStatus) bool {
	p := c.planners.Find(id)
	if p == nil {
		return false
	}
	if !c.IsAdmin(c.subject) && p.Author != c.subject {
		return false
	}
	return c.planners.ChangePrivacyStatus(id, status)
}

// DeletePlanner removes a planner on behalf of the session subject
// (owner or admin), unlinking it from the ownership record first.
func (c *Controller) DeletePlanner(id string) bool {
	p := c.planners.Find(id)
	if p == nil {
		return false
	}
	if !c.IsAdmin(c.subject) && p.Author != c.subject {
		return false
	}
	if p.Author != "" {
		c.RemovePlanner(p.Author, id)
	}
	return c.planners.Delete(id)
}

// RemoveAccount deletes the account behind identifier. Every private
// planner the account owns is deleted with it; public planners survive
// author-orphaned. The current session ends if it belonged to the
// removed account.
func (c *Controller) RemoveAccount(identifier string) bool {
	acc := c.identity.FindAccount(identifier)
	if acc == nil {
		return false
	}
	for _, plannerID := range append([]string(nil), acc.PlannerIDs...) {
		p := c.planners.Find(plannerID)
		if p == nil {
			continue
		}
		if p.Privacy == models.PrivacyPrivate {
			c.planners.Delete(plannerID)
		}
	}
	if !c.identity.RemoveAccount(acc) {
		return false
	}
	if c.subject == acc.ID {
		c.LogOut()
	}
	return true
}

// CreateTemplate creates a template; admin-only.
func (c *Controller) CreateTemplate(name string, prompts ...string) (string, bool) {
	if !c.IsAdmin(c.subject) {
		return "", false
	}
	return c.templates.CreateTemplate(name, prompts...), true
}

// RenamePrompt renames a template prompt; admin-only.
func (c *Controller) RenamePrompt(id string, index int, name string) bool {
	return c.IsAdmin(c.subject) && c.templates.RenamePrompt(id, index, name)
}

// AddPrompt inserts a template prompt; admin-only.
func (c *Controller) AddPrompt(id string, index int, name string) bool {
	return c.IsAdmin(c.subject) && c.templates.AddPrompt(id, index, name)
}

// RemovePrompt deletes a template prompt; admin-only.
func (c *Controller) RemovePrompt(id string, index int) bool {
	return c.IsAdmin(c.subject) && c.templates.RemovePrompt(id, index)
}

// DeleteTemplate removes a template; admin-only.
func (c *Controller) DeleteTemplate(id string) bool {
	return c.IsAdmin(c.subject) && c.templates.DeleteTemplate(id)
}
