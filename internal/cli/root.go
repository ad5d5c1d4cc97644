package cli

import (
	"fmt"
	"log/slog"

	"github.com/julianstephens/plannerhub/internal/access"
	"github.com/julianstephens/plannerhub/internal/storage"
	"github.com/julianstephens/plannerhub/internal/store"
)

// Context carries the wired core into every command. It is constructed
// once in main and passed by reference; commands never reach for
// globals.
type Context struct {
	Provider  storage.Provider
	Access    *access.Controller
	Identity  *store.IdentityStore
	Planners  *store.PlannerStore
	Templates *store.TemplateStore
	Log       *slog.Logger
}

// LoadAll reconstructs the stores from disk. A failed load is degraded
// to a warning and the stores stay empty; it is never fatal.
func (ctx *Context) LoadAll() bool {
	if err := ctx.Provider.Load(); err != nil {
		ctx.Log.Warn("failed to load snapshots, starting with empty stores", "error", err)
		return false
	}
	return true
}

// SaveAll persists every store. A failed save is logged and reported to
// the user but never fatal.
func (ctx *Context) SaveAll() bool {
	if err := ctx.Provider.Save(); err != nil {
		ctx.Log.Error("failed to save snapshots", "error", err)
		fmt.Println("Warning: your changes could not be saved.")
		return false
	}
	return true
}

// logIn authenticates the invoking user for this command, prompting for
// credentials when flags were omitted.
func (ctx *Context) logIn(identifier, password string) error {
	var err error
	if identifier == "" || password == "" {
		identifier, password, err = promptCredentials(identifier)
		if err != nil {
			return err
		}
	}
	if !ctx.Access.LogIn(identifier, password) {
		return fmt.Errorf("login failed for %q", identifier)
	}
	return nil
}
