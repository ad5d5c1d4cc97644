package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/plannerhub/internal/store"
)

const (
	AccountsFile  = "accounts.json"
	PlannersFile  = "planners.json"
	TemplatesFile = "templates.json"
)

// JSONProvider keeps one snapshot file per entity store inside a data
// directory.
type JSONProvider struct {
	dir       string
	identity  *identityJSONGateway
	planners  *plannerJSONGateway
	templates *templateJSONGateway
}

func NewJSONProvider(dir string, identity *store.IdentityStore, planners *store.PlannerStore, templates *store.TemplateStore) *JSONProvider {
	return &JSONProvider{
		dir:       dir,
		identity:  &identityJSONGateway{path: filepath.Join(dir, AccountsFile), store: identity},
		planners:  &plannerJSONGateway{path: filepath.Join(dir, PlannersFile), store: planners},
		templates: &templateJSONGateway{path: filepath.Join(dir, TemplatesFile), store: templates},
	}
}

func (p *JSONProvider) Init() error {
	if err := os.MkdirAll(p.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	for _, path := range []string{p.identity.path, p.planners.path, p.templates.path} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("storage already initialized at %s", p.dir)
		}
	}
	return p.Save()
}

func (p *JSONProvider) Load() error {
	for _, g := range p.gateways() {
		if err := g.Load(); err != nil {
			return err
		}
	}
	return nil
}

func (p *JSONProvider) Save() error {
	for _, g := range p.gateways() {
		if err := g.Save(); err != nil {
			return err
		}
	}
	return nil
}

func (p *JSONProvider) Close() error { return nil }

func (p *JSONProvider) Path() string { return p.dir }

func (p *JSONProvider) gateways() []Gateway {
	return []Gateway{p.identity, p.planners, p.templates}
}

// writeSnapshot marshals v and publishes it atomically: the document is
// written to a temp file in the same directory, then renamed over the
// snapshot. A reader never observes a partially written file.
func writeSnapshot(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tmp, removeErr)
		}
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// readSnapshot unmarshals the snapshot at path into v. A missing or
// empty file reports found=false and no error: the store starts fresh.
func readSnapshot(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return true, nil
}

type identityJSONGateway struct {
	path  string
	store *store.IdentityStore
}

func (g *identityJSONGateway) Load() error {
	var snap store.IdentitySnapshot
	found, err := readSnapshot(g.path, &snap)
	if err != nil {
		return err
	}
	if found {
		g.store.Restore(snap)
	}
	return nil
}

func (g *identityJSONGateway) Save() error {
	return writeSnapshot(g.path, g.store.Snapshot())
}

type plannerJSONGateway struct {
	path  string
	store *store.PlannerStore
}

func (g *plannerJSONGateway) Load() error {
	var snap store.PlannerSnapshot
	found, err := readSnapshot(g.path, &snap)
	if err != nil {
		return err
	}
	if found {
		g.store.Restore(snap)
	}
	return nil
}

func (g *plannerJSONGateway) Save() error {
	return writeSnapshot(g.path, g.store.Snapshot())
}

type templateJSONGateway struct {
	path  string
	store *store.TemplateStore
}

func (g *templateJSONGateway) Load() error {
	var snap store.TemplateSnapshot
	found, err := readSnapshot(g.path, &snap)
	if err != nil {
		return err
	}
	if found {
		g.store.Restore(snap)
	}
	return nil
}

func (g *templateJSONGateway) Save() error {
	return writeSnapshot(g.path, g.store.Snapshot())
}
