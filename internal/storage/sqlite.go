package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/plannerhub/internal/models"
	"github.com/julianstephens/plannerhub/internal/store"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id   TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS planners (
	id   TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS templates (
	id   TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteProvider persists the stores into one database file: a flat
// id→record table per store plus a meta table holding the schema
// version and id allocators. Each save runs in a single transaction,
// which doubles as the atomic publish.
type SQLiteProvider struct {
	path string
	db   *sql.DB

	identity  *store.IdentityStore
	planners  *store.PlannerStore
	templates *store.TemplateStore
}

func NewSQLiteProvider(path string, identity *store.IdentityStore, planners *store.PlannerStore, templates *store.TemplateStore) *SQLiteProvider {
	return &SQLiteProvider{
		path:      path,
		identity:  identity,
		planners:  planners,
		templates: templates,
	}
}

func (p *SQLiteProvider) Init() error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if _, err := os.Stat(p.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", p.path)
	}
	if err := p.open(); err != nil {
		return err
	}
	return p.Save()
}

func (p *SQLiteProvider) open() error {
	if p.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", p.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := p.checkSchemaVersion(db); err != nil {
		db.Close()
		return err
	}
	p.db = db
	return nil
}

func (p *SQLiteProvider) checkSchemaVersion(db *sql.DB) error {
	var v string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&v)
	if err == sql.ErrNoRows {
		_, err = db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, strconv.Itoa(schemaVersion))
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if v != strconv.Itoa(schemaVersion) {
		return fmt.Errorf("unsupported schema version %s (supported: %d)", v, schemaVersion)
	}
	return nil
}

func (p *SQLiteProvider) Load() error {
	if err := p.open(); err != nil {
		return err
	}
	for _, g := range p.gateways() {
		if err := g.Load(); err != nil {
			return err
		}
	}
	return nil
}

func (p *SQLiteProvider) Save() error {
	if err := p.open(); err != nil {
		return err
	}
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save transaction: %w", err)
	}
	for _, g := range p.gateways() {
		if err := g.save(tx); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

func (p *SQLiteProvider) Close() error {
	if p.db != nil {
		err := p.db.Close()
		p.db = nil
		return err
	}
	return nil
}

func (p *SQLiteProvider) Path() string { return p.path }

type sqliteGateway interface {
	Load() error
	save(tx *sql.Tx) error
}

func (p *SQLiteProvider) gateways() []sqliteGateway {
	return []sqliteGateway{
		&identitySQLGateway{provider: p},
		&plannerSQLGateway{provider: p},
		&templateSQLGateway{provider: p},
	}
}

// replaceTable rewrites one store's table inside the save transaction.
func replaceTable(tx *sql.Tx, table, nextIDKey string, nextID int, rows map[string][]byte) error {
	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	for id, data := range rows {
		if _, err := tx.Exec(`INSERT INTO `+table+` (id, data) VALUES (?, ?)`, id, string(data)); err != nil {
			return fmt.Errorf("failed to write %s row %s: %w", table, id, err)
		}
	}
	_, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, nextIDKey, strconv.Itoa(nextID))
	if err != nil {
		return fmt.Errorf("failed to write %s allocator: %w", table, err)
	}
	return nil
}

// readTable loads one store's table into raw JSON records.
func readTable(db *sql.DB, table, nextIDKey string) (map[string][]byte, int, error) {
	rows, err := db.Query(`SELECT id, data FROM ` + table)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	records := make(map[string][]byte)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		records[id] = []byte(data)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", table, err)
	}

	nextID := 0
	var v string
	err = db.QueryRow(`SELECT value FROM meta WHERE key = ?`, nextIDKey).Scan(&v)
	if err == nil {
		nextID, _ = strconv.Atoi(v)
	} else if err != sql.ErrNoRows {
		return nil, 0, fmt.Errorf("failed to read %s allocator: %w", table, err)
	}
	return records, nextID, nil
}

func marshalRows[T any](entities map[string]T) (map[string][]byte, error) {
	rows := make(map[string][]byte, len(entities))
	for id, e := range entities {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize entity %s: %w", id, err)
		}
		rows[id] = data
	}
	return rows, nil
}

type identitySQLGateway struct {
	provider *SQLiteProvider
}

func (g *identitySQLGateway) Load() error {
	records, nextID, err := readTable(g.provider.db, "accounts", "accounts_next_id")
	if err != nil {
		return err
	}
	accounts := make(map[string]*models.Account, len(records))
	for id, data := range records {
		var acc models.Account
		if err := json.Unmarshal(data, &acc); err != nil {
			return fmt.Errorf("failed to parse account %s: %w", id, err)
		}
		accounts[id] = &acc
	}
	g.provider.identity.Restore(store.IdentitySnapshot{
		Version:  store.SnapshotVersion,
		NextID:   nextID,
		Accounts: accounts,
	})
	return nil
}

func (g *identitySQLGateway) save(tx *sql.Tx) error {
	snap := g.provider.identity.Snapshot()
	rows, err := marshalRows(snap.Accounts)
	if err != nil {
		return err
	}
	return replaceTable(tx, "accounts", "accounts_next_id", snap.NextID, rows)
}

type plannerSQLGateway struct {
	provider *SQLiteProvider
}

func (g *plannerSQLGateway) Load() error {
	records, nextID, err := readTable(g.provider.db, "planners", "planners_next_id")
	if err != nil {
		return err
	}
	planners := make(map[string]*models.Planner, len(records))
	for id, data := range records {
		var p models.Planner
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to parse planner %s: %w", id, err)
		}
		planners[id] = &p
	}
	g.provider.planners.Restore(store.PlannerSnapshot{
		Version:  store.SnapshotVersion,
		NextID:   nextID,
		Planners: planners,
	})
	return nil
}

func (g *plannerSQLGateway) save(tx *sql.Tx) error {
	snap := g.provider.planners.Snapshot()
	rows, err := marshalRows(snap.Planners)
	if err != nil {
		return err
	}
	return replaceTable(tx, "planners", "planners_next_id", snap.NextID, rows)
}

type templateSQLGateway struct {
	provider *SQLiteProvider
}

func (g *templateSQLGateway) Load() error {
	records, nextID, err := readTable(g.provider.db, "templates", "templates_next_id")
	if err != nil {
		return err
	}
	templates := make(map[string]*models.Template, len(records))
	for id, data := range records {
		var t models.Template
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", id, err)
		}
		templates[id] = &t
	}
	g.provider.templates.Restore(store.TemplateSnapshot{
		Version:   store.SnapshotVersion,
		NextID:    nextID,
		Templates: templates,
	})
	return nil
}

func (g *templateSQLGateway) save(tx *sql.Tx) error {
	snap := g.provider.templates.Snapshot()
	rows, err := marshalRows(snap.Templates)
	if err != nil {
		return err
	}
	return replaceTable(tx, "templates", "templates_next_id", snap.NextID, rows)
}
