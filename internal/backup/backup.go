// Package backup creates and restores timestamped copies of the
// persisted snapshots, keeping a bounded history.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is the maximum number of backups to keep.
	MaxBackups = 14
	// BackupDirName is the name of the backup directory.
	BackupDirName = "backups"
	// BackupPrefix is the prefix for backup entries.
	BackupPrefix = "plannerhub-"
)

// Info describes one backup entry. An entry is a single .db file for
// the SQLite backend or a directory of snapshot files for the JSON
// backend.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for a storage path, which is either
// a database file or a snapshot directory.
type Manager struct {
	storagePath string
	backupDir   string
}

func NewManager(storagePath string) *Manager {
	base := storagePath
	if info, err := os.Stat(storagePath); err == nil && !info.IsDir() {
		base = filepath.Dir(storagePath)
	} else if filepath.Ext(storagePath) != "" {
		base = filepath.Dir(storagePath)
	}
	return &Manager{
		storagePath: storagePath,
		backupDir:   filepath.Join(base, BackupDirName),
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string { return m.backupDir }

// Create copies the current storage into a new timestamped backup and
// rotates old entries beyond MaxBackups.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	info, err := os.Stat(m.storagePath)
	if err != nil {
		return "", fmt.Errorf("storage does not exist: %s", m.storagePath)
	}

	name, err := m.uniqueName(info.IsDir())
	if err != nil {
		return "", err
	}
	dest := filepath.Join(m.backupDir, name)

	if info.IsDir() {
		err = copySnapshotDir(m.storagePath, dest)
	} else {
		err = copyFile(m.storagePath, dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}
	return dest, nil
}

func (m *Manager) uniqueName(isDir bool) (string, error) {
	suffix := ""
	if !isDir {
		suffix = filepath.Ext(m.storagePath)
	}
	name := BackupPrefix + time.Now().Format("20060102-1504") + suffix
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return name, nil
	}
	name = BackupPrefix + time.Now().Format("20060102-150405") + suffix
	for counter := 0; counter <= 100; counter++ {
		candidate := name
		if counter > 0 {
			candidate = BackupPrefix + time.Now().Format("20060102-150405") + fmt.Sprintf("-%d", counter) + suffix
		}
		if _, err := os.Stat(filepath.Join(m.backupDir, candidate)); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup name")
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, BackupPrefix) {
			continue
		}
		ts, ok := parseTimestamp(name)
		if !ok {
			continue
		}
		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: ts, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func parseTimestamp(name string) (time.Time, bool) {
	s := strings.TrimPrefix(name, BackupPrefix)
	s = strings.TrimSuffix(s, filepath.Ext(s))
	// Strip a trailing collision counter.
	parts := strings.Split(s, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 {
			s = strings.Join(parts[:len(parts)-1], "-")
		}
	}
	if ts, err := time.Parse("20060102-1504", s); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("20060102-150405", s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.RemoveAll(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the current storage with a backup. The current state
// is backed up first, and every file is published via a temp file and
// atomic rename.
func (m *Manager) Restore(backupPath string) error {
	info, err := os.Stat(backupPath)
	if err != nil {
		return fmt.Errorf("backup does not exist: %s", backupPath)
	}
	if err := verify(backupPath, info.IsDir()); err != nil {
		return fmt.Errorf("backup is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.storagePath); err == nil {
		current, err := m.create(true)
		if err != nil {
			return fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
		fmt.Printf("Created backup of current storage: %s\n", filepath.Base(current))
	}

	if info.IsDir() {
		return restoreSnapshotDir(backupPath, m.storagePath)
	}
	return atomicCopy(backupPath, m.storagePath)
}

// verify checks that a backup holds parseable data before it is allowed
// to replace live storage.
func verify(path string, isDir bool) error {
	if isDir {
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		checked := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			data, err := os.ReadFile(filepath.Join(path, entry.Name()))
			if err != nil {
				return err
			}
			if len(data) > 0 && !json.Valid(data) {
				return fmt.Errorf("invalid snapshot file: %s", entry.Name())
			}
			checked++
		}
		if checked == 0 {
			return fmt.Errorf("no snapshot files in backup")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func restoreSnapshotDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := atomicCopy(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copySnapshotDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0700); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// atomicCopy writes src to a temp file beside dst, then renames it into
// place.
func atomicCopy(src, dst string) error {
	tmp := dst + ".restore.tmp"
	if err := copyFile(src, tmp); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tmp, removeErr)
		}
		return fmt.Errorf("failed to restore %s: %w", dst, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
