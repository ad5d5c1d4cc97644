package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/plannerhub/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Provider.Path())
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Provider.Path())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Printf("No backups found in %s.\n", mgr.BackupDir())
		return nil
	}
	fmt.Printf("Backups in %s:\n", mgr.BackupDir())
	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file or directory to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	// The provider must not hold the storage open while files are
	// swapped underneath it.
	if err := ctx.Provider.Close(); err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Provider.Path())
	if err := mgr.Restore(c.Path); err != nil {
		return err
	}
	fmt.Printf("Restored storage from %s\n", filepath.Base(c.Path))
	return nil
}
