package system

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Reset an existing diary. A backup of it is written first."`
	Source string `help:"Diary file, diskv:// directory or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Source != "" && sameLocation(c.Source, ctx.ConfigPath) {
		return fmt.Errorf("source and destination are the same: %s", c.Source)
	}

	if err := ctx.RequireNoEditor(); err != nil {
		return err
	}

	if err := ctx.LoadForReplace(); err != nil {
		return err
	}

	exists, err := hasData(ctx)
	if err != nil {
		return err
	}
	if exists {
		if !c.Force {
			return fmt.Errorf("diary already initialized at %s (use --force to reset it)", ctx.Store.Provider().GetConfigPath())
		}
		backupPath, err := ctx.BackupManager().CreateBackup(ctx.Store)
		if err != nil {
			return fmt.Errorf("failed to back up existing diary: %w", err)
		}
		ctx.Printf("Existing diary saved as %s\n", filepath.Base(backupPath))
	}

	if err := ctx.Store.Reset(); err != nil {
		return fmt.Errorf("failed to initialize diary: %w", err)
	}
	ctx.Printf("Initialized diario storage at: %s\n", ctx.Store.Provider().GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

// hasData reports whether the provider already holds a document, readable
// or not.
func hasData(ctx *cli.Context) (bool, error) {
	_, err := ctx.Store.Raw()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to access existing diary: %w", err)
	}
}

func copyFrom(ctx *cli.Context, source string) error {
	src, err := cli.OpenProvider(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source diary: %w", err)
	}
	defer src.Close()

	data, err := src.Read()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("source %s holds no diary", src.GetConfigPath())
		}
		return fmt.Errorf("failed to read source diary: %w", err)
	}

	if err := ctx.Store.ReplaceAll(data); err != nil {
		return err
	}
	ctx.Printf("  Copied %d entries\n", len(ctx.Store.Keys()))
	ctx.Printf("  Copied %d event days\n", len(ctx.Store.EventKeys()))
	return nil
}

func sameLocation(a, b string) bool {
	if a == b {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
