package entries

import (
	"fmt"

	"github.com/julianstephens/diario/internal/cli"
)

type LockCmd struct {
	Date string `help:"Day to lock. Defaults to today."`
}

func (c *LockCmd) Run(ctx *cli.Context) error {
	return setLocked(ctx, c.Date, true)
}

type UnlockCmd struct {
	Date string `help:"Day to unlock. Defaults to today."`
}

func (c *UnlockCmd) Run(ctx *cli.Context) error {
	return setLocked(ctx, c.Date, false)
}

func setLocked(ctx *cli.Context, date string, locked bool) error {
	if err := ctx.RequireNoEditor(); err != nil {
		return err
	}
	key, err := ctx.ResolveDate(date)
	if err != nil {
		return err
	}

	entry, ok := ctx.Store.GetEntry(key)
	if !ok && !locked {
		ctx.Printf("No entry for %s, nothing to unlock.\n", key)
		return nil
	}
	if err := ctx.Store.SetLocked(key, locked, entry.Title, entry.Content); err != nil {
		return fmt.Errorf("failed to update lock: %w", err)
	}

	if locked {
		ctx.Printf("✓ Locked %s\n", key)
	} else {
		ctx.Printf("✓ Unlocked %s\n", key)
	}
	return nil
}
