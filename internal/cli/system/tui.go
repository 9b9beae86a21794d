package system

import (
	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/instance"
	"github.com/julianstephens/diario/internal/logger"
	"github.com/julianstephens/diario/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	lock, err := instance.Acquire(ctx.ConfigDir())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to remove lockfile", "error", err)
		}
	}()

	if err := ctx.LoadStore(); err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	return tui.Run(ctx.Store, ctx.Clock, ctx.BackupManager())
}
