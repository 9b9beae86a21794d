package settings

import (
	"fmt"

	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	AutosaveMs *int    `name:"autosave-ms" help:"Periodic autosave interval in milliseconds (0 disables it)."`
	Theme      *string `help:"Editor theme." enum:"light,dark"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.Store.Settings()

	if c.List {
		ctx.Println("Current Settings:")
		if settings.AutoSaveIntervalMs > 0 {
			ctx.Printf("  Autosave Interval:  %d ms\n", settings.AutoSaveIntervalMs)
		} else {
			ctx.Println("  Autosave Interval:  disabled")
		}
		ctx.Printf("  Theme:              %s\n", settings.Theme)
		ctx.Printf("  Schema Version:     %d\n", ctx.Store.SchemaVersion())
		return nil
	}

	if c.AutosaveMs == nil && c.Theme == nil {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := ctx.RequireNoEditor(); err != nil {
		return err
	}

	if c.AutosaveMs != nil {
		if err := ctx.Store.SetAutoSaveInterval(*c.AutosaveMs); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	if c.Theme != nil {
		if err := ctx.Store.SetTheme(constants.Theme(*c.Theme)); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	ctx.Println("Settings updated successfully.")
	return nil
}
