package events

import (
	"fmt"
	"os"

	"github.com/julianstephens/diario/internal/backup"
	"github.com/julianstephens/diario/internal/cli"
)

type EventExportICSCmd struct {
	File string `arg:"" help:"Destination .ics file."`
}

func (c *EventExportICSCmd) Run(ctx *cli.Context) error {
	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create calendar file: %w", err)
	}

	n, err := backup.ExportICS(ctx.Store, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	ctx.Printf("✓ Exported %d events to %s\n", n, c.File)
	return nil
}

type EventImportICSCmd struct {
	File string `arg:"" help:"iCalendar file to import." type:"existingfile"`
}

func (c *EventImportICSCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireNoEditor(); err != nil {
		return err
	}
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer f.Close()

	imported, skipped, err := backup.ImportICS(ctx.Store, f)
	if err != nil {
		return err
	}

	ctx.Printf("✓ Imported %d events", imported)
	if skipped > 0 {
		ctx.Printf(" (%d skipped)", skipped)
	}
	ctx.Println()
	return nil
}
