package backups

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/diario/internal/cli"
)

// ExportCmd writes the whole diary to a dated backup file in a directory of
// the user's choosing.
type ExportCmd struct {
	Dir string `help:"Destination directory." default:"." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	path, err := ctx.BackupManager().Export(ctx.Store, c.Dir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	ctx.Printf("✓ Diary exported to %s\n", path)
	return nil
}

// ImportCmd replaces the diary with an exported file, or with stdin for "-".
type ImportCmd struct {
	File string `arg:"" help:"Backup file to import, or - for stdin."`
	Yes  bool   `short:"y" help:"Import without asking for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireNoEditor(); err != nil {
		return err
	}
	if err := ctx.LoadForReplace(); err != nil {
		return err
	}

	var r io.Reader
	name := c.File
	if c.File == "-" {
		r = ctx.In
		name = "stdin"
		// stdin carries the document, so there is nothing to confirm with
		c.Yes = true
	} else {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		r = f
		name = filepath.Base(c.File)
	}

	if !c.Yes {
		ok, err := ctx.Confirm("⚠️  This will replace your current diary.", "Import from: "+name)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	safety, err := ctx.BackupManager().RestoreReader(ctx.Store, r)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if safety != "" {
		ctx.Printf("Previous diary saved as %s\n", filepath.Base(safety))
	}
	ctx.Printf("✓ Imported %s\n", name)
	return nil
}
