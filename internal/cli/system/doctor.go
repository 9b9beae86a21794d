package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/datekey"
	"github.com/julianstephens/diario/internal/instance"
	"github.com/julianstephens/diario/internal/keyring"
	"github.com/julianstephens/diario/internal/migration"
	"github.com/julianstephens/diario/internal/storage"
	"github.com/julianstephens/diario/internal/storage/postgres"
)

type DoctorCmd struct{}

// check is one diagnostic. A warning never fails the run.
type check struct {
	name     string
	needs    bool // skipped unless the document loaded
	warnOnly bool
	run      func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Storage reachable", run: checkStorageReachable},
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Document readable", run: checkDocumentReadable},
		{name: "Data validation", needs: true, run: checkValidation},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Keyring", warnOnly: true, run: checkKeyring},
		{name: "Other sessions", warnOnly: true, run: checkInstances},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	hasError := false
	for _, c := range checks {
		if c.needs && !ctx.Store.Loaded() {
			ctx.Printf("⊘ %s: SKIPPED (diary not loaded)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if _, err := ctx.Store.Raw(); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read %s: %w", ctx.Store.Provider().GetConfigPath(), err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	data, err := ctx.Store.Raw()
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var doc migration.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("document is not a JSON object: %w", err)
	}
	return migration.Default().ValidateVersion(doc)
}

func checkDocumentReadable(ctx *cli.Context) error {
	return ctx.LoadStore()
}

func checkValidation(ctx *cli.Context) error {
	result, err := ctx.Store.Validate()
	if err != nil {
		return err
	}
	if !result.HasConflicts() {
		return nil
	}
	msgs := make([]string, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		msgs = append(msgs, fmt.Sprintf("%s: %s", c.Key, c.Message))
	}
	return fmt.Errorf("found %d problems\n   %s", len(msgs), strings.Join(msgs, "\n   "))
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.BackupManager().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'diario backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !postgres.IsConnString(ctx.ConfigPath) {
		return nil
	}
	if !keyring.Available() {
		return keyring.ErrUnavailable
	}
	return nil
}

func checkInstances(ctx *cli.Context) error {
	if pid := instance.Holder(ctx.ConfigDir()); pid != 0 {
		return fmt.Errorf("an editor is open on this diary (pid %d); its next save overwrites changes made here", pid)
	}
	others, err := instance.Others()
	if err != nil {
		return err
	}
	if len(others) > 0 {
		return fmt.Errorf("%d other diario processes running", len(others))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	// day keys are local; a key that does not decode back to today means
	// the timezone database is broken
	if _, _, day, err := datekey.Decode(datekey.Encode(now)); err != nil || day != now.Day() {
		return fmt.Errorf("local timezone %s gives inconsistent day keys", now.Location())
	}
	return nil
}
