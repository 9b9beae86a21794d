package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/cli/backups"
	"github.com/julianstephens/diario/internal/cli/entries"
	"github.com/julianstephens/diario/internal/cli/events"
	"github.com/julianstephens/diario/internal/cli/settings"
	"github.com/julianstephens/diario/internal/cli/system"
	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/errors"
	"github.com/julianstephens/diario/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Diary file (.json, .db), diskv://dir or PostgreSQL connection string. PostgreSQL passwords must come from the keyring or DIARIO_DB_CONNECTION." env:"DIARIO_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr." env:"DIARIO_DEBUG"`

	Init   system.InitCmd   `cmd:"" help:"Initialize diario storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Open the diary editor." default:"1"`

	Write  entries.WriteCmd  `cmd:"" help:"Write the entry of a day."`
	Show   entries.ShowCmd   `cmd:"" help:"Show the entry and events of a day."`
	List   entries.ListCmd   `cmd:"" help:"List entries in chronological order."`
	Lock   entries.LockCmd   `cmd:"" help:"Lock the entry of a day against edits."`
	Unlock entries.UnlockCmd `cmd:"" help:"Unlock the entry of a day."`
	Agenda entries.AgendaCmd `cmd:"" help:"Show the month calendar and its events."`
	Stats  entries.StatsCmd  `cmd:"" help:"Show writing statistics."`

	Event struct {
		Add       events.EventAddCmd       `cmd:"" help:"Add an event to a day."`
		List      events.EventListCmd      `cmd:"" help:"List the events of a day." default:"1"`
		ExportICS events.EventExportICSCmd `cmd:"" name:"export-ics" help:"Export events to an iCalendar file."`
		ImportICS events.EventImportICSCmd `cmd:"" name:"import-ics" help:"Import events from an iCalendar file."`
	} `cmd:"" help:"Manage agenda events."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage diary backups."`
	Export backups.ExportCmd `cmd:"" help:"Export the diary to a backup file."`
	Import backups.ImportCmd `cmd:"" help:"Replace the diary with an exported file."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the stored database connection string."`
}

// selfLoading commands load the store themselves, tolerating a corrupt or
// missing document.
var selfLoading = map[string]bool{
	"init":           true,
	"tui":            true,
	"doctor":         true,
	"import":         true,
	"backup restore": true,
	"keyring set":    true,
	"keyring delete": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Diário pessoal com agenda"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config, err := cli.ResolveConfig(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx, err := cli.NewContext(config, clock.New())
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, Dir: appCtx.ConfigDir()}); err != nil {
		// logging is best effort; the command still runs
		logger.Discard()
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", appCtx.Store.Provider().GetConfigPath())

	if !selfLoading[commandName(ctx)] {
		if err := appCtx.LoadStore(); err != nil {
			errors.Fatal(err)
		}
	}
	defer appCtx.Store.Provider().Close()

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Store.Provider().Close()
		errors.Fatal(err)
	}
}

// commandName returns the selected command path without its arguments,
// e.g. "backup restore".
func commandName(ctx *kong.Context) string {
	var parts []string
	for _, p := range ctx.Path {
		if p.Command != nil {
			parts = append(parts, p.Command.Name)
		}
	}
	return strings.Join(parts, " ")
}
