package entries

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/models"
)

type ShowCmd struct {
	Date   string `help:"Day to show (YYYY-MM-DD, today, yesterday). Defaults to today."`
	Render bool   `help:"Render the entry as markdown."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	key, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	entry, ok := ctx.Store.GetEntry(key)
	events := ctx.Store.GetEvents(key)

	if c.Render {
		out, err := glamour.Render(Markdown(key, entry, ok, events), string(ctx.Store.Settings().Theme))
		if err != nil {
			return fmt.Errorf("failed to render entry: %w", err)
		}
		ctx.Printf("%s", out)
		return nil
	}

	ctx.Printf("%s\n", key)
	if !ok {
		ctx.Println(constants.NoEntryForDay)
	} else {
		title := entry.Title
		if title == "" {
			title = constants.UntitledEntry
		}
		if entry.Locked {
			title += " 🔒"
		}
		ctx.Printf("%s\n\n%s\n", title, entry.Content)
	}

	if len(events) > 0 {
		ctx.Printf("\n%s\n", constants.EventsHeading)
		for _, ev := range events {
			ctx.Printf("  %s\n", ev.Line())
		}
	}
	return nil
}

// Markdown lays out a day for glamour.
func Markdown(key string, entry models.Entry, ok bool, events []models.Event) string {
	var b strings.Builder

	title := entry.Title
	if title == "" {
		title = constants.UntitledEntry
	}
	fmt.Fprintf(&b, "# %s\n\n*%s*", title, key)
	if entry.Locked {
		b.WriteString(" · 🔒")
	}
	b.WriteString("\n\n")

	if ok {
		b.WriteString(entry.Content)
	} else {
		b.WriteString(constants.NoEntryForDay)
	}
	b.WriteString("\n")

	if len(events) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n", constants.EventsHeading)
		for _, ev := range events {
			fmt.Fprintf(&b, "- %s\n", ev.Line())
		}
	}
	return b.String()
}
