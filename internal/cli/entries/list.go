package entries

import (
	"strings"

	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/constants"
)

type ListCmd struct {
	Locked bool `help:"Only list locked entries."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	keys := ctx.Store.Keys()
	if len(keys) == 0 {
		ctx.Println("No entries yet. Start with 'diario write' or 'diario tui'.")
		return nil
	}

	for _, key := range keys {
		entry, _ := ctx.Store.GetEntry(key)
		if c.Locked && !entry.Locked {
			continue
		}
		title := entry.Title
		if title == "" {
			title = constants.UntitledEntry
		}
		mark := " "
		if entry.Locked {
			mark = "🔒"
		}
		ctx.Printf("%-10s %s %-30s %d words\n", key, mark, title, len(strings.Fields(entry.Content)))
	}
	return nil
}
