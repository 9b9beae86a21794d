package events

import (
	"github.com/julianstephens/diario/internal/cli"
)

type EventListCmd struct {
	Date string `help:"Day to list (YYYY-MM-DD, today, tomorrow). Defaults to today."`
	All  bool   `help:"List events of every day."`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	var keys []string
	if c.All {
		keys = ctx.Store.EventKeys()
	} else {
		key, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		keys = []string{key}
	}

	found := 0
	for _, key := range keys {
		evs := ctx.Store.GetEvents(key)
		if len(evs) == 0 {
			continue
		}
		ctx.Printf("%s\n", key)
		for _, ev := range evs {
			ctx.Printf("  %s\n", ev.Line())
			found++
		}
	}

	if found == 0 {
		ctx.Println("No events found.")
	}
	return nil
}
