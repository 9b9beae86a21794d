package entries

import (
	"github.com/julianstephens/diario/internal/calendar"
	"github.com/julianstephens/diario/internal/cli"
)

type AgendaCmd struct {
	Month  string `help:"Month to show (YYYY-MM). Defaults to the current month."`
	Offset int    `help:"Months to move from --month, negative for earlier."`
}

func (c *AgendaCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock.Now()
	cursor := calendar.NewCursor(now)
	if c.Month != "" {
		parsed, err := calendar.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		cursor = parsed
	}
	cursor.Shift(c.Offset)

	grid := calendar.Build(cursor.Year, cursor.Month, ctx.Store, now)
	ctx.Println(calendar.Render(grid, calendar.StylesFor(ctx.Store.Settings().Theme), 0))

	for _, day := range grid.Days {
		if day.Events == 0 {
			continue
		}
		ctx.Printf("\n%s\n", day.Key)
		for _, ev := range ctx.Store.GetEvents(day.Key) {
			ctx.Printf("  %s\n", ev.Line())
		}
	}
	return nil
}
