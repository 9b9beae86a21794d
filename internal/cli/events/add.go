package events

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/diary"
	"github.com/julianstephens/diario/internal/tui/components/eventform"
)

type EventAddCmd struct {
	Date        string `help:"Day of the event (YYYY-MM-DD, today, tomorrow). Defaults to today."`
	Time        string `help:"Time of the event, usually HH:MM."`
	Title       string `help:"Event title."`
	Description string `help:"Optional description."`
	NoPrompt    bool   `help:"Never prompt for missing fields."`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireNoEditor(); err != nil {
		return err
	}
	key, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	values := eventform.Defaults(key)
	values.Time = c.Time
	values.Title = c.Title
	values.Description = c.Description

	if strings.TrimSpace(values.Title) == "" && !c.NoPrompt && cli.Interactive() {
		form := eventform.New(values, ctx.Store.Settings().Theme)
		if err := form.Run(); err != nil {
			return fmt.Errorf("event form cancelled: %w", err)
		}
	}

	ev, err := ctx.Store.AddEvent(values.Date, values.Event())
	if err != nil {
		if errors.Is(err, diary.ErrValidation) {
			return fmt.Errorf("%w (date and title are required)", err)
		}
		return fmt.Errorf("failed to add event: %w", err)
	}

	ctx.Printf("✓ Event added: %s\n", ev.Title)
	return nil
}
