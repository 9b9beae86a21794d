package entries

import (
	"github.com/julianstephens/diario/internal/cli"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	st := ctx.Store.Stats(ctx.Clock.Now())

	ctx.Println("Diary statistics:")
	ctx.Printf("  Entries:         %d (%d locked)\n", st.Entries, st.LockedEntries)
	ctx.Printf("  Words:           %d\n", st.Words)
	ctx.Printf("  Events:          %d\n", st.Events)
	ctx.Printf("  Current streak:  %d days\n", st.CurrentStreak)
	ctx.Printf("  Longest streak:  %d days\n", st.LongestStreak)
	if st.FirstEntry != "" {
		ctx.Printf("  First entry:     %s\n", st.FirstEntry)
		ctx.Printf("  Last entry:      %s\n", st.LastEntry)
	}
	return nil
}
