package entries

import (
	"errors"
	"fmt"
	"io"

	"github.com/julianstephens/diario/internal/cli"
)

type WriteCmd struct {
	Date    string  `help:"Day to write (YYYY-MM-DD, today, yesterday). Defaults to today."`
	Title   *string `help:"Entry title. Keeps the current title when omitted."`
	Content *string `help:"Entry content. Keeps the current content when omitted."`
	Stdin   bool    `help:"Read the content from standard input."`
}

func (c *WriteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireNoEditor(); err != nil {
		return err
	}
	key, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if c.Title == nil && c.Content == nil && !c.Stdin {
		return errors.New("nothing to write: pass --title, --content or --stdin")
	}

	current, _ := ctx.Store.GetEntry(key)
	title, content := current.Title, current.Content
	if c.Title != nil {
		title = *c.Title
	}
	if c.Content != nil {
		content = *c.Content
	}
	if c.Stdin {
		data, err := io.ReadAll(ctx.In)
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}
		content = string(data)
	}

	result, err := ctx.Store.SaveEntry(key, title, content)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	if !result.OK() {
		return fmt.Errorf("entry %s is locked; run 'diario unlock --date %s' first", key, key)
	}

	ctx.Printf("✓ Saved entry for %s\n", key)
	return nil
}
