package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/diario/internal/backup"
	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/diary"
)

// Run opens the editor on today's entry and blocks until the user quits.
func Run(store *diary.Store, clk clock.Clock, backups *backup.Manager) error {
	m := NewModel(store, clk, backups)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.Send(p.Send)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		// covers exits that bypassed the quit key
		fm.flush()
		fm.autosave.Stop()
	}
	m.Send(nil)
	if err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
