// Package settingsform holds the huh forms for the editor's maintenance
// actions: restoring a backup and changing the autosave interval.
package settingsform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/diario/internal/backup"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/tui/components/eventform"
)

// RestoreValues backs the restore form.
type RestoreValues struct {
	Path    string
	Confirm bool
}

// Restore lets the user pick one of the listed backups, newest first.
func Restore(v *RestoreValues, backups []backup.BackupInfo, theme constants.Theme) *huh.Form {
	opts := make([]huh.Option[string], 0, len(backups))
	for _, b := range backups {
		label := fmt.Sprintf("%s  %s", b.Date.Format(constants.DateFormat), filepath.Base(b.Path))
		opts = append(opts, huh.NewOption(label, b.Path))
	}
	if v.Path == "" && len(backups) > 0 {
		v.Path = backups[0].Path
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Restaurar backup").
				Options(opts...).
				Value(&v.Path),
			huh.NewConfirm().
				Title("Substituir o diário atual?").
				Description("Uma cópia do diário atual é guardada antes.").
				Affirmative("Sim").
				Negative("Não").
				Value(&v.Confirm),
		),
	).WithTheme(eventform.Theme(theme)).WithShowHelp(true)
}

// IntervalValues backs the autosave interval form.
type IntervalValues struct {
	Ms string
}

// NewIntervalValues pre-fills the form with the current interval.
func NewIntervalValues(current int) *IntervalValues {
	return &IntervalValues{Ms: strconv.Itoa(current)}
}

// Value returns the validated interval in milliseconds.
func (v *IntervalValues) Value() (int, error) {
	return ParseInterval(v.Ms)
}

func Interval(v *IntervalValues, theme constants.Theme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Salvamento automático (ms)").
				Description("0 desativa o salvamento periódico").
				Value(&v.Ms).
				Validate(func(s string) error {
					_, err := ParseInterval(s)
					return err
				}),
		),
	).WithTheme(eventform.Theme(theme)).WithShowHelp(true)
}

// ParseInterval accepts a non-negative number of milliseconds.
func ParseInterval(s string) (int, error) {
	ms, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("use um número inteiro de milissegundos")
	}
	if ms < 0 {
		return 0, errors.New("o intervalo não pode ser negativo")
	}
	return ms, nil
}
