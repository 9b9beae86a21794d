// Package eventform is the huh form used to schedule an event, shared by the
// TUI and the interactive "event add" prompt.
package eventform

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
	"github.com/julianstephens/diario/internal/models"
)

// Values backs the form fields.
type Values struct {
	Date        string
	Time        string
	Title       string
	Description string
}

// Defaults pre-fills the date with the given day key.
func Defaults(key string) *Values {
	v := &Values{}
	if iso, err := datekey.ISO(key); err == nil {
		v.Date = iso
	}
	return v
}

func (v *Values) Event() models.Event {
	return models.Event{
		Time:        strings.TrimSpace(v.Time),
		Title:       strings.TrimSpace(v.Title),
		Description: strings.TrimSpace(v.Description),
	}
}

func New(v *Values, theme constants.Theme) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data").
				Placeholder(constants.DateFormat).
				Value(&v.Date).
				Validate(ValidateDate),
			huh.NewInput().
				Title("Hora").
				Placeholder("HH:MM").
				Value(&v.Time).
				Validate(ValidateTime),
			huh.NewInput().
				Title("Título").
				Value(&v.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("o título é obrigatório")
					}
					return nil
				}),
			huh.NewText().
				Title("Descrição").
				Lines(3).
				Value(&v.Description),
		),
	).WithTheme(Theme(theme)).WithShowHelp(true)
}

func ValidateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a data é obrigatória")
	}
	if _, err := datekey.Normalize(s); err != nil {
		return errors.New("data inválida, use AAAA-MM-DD")
	}
	return nil
}

// ValidateTime accepts an empty time or HH:MM.
func ValidateTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(constants.TimeFormat, s); err != nil {
		return errors.New("hora inválida, use HH:MM")
	}
	return nil
}

func Theme(theme constants.Theme) *huh.Theme {
	if theme == constants.ThemeDark {
		return huh.ThemeDracula()
	}
	return huh.ThemeBase16()
}
