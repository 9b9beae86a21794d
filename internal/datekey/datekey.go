// Package datekey converts calendar days to and from the canonical key used
// to index entries and events: "{year}-{month}-{day}" with a 1-based month and
// no zero padding (for example "2024-3-5").
package datekey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/diario/internal/constants"
)

var (
	// ErrMalformed is returned when a key does not have exactly three numeric parts
	ErrMalformed = errors.New("malformed date key")
	// ErrOutOfRange is returned when a key names a day that does not exist
	ErrOutOfRange = errors.New("date key out of range")
)

// Nower is anything that can report the current time.
type Nower interface {
	Now() time.Time
}

// Encode returns the key for the local calendar day of t.
func Encode(t time.Time) string {
	return FromDate(t.Year(), t.Month(), t.Day())
}

// FromDate builds a key from calendar fields without validating them.
func FromDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%d-%d-%d", year, int(month), day)
}

// Today returns the key of the current local day as reported by clk.
func Today(clk Nower) string {
	return Encode(clk.Now())
}

// Decode splits a key into its calendar fields.
func Decode(key string) (int, time.Month, int, error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformed, key)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || part == "" || part[0] == '+' {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformed, key)
		}
		nums[i] = n
	}

	year, month, day := nums[0], time.Month(nums[1]), nums[2]
	if year < 1 || month < time.January || month > time.December {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrOutOfRange, key)
	}
	if day < 1 || day > DaysIn(year, month) {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrOutOfRange, key)
	}

	return year, month, day, nil
}

// Date returns midnight of the key's day in loc.
func Date(key string, loc *time.Location) (time.Time, error) {
	year, month, day, err := Decode(key)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc), nil
}

// Normalize accepts either a key or an ISO date (YYYY-MM-DD, zero padded) and
// returns the canonical key.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return Encode(t), nil
	}
	year, month, day, err := Decode(s)
	if err != nil {
		return "", err
	}
	return FromDate(year, month, day), nil
}

// ISO formats a key as YYYY-MM-DD.
func ISO(key string) (string, error) {
	t, err := Date(key, time.UTC)
	if err != nil {
		return "", err
	}
	return t.Format(constants.DateFormat), nil
}

// DaysIn returns the number of days in the month. Day 0 of the following
// month is the last day of this one.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Less orders keys chronologically. Malformed keys sort last, by string.
func Less(a, b string) bool {
	ay, am, ad, aerr := Decode(a)
	by, bm, bd, berr := Decode(b)
	switch {
	case aerr != nil && berr != nil:
		return a < b
	case aerr != nil:
		return false
	case berr != nil:
		return true
	}
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
