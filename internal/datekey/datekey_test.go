package datekey

import (
	"errors"
	"sort"
	"testing"
	"time"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "no zero padding",
			date: time.Date(2024, time.March, 5, 10, 30, 0, 0, time.Local),
			want: "2024-3-5",
		},
		{
			name: "two digit month and day",
			date: time.Date(2023, time.December, 31, 23, 59, 59, 0, time.Local),
			want: "2023-12-31",
		},
		{
			name: "first of january",
			date: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
			want: "2025-1-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.date); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeSameDayDifferentTimes(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	morning := time.Date(2024, time.July, 9, 0, 0, 1, 0, loc)
	night := time.Date(2024, time.July, 9, 23, 59, 59, 999, loc)

	if Encode(morning) != Encode(night) {
		t.Errorf("keys differ for the same local day: %q vs %q", Encode(morning), Encode(night))
	}
}

func TestEncodeUsesLocalFields(t *testing.T) {
	// 01:00 UTC on the 10th is still the 9th in UTC-3.
	loc := time.FixedZone("BRT", -3*60*60)
	instant := time.Date(2024, time.July, 10, 1, 0, 0, 0, time.UTC).In(loc)

	if got := Encode(instant); got != "2024-7-9" {
		t.Errorf("Encode() = %q, want %q", got, "2024-7-9")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	start := time.Date(2023, time.January, 1, 12, 0, 0, 0, time.Local)
	end := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.Local)

	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		year, month, day, err := Decode(Encode(d))
		if err != nil {
			t.Fatalf("Decode(Encode(%v)) returned error: %v", d, err)
		}
		if year != d.Year() || month != d.Month() || day != d.Day() {
			t.Fatalf("round trip of %v gave %d-%d-%d", d, year, month, day)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "empty", key: "", wantErr: ErrMalformed},
		{name: "two parts", key: "2024-3", wantErr: ErrMalformed},
		{name: "four parts", key: "2024-3-5-1", wantErr: ErrMalformed},
		{name: "not numeric", key: "2024-mar-5", wantErr: ErrMalformed},
		{name: "empty part", key: "2024--5", wantErr: ErrMalformed},
		{name: "month zero", key: "2024-0-5", wantErr: ErrOutOfRange},
		{name: "month thirteen", key: "2024-13-5", wantErr: ErrOutOfRange},
		{name: "february 30", key: "2024-2-30", wantErr: ErrOutOfRange},
		{name: "february 29 non leap", key: "2023-2-29", wantErr: ErrOutOfRange},
		{name: "day zero", key: "2024-1-0", wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Decode(tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode(%q) error = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeAcceptsPaddedParts(t *testing.T) {
	year, month, day, err := Decode("2024-03-05")
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}
	if year != 2024 || month != time.March || day != 5 {
		t.Errorf("Decode() = %d-%d-%d, want 2024-3-5", year, month, day)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-03-05", want: "2024-3-5"},
		{in: "2024-3-5", want: "2024-3-5"},
		{in: " 2024-12-25 ", want: "2024-12-25"},
		{in: "2024-02-30", wantErr: true},
		{in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestISO(t *testing.T) {
	got, err := ISO("2024-3-5")
	if err != nil {
		t.Fatalf("ISO() returned error: %v", err)
	}
	if got != "2024-03-05" {
		t.Errorf("ISO() = %q, want %q", got, "2024-03-05")
	}
}

func TestToday(t *testing.T) {
	clk := fixedClock(time.Date(2024, time.February, 29, 8, 0, 0, 0, time.Local))
	if got := Today(clk); got != "2024-2-29" {
		t.Errorf("Today() = %q, want %q", got, "2024-2-29")
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestLessSortsChronologically(t *testing.T) {
	keys := []string{"2024-10-1", "2024-2-15", "bogus", "2023-12-31", "2024-2-3"}
	sort.Slice(keys, func(i, j int) bool { return Less(keys[i], keys[j]) })

	want := []string{"2023-12-31", "2024-2-3", "2024-2-15", "2024-10-1", "bogus"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sorted keys = %v, want %v", keys, want)
		}
	}
}
