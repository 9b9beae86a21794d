package diary

import (
	"strings"
	"time"

	"github.com/julianstephens/diario/internal/datekey"
)

// Stats summarizes the diary for the stats command and the TUI.
type Stats struct {
	Entries       int
	LockedEntries int
	Words         int
	Events        int
	CurrentStreak int // consecutive days with an entry ending today or yesterday
	LongestStreak int
	FirstEntry    string
	LastEntry     string
}

func (s *Store) Stats(now time.Time) Stats {
	keys := s.Keys()

	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	if s.root == nil {
		return st
	}

	days := make(map[string]bool, len(keys))
	var valid []string
	for _, key := range keys {
		entry := s.root.Entries[key]
		st.Entries++
		if entry.Locked {
			st.LockedEntries++
		}
		st.Words += len(strings.Fields(entry.Content))
		if _, _, _, err := datekey.Decode(key); err == nil {
			days[key] = true
			valid = append(valid, key)
		}
	}
	for _, events := range s.root.Events {
		st.Events += len(events)
	}

	if len(valid) == 0 {
		return st
	}
	st.FirstEntry = valid[0]
	st.LastEntry = valid[len(valid)-1]

	run := 0
	var prev time.Time
	for i, key := range valid {
		d, _ := datekey.Date(key, time.UTC)
		if i > 0 && d.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > st.LongestStreak {
			st.LongestStreak = run
		}
		prev = d
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !days[datekey.Encode(day)] {
		day = day.AddDate(0, 0, -1)
	}
	for days[datekey.Encode(day)] {
		st.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}
	return st
}
