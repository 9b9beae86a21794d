package models

import (
	"strings"
	"time"
)

// Entry is the diary page for a single day
type Entry struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Locked    bool       `json:"locked"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Event is an appointment attached to a day, independent of the entry
type Event struct {
	ID          string    `json:"id,omitempty"`
	Time        string    `json:"time"` // free-form, usually HH:MM
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Line renders the event on one line: "10:00 Title - description".
func (e Event) Line() string {
	var parts []string
	if e.Time != "" {
		parts = append(parts, e.Time)
	}
	parts = append(parts, e.Title)
	line := strings.Join(parts, " ")
	if e.Description != "" {
		line += " - " + e.Description
	}
	return line
}
