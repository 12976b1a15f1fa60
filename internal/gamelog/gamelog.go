// Package gamelog keeps the messages shown in the status panel.
package gamelog

import "fmt"

// Welcome is the first entry of every new game.
const Welcome = "Welcome to Rusty Roguelike"

// Log is an append-only list of messages, oldest first.
type Log struct {
	Entries []string `json:"entries"`
}

// New creates a log holding the welcome message.
func New() *Log {
	return &Log{Entries: []string{Welcome}}
}

// Add appends a message.
func (l *Log) Add(msg string) {
	l.Entries = append(l.Entries, msg)
}

// Addf appends a formatted message.
func (l *Log) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Last returns up to n of the newest messages, newest first.
func (l *Log) Last(n int) []string {
	out := make([]string, 0, min(n, len(l.Entries)))
	for i := len(l.Entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.Entries[i])
	}
	return out
}
