// Package domain defines the history ledger's domain model: recorded state
// transitions and the repository port the sqlite infrastructure implements.
package domain

import "time"

// Event is one recorded transition of the working snapshot. Before and
// After hold the full snapshot JSON on both sides of the mutation, which is
// what makes undo and history diffs possible without replaying commands.
type Event struct {
	ID        int64
	GUID      string
	GameID    string
	Command   string
	Args      string
	Before    string
	After     string
	CreatedAt time.Time
}

// ListFilter narrows List queries.
type ListFilter struct {
	// GameID restricts results to one game. Empty matches every event.
	GameID string
	// Limit caps the result count when positive.
	Limit int
}

// EventRepository persists and queries the event ledger.
type EventRepository interface {
	// Append inserts event and sets its ID.
	Append(event *Event) error
	// List returns events matching filter, newest first.
	List(filter ListFilter) ([]*Event, error)
	// Latest returns the newest event. Returns ErrNoEvents on an empty ledger.
	Latest() (*Event, error)
	// Delete removes an event by ID. Returns EventNotFoundError when absent.
	Delete(id int64) error
	// CurrentGameID returns the game GUID carried by the newest event, or
	// the empty string when the ledger is empty.
	CurrentGameID() (string, error)
}
