package domain

import (
	"errors"
	"fmt"
)

// ErrNoEvents indicates the ledger holds nothing to list or undo.
var ErrNoEvents = errors.New("history is empty")

// EventNotFoundError indicates that an event with the specified ID could
// not be found in the repository.
type EventNotFoundError struct {
	ID int64
}

// Error implements the error interface.
func (e *EventNotFoundError) Error() string {
	return fmt.Sprintf("history event not found: id=%d", e.ID)
}
