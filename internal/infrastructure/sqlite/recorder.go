package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/outbreak/internal/deck/application"
	deckdomain "github.com/zjrosen/outbreak/internal/deck/domain"
	"github.com/zjrosen/outbreak/internal/deck/infrastructure"
	"github.com/zjrosen/outbreak/internal/history/domain"
	"github.com/zjrosen/outbreak/internal/log"
)

// Recorder implements application.EventRecorder by appending one row to the
// events table per mutation. A "new" command rotates to a fresh game GUID;
// every other command inherits the GUID carried by the newest event.
type Recorder struct {
	events domain.EventRepository
}

// NewRecorder creates a Recorder backed by the given repository.
func NewRecorder(events domain.EventRepository) *Recorder {
	return &Recorder{events: events}
}

// Ensure Recorder implements application.EventRecorder.
var _ application.EventRecorder = (*Recorder)(nil)

// Record appends a ledger row for one mutation.
func (r *Recorder) Record(_ context.Context, m application.Mutation) error {
	gameID, err := r.gameIDFor(m.Command)
	if err != nil {
		return err
	}

	before, err := encodeOptional(m.Before)
	if err != nil {
		return fmt.Errorf("failed to encode before snapshot: %w", err)
	}
	after, err := encodeOptional(m.After)
	if err != nil {
		return fmt.Errorf("failed to encode after snapshot: %w", err)
	}

	event := &domain.Event{
		GUID:      uuid.NewString(),
		GameID:    gameID,
		Command:   m.Command,
		Args:      strings.Join(m.Args, " "),
		Before:    before,
		After:     after,
		CreatedAt: time.Now(),
	}
	if err := r.events.Append(event); err != nil {
		return err
	}

	log.Debug(log.CatDB, "Recorded event", "id", event.ID, "command", m.Command, "game_id", gameID)
	return nil
}

// gameIDFor answers which game GUID the next event belongs to. A "new"
// command always starts a fresh GUID, as does the first event of an empty
// ledger.
func (r *Recorder) gameIDFor(command string) (string, error) {
	if command == "new" {
		return uuid.NewString(), nil
	}
	current, err := r.events.CurrentGameID()
	if err != nil {
		return "", err
	}
	if current == "" {
		return uuid.NewString(), nil
	}
	return current, nil
}

// encodeOptional renders a snapshot as JSON text, with nil encoding as the
// empty string.
func encodeOptional(state *deckdomain.DeckState) (string, error) {
	if state == nil {
		return "", nil
	}
	data, err := infrastructure.EncodeSnapshot(state)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
