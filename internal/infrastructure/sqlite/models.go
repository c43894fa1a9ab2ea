package sqlite

import (
	"time"

	"github.com/zjrosen/outbreak/internal/history/domain"
)

// EventModel represents the database row for the events table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type EventModel struct {
	ID             int64
	GUID           string
	GameID         string
	Command        string
	Args           string
	BeforeSnapshot string
	AfterSnapshot  string
	CreatedAt      int64 // Unix timestamp
}

// toEventModel converts a domain Event to a database EventModel.
func toEventModel(e *domain.Event) *EventModel {
	return &EventModel{
		ID:             e.ID,
		GUID:           e.GUID,
		GameID:         e.GameID,
		Command:        e.Command,
		Args:           e.Args,
		BeforeSnapshot: e.Before,
		AfterSnapshot:  e.After,
		CreatedAt:      e.CreatedAt.Unix(),
	}
}

// toDomain converts a database EventModel to a domain Event.
func (m *EventModel) toDomain() *domain.Event {
	return &domain.Event{
		ID:        m.ID,
		GUID:      m.GUID,
		GameID:    m.GameID,
		Command:   m.Command,
		Args:      m.Args,
		Before:    m.BeforeSnapshot,
		After:     m.AfterSnapshot,
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}
}
