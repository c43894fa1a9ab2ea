package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/zjrosen/outbreak/internal/history/domain"
)

// eventRepository implements domain.EventRepository using SQLite.
type eventRepository struct {
	db *sql.DB
}

// newEventRepository creates a new eventRepository instance.
func newEventRepository(db *sql.DB) *eventRepository {
	return &eventRepository{db: db}
}

// Ensure eventRepository implements domain.EventRepository.
var _ domain.EventRepository = (*eventRepository)(nil)

// Append inserts a new event row and sets the event ID.
// The ledger is append-only; existing rows are never updated.
func (r *eventRepository) Append(event *domain.Event) error {
	model := toEventModel(event)
	result, err := r.db.Exec(
		`INSERT INTO events (guid, game_id, command, args, before_snapshot, after_snapshot, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		model.GUID, model.GameID, model.Command, model.Args,
		model.BeforeSnapshot, model.AfterSnapshot, model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	event.ID = id
	return nil
}

// List retrieves events matching the given filter criteria.
// Results are ordered newest first.
func (r *eventRepository) List(filter domain.ListFilter) ([]*domain.Event, error) {
	query := `SELECT id, guid, game_id, command, args, before_snapshot, after_snapshot, created_at
			  FROM events`
	args := []any{}

	// Add game filter if specified
	if filter.GameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, filter.GameID)
	}

	// Order newest first; id breaks ties within the same second
	query += ` ORDER BY created_at DESC, id DESC`

	// Add limit if specified
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.Event
	for rows.Next() {
		var model EventModel
		err := rows.Scan(&model.ID, &model.GUID, &model.GameID, &model.Command, &model.Args,
			&model.BeforeSnapshot, &model.AfterSnapshot, &model.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// Latest retrieves the newest event in the ledger.
// Returns ErrNoEvents if the ledger is empty.
func (r *eventRepository) Latest() (*domain.Event, error) {
	var model EventModel
	err := r.db.QueryRow(
		`SELECT id, guid, game_id, command, args, before_snapshot, after_snapshot, created_at
		 FROM events
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
	).Scan(&model.ID, &model.GUID, &model.GameID, &model.Command, &model.Args,
		&model.BeforeSnapshot, &model.AfterSnapshot, &model.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, domain.ErrNoEvents
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest event: %w", err)
	}
	return model.toDomain(), nil
}

// Delete permanently removes an event by its ID.
// Returns EventNotFoundError if no matching event exists.
func (r *eventRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.EventNotFoundError{ID: id}
	}
	return nil
}

// CurrentGameID retrieves the game GUID carried by the newest event.
// Returns the empty string without error when the ledger is empty.
func (r *eventRepository) CurrentGameID() (string, error) {
	var gameID string
	err := r.db.QueryRow(
		`SELECT game_id FROM events ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&gameID)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get current game id: %w", err)
	}
	return gameID, nil
}
