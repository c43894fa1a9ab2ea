// Package application implements the use-case layer for deck tracking.
//
// It owns the load, mutate, save cycle every command runs: the Tracker
// service loads the working snapshot, applies a domain mutation, saves the
// result, and records the transition in the history ledger. Infrastructure
// plugs in through the two ports defined here.
package application

import (
	"context"

	"github.com/zjrosen/outbreak/internal/deck/domain"
)

// SnapshotStore loads and saves deck state snapshots.
type SnapshotStore interface {
	// Load reads the snapshot at path. A missing file yields the empty
	// state, not an error; a malformed file is an error.
	Load(ctx context.Context, path string) (*domain.DeckState, error)
	// Save atomically replaces the snapshot at path.
	Save(ctx context.Context, state *domain.DeckState, path string) error
}

// Mutation describes one successful state transition for the ledger.
type Mutation struct {
	Command string
	Args    []string
	Before  *domain.DeckState
	After   *domain.DeckState
}

// EventRecorder appends mutations to the history ledger.
type EventRecorder interface {
	Record(ctx context.Context, m Mutation) error
}
