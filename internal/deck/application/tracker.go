package application

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/zjrosen/outbreak/internal/deck/domain"
	"github.com/zjrosen/outbreak/internal/log"
)

var tracer = otel.Tracer("github.com/zjrosen/outbreak/internal/deck/application")

// ColorNone is the mark color that clears an annotation instead of setting one.
const ColorNone = "none"

// Tracker drives the load, mutate, save cycle against the working snapshot.
// Every mutating method loads fresh state, applies the change, saves, and
// then records the transition; a failure at any step before the save leaves
// the snapshot untouched. Ledger recording is best-effort: the snapshot
// save has already succeeded, so a recording failure only logs a warning.
type Tracker struct {
	store     SnapshotStore
	recorder  EventRecorder
	statePath string
	savePath  string
}

// NewTracker creates a Tracker. recorder may be nil when the history ledger
// is disabled.
func NewTracker(store SnapshotStore, recorder EventRecorder, statePath, savePath string) *Tracker {
	return &Tracker{
		store:     store,
		recorder:  recorder,
		statePath: statePath,
		savePath:  savePath,
	}
}

// State loads the current working state without mutating anything.
func (t *Tracker) State(ctx context.Context) (*domain.DeckState, error) {
	return t.store.Load(ctx, t.statePath)
}

// Draw applies Draw for each card in order.
func (t *Tracker) Draw(ctx context.Context, cards []string) (*domain.DeckState, error) {
	return t.mutate(ctx, "draw", cards, func(s *domain.DeckState) error {
		for _, card := range cards {
			s.Draw(card)
		}
		return nil
	})
}

// RemoveDiscard applies RemoveDiscard for each card in order.
func (t *Tracker) RemoveDiscard(ctx context.Context, cards []string) (*domain.DeckState, error) {
	return t.mutate(ctx, "remove", cards, func(s *domain.DeckState) error {
		for _, card := range cards {
			s.RemoveDiscard(card)
		}
		return nil
	})
}

// Shuffle applies the epidemic reshuffle.
func (t *Tracker) Shuffle(ctx context.Context) (*domain.DeckState, error) {
	return t.mutate(ctx, "shuffle", nil, func(s *domain.DeckState) error {
		s.ReshuffleDiscard()
		return nil
	})
}

// Mark annotates each card with color. The literal color "none" clears
// annotations instead, and inherits UnmarkCard's strictness: one unmarked
// card aborts the whole command before anything is saved.
func (t *Tracker) Mark(ctx context.Context, color string, cards []string) (*domain.DeckState, error) {
	args := append([]string{color}, cards...)
	return t.mutate(ctx, "mark", args, func(s *domain.DeckState) error {
		for _, card := range cards {
			if color == ColorNone {
				if err := s.UnmarkCard(card); err != nil {
					return err
				}
				continue
			}
			s.MarkCard(card, color)
		}
		return nil
	})
}

// SaveSlot copies the working state into the save slot. The working
// snapshot is untouched, so no ledger event is recorded.
func (t *Tracker) SaveSlot(ctx context.Context) (*domain.DeckState, error) {
	ctx, span := tracer.Start(ctx, "deck.save")
	defer span.End()

	state, err := t.store.Load(ctx, t.statePath)
	if err != nil {
		return nil, err
	}
	if err := t.store.Save(ctx, state, t.savePath); err != nil {
		return nil, err
	}
	log.Debug(log.CatDeck, "copied working state to save slot", "path", t.savePath)
	return state, nil
}

// LoadSlot replaces the working state with the save slot's contents. A
// missing save slot loads as the empty state, mirroring a fresh start.
// The working snapshot is only read for the ledger's before-image, never
// validated: restoring from the save slot is the escape hatch when the
// working file is corrupt.
func (t *Tracker) LoadSlot(ctx context.Context) (*domain.DeckState, error) {
	ctx, span := tracer.Start(ctx, "deck.load")
	defer span.End()

	before, err := t.store.Load(ctx, t.statePath)
	if err != nil {
		log.Warn(log.CatDeck, "working state unreadable, ledger before-image skipped", "error", err.Error())
		before = nil
	}
	loaded, err := t.store.Load(ctx, t.savePath)
	if err != nil {
		return nil, err
	}
	if err := t.store.Save(ctx, loaded, t.statePath); err != nil {
		return nil, err
	}
	log.Debug(log.CatDeck, "restored working state from save slot", "path", t.savePath)
	if before != nil {
		t.record(ctx, Mutation{Command: "load", Before: before, After: loaded})
	}
	return loaded, nil
}

// Reset starts a new game. With a nil initial the working state becomes the
// empty state; a game manifest can supply an initial state carrying the full
// deck composition and color annotations instead.
func (t *Tracker) Reset(ctx context.Context, initial *domain.DeckState) (*domain.DeckState, error) {
	return t.mutate(ctx, "new", nil, func(s *domain.DeckState) error {
		fresh := initial
		if fresh == nil {
			fresh = domain.NewDeckState()
		}
		*s = *fresh.Clone()
		return nil
	})
}

// Restore overwrites the working state with a previously captured state,
// recording it under the given command name. Undo uses this to roll the
// snapshot back to an event's before-image.
func (t *Tracker) Restore(ctx context.Context, command string, state *domain.DeckState) (*domain.DeckState, error) {
	ctx, span := tracer.Start(ctx, "deck."+command)
	defer span.End()

	if err := t.store.Save(ctx, state, t.statePath); err != nil {
		return nil, err
	}
	log.Debug(log.CatDeck, "restored working state", "command", command)
	return state, nil
}

func (t *Tracker) mutate(ctx context.Context, command string, args []string, fn func(*domain.DeckState) error) (*domain.DeckState, error) {
	ctx, span := tracer.Start(ctx, "deck."+command)
	defer span.End()

	before, err := t.store.Load(ctx, t.statePath)
	if err != nil {
		return nil, err
	}
	after := before.Clone()
	if err := fn(after); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := t.store.Save(ctx, after, t.statePath); err != nil {
		span.RecordError(err)
		return nil, err
	}
	log.Debug(log.CatDeck, "applied mutation", "command", command, "args", strings.Join(args, " "))
	t.record(ctx, Mutation{Command: command, Args: args, Before: before, After: after})
	return after, nil
}

func (t *Tracker) record(ctx context.Context, m Mutation) {
	if t.recorder == nil {
		return
	}
	if err := t.recorder.Record(ctx, m); err != nil {
		log.Warn(log.CatDB, "history append failed", "command", m.Command, "error", err.Error())
	}
}
