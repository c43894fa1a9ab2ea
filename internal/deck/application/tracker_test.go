package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/outbreak/internal/deck/domain"
)

// fakeStore keeps snapshots in a map, cloning on the way in and out the way
// a real file store does through serialization.
type fakeStore struct {
	states   map[string]*domain.DeckState
	loadErr  map[string]error
	saveErr  error
	saves    int
	lastSave string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		states:  make(map[string]*domain.DeckState),
		loadErr: make(map[string]error),
	}
}

func (f *fakeStore) Load(_ context.Context, path string) (*domain.DeckState, error) {
	if err := f.loadErr[path]; err != nil {
		return nil, err
	}
	if s, ok := f.states[path]; ok {
		return s.Clone(), nil
	}
	return domain.NewDeckState(), nil
}

func (f *fakeStore) Save(_ context.Context, state *domain.DeckState, path string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.states[path] = state.Clone()
	f.saves++
	f.lastSave = path
	return nil
}

type fakeRecorder struct {
	mutations []Mutation
	err       error
}

func (f *fakeRecorder) Record(_ context.Context, m Mutation) error {
	if f.err != nil {
		return f.err
	}
	f.mutations = append(f.mutations, m)
	return nil
}

func newTestTracker() (*Tracker, *fakeStore, *fakeRecorder) {
	store := newFakeStore()
	recorder := &fakeRecorder{}
	return NewTracker(store, recorder, "state.json", "save.json"), store, recorder
}

func TestTracker_Draw(t *testing.T) {
	tracker, store, recorder := newTestTracker()

	state, err := tracker.Draw(context.Background(), []string{"epidemic", "alpha"})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "epidemic"}, state.DiscardPile)
	assert.Empty(t, state.InfectionDecks)

	saved := store.states["state.json"]
	require.NotNil(t, saved)
	assert.Equal(t, state, saved, "returned state matches what was persisted")

	require.Len(t, recorder.mutations, 1)
	m := recorder.mutations[0]
	assert.Equal(t, "draw", m.Command)
	assert.Equal(t, []string{"epidemic", "alpha"}, m.Args)
	assert.Empty(t, m.Before.DiscardPile)
	assert.Equal(t, []string{"alpha", "epidemic"}, m.After.DiscardPile)
}

func TestTracker_ShuffleAndRemove(t *testing.T) {
	tracker, _, recorder := newTestTracker()
	ctx := context.Background()

	_, err := tracker.Draw(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)

	state, err := tracker.Shuffle(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"alpha", "beta"}}, state.InfectionDecks)
	assert.Empty(t, state.DiscardPile)

	_, err = tracker.Draw(ctx, []string{"alpha"})
	require.NoError(t, err)

	state, err = tracker.RemoveDiscard(ctx, []string{"alpha"})
	require.NoError(t, err)
	assert.Empty(t, state.DiscardPile)

	commands := make([]string, 0, len(recorder.mutations))
	for _, m := range recorder.mutations {
		commands = append(commands, m.Command)
	}
	assert.Equal(t, []string{"draw", "shuffle", "draw", "remove"}, commands)
}

func TestTracker_Mark(t *testing.T) {
	t.Run("marks cards with the color", func(t *testing.T) {
		tracker, _, recorder := newTestTracker()

		state, err := tracker.Mark(context.Background(), "red", []string{"alpha", "beta"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"alpha": "red", "beta": "red"}, state.CardColor)

		require.Len(t, recorder.mutations, 1)
		assert.Equal(t, []string{"red", "alpha", "beta"}, recorder.mutations[0].Args)
	})

	t.Run("color none clears annotations", func(t *testing.T) {
		tracker, _, _ := newTestTracker()
		ctx := context.Background()

		_, err := tracker.Mark(ctx, "red", []string{"alpha"})
		require.NoError(t, err)

		state, err := tracker.Mark(ctx, ColorNone, []string{"alpha"})
		require.NoError(t, err)
		assert.Empty(t, state.CardColor)
	})

	t.Run("unmarking an unmarked card aborts before save", func(t *testing.T) {
		tracker, store, recorder := newTestTracker()

		_, err := tracker.Mark(context.Background(), ColorNone, []string{"alpha"})
		require.Error(t, err)

		var notMarked *domain.CardNotMarkedError
		assert.True(t, errors.As(err, &notMarked))
		assert.Zero(t, store.saves, "nothing may be persisted after a failed mutation")
		assert.Empty(t, recorder.mutations)
	})
}

func TestTracker_LoadErrorAborts(t *testing.T) {
	tracker, store, recorder := newTestTracker()
	store.loadErr["state.json"] = errors.New("corrupt snapshot")

	_, err := tracker.Draw(context.Background(), []string{"alpha"})
	require.Error(t, err)
	assert.Zero(t, store.saves)
	assert.Empty(t, recorder.mutations)
}

func TestTracker_SaveErrorSurfaces(t *testing.T) {
	tracker, store, recorder := newTestTracker()
	store.saveErr = errors.New("disk full")

	_, err := tracker.Shuffle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, recorder.mutations, "no event without a successful save")
}

func TestTracker_RecorderFailureDoesNotFailCommand(t *testing.T) {
	store := newFakeStore()
	recorder := &fakeRecorder{err: errors.New("ledger offline")}
	tracker := NewTracker(store, recorder, "state.json", "save.json")

	state, err := tracker.Draw(context.Background(), []string{"alpha"})
	require.NoError(t, err, "ledger trouble must not fail the command")
	assert.Equal(t, []string{"alpha"}, state.DiscardPile)
	assert.Equal(t, 1, store.saves)
}

func TestTracker_NilRecorder(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(store, nil, "state.json", "save.json")

	_, err := tracker.Draw(context.Background(), []string{"alpha"})
	require.NoError(t, err)
}

func TestTracker_SaveSlot(t *testing.T) {
	tracker, store, recorder := newTestTracker()
	ctx := context.Background()

	_, err := tracker.Draw(ctx, []string{"alpha"})
	require.NoError(t, err)
	recorder.mutations = nil

	state, err := tracker.SaveSlot(ctx)
	require.NoError(t, err)

	assert.Equal(t, state, store.states["save.json"], "save slot holds the working state")
	assert.Empty(t, recorder.mutations, "copying to the slot is not a mutation")
}

func TestTracker_LoadSlot(t *testing.T) {
	t.Run("restores the save slot and records the swap", func(t *testing.T) {
		tracker, store, recorder := newTestTracker()
		ctx := context.Background()

		_, err := tracker.Draw(ctx, []string{"alpha"})
		require.NoError(t, err)
		_, err = tracker.SaveSlot(ctx)
		require.NoError(t, err)
		_, err = tracker.Draw(ctx, []string{"beta"})
		require.NoError(t, err)
		recorder.mutations = nil

		state, err := tracker.LoadSlot(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha"}, state.DiscardPile)
		assert.Equal(t, state, store.states["state.json"])

		require.Len(t, recorder.mutations, 1)
		m := recorder.mutations[0]
		assert.Equal(t, "load", m.Command)
		assert.Equal(t, []string{"alpha", "beta"}, m.Before.DiscardPile)
		assert.Equal(t, []string{"alpha"}, m.After.DiscardPile)
	})

	t.Run("corrupt working state still restores", func(t *testing.T) {
		tracker, store, recorder := newTestTracker()
		store.states["save.json"] = func() *domain.DeckState {
			s := domain.NewDeckState()
			s.Draw("alpha")
			return s
		}()
		store.loadErr["state.json"] = errors.New("corrupt snapshot")

		state, err := tracker.LoadSlot(context.Background())
		require.NoError(t, err, "load is the escape hatch from a corrupt working file")
		assert.Equal(t, []string{"alpha"}, state.DiscardPile)
		assert.Empty(t, recorder.mutations, "no before-image, no event")
	})

	t.Run("missing save slot loads the empty state", func(t *testing.T) {
		tracker, _, _ := newTestTracker()

		state, err := tracker.LoadSlot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.NewDeckState(), state)
	})
}

func TestTracker_Reset(t *testing.T) {
	t.Run("nil initial yields the empty state", func(t *testing.T) {
		tracker, store, recorder := newTestTracker()
		ctx := context.Background()

		_, err := tracker.Draw(ctx, []string{"alpha"})
		require.NoError(t, err)

		state, err := tracker.Reset(ctx, nil)
		require.NoError(t, err)

		assert.Equal(t, [][]string{{}}, state.InfectionDecks, "fresh sentinel segment")
		assert.Empty(t, state.DiscardPile)
		assert.Empty(t, state.CardColor)
		assert.Equal(t, state, store.states["state.json"])

		last := recorder.mutations[len(recorder.mutations)-1]
		assert.Equal(t, "new", last.Command)
		assert.Equal(t, []string{"alpha"}, last.Before.DiscardPile)
	})

	t.Run("manifest initial is cloned into the working state", func(t *testing.T) {
		tracker, store, _ := newTestTracker()

		initial := domain.NewDeckState()
		initial.InfectionDecks = [][]string{{"alpha", "alpha", "beta"}}
		initial.CardColor = map[string]string{"alpha": "blue"}

		state, err := tracker.Reset(context.Background(), initial)
		require.NoError(t, err)

		assert.Equal(t, initial, state)
		assert.Equal(t, initial, store.states["state.json"])

		initial.InfectionDecks[0][0] = "mutated"
		assert.Equal(t, "alpha", state.InfectionDecks[0][0], "reset clones the initial state")
	})
}

func TestTracker_Restore(t *testing.T) {
	tracker, store, _ := newTestTracker()

	target := domain.NewDeckState()
	target.Draw("alpha")

	state, err := tracker.Restore(context.Background(), "undo", target)
	require.NoError(t, err)
	assert.Equal(t, target, state)
	assert.Equal(t, target, store.states["state.json"])
}
