package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/Veraticus/grievance-intel/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory grievance service.
type fakeBackend struct {
	listErr    error
	createErr  error
	grievances []model.Grievance
	created    []model.Draft
	listCalls  int
	mu         sync.Mutex
}

func (f *fakeBackend) ListGrievances(_ context.Context) ([]model.Grievance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Grievance, len(f.grievances))
	copy(out, f.grievances)
	return out, nil
}

func (f *fakeBackend) CreateGrievance(_ context.Context, draft model.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, draft)
	f.grievances = append([]model.Grievance{{
		ID:          string(rune('a' + len(f.created))),
		Title:       draft.Title,
		Description: draft.Description,
		CreatedAt:   time.Now(),
	}}, f.grievances...)
	return nil
}

// fakeCache records saved snapshots.
type fakeCache struct {
	snapshot *service.Snapshot
	loadErr  error
	saveErr  error
	saved    [][]model.Grievance
	mu       sync.Mutex
}

func (c *fakeCache) SaveSnapshot(_ context.Context, grievances []model.Grievance) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saved = append(c.saved, grievances)
	return c.saveErr
}

func (c *fakeCache) LoadSnapshot(_ context.Context) (*service.Snapshot, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	if c.snapshot == nil {
		return nil, common.ErrNotFound
	}
	return c.snapshot, nil
}

func (c *fakeCache) Close() error { return nil }

// runCmd executes cmd, expanding batches, and returns every non-nil message.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// settle feeds every message produced by cmd back into the store until no
// commands remain.
func settle(s Store, cmd tea.Cmd) Store {
	queue := runCmd(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		var next tea.Cmd
		s, next = s.Update(msg)
		queue = append(queue, runCmd(next)...)
	}
	return s
}

func record(id, title string) model.Grievance {
	return model.Grievance{ID: id, Title: title, Description: title + " details"}
}

func TestNew(t *testing.T) {
	s := New(&fakeBackend{})

	assert.NotNil(t, s.Grievances())
	assert.Empty(t, s.Grievances())
	assert.False(t, s.Loading())
	assert.False(t, s.Success())
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.Fetched())
	assert.Equal(t, 3*time.Second, s.successDuration)
	assert.True(t, s.guard)
}

func TestFetchAll_ReplacesListVerbatim(t *testing.T) {
	backend := &fakeBackend{grievances: []model.Grievance{
		record("3", "Garbage"),
		record("1", "Water"),
		record("2", "Roads"),
	}}
	s := New(backend)

	s, cmd := s.FetchAll()
	s = settle(s, cmd)

	require.Len(t, s.Grievances(), 3)
	// Backend order, no client-side sorting
	assert.Equal(t, "3", s.Grievances()[0].ID)
	assert.Equal(t, "1", s.Grievances()[1].ID)
	assert.Equal(t, "2", s.Grievances()[2].ID)
	assert.True(t, s.Fetched())
	assert.NoError(t, s.LastFetchErr())

	// A later fetch replaces wholesale rather than merging
	backend.grievances = []model.Grievance{record("9", "Only")}
	s, cmd = s.FetchAll()
	s = settle(s, cmd)

	require.Len(t, s.Grievances(), 1)
	assert.Equal(t, "9", s.Grievances()[0].ID)
}

func TestFetchAll_FailureKeepsLastSnapshot(t *testing.T) {
	backend := &fakeBackend{grievances: []model.Grievance{record("1", "Water")}}
	s := New(backend)

	s, cmd := s.FetchAll()
	s = settle(s, cmd)
	require.Len(t, s.Grievances(), 1)

	backend.listErr = errors.New("connection refused")
	s, cmd = s.FetchAll()
	s = settle(s, cmd)

	require.Len(t, s.Grievances(), 1)
	assert.Equal(t, "1", s.Grievances()[0].ID)
	assert.ErrorIs(t, s.LastFetchErr(), common.ErrFetchFailed)
	assert.False(t, s.Loading())

	// The next good fetch clears the error
	backend.listErr = nil
	s, cmd = s.FetchAll()
	s = settle(s, cmd)
	assert.NoError(t, s.LastFetchErr())
}

func TestFetchAll_NoBackend(t *testing.T) {
	s := New(nil)

	s, cmd := s.FetchAll()
	s = settle(s, cmd)

	assert.Empty(t, s.Grievances())
	assert.Error(t, s.LastFetchErr())
}

func TestFetchAll_EmptyList(t *testing.T) {
	s := New(&fakeBackend{})

	s, cmd := s.FetchAll()
	s = settle(s, cmd)

	assert.NotNil(t, s.Grievances())
	assert.Empty(t, s.Grievances())
	assert.True(t, s.Fetched())
}

func TestFetchAll_OverlappingResponses(t *testing.T) {
	older := FetchedMsg{Seq: 1, Grievances: []model.Grievance{record("1", "Old")}}
	newer := FetchedMsg{Seq: 2, Grievances: []model.Grievance{record("1", "Old"), record("2", "New")}}

	t.Run("guard drops a stale response", func(t *testing.T) {
		s := New(&fakeBackend{})
		s, _ = s.FetchAll()
		s, _ = s.FetchAll()

		s, _ = s.Update(newer)
		s, _ = s.Update(older)

		assert.Len(t, s.Grievances(), 2)
	})

	t.Run("without guard the last arrival wins", func(t *testing.T) {
		s := New(&fakeBackend{}, WithSequenceGuard(false))
		s, _ = s.FetchAll()
		s, _ = s.FetchAll()

		s, _ = s.Update(newer)
		s, _ = s.Update(older)

		assert.Len(t, s.Grievances(), 1)
	})

	t.Run("in-order responses both apply", func(t *testing.T) {
		s := New(&fakeBackend{})
		s, _ = s.FetchAll()
		s, _ = s.FetchAll()

		s, _ = s.Update(older)
		assert.Len(t, s.Grievances(), 1)
		s, _ = s.Update(newer)
		assert.Len(t, s.Grievances(), 2)
	})

	t.Run("stale failure does not flag a fresh list", func(t *testing.T) {
		s := New(&fakeBackend{})
		s, _ = s.FetchAll()
		s, _ = s.FetchAll()

		s, _ = s.Update(newer)
		s, _ = s.Update(FetchedMsg{Seq: 1, Err: errors.New("timeout")})

		assert.Len(t, s.Grievances(), 2)
		assert.NoError(t, s.LastFetchErr())
	})

	t.Run("without guard a late failure is recorded", func(t *testing.T) {
		s := New(&fakeBackend{}, WithSequenceGuard(false))
		s, _ = s.FetchAll()
		s, _ = s.FetchAll()

		s, _ = s.Update(newer)
		s, _ = s.Update(FetchedMsg{Seq: 1, Err: errors.New("timeout")})

		assert.Len(t, s.Grievances(), 2)
		assert.ErrorIs(t, s.LastFetchErr(), common.ErrFetchFailed)
	})
}

func TestSubmit_Success(t *testing.T) {
	backend := &fakeBackend{grievances: []model.Grievance{record("1", "Existing")}}
	s := New(backend, WithSuccessDuration(20*time.Millisecond))

	s, cmd := s.FetchAll()
	s = settle(s, cmd)
	before := len(s.Grievances())

	draft := model.Draft{Title: "Water shortage", Description: "No water for 3 days"}
	s, cmd = s.Submit(draft)
	require.NotNil(t, cmd)
	assert.True(t, s.Loading())
	assert.Equal(t, PhaseSubmitting, s.Phase())

	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	submitted, ok := msgs[0].(SubmittedMsg)
	require.True(t, ok)
	assert.NoError(t, submitted.Err)
	assert.Equal(t, draft, submitted.Draft)

	s, follow := s.Update(submitted)
	assert.False(t, s.Loading())
	assert.True(t, s.Success())
	assert.NoError(t, s.LastSubmitErr())

	// The follow-up carries exactly one fetch and the success timer
	var fetched, expired int
	for _, msg := range runCmd(follow) {
		switch msg := msg.(type) {
		case FetchedMsg:
			fetched++
			s, _ = s.Update(msg)
		case SuccessExpiredMsg:
			expired++
			s, _ = s.Update(msg)
		}
	}
	assert.Equal(t, 1, fetched)
	assert.Equal(t, 1, expired)

	assert.GreaterOrEqual(t, len(s.Grievances()), before+1)
	assert.Equal(t, "Water shortage", s.Grievances()[0].Title)
	assert.False(t, s.Success())
	assert.Equal(t, []model.Draft{draft}, backend.created)
}

func TestSubmit_SuccessClearsOnItsOwn(t *testing.T) {
	s := New(&fakeBackend{}, WithSuccessDuration(30*time.Millisecond))

	s, cmd := s.Submit(model.Draft{Title: "t", Description: "d"})
	s, follow := s.Update(runCmd(cmd)[0])
	require.True(t, s.Success())

	start := time.Now()
	s = settle(s, follow)

	assert.False(t, s.Success())
	assert.Less(t, time.Since(start), time.Second)
}

func TestSubmit_Failure(t *testing.T) {
	backend := &fakeBackend{
		grievances: []model.Grievance{record("1", "Existing")},
		createErr:  errors.New("HTTP 500"),
	}
	s := New(backend)
	s, cmd := s.FetchAll()
	s = settle(s, cmd)
	listCalls := backend.listCalls

	draft := model.Draft{Title: "Water shortage", Description: "No water for 3 days"}
	s, cmd = s.Submit(draft)
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)

	submitted := msgs[0].(SubmittedMsg)
	assert.Error(t, submitted.Err)
	assert.Equal(t, draft, submitted.Draft, "draft is carried back untouched")

	s, follow := s.Update(submitted)
	assert.Nil(t, follow, "no refresh or timer after a failed submit")
	assert.False(t, s.Loading())
	assert.False(t, s.Success())
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.ErrorIs(t, s.LastSubmitErr(), common.ErrSubmitFailed)
	assert.Len(t, s.Grievances(), 1)
	assert.Equal(t, listCalls, backend.listCalls)

	// Failure never blocks a retry
	backend.createErr = nil
	s, cmd = s.Submit(draft)
	require.NotNil(t, cmd)
	s, _ = s.Update(runCmd(cmd)[0])
	assert.True(t, s.Success())
	assert.NoError(t, s.LastSubmitErr())
}

func TestSubmit_DeniedWhileLoading(t *testing.T) {
	backend := &fakeBackend{}
	s := New(backend)

	s, first := s.Submit(model.Draft{Title: "one", Description: "d"})
	require.NotNil(t, first)

	s, second := s.Submit(model.Draft{Title: "two", Description: "d"})
	assert.Nil(t, second)
	assert.True(t, s.Loading())

	s, _ = s.Update(runCmd(first)[0])
	assert.False(t, s.Loading())
	assert.Len(t, backend.created, 1)
	assert.Equal(t, "one", backend.created[0].Title)
}

func TestSubmit_NoBackend(t *testing.T) {
	s := New(nil)

	s, cmd := s.Submit(model.Draft{Title: "t", Description: "d"})
	s, _ = s.Update(runCmd(cmd)[0])

	assert.False(t, s.Loading())
	assert.False(t, s.Success())
	assert.Error(t, s.LastSubmitErr())
}

func TestSuccessTimer_NotCancelledByNewCycle(t *testing.T) {
	s := New(&fakeBackend{}, WithSuccessDuration(10*time.Millisecond))

	// First cycle succeeds
	s, cmd := s.Submit(model.Draft{Title: "one", Description: "d"})
	s, _ = s.Update(runCmd(cmd)[0])
	require.True(t, s.Success())

	// Second cycle succeeds before the first window elapsed
	s, cmd = s.Submit(model.Draft{Title: "two", Description: "d"})
	s, _ = s.Update(runCmd(cmd)[0])
	require.True(t, s.Success())

	// The first cycle's timer still clears the flag
	s, _ = s.Update(SuccessExpiredMsg{})
	assert.False(t, s.Success())
}

func TestMount(t *testing.T) {
	t.Run("without cache issues exactly one fetch", func(t *testing.T) {
		backend := &fakeBackend{}
		s := New(backend)

		s, cmd := s.Mount()
		msgs := runCmd(cmd)

		require.Len(t, msgs, 1)
		_, ok := msgs[0].(FetchedMsg)
		assert.True(t, ok)
		assert.Equal(t, 1, backend.listCalls)
		assert.Nil(t, s.LoadSnapshot())
	})

	t.Run("cache paints the list until the fetch lands", func(t *testing.T) {
		backend := &fakeBackend{listErr: errors.New("offline")}
		cache := &fakeCache{snapshot: &service.Snapshot{
			SavedAt:    time.Now(),
			Grievances: []model.Grievance{record("7", "Cached")},
		}}
		s := New(backend, WithSnapshotCache(cache))

		s, cmd := s.Mount()
		s = settle(s, cmd)

		require.Len(t, s.Grievances(), 1)
		assert.Equal(t, "7", s.Grievances()[0].ID)
		assert.False(t, s.Fetched())
		assert.Error(t, s.LastFetchErr())
	})

	t.Run("cache never overrides an applied fetch", func(t *testing.T) {
		backend := &fakeBackend{grievances: []model.Grievance{record("1", "Live")}}
		cache := &fakeCache{snapshot: &service.Snapshot{
			Grievances: []model.Grievance{record("7", "Cached")},
		}}
		s := New(backend, WithSnapshotCache(cache))

		s, fetch := s.FetchAll()
		s = settle(s, fetch)
		s = settle(s, s.LoadSnapshot())

		require.Len(t, s.Grievances(), 1)
		assert.Equal(t, "1", s.Grievances()[0].ID)
	})
}

func TestSnapshotCache_SavedAfterFetch(t *testing.T) {
	backend := &fakeBackend{grievances: []model.Grievance{record("1", "Water")}}
	cache := &fakeCache{saveErr: errors.New("disk full")}
	s := New(backend, WithSnapshotCache(cache))

	s, cmd := s.FetchAll()
	s = settle(s, cmd)

	require.Len(t, cache.saved, 1)
	assert.Equal(t, "1", cache.saved[0][0].ID)
	// A cache failure does not touch the store
	assert.Len(t, s.Grievances(), 1)
	assert.NoError(t, s.LastFetchErr())
}

func TestSnapshotCache_OutOfOrderSaves(t *testing.T) {
	older := FetchedMsg{Seq: 1, Grievances: []model.Grievance{record("1", "Old")}}
	newer := FetchedMsg{Seq: 2, Grievances: []model.Grievance{record("1", "Old"), record("2", "New")}}

	t.Run("older save landing last is skipped", func(t *testing.T) {
		cache := &fakeCache{}
		s := New(&fakeBackend{}, WithSnapshotCache(cache))
		s, _ = s.FetchAll()
		s, _ = s.FetchAll()

		s, saveOlder := s.Update(older)
		_, saveNewer := s.Update(newer)
		require.NotNil(t, saveOlder)
		require.NotNil(t, saveNewer)

		// Commands run concurrently, so the newer save may finish first
		runCmd(saveNewer)
		runCmd(saveOlder)

		require.Len(t, cache.saved, 1)
		assert.Len(t, cache.saved[0], 2)
	})

	t.Run("failed save does not block the next one", func(t *testing.T) {
		cache := &fakeCache{saveErr: errors.New("disk full")}
		s := New(&fakeBackend{}, WithSnapshotCache(cache))
		s, _ = s.FetchAll()
		s, _ = s.FetchAll()

		s, saveOlder := s.Update(older)
		_, saveNewer := s.Update(newer)
		runCmd(saveOlder)
		runCmd(saveNewer)

		assert.Len(t, cache.saved, 2)
	})

	t.Run("without guard every save is written", func(t *testing.T) {
		cache := &fakeCache{}
		s := New(&fakeBackend{}, WithSequenceGuard(false), WithSnapshotCache(cache))
		s, _ = s.FetchAll()
		s, _ = s.FetchAll()

		s, saveNewer := s.Update(newer)
		_, saveOlder := s.Update(older)
		runCmd(saveNewer)
		runCmd(saveOlder)

		require.Len(t, cache.saved, 2)
		assert.Len(t, cache.saved[1], 1)
	})
}

func TestSnapshotLoaded_Errors(t *testing.T) {
	s := New(&fakeBackend{})

	s, _ = s.Update(SnapshotLoadedMsg{Err: common.ErrNotFound})
	assert.Empty(t, s.Grievances())

	s, _ = s.Update(SnapshotLoadedMsg{Err: errors.New("corrupt")})
	assert.Empty(t, s.Grievances())
}

func TestUpdate_IgnoresForeignMessages(t *testing.T) {
	s := New(&fakeBackend{})

	next, cmd := s.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, s.Phase(), next.Phase())
	assert.Equal(t, s.Success(), next.Success())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "submitting", PhaseSubmitting.String())
}
