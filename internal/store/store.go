// Package store holds the grievance list and the transient submit flags for
// one mounted view. All mutation happens in Update on the Bubble Tea loop;
// backend I/O runs inside the returned commands.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/Veraticus/grievance-intel/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// SuccessDuration is how long the success flag stays set after a submit.
const SuccessDuration = 3000 * time.Millisecond

// errNoBackend is reported when the store was built without a backend.
var errNoBackend = errors.New("backend not configured")

// Phase is the submit state of the store.
type Phase int

const (
	// PhaseIdle accepts a new submit.
	PhaseIdle Phase = iota
	// PhaseSubmitting has a create request in flight.
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Store owns the grievance snapshot and the loading/success flags.
type Store struct {
	backend         service.GrievanceBackend
	cache           service.SnapshotCache
	writer          *snapshotWriter
	lastFetchErr    error
	lastSubmitErr   error
	grievances      []model.Grievance
	successDuration time.Duration
	requested       uint64
	applied         uint64
	loading         bool
	success         bool
	guard           bool
	fetched         bool
}

// Option configures a Store.
type Option func(*Store)

// WithSequenceGuard enables or disables dropping fetch responses that are
// older than the last applied one. Enabled by default.
func WithSequenceGuard(enabled bool) Option {
	return func(s *Store) {
		s.guard = enabled
	}
}

// WithSnapshotCache persists every applied fetch and allows painting the
// cached list before the first fetch settles.
func WithSnapshotCache(cache service.SnapshotCache) Option {
	return func(s *Store) {
		s.cache = cache
	}
}

// WithSuccessDuration overrides SuccessDuration.
func WithSuccessDuration(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.successDuration = d
		}
	}
}

// New creates an empty store backed by backend.
func New(backend service.GrievanceBackend, opts ...Option) Store {
	s := Store{
		backend:         backend,
		grievances:      []model.Grievance{},
		successDuration: SuccessDuration,
		guard:           true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.cache != nil {
		s.writer = &snapshotWriter{cache: s.cache, guard: s.guard}
	}
	return s
}

// Grievances returns the last applied snapshot.
func (s Store) Grievances() []model.Grievance {
	return s.grievances
}

// Loading is true while a submit is in flight.
func (s Store) Loading() bool {
	return s.loading
}

// Success is true during the window after a successful submit.
func (s Store) Success() bool {
	return s.success
}

// Phase reports whether a submit is in flight.
func (s Store) Phase() Phase {
	if s.loading {
		return PhaseSubmitting
	}
	return PhaseIdle
}

// Fetched reports whether any fetch has been applied.
func (s Store) Fetched() bool {
	return s.fetched
}

// LastFetchErr returns the most recent refresh failure, cleared by the next
// applied fetch.
func (s Store) LastFetchErr() error {
	return s.lastFetchErr
}

// LastSubmitErr returns the most recent submit failure, cleared by the next
// successful submit.
func (s Store) LastSubmitErr() error {
	return s.lastSubmitErr
}

// Mount returns the commands a freshly mounted view issues: one fetch, plus
// a snapshot load when a cache is configured.
func (s Store) Mount() (Store, tea.Cmd) {
	s, fetch := s.FetchAll()
	if s.cache == nil {
		return s, fetch
	}
	return s, tea.Batch(s.LoadSnapshot(), fetch)
}

// FetchAll requests the full grievance collection.
func (s Store) FetchAll() (Store, tea.Cmd) {
	s.requested++
	seq := s.requested
	backend := s.backend

	return s, func() tea.Msg {
		if backend == nil {
			return FetchedMsg{Seq: seq, Err: errNoBackend}
		}

		grievances, err := backend.ListGrievances(context.Background())
		return FetchedMsg{
			Seq:        seq,
			Grievances: grievances,
			Err:        err,
		}
	}
}

// Submit sends draft to the backend. It is a no-op while another submit is
// in flight. The draft is not validated here.
func (s Store) Submit(draft model.Draft) (Store, tea.Cmd) {
	if s.loading {
		common.LogDebug("Submit denied while another submit is in flight", nil)
		return s, nil
	}

	s.loading = true
	backend := s.backend

	return s, func() tea.Msg {
		if backend == nil {
			return SubmittedMsg{Draft: draft, Err: errNoBackend}
		}

		err := backend.CreateGrievance(context.Background(), draft)
		return SubmittedMsg{Draft: draft, Err: err}
	}
}

// LoadSnapshot reads the cached list. It returns nil without a cache.
func (s Store) LoadSnapshot() tea.Cmd {
	cache := s.cache
	if cache == nil {
		return nil
	}

	return func() tea.Msg {
		snap, err := cache.LoadSnapshot(context.Background())
		return SnapshotLoadedMsg{Snapshot: snap, Err: err}
	}
}

// Update applies store messages and ignores everything else.
func (s Store) Update(msg tea.Msg) (Store, tea.Cmd) {
	switch msg := msg.(type) {
	case FetchedMsg:
		return s.applyFetch(msg)

	case SubmittedMsg:
		return s.applySubmit(msg)

	case SuccessExpiredMsg:
		// Fires once per successful submit, even if a newer cycle has
		// started since.
		s.success = false
		return s, nil

	case SnapshotLoadedMsg:
		s.applySnapshot(msg)
		return s, nil
	}

	return s, nil
}

func (s Store) applyFetch(msg FetchedMsg) (Store, tea.Cmd) {
	// Stale responses are dropped whether they succeeded or not
	if s.guard && msg.Seq < s.applied {
		common.LogDebug("Discarding stale grievance list", common.Fields{
			"seq":     msg.Seq,
			"applied": s.applied,
			"failed":  msg.Err != nil,
		})
		return s, nil
	}

	if msg.Err != nil {
		s.lastFetchErr = fmt.Errorf("%w: %w", common.ErrFetchFailed, msg.Err)
		common.LogError(s.lastFetchErr, "Failed to refresh grievances", common.Fields{
			"seq": msg.Seq,
		})
		return s, nil
	}

	grievances := msg.Grievances
	if grievances == nil {
		grievances = []model.Grievance{}
	}

	s.grievances = grievances
	s.applied = max(s.applied, msg.Seq)
	s.fetched = true
	s.lastFetchErr = nil

	common.LogDebug("Applied grievance list", common.Fields{
		"seq":   msg.Seq,
		"count": len(grievances),
	})

	return s, s.saveSnapshot(msg.Seq, grievances)
}

func (s Store) applySubmit(msg SubmittedMsg) (Store, tea.Cmd) {
	s.loading = false

	if msg.Err != nil {
		s.lastSubmitErr = fmt.Errorf("%w: %w", common.ErrSubmitFailed, msg.Err)
		common.LogError(s.lastSubmitErr, "Failed to submit grievance", common.Fields{
			"title": msg.Draft.Title,
		})
		return s, nil
	}

	s.success = true
	s.lastSubmitErr = nil
	common.LogInfo("Grievance submitted", common.Fields{"title": msg.Draft.Title})

	s, fetch := s.FetchAll()
	return s, tea.Batch(s.expireSuccess(), fetch)
}

func (s *Store) applySnapshot(msg SnapshotLoadedMsg) {
	if msg.Err != nil {
		if !errors.Is(msg.Err, common.ErrNotFound) {
			common.LogError(msg.Err, "Failed to load grievance snapshot", nil)
		}
		return
	}

	// A live fetch always wins over the cache
	if s.fetched || msg.Snapshot == nil {
		return
	}

	s.grievances = msg.Snapshot.Grievances
	if s.grievances == nil {
		s.grievances = []model.Grievance{}
	}
}

func (s Store) expireSuccess() tea.Cmd {
	return tea.Tick(s.successDuration, func(time.Time) tea.Msg {
		return SuccessExpiredMsg{}
	})
}

func (s Store) saveSnapshot(seq uint64, grievances []model.Grievance) tea.Cmd {
	w := s.writer
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		w.save(seq, grievances)
		return nil
	}
}

// snapshotWriter serializes cache writes. Save commands run concurrently, so
// with the sequence guard on a write older than the last one written is
// skipped.
type snapshotWriter struct {
	cache   service.SnapshotCache
	written uint64
	mu      sync.Mutex
	guard   bool
}

func (w *snapshotWriter) save(seq uint64, grievances []model.Grievance) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.guard && seq < w.written {
		common.LogDebug("Skipping stale grievance snapshot", common.Fields{
			"seq":     seq,
			"written": w.written,
		})
		return
	}

	if err := w.cache.SaveSnapshot(context.Background(), grievances); err != nil {
		common.LogError(err, "Failed to save grievance snapshot", common.Fields{
			"count": len(grievances),
		})
		return
	}
	w.written = max(w.written, seq)
}
