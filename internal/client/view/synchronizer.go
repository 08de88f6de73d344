// Package view keeps one screen's records consistent with the API: it
// loads, searches and re-fetches the active view after every mutation,
// and turns failures into notifications.
package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/booky/internal/client/client"
	"github.com/dmitrijs2005/booky/internal/client/events"
	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/dmitrijs2005/booky/internal/logging"
)

var (
	// ErrBusy is returned when a search or mutation is started while a
	// mutation is still in flight.
	ErrBusy = errors.New("another change is in progress")
	// ErrSuperseded is returned when a newer fetch replaced this one's result.
	ErrSuperseded = errors.New("response superseded by a newer request")
	// ErrRefreshFailed wraps the re-fetch error after a successful mutation.
	ErrRefreshFailed = errors.New("refresh after change failed")
)

const emptyCriteriaMessage = "Please enter search criteria"

// Criteria is a search filter for one resource.
type Criteria interface {
	client.Query
	IsEmpty() bool
}

// Resource is the remote collection behind a screen; *client.Resource
// satisfies it.
type Resource[T any, I any, C Criteria] interface {
	List(ctx context.Context) ([]T, error)
	Details(ctx context.Context, id int64) (T, error)
	Search(ctx context.Context, c C) ([]T, error)
	Create(ctx context.Context, in I) (T, error)
	Update(ctx context.Context, id int64, in I) (T, error)
	Delete(ctx context.Context, id int64) error
}

type Mode int

const (
	ModeAll Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "all"
}

// View is a point-in-time copy of a screen.
type View[T any, C Criteria] struct {
	Records  []T
	Mode     Mode
	Criteria C
	// Stale is set when the records may be out of date: a re-fetch after a
	// change failed, or a resource this screen depends on was changed.
	Stale    bool
	Mutating bool
}

// Synchronizer owns the records of one screen. The view is only replaced
// by a successful fetch that is still the latest one issued; failures
// leave the previous records in place.
type Synchronizer[T any, I any, C Criteria] struct {
	kind models.Kind
	res  Resource[T, I, C]

	notifier  Notifier
	log       logging.Logger
	bus       *events.Bus
	dependsOn []models.Kind
	unsubs    []func()

	mu       sync.Mutex
	records  []T
	mode     Mode
	criteria C
	stale    bool
	mutating bool
	gen      uint64
	// epoch counts resets; a mutation that spans one does not refetch.
	epoch uint64
}

func New[T any, I any, C Criteria](kind models.Kind, res Resource[T, I, C], opts ...Option) *Synchronizer[T, I, C] {
	st := settings{notifier: nopNotifier{}, log: logging.NewNop()}
	for _, opt := range opts {
		opt(&st)
	}

	s := &Synchronizer[T, I, C]{
		kind:      kind,
		res:       res,
		notifier:  st.notifier,
		log:       st.log.With("screen", string(kind)),
		bus:       st.bus,
		dependsOn: st.dependsOn,
	}

	if s.bus != nil {
		s.unsubs = append(s.unsubs,
			s.bus.Subscribe(events.TopicSessionCleared, func(events.Event) { s.Reset() }),
			s.bus.Subscribe(events.TopicResourceChanged, s.onResourceChanged),
		)
	}
	return s
}

func (s *Synchronizer[T, I, C]) Kind() models.Kind { return s.kind }

// Load fetches the full list and switches to ModeAll.
func (s *Synchronizer[T, I, C]) Load(ctx context.Context) error {
	var zero C
	return s.fetchAndNotify(ctx, ModeAll, zero, "Failed to load "+s.plural())
}

// Refresh re-issues whatever the screen is currently showing.
func (s *Synchronizer[T, I, C]) Refresh(ctx context.Context) error {
	mode, criteria := s.current()
	return s.fetchAndNotify(ctx, mode, criteria, "Failed to load "+s.plural())
}

// Search applies c. Empty criteria only produce a warning: nothing is sent
// and the view stays as it is.
func (s *Synchronizer[T, I, C]) Search(ctx context.Context, c C) error {
	if c.IsEmpty() {
		s.notifier.Warn(emptyCriteriaMessage)
		return nil
	}
	if s.Mutating() {
		return ErrBusy
	}
	return s.fetchAndNotify(ctx, ModeSearch, c, "Failed to search "+s.plural())
}

// ClearSearch drops the criteria and reloads the full list.
func (s *Synchronizer[T, I, C]) ClearSearch(ctx context.Context) error {
	return s.Load(ctx)
}

// Details fetches one record without touching the view.
func (s *Synchronizer[T, I, C]) Details(ctx context.Context, id int64) (T, error) {
	rec, err := s.res.Details(ctx, id)
	if err != nil {
		s.notifier.Error(client.UserMessage(err, "Failed to load "+s.kind.Singular()))
	}
	return rec, err
}

func (s *Synchronizer[T, I, C]) Create(ctx context.Context, in I) (T, error) {
	var created T
	err := s.mutate(ctx, "create", "created", func(ctx context.Context) error {
		var err error
		created, err = s.res.Create(ctx, in)
		return err
	})
	return created, err
}

func (s *Synchronizer[T, I, C]) Update(ctx context.Context, id int64, in I) (T, error) {
	var updated T
	err := s.mutate(ctx, "update", "updated", func(ctx context.Context) error {
		var err error
		updated, err = s.res.Update(ctx, id, in)
		return err
	})
	return updated, err
}

func (s *Synchronizer[T, I, C]) Delete(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete", "deleted", func(ctx context.Context) error {
		return s.res.Delete(ctx, id)
	})
}

// Reset forgets everything the screen holds. Fetches still in flight are
// discarded when they return, and a mutation in flight does not re-fetch.
func (s *Synchronizer[T, I, C]) Reset() {
	var zero C

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.epoch++
	s.records = nil
	s.mode = ModeAll
	s.criteria = zero
	s.stale = false
}

func (s *Synchronizer[T, I, C]) Snapshot() View[T, C] {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View[T, C]{
		Records:  slices.Clone(s.records),
		Mode:     s.mode,
		Criteria: s.criteria,
		Stale:    s.stale,
		Mutating: s.mutating,
	}
}

func (s *Synchronizer[T, I, C]) Mutating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutating
}

// Close detaches the synchronizer from the event bus.
func (s *Synchronizer[T, I, C]) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

// mutate runs op and, when it succeeds, re-fetches the view kind that was
// active when the mutation started. If the screen was reset meanwhile the
// old view is not restored.
func (s *Synchronizer[T, I, C]) mutate(ctx context.Context, verb, done string, op func(context.Context) error) error {
	s.mu.Lock()
	if s.mutating {
		s.mu.Unlock()
		return ErrBusy
	}
	s.mutating = true
	mode, criteria, epoch := s.mode, s.criteria, s.epoch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.mutating = false
		s.mu.Unlock()
	}()

	if err := op(ctx); err != nil {
		s.log.Warn(ctx, verb+" failed", "error", err)
		s.notifier.Error(client.UserMessage(err, fmt.Sprintf("Failed to %s %s", verb, s.kind.Singular())))
		return err
	}

	s.notifier.Success(fmt.Sprintf("%s %s successfully", capitalize(s.kind.Singular()), done))
	s.bus.Publish(events.ResourceChanged(s.kind))

	s.mu.Lock()
	reset := s.epoch != epoch
	s.mu.Unlock()
	if reset {
		s.log.Debug(ctx, "screen was reset during "+verb+", skipping refresh")
		return nil
	}

	err := s.fetch(ctx, mode, criteria)
	switch {
	case err == nil, errors.Is(err, ErrSuperseded):
		return nil
	default:
		s.mu.Lock()
		s.stale = true
		s.mu.Unlock()
		s.notifier.Error(client.UserMessage(err, "Failed to load "+s.plural()))
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
}

func (s *Synchronizer[T, I, C]) fetchAndNotify(ctx context.Context, mode Mode, c C, fallback string) error {
	err := s.fetch(ctx, mode, c)
	if err != nil && !errors.Is(err, ErrSuperseded) {
		s.notifier.Error(client.UserMessage(err, fallback))
	}
	return err
}

// fetch issues List or Search and installs the result if no newer fetch or
// reset happened meanwhile. The lock is not held during the call.
func (s *Synchronizer[T, I, C]) fetch(ctx context.Context, mode Mode, c C) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	var (
		recs []T
		err  error
	)
	if mode == ModeSearch {
		recs, err = s.res.Search(ctx, c)
	} else {
		recs, err = s.res.List(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug(ctx, "discarding superseded response", "mode", mode.String(), "generation", gen, "current", s.gen)
		return ErrSuperseded
	}
	if err != nil {
		s.log.Warn(ctx, "fetch failed", "mode", mode.String(), "error", err)
		return err
	}

	s.records = recs
	s.mode = mode
	s.criteria = c
	s.stale = false
	return nil
}

func (s *Synchronizer[T, I, C]) current() (Mode, C) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, s.criteria
}

func (s *Synchronizer[T, I, C]) onResourceChanged(e events.Event) {
	if e.Kind == s.kind || !slices.Contains(s.dependsOn, e.Kind) {
		return
	}
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *Synchronizer[T, I, C]) plural() string {
	return string(s.kind)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
