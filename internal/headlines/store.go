package headlines

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/daniilsolovey/newsly/internal/domain"
)

// Fetcher loads top headlines; *newsapi.Client implements it.
type Fetcher interface {
	TopHeadlines(ctx context.Context, category domain.Category, country string) ([]domain.Article, error)
}

type Options struct {
	// Country is passed to every fetch; empty lets the fetcher decide.
	Country string
	// DiscardStale drops results, successful or failed, whose generation is
	// not newer than the last completed one. When false the last completed
	// fetch wins.
	DiscardStale bool
}

// Snapshot is a copy of the store state at one point in time.
type Snapshot struct {
	// Category is the most recently selected category.
	Category domain.Category
	// Articles came from the fetch identified by Generation.
	Articles []domain.Article
	// Fetched is the category Articles were fetched for.
	Fetched    domain.Category
	Generation uint64
	Loading    bool
	// Err is the last failure that was not superseded by a newer success.
	Err error
}

// Store holds the latest headlines and notifies subscribers on change.
// It is safe for concurrent use. Subscribers are called synchronously, in
// change order, outside the state lock; they may read Snapshot but must not
// call Select, FetchNews or Refresh.
type Store struct {
	fetcher Fetcher
	opts    Options
	log     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     Snapshot
	issued    uint64
	completed uint64
	inflight  map[uint64]struct{}
	observers map[int]func(Snapshot)
	nextID    int
	closed    bool
	version   uint64

	notifyMu  sync.Mutex
	delivered uint64
}

func NewStore(fetcher Fetcher, opts Options, log *slog.Logger) *Store {
	ctx, cancel := context.WithCancel(context.Background())

	return &Store{
		fetcher:   fetcher,
		opts:      opts,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		state:     Snapshot{Category: domain.DefaultCategory},
		inflight:  make(map[uint64]struct{}),
		observers: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Subscribe registers fn for every later state change.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Select makes category the selected one and fetches it.
func (s *Store) Select(category domain.Category) (uint64, error) {
	if !category.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, nil
	}
	changed := s.state.Category != category
	s.state.Category = category
	s.publishLocked(changed)

	return s.FetchNews(category), nil
}

// Refresh fetches the selected category again.
func (s *Store) Refresh() uint64 {
	return s.FetchNews(s.Snapshot().Category)
}

// FetchNews starts a fetch for category in the background and returns its
// generation, or 0 once the store is closed. Failures are logged and kept
// in Snapshot.Err; the article list is left as it was.
func (s *Store) FetchNews(category domain.Category) uint64 {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Debug("fetch after close ignored", "category", category)
		return 0
	}

	s.issued++
	gen := s.issued
	s.inflight[gen] = struct{}{}
	s.wg.Add(1)
	s.publishLocked(true)

	go s.run(gen, category)

	return gen
}

// Wait blocks until every started fetch has completed.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight fetches, waits for them and drops subscribers.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.observers = make(map[int]func(Snapshot))
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Store) run(gen uint64, category domain.Category) {
	defer s.wg.Done()

	articles, err := s.fetcher.TopHeadlines(s.ctx, category, s.opts.Country)

	s.mu.Lock()
	if s.closed {
		delete(s.inflight, gen)
		s.mu.Unlock()
		return
	}

	wasLoading := s.loadingLocked()
	delete(s.inflight, gen)
	stale := s.opts.DiscardStale && gen <= s.completed
	if !stale {
		s.completed = gen
	}

	switch {
	case err != nil:
		if !stale {
			s.state.Err = err
		}
	case stale:
		s.log.Debug("stale headlines discarded",
			"category", category, "generation", gen, "completed", s.completed)
	default:
		s.state.Articles = articles
		s.state.Fetched = category
		s.state.Generation = gen
		s.state.Err = nil
	}

	changed := !stale || wasLoading != s.loadingLocked()
	s.publishLocked(changed)

	if err != nil {
		s.log.Error("failed to fetch news", "category", category, "generation", gen, "error", err)
	}
}

// publishLocked releases s.mu. Every change gets a version; a snapshot
// older than one already delivered is skipped, so subscribers never go
// back in time.
func (s *Store) publishLocked(changed bool) {
	if !changed {
		s.mu.Unlock()
		return
	}

	s.version++
	version := s.version
	snap := s.snapshotLocked()
	observers := make([]func(Snapshot), 0, len(s.observers))
	for _, id := range s.sortedObserverIDs() {
		observers = append(observers, s.observers[id])
	}
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if version < s.delivered {
		return
	}
	s.delivered = version

	for _, fn := range observers {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := s.state
	snap.Articles = slices.Clone(s.state.Articles)
	snap.Loading = s.loadingLocked()
	return snap
}

func (s *Store) loadingLocked() bool {
	if !s.opts.DiscardStale {
		return len(s.inflight) > 0
	}
	for gen := range s.inflight {
		if gen > s.completed {
			return true
		}
	}
	return false
}

func (s *Store) sortedObserverIDs() []int {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
