package countries

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/models"
	"golang.org/x/sync/singleflight"
)

// LoadState is the three-state result of loading the collection.
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateError   LoadState = "error"
	StateReady   LoadState = "ready"
)

const loadKeyPrefix = "countries:"

// Snapshot is an immutable view of the loader. Records must not be modified.
type Snapshot struct {
	State    LoadState
	Records  []models.Country
	Err      error
	LoadedAt time.Time
	Attempt  int
}

// Loader fetches the collection in the background and publishes the
// outcome. Controllers are only ever built from a ready snapshot.
type Loader struct {
	repo    Repository
	timeout time.Duration
	log     logger.Logger
	metrics *Metrics

	group singleflight.Group

	mu      sync.RWMutex
	snap    Snapshot
	gen     int           // loading phase, bumped on every ready/error -> loading switch
	settled chan struct{} // closed when the current loading phase ends
}

// NewLoader creates a Loader in the loading state. Nothing is fetched
// until Reload is called.
func NewLoader(repo Repository, config *Config, log logger.Logger, metrics *Metrics) *Loader {
	if log == nil {
		log = logger.NewNullLogger()
	}
	timeout := config.FetchTimeout
	if timeout <= 0 {
		timeout = GetDefaultConfig().FetchTimeout
	}
	return &Loader{
		repo:    repo,
		timeout: timeout,
		log:     log,
		metrics: metrics,
		snap:    Snapshot{State: StateLoading},
		settled: make(chan struct{}),
	}
}

// Snapshot returns the current state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// Reload switches to loading and fetches the collection from scratch in
// the background. The fetch outlives ctx's cancellation but is bounded by
// the configured timeout. Calls made while a fetch is running join it.
// Reloading after a failure resets the upstream circuit breaker.
func (l *Loader) Reload(ctx context.Context) {
	l.mu.Lock()
	if l.snap.State == StateError {
		if r, ok := l.repo.(SourceResetter); ok {
			r.ResetSource()
		}
	}
	if l.snap.State != StateLoading {
		l.gen++
		l.snap = Snapshot{State: StateLoading, Attempt: l.snap.Attempt}
		l.settled = make(chan struct{})
	}
	gen := l.gen
	l.mu.Unlock()

	// one flight per loading phase, so a reload never joins a fetch that
	// already published its result
	fetchCtx := context.WithoutCancel(ctx)
	l.group.DoChan(loadKeyPrefix+strconv.Itoa(gen), func() (interface{}, error) {
		l.load(fetchCtx, gen)
		return nil, nil
	})
}

// Wait blocks until the loader leaves the loading state or ctx is done.
func (l *Loader) Wait(ctx context.Context) (Snapshot, error) {
	for {
		l.mu.RLock()
		snap, settled := l.snap, l.settled
		l.mu.RUnlock()

		if snap.State != StateLoading {
			return snap, nil
		}

		select {
		case <-settled:
		case <-ctx.Done():
			return snap, ctx.Err()
		}
	}
}

func (l *Loader) load(ctx context.Context, gen int) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	records, err := l.repo.FetchAll(ctx)
	elapsed := time.Since(start)
	l.metrics.ObserveFetch(err, elapsed)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen || l.snap.State != StateLoading {
		return
	}

	attempt := l.snap.Attempt + 1
	if err != nil {
		l.snap = Snapshot{State: StateError, Err: err, Attempt: attempt}
		l.log.Error(err, map[string]interface{}{
			"op":          "load_countries",
			"attempt":     attempt,
			"duration_ms": elapsed.Milliseconds(),
		})
	} else {
		if records == nil {
			records = []models.Country{}
		}
		l.snap = Snapshot{State: StateReady, Records: records, LoadedAt: time.Now(), Attempt: attempt}
		l.metrics.SetRecords(len(records))
		l.log.Info("countries loaded", map[string]interface{}{
			"records":     len(records),
			"attempt":     attempt,
			"duration_ms": elapsed.Milliseconds(),
		})
	}
	close(l.settled)
}
