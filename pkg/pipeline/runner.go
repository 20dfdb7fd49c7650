package pipeline

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/errors"
	streetio "github.com/matzehuels/skyline/pkg/io"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/render/silhouette/sink"
	"github.com/matzehuels/skyline/pkg/store"
	"github.com/matzehuels/skyline/pkg/street"
)

// storeRetryDelay is the first backoff step for store calls that failed with
// a network error.
const storeRetryDelay = 100 * time.Millisecond

// Runner encapsulates street edits and rendering with caching.
// Both CLI and API use it to avoid duplicating storage and caching logic.
//
// Edits on one Runner are serialized, so two requests adding to the same
// street cannot overwrite each other's result. Rendering does not take the
// lock.
type Runner struct {
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu sync.Mutex
}

// NewRunner creates a runner over st.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, log output is discarded.
func NewRunner(st store.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Store:  st,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// =============================================================================
// Edit
// =============================================================================

// Create stores a new empty street. A length outside [street.MinLength,
// street.MaxLength] is an INVALID_LENGTH error and an existing street of
// that name is an INVALID_INPUT error.
func (r *Runner) Create(ctx context.Context, name string, length int) (*street.Street, error) {
	if err := errors.ValidateStreetName(name); err != nil {
		return nil, err
	}
	s, err := street.New(length)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.get(ctx, name); err == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "street %q already exists", name)
	} else if !errors.Is(err, errors.ErrCodeNotFound) {
		return nil, err
	}
	if err := r.put(ctx, name, s); err != nil {
		return nil, err
	}
	r.Logger.Info("created street", "street", name, "length", length)
	return s, nil
}

// Save stores s under name, replacing any street of that name. Import uses
// it after a street file passed every check.
func (r *Runner) Save(ctx context.Context, name string, s *street.Street) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.put(ctx, name, s); err != nil {
		return err
	}
	r.Logger.Info("saved street", "street", name, "buildings", s.Len(street.Row1)+s.Len(street.Row2))
	return nil
}

// Load returns the stored street.
func (r *Runner) Load(ctx context.Context, name string) (*street.Street, error) {
	if err := errors.ValidateStreetName(name); err != nil {
		return nil, err
	}
	return r.get(ctx, name)
}

// List returns the names of all stored streets.
func (r *Runner) List(ctx context.Context) ([]string, error) {
	var names []string
	err := r.withStore(ctx, "list", "", func() error {
		var err error
		names, err = r.Store.List(ctx)
		return err
	})
	return names, err
}

// Delete removes a stored street.
func (r *Runner) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.withStore(ctx, "delete", name, func() error {
		return r.Store.Delete(ctx, name)
	})
	if err != nil {
		return err
	}
	r.Logger.Info("deleted street", "street", name)
	return nil
}

// Add places b on a row of the named street and stores the result. The
// street's checks run before anything is written, so a rejected building
// leaves the stored street unchanged.
func (r *Runner) Add(ctx context.Context, name string, row street.RowID, b building.Building) (*street.Street, error) {
	return r.mutate(ctx, name, "add", row, func(s *street.Street) error {
		if b.ID == "" {
			b.ID = building.NewID()
		}
		return s.AddBuilding(row, b)
	})
}

// Remove deletes the building with the given ID from a row of the named
// street and stores the result.
func (r *Runner) Remove(ctx context.Context, name string, row street.RowID, id string) (*street.Street, error) {
	return r.mutate(ctx, name, "remove", row, func(s *street.Street) error {
		return s.RemoveBuilding(row, id)
	})
}

// Report returns the aggregate statistics of the named street.
func (r *Runner) Report(ctx context.Context, name string) (street.Report, error) {
	s, err := r.Load(ctx, name)
	if err != nil {
		return street.Report{}, err
	}
	return s.Report(), nil
}

func (r *Runner) mutate(ctx context.Context, name, op string, row street.RowID, apply func(*street.Street) error) (*street.Street, error) {
	if err := errors.ValidateStreetName(name); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.get(ctx, name)
	if err != nil {
		return nil, err
	}

	err = apply(s)
	observability.Pipeline().OnMutation(ctx, name, op, row.String(), err)
	if err != nil {
		r.Logger.Debug("rejected "+op, "street", name, "row", row, "code", errors.GetCode(err))
		return nil, err
	}

	if err := r.put(ctx, name, s); err != nil {
		return nil, err
	}
	r.Logger.Info(op+" building", "street", name, "row", row, "remaining", s.RemainingLand())
	return s, nil
}

func (r *Runner) get(ctx context.Context, name string) (*street.Street, error) {
	var s *street.Street
	err := r.withStore(ctx, "get", name, func() error {
		var err error
		s, err = r.Store.Get(ctx, name)
		return err
	})
	return s, err
}

func (r *Runner) put(ctx context.Context, name string, s *street.Street) error {
	return r.withStore(ctx, "put", name, func() error {
		return r.Store.Put(ctx, name, s)
	})
}

// withStore runs a store call, retrying network failures with backoff, and
// reports it to the store hooks.
func (r *Runner) withStore(ctx context.Context, op, name string, fn func() error) error {
	start := time.Now()
	err := cache.RetryWithBackoff(ctx, storeRetryDelay, func() error {
		err := fn()
		if errors.Is(err, errors.ErrCodeNetwork) {
			r.Logger.Warn("store unavailable, retrying", "op", op, "street", name, "error", err)
			return cache.Retryable(err)
		}
		return err
	})
	observability.Store().OnStoreOp(ctx, op, name, time.Since(start), err)
	return err
}

// =============================================================================
// Render
// =============================================================================

// Render generates the requested artifacts for s, reusing cached ones. The
// bool result is true when every artifact came from the cache.
func (r *Runner) Render(ctx context.Context, s *street.Street, opts Options) (Artifacts, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hash, err := streetHash(s)
	if err != nil {
		return nil, false, err
	}

	artifacts := make(Artifacts, len(opts.Formats))
	allCached := true
	for _, f := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(f))
		data, hit := r.cached(ctx, key, opts.Refresh)
		if !hit {
			allCached = false
			if data, err = r.renderTimed(ctx, string(f), func() ([]byte, error) {
				return RenderFormat(ctx, s, f, opts)
			}); err != nil {
				return nil, false, err
			}
			r.store(ctx, key, data)
		}
		artifacts[f] = data
	}
	return artifacts, allCached, nil
}

// Plan renders the Graphviz street plan of s as SVG or PNG, reusing a cached
// image when the street and options are unchanged.
func (r *Runner) Plan(ctx context.Context, s *street.Street, f sink.Format, opts Options) ([]byte, bool, error) {
	hash, err := streetHash(s)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:   "plan-" + string(f),
		Detailed: opts.Detailed,
		Title:    opts.Name,
	})
	if data, hit := r.cached(ctx, key, opts.Refresh); hit {
		return data, true, nil
	}

	data, err := r.renderTimed(ctx, "plan-"+string(f), func() ([]byte, error) {
		return RenderPlan(ctx, s, f, opts)
	})
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, key, data)
	return data, false, nil
}

func (r *Runner) renderTimed(ctx context.Context, format string, fn func() ([]byte, error)) ([]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, format)
	start := time.Now()
	data, err := fn()
	elapsed := time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, format, elapsed, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rendered", "format", format, "bytes", len(data), "duration", elapsed)
	return data, nil
}

func (r *Runner) cached(ctx context.Context, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// streetHash identifies a street's contents for cache keys.
func streetHash(s *street.Street) (string, error) {
	data, err := streetio.Marshal(s, "", streetio.FormatJSON)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash street")
	}
	return cache.Hash(data), nil
}

// Close releases the store and the cache.
func (r *Runner) Close() error {
	var err error
	if r.Store != nil {
		err = r.Store.Close()
	}
	if r.Cache != nil {
		if cerr := r.Cache.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
