package store

import (
	"context"
	"slices"
	"sync"

	"github.com/quasilyte/gdata/v2"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

const gdataObject = "streets"

// GdataStore keeps streets in the platform's application data directory
// (for example ~/.local/share/skyline on Linux). Each street is a property
// of a single "streets" object.
type GdataStore struct {
	mu sync.RWMutex
	m  *gdata.Manager
}

// NewGdataStore opens the data directory for appName ("skyline" if empty).
func NewGdataStore(appName string) (*GdataStore, error) {
	if appName == "" {
		appName = "skyline"
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open app data for %s", appName)
	}
	return &GdataStore{m: m}, nil
}

func (g *GdataStore) Get(ctx context.Context, name string) (*street.Street, error) {
	if err := errors.ValidateStreetName(name); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.m.ObjectPropExists(gdataObject, name) {
		return nil, notFound(name)
	}
	data, err := g.m.LoadObjectProp(gdataObject, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load street %q", name)
	}
	return decode(name, data)
}

func (g *GdataStore) Put(ctx context.Context, name string, s *street.Street) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	data, err := encode(name, s)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.m.SaveObjectProp(gdataObject, name, data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save street %q", name)
	}
	return nil
}

func (g *GdataStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.m.ObjectPropExists(gdataObject, name) {
		return notFound(name)
	}
	if err := g.m.DeleteObjectProp(gdataObject, name); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete street %q", name)
	}
	return nil
}

func (g *GdataStore) List(ctx context.Context) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names, err := g.m.ListObjectProps(gdataObject)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list streets")
	}
	slices.Sort(names)
	return names, nil
}

func (g *GdataStore) Close() error { return nil }

var _ Store = (*GdataStore)(nil)
