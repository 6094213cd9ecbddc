package design

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/flanksource/pdfo/api"
	"github.com/flanksource/pdfo/raster"
)

var validate = validator.New()

// Editor holds the design currently being edited and saves it to a Store. All methods
// are safe for concurrent use and hand out copies, never the buffer itself.
type Editor struct {
	store Store
	now   func() time.Time
	log   logger.Logger

	mu      sync.Mutex
	current api.ProductDesign
}

// EditorOption configures an Editor
type EditorOption func(*Editor)

// WithClock replaces the wall clock used for timestamps
func WithClock(now func() time.Time) EditorOption {
	return func(e *Editor) { e.now = now }
}

// NewEditor starts with a blank design
func NewEditor(store Store, opts ...EditorOption) *Editor {
	e := &Editor{
		store:   store,
		now:     time.Now,
		log:     logger.GetLogger("design"),
		current: api.NewProductDesign(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Current returns a copy of the design being edited
func (e *Editor) Current() api.ProductDesign {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.Snapshot()
}

// New discards the buffer and starts a blank design
func (e *Editor) New() api.ProductDesign {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = api.NewProductDesign()
	return e.current.Snapshot()
}

// Update applies fn to a copy of the buffer and keeps the result if it is valid
func (e *Editor) Update(fn func(*api.ProductDesign)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.current.Snapshot()
	fn(&next)
	if len(next.Images) > api.MaxProductImages {
		return ErrImageLimit
	}
	if err := validate.Struct(next); err != nil {
		return fmt.Errorf("invalid design: %w", err)
	}
	e.current = next
	return nil
}

// UpdateColorRow sets both cells of colour row i
func (e *Editor) UpdateColorRow(i int, left, right string) error {
	if i < 0 || i >= api.ColorRowCount {
		return fmt.Errorf("colour row %d out of range [0, %d)", i, api.ColorRowCount)
	}
	return e.Update(func(d *api.ProductDesign) {
		if len(d.Colors) < api.ColorRowCount {
			d.Colors = d.WithDefaults().Colors
		}
		d.Colors[i] = api.ColorRow{Left: left, Right: right}
	})
}

// AddImage appends a file path or data URL. Data URLs are checked for a supported type
// and size before they are accepted.
func (e *Editor) AddImage(ref string) error {
	src := raster.ParseSource(ref)
	if src == nil {
		return errors.New("empty image reference")
	}
	if du, ok := src.(raster.DataURL); ok {
		data, err := raster.ReadAll(context.Background(), du)
		if err != nil {
			return err
		}
		if err := raster.Validate(du.String(), data); err != nil {
			return err
		}
	}

	e.mu.Lock()
	full := len(e.current.Images) >= api.MaxProductImages
	e.mu.Unlock()
	if full {
		return ErrImageLimit
	}
	return e.Update(func(d *api.ProductDesign) { d.Images = append(d.Images, ref) })
}

// RemoveImage drops image i; later images move up
func (e *Editor) RemoveImage(i int) error {
	e.mu.Lock()
	n := len(e.current.Images)
	e.mu.Unlock()
	if i < 0 || i >= n {
		return fmt.Errorf("image %d out of range [0, %d)", i, n)
	}
	return e.Update(func(d *api.ProductDesign) {
		d.Images = append(d.Images[:i], d.Images[i+1:]...)
	})
}

// Save stores the buffer, assigning an id and creation time on its first save
func (e *Editor) Save(ctx context.Context) (api.ProductDesign, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := e.current.Snapshot()
	now := e.now()
	if d.ID == "" {
		d.ID = uuid.NewString()
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	if err := e.store.Put(ctx, d); err != nil {
		return api.ProductDesign{}, err
	}
	e.current = d
	e.log.Infof("saved design %s (%s)", d.ID, d.ModelCode)
	return d.Snapshot(), nil
}

// Load replaces the buffer with a saved design
func (e *Editor) Load(ctx context.Context, id string) (api.ProductDesign, error) {
	d, err := e.store.Get(ctx, id)
	if err != nil {
		return api.ProductDesign{}, err
	}
	d = d.WithDefaults()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = d
	return d.Snapshot(), nil
}

// Delete removes a saved design; if it is the one being edited the buffer is reset
func (e *Editor) Delete(ctx context.Context, id string) error {
	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current.ID == id {
		e.current = api.NewProductDesign()
	}
	e.log.Infof("deleted design %s", id)
	return nil
}

// List returns the saved designs
func (e *Editor) List(ctx context.Context) ([]api.ProductDesign, error) {
	return e.store.List(ctx)
}
