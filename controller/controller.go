// Package controller keeps the state of a paginated, filterable list
// consistent with its URL and with the data shown on screen.
//
// A Controller owns the canonical listview.Query. Every transition (filter,
// page, page size, clear) produces a new Query, bumps the fetch epoch,
// replaces the URL state and issues one fetch tagged with that epoch. A
// result is applied only if its epoch is still the newest, so a slow
// response for an old Query can never overwrite a newer one.
//
// Example usage:
//
//	ctrl := controller.New[*hr.Employee](paginator, urlstate.NewURLStore(u),
//	    controller.WithCodec(hr.EmployeeCodec(cfg)),
//	    controller.WithName("employees"),
//	    controller.WithLogger(logger),
//	)
//	defer ctrl.Close()
//
//	unsubscribe := ctrl.Subscribe(render)
//	defer unsubscribe()
//
//	if err := ctrl.Mount(ctx); err != nil {
//	    return err
//	}
//	_ = ctrl.SetFilter("department", listview.Multi("engineering"))
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/urlstate"
	"github.com/nrfta/listview-go/window"
)

var (
	// ErrAlreadyMounted is returned by a second call to Mount.
	ErrAlreadyMounted = errors.New("controller: already mounted")

	// ErrNotMounted is returned by transitions issued before Mount.
	ErrNotMounted = errors.New("controller: not mounted")

	// ErrClosed is returned by Mount and transitions after Close.
	ErrClosed = errors.New("controller: closed")

	// ErrUnknownFilter is returned by SetFilter for a key the codec does not declare.
	ErrUnknownFilter = errors.New("controller: unknown filter")

	// ErrFilterArity is returned by SetFilter when a single-valued filter gets several values.
	ErrFilterArity = errors.New("controller: filter accepts a single value")
)

// View is a snapshot of everything a list screen renders.
type View[T any] struct {
	// Query is the current canonical state. It may be ahead of Items while loading.
	Query listview.Query

	// Tokens are the page controls for the current page within TotalPages.
	Tokens []window.PageToken

	Page       int
	PageSize   int
	TotalItems int
	TotalPages int

	// Items is the last successfully fetched page. It is kept while a newer
	// fetch is in flight or after that fetch failed.
	Items []T

	// IsLoading is true while the fetch for the current Query is unresolved.
	IsLoading bool

	// Err is the failure of the current Query's fetch, if any.
	Err error

	// Epoch identifies the current Query; it grows by one per transition.
	Epoch uint64
}

// Controller is the list query controller. It is safe for concurrent use.
//
// Type parameter T is the item type being listed.
type Controller[T any] struct {
	fetcher listview.PageFetcher[T]
	store   urlstate.Store
	codec   urlstate.Codec
	calc    window.Calculator
	logger  *zap.Logger
	name    string
	timeout time.Duration

	mu        sync.Mutex
	mounted   bool
	closed    bool
	ctx       context.Context
	cancel    context.CancelFunc
	query     listview.Query
	epoch     uint64
	loading   bool
	page      *listview.Page[T]
	lastTotal int
	err       error
	listeners map[uint64]func(View[T])
	nextSubID uint64

	persistMu sync.Mutex
	persisted uint64
}

// request is one epoch-tagged fetch.
type request struct {
	epoch uint64
	query listview.Query
}

// New creates an unmounted Controller that fetches through fetcher and
// mirrors its Query into store.
func New[T any](fetcher listview.PageFetcher[T], store urlstate.Store, opts ...Option) *Controller[T] {
	cfg := newConfig(opts)

	return &Controller[T]{
		fetcher:   fetcher,
		store:     store,
		codec:     cfg.codec,
		calc:      window.Calculator{Radius: cfg.radius, Mode: cfg.mode},
		logger:    cfg.logger.With(zap.String("list", cfg.name)),
		name:      cfg.name,
		timeout:   cfg.fetchTimeout,
		query:     cfg.codec.Default(),
		listeners: make(map[uint64]func(View[T])),
	}
}

// Mount reads the initial Query from the store and issues the first fetch.
// Malformed or missing state falls back to defaults; a store that cannot be
// read is logged and treated as empty. ctx bounds the lifetime of every
// fetch the Controller issues.
func (c *Controller[T]) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.mounted {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mounted = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	values, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("load list state, using defaults", zap.Error(err))
	}
	q := c.codec.Decode(values)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	req := c.beginLocked(q)
	c.mu.Unlock()

	c.logger.Debug("mounted", zap.Stringer("query", q), zap.Uint64("epoch", req.epoch))
	c.run(req)
	return nil
}

// SetFilter replaces or clears one filter and returns to page 1.
// Values are coerced to the declared kind of the filter: a single value
// for a multi filter becomes a one-element set, and a one-element set for a
// single filter becomes its value.
func (c *Controller[T]) SetFilter(key string, value listview.FilterValue) error {
	spec, ok := c.codec.Spec(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}

	switch {
	case spec.Multi && !value.IsMulti():
		value = listview.Multi(value.Values()...)
	case !spec.Multi && value.IsMulti():
		if len(value.Values()) > 1 {
			return fmt.Errorf("%w: %q", ErrFilterArity, key)
		}
		value = listview.Single(value.Value())
	}

	return c.transition("set_filter", func(q listview.Query) (listview.Query, error) {
		return q.WithFilter(key, value).WithPage(1), nil
	})
}

// SetPage moves to page n, clamped to [1, max(1, last known total pages)].
// Filters and page size are untouched.
func (c *Controller[T]) SetPage(n int) error {
	return c.transition("set_page", func(q listview.Query) (listview.Query, error) {
		return q.WithPage(c.clampPageLocked(n)), nil
	})
}

// SetPageSize changes the page size and returns to page 1. A size outside
// the codec's allowed set is rejected with a *listview.PageSizeError.
func (c *Controller[T]) SetPageSize(n int) error {
	if err := c.codec.Config.Validate(n); err != nil {
		return err
	}

	return c.transition("set_page_size", func(q listview.Query) (listview.Query, error) {
		return q.WithPageSize(n).WithPage(1), nil
	})
}

// ClearAllFilters removes every filter and returns to page 1, keeping the size.
func (c *Controller[T]) ClearAllFilters() error {
	return c.transition("clear_filters", func(q listview.Query) (listview.Query, error) {
		return q.WithoutFilters().WithPage(1), nil
	})
}

// ClickToken navigates to the page a window token stands for. An ellipsis
// jumps to the midpoint of the pages it hides.
func (c *Controller[T]) ClickToken(token window.PageToken) error {
	return c.transition("click_token", func(q listview.Query) (listview.Query, error) {
		target, err := token.Target(c.lastTotal)
		if err != nil {
			return q, err
		}
		return q.WithPage(c.clampPageLocked(target)), nil
	})
}

// Query returns the current canonical Query.
func (c *Controller[T]) Query() listview.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// View returns a snapshot for rendering. Tokens are recomputed on every call.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Subscribe registers fn to receive a View after every state change: each
// transition and each applied fetch result. The returned function removes
// the subscription; calling it more than once is harmless.
func (c *Controller[T]) Subscribe(fn func(View[T])) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return func() {}
	}

	id := c.nextSubID
	c.nextSubID++
	c.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.listeners, id)
		})
	}
}

// Close unmounts the Controller: it cancels in-flight fetches, drops every
// subscription and makes all later results discardable. Close is idempotent.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	c.listeners = map[uint64]func(View[T]){}
	c.logger.Debug("closed", zap.Uint64("epoch", c.epoch))
}

func (c *Controller[T]) transition(name string, next func(listview.Query) (listview.Query, error)) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case !c.mounted:
		c.mu.Unlock()
		return ErrNotMounted
	}

	q, err := next(c.query)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if q.Equal(c.query) {
		c.mu.Unlock()
		c.logger.Debug("transition is a no-op", zap.String("transition", name))
		return nil
	}

	req := c.beginLocked(q)
	c.mu.Unlock()

	c.logger.Debug("transition",
		zap.String("transition", name),
		zap.Stringer("query", q),
		zap.Uint64("epoch", req.epoch),
	)
	c.run(req)
	return nil
}

// beginLocked installs q as the current Query under a fresh epoch.
func (c *Controller[T]) beginLocked(q listview.Query) request {
	c.epoch++
	c.query = q
	c.loading = true
	return request{epoch: c.epoch, query: q}
}

// run mirrors the request into the store, notifies subscribers of the
// loading state and starts the fetch.
func (c *Controller[T]) run(req request) {
	c.persist(req)
	c.notify()

	FetchesTotal.WithLabelValues(c.name).Inc()
	go c.fetch(req)
}

// persist writes the Query of req into the store unless a newer epoch got
// there first. Store failures never block the fetch.
func (c *Controller[T]) persist(req request) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	if req.epoch <= c.persisted {
		return
	}

	ctx := c.baseContext()
	base, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("load list state before replace", zap.Uint64("epoch", req.epoch), zap.Error(err))
		base = nil
	}

	if err := c.store.Replace(ctx, c.codec.Merge(base, req.query)); err != nil {
		c.logger.Warn("replace list state", zap.Uint64("epoch", req.epoch), zap.Error(err))
		return
	}
	c.persisted = req.epoch
}

func (c *Controller[T]) fetch(req request) {
	ctx := c.baseContext()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	page, err := c.call(ctx, req.query)
	FetchDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())

	c.resolve(req, page, err)
}

// call invokes the fetcher, converting a panic into an error.
func (c *Controller[T]) call(ctx context.Context, q listview.Query) (page *listview.Page[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetcher panicked: %v", r)
		}
	}()

	page, err = c.fetcher.FetchPage(ctx, q)
	if err == nil && page == nil {
		err = errors.New("fetcher returned no page")
	}
	return page, err
}

// resolve applies a fetch result if its epoch is still current.
func (c *Controller[T]) resolve(req request, page *listview.Page[T], err error) {
	c.mu.Lock()
	if c.closed || req.epoch != c.epoch {
		current := c.epoch
		c.mu.Unlock()

		StaleResponsesTotal.WithLabelValues(c.name).Inc()
		c.logger.Debug("discarding stale result",
			zap.Uint64("epoch", req.epoch),
			zap.Uint64("current_epoch", current),
		)
		return
	}

	c.loading = false
	if err != nil {
		c.err = fmt.Errorf("fetch page (epoch %d): %w", req.epoch, err)
		c.mu.Unlock()

		FetchErrorsTotal.WithLabelValues(c.name).Inc()
		c.logger.Warn("fetch page failed",
			zap.Uint64("epoch", req.epoch),
			zap.Stringer("query", req.query),
			zap.Error(err),
		)
		c.notify()
		return
	}

	c.page = page
	c.err = nil
	c.lastTotal = page.TotalPages
	c.mu.Unlock()

	c.logger.Debug("page applied",
		zap.Uint64("epoch", req.epoch),
		zap.Int("items", len(page.Items)),
		zap.Int("total_pages", page.TotalPages),
	)
	c.notify()
}

func (c *Controller[T]) notify() {
	c.mu.Lock()
	if len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}
	view := c.viewLocked()
	listeners := make([]func(View[T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(view)
	}
}

func (c *Controller[T]) viewLocked() View[T] {
	v := View[T]{
		Query:     c.query,
		Page:      c.query.Page,
		PageSize:  c.query.PageSize,
		IsLoading: c.loading,
		Err:       c.err,
		Epoch:     c.epoch,
		Items:     []T{},
	}

	if c.page != nil {
		v.Items = append(v.Items, c.page.Items...)
		v.TotalItems = c.page.TotalItems
		v.TotalPages = c.page.TotalPages
	}

	current := min(max(v.Page, 1), max(v.TotalPages, 1))
	v.Tokens = c.calc.Window(current, v.TotalPages)
	return v
}

func (c *Controller[T]) clampPageLocked(n int) int {
	return min(max(n, 1), max(c.lastTotal, 1))
}

func (c *Controller[T]) baseContext() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}
