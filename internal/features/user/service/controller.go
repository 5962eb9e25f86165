package service

import (
	"context"
	stderrors "errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"user-admin-console/internal/common/envelope"
	"user-admin-console/internal/common/errors"
	"user-admin-console/internal/common/logger"
	"user-admin-console/internal/features/user/models"
)

// ErrCreateInProgress is returned by Create while another create is pending.
var ErrCreateInProgress = stderrors.New("create already in progress")

// Direction is a pagination step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// ListOption overrides one field of the current query for a single List call.
type ListOption func(*models.ListQuery)

func WithPage(page int) ListOption {
	return func(q *models.ListQuery) { q.Page = page }
}

// Controller owns the state of one console page and reconciles it with the
// user API. Network calls run without the lock; results are applied under it.
type Controller struct {
	api UserAPI

	mu      sync.Mutex
	state   State
	listSeq uint64
}

func NewController(api UserAPI) *Controller {
	return &Controller{api: api, state: NewState()}
}

// Restore rebuilds a controller from a saved state. Requests that were in
// flight when the state was saved are gone, so their flags are cleared.
func Restore(api UserAPI, state State) *Controller {
	state.Loading = false
	state.Creating = false
	if state.Items == nil {
		state.Items = []models.User{}
	}
	if !models.IsPageSize(state.Query.Size) {
		state.Query.Size = models.DefaultPageSize
	}
	return &Controller{api: api, state: state}
}

// Init loads the first page and the stats.
func (c *Controller) Init(ctx context.Context) error {
	return c.refresh(ctx, WithPage(0))
}

// Snapshot returns a copy of the state safe to render.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state.clone()
	page := s.Meta.Page
	return View{
		State:      s,
		TotalPages: s.Meta.TotalPages(),
		CanPrev:    page > 0 && !s.Loading,
		CanNext:    page < s.Meta.LastPage() && !s.Loading,
	}
}

// List fetches one page. opts override the current query for this call only;
// the page and size are committed to state once the call succeeds. A
// response is dropped if a newer List was issued meanwhile.
func (c *Controller) List(ctx context.Context, opts ...ListOption) error {
	c.mu.Lock()
	q := c.state.Query
	for _, opt := range opts {
		opt(&q)
	}
	c.listSeq++
	seq := c.listSeq
	c.state.Loading = true
	c.state.ListError = ""
	c.mu.Unlock()

	env, err := c.api.List(ctx, q)
	if err == nil && !env.Success {
		err = applicationError(env.Error, "Failed")
	}

	c.mu.Lock()
	if seq != c.listSeq {
		c.mu.Unlock()
		logger.Debug().Uint64("seq", seq).Int("page", q.Page).Msg("Discarding stale list response")
		return nil
	}
	c.state.Loading = false

	if err != nil {
		c.state.ListError = listFailureMessage(err)
		c.mu.Unlock()
		logger.Debug().Err(err).Int("page", q.Page).Msg("List load failed")
		return err
	}

	var data models.PagedResponse[models.User]
	if env.Data != nil {
		data = *env.Data
	}
	items := data.Items
	if items == nil {
		items = []models.User{}
	}
	meta := models.DefaultMeta(q.Page, q.Size)
	if data.Meta != nil {
		meta = *data.Meta
	}

	c.state.Items = items
	c.state.Meta = meta
	c.state.Query.Page = q.Page
	c.state.Query.Size = q.Size
	// a synthesized meta carries no totals to reclamp against
	outOfRange := data.Meta != nil && meta.Page > meta.LastPage() && q.Page > meta.LastPage()
	c.mu.Unlock()

	if outOfRange {
		// the page emptied under us, e.g. its last row was deleted
		c.setPage(meta.LastPage())
		return c.List(ctx, WithPage(meta.LastPage()))
	}
	return nil
}

// LoadStats refreshes the last-24h counter. Failures are logged, never shown.
func (c *Controller) LoadStats(ctx context.Context) {
	env, err := c.api.Stats(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("Stats refresh failed")
		return
	}
	if !env.Success || env.Data == nil {
		return
	}

	stats := *env.Data
	c.mu.Lock()
	c.state.Stats = &stats
	c.mu.Unlock()
}

// SetForm records the create form inputs without submitting them.
func (c *Controller) SetForm(form CreateForm) {
	c.mu.Lock()
	c.state.Form = form
	c.mu.Unlock()
}

// SetFilters records the toolbar inputs without issuing a request.
func (c *Controller) SetFilters(f Filters) error {
	if !f.Sort.Valid() {
		return errors.NewValidationError("sort", "unsupported sort option")
	}
	if !models.IsPageSize(f.Size) {
		return errors.NewValidationError("size", "unsupported page size")
	}

	c.mu.Lock()
	c.state.Query.Search = f.Search
	c.state.Query.ActiveOnly = f.ActiveOnly
	c.state.Query.Sort = f.Sort
	c.state.Query.Size = f.Size
	c.mu.Unlock()
	return nil
}

// ApplyFilters goes back to the first page with the entered filters.
func (c *Controller) ApplyFilters(ctx context.Context) error {
	c.setPage(0)
	return c.List(ctx, WithPage(0))
}

// ChangePage steps one page back or forward. It reports false without any
// request at either boundary or while a list load is in flight.
func (c *Controller) ChangePage(ctx context.Context, dir Direction) (bool, error) {
	c.mu.Lock()
	if c.state.Loading {
		c.mu.Unlock()
		return false, nil
	}
	current := c.state.Meta.Page
	next := current + int(dir)
	if last := c.state.Meta.LastPage(); next > last {
		next = last
	}
	if next < 0 {
		next = 0
	}
	if next == current {
		c.mu.Unlock()
		return false, nil
	}
	c.state.Query.Page = next
	c.mu.Unlock()

	return true, c.List(ctx, WithPage(next))
}

// Create submits the form. On success the form is cleared and the first page
// and stats are reloaded before Create returns; on failure the form is kept.
func (c *Controller) Create(ctx context.Context, form CreateForm) error {
	c.mu.Lock()
	if c.state.Creating {
		c.mu.Unlock()
		return ErrCreateInProgress
	}
	c.state.Creating = true
	c.state.Form = form
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state.Creating = false
		c.mu.Unlock()
	}()

	env, err := c.api.Create(ctx, form.request())
	if err == nil && !env.Success {
		err = applicationError(env.Error, "Create failed")
	}
	if err != nil {
		c.notify(failureMessage(err, "Create failed"), ToneRed)
		logger.Debug().Err(err).Str("email", form.Email).Msg("Create failed")
		return err
	}

	c.mu.Lock()
	c.state.Form = CreateForm{}
	c.state.Toast = &Notification{Message: "User created", Tone: ToneGreen}
	c.mu.Unlock()

	if err := c.refresh(ctx, WithPage(0)); err != nil {
		logger.Debug().Err(err).Msg("Refresh after create failed")
	}
	return nil
}

// RequestDelete opens the confirmation prompt for u.
func (c *Controller) RequestDelete(u models.User, soft bool) {
	c.mu.Lock()
	c.state.Confirm = Confirmation{Open: true, User: &u, Soft: soft}
	c.mu.Unlock()
}

// RequestDeleteByID opens the prompt for a user on the current page.
func (c *Controller) RequestDeleteByID(id string, soft bool) bool {
	c.mu.Lock()
	var target *models.User
	for i := range c.state.Items {
		if c.state.Items[i].ID == id {
			u := c.state.Items[i]
			target = &u
			break
		}
	}
	c.mu.Unlock()

	if target == nil {
		return false
	}
	c.RequestDelete(*target, soft)
	return true
}

// CancelDelete closes the prompt without calling the API.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.state.Confirm = Confirmation{}
	c.mu.Unlock()
}

// ConfirmDelete deletes the user recorded by RequestDelete. A successful
// delete reloads the current page, not the first one. The prompt is closed
// whatever the outcome.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	confirm := c.state.Confirm
	c.mu.Unlock()

	if !confirm.Open || confirm.User == nil {
		return nil
	}
	defer c.CancelDelete()

	env, err := c.api.Delete(ctx, confirm.User.ID, confirm.Soft)
	if err == nil && !env.Success {
		err = applicationError(env.Error, "Delete failed")
	}
	if err != nil {
		c.notify(failureMessage(err, "Delete failed"), ToneRed)
		logger.Debug().Err(err).Str("user_id", confirm.User.ID).Bool("soft", confirm.Soft).Msg("Delete failed")
		return err
	}

	msg := "Hard deleted"
	if confirm.Soft {
		msg = "Soft deleted"
	}
	c.notify(msg, ToneGreen)

	c.mu.Lock()
	page := c.state.Query.Page
	c.mu.Unlock()

	if err := c.refresh(ctx, WithPage(page)); err != nil {
		logger.Debug().Err(err).Msg("Refresh after delete failed")
	}
	return nil
}

// Refresh reloads the current page and the stats.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	page := c.state.Query.Page
	c.mu.Unlock()
	return c.refresh(ctx, WithPage(page))
}

// Reject shows msg as an error toast, leaving the list and query untouched.
func (c *Controller) Reject(msg string) {
	c.notify(msg, ToneRed)
}

// DismissToast hides the current notification.
func (c *Controller) DismissToast() {
	c.mu.Lock()
	c.state.Toast = nil
	c.mu.Unlock()
}

// refresh runs List and LoadStats side by side and waits for both.
func (c *Controller) refresh(ctx context.Context, opts ...ListOption) error {
	var g errgroup.Group
	g.Go(func() error {
		return c.List(ctx, opts...)
	})
	g.Go(func() error {
		c.LoadStats(ctx)
		return nil
	})
	return g.Wait()
}

func (c *Controller) setPage(page int) {
	c.mu.Lock()
	c.state.Query.Page = page
	c.mu.Unlock()
}

func (c *Controller) notify(msg string, tone Tone) {
	c.mu.Lock()
	c.state.Toast = &Notification{Message: msg, Tone: tone}
	c.mu.Unlock()
}

// ApplicationError is a success=false envelope.
type ApplicationError struct {
	Code    string
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func applicationError(e *envelope.Error, fallback string) error {
	if e == nil {
		return &ApplicationError{Message: fallback}
	}
	if e.Message == "" && e.Code == "" {
		return &ApplicationError{Message: fallback}
	}
	return &ApplicationError{Code: e.Code, Message: e.Message}
}

// listFailureMessage uses only the message of an application error.
func listFailureMessage(err error) string {
	var appErr *ApplicationError
	if stderrors.As(err, &appErr) {
		if appErr.Message != "" {
			return appErr.Message
		}
		return "Failed"
	}
	return failureMessage(err, "Failed loading list")
}

// failureMessage picks message, then code, then fallback.
func failureMessage(err error, fallback string) string {
	var appErr *ApplicationError
	if stderrors.As(err, &appErr) {
		switch {
		case appErr.Message != "":
			return appErr.Message
		case appErr.Code != "":
			return appErr.Code
		}
		return fallback
	}
	var reqErr *envelope.RequestError
	if stderrors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
