package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/beanboard/menu-service/pkg/logger"
)

// ErrNotConfirmed is returned by Delete when the user answered no.
var ErrNotConfirmed = errors.New("delete not confirmed")

// API is the menu service as seen from the page.
type API interface {
	List(ctx context.Context) ([]menu.MenuItem, error)
	Create(ctx context.Context, item menu.MenuItem) (menu.MenuItem, error)
	Update(ctx context.Context, id string, p menu.Patch) error
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Controller runs page actions against the API and keeps State in sync.
type Controller struct {
	api API

	mu    sync.Mutex
	state State
}

func NewController(api API) *Controller {
	return &Controller{api: api, state: InitialState()}
}

// State returns a snapshot of the current page state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = cloneItems(s.Items)
	if s.Editing != nil {
		e := *s.Editing
		s.Editing = &e
	}
	return s
}

func (c *Controller) dispatch(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, e)
	return c.state
}

// Load fetches the full list. Any failure moves the page to PhaseError.
func (c *Controller) Load(ctx context.Context) error {
	items, err := c.api.List(ctx)
	if err != nil {
		logger.Warnf("menu page: load failed: %v", err)
		c.dispatch(LoadFailed{Err: err})
		return err
	}
	c.dispatch(LoadSucceeded{Items: items})
	return nil
}

func (c *Controller) SetDraft(d menu.MenuItem) {
	d.ID = ""
	c.dispatch(DraftChanged{Draft: d})
}

// Add validates the draft and creates it. Invalid drafts raise a notice
// and never reach the API.
func (c *Controller) Add(ctx context.Context) error {
	draft := c.State().Draft
	if err := menu.Validate(draft); err != nil {
		c.dispatch(Notified{Message: err.Error()})
		return err
	}
	c.dispatch(Requested{Action: ActionAdd})
	created, err := c.api.Create(ctx, draft)
	if err != nil {
		logger.Warnf("menu page: add failed: %v", err)
		c.dispatch(Failed{Action: ActionAdd, Err: err})
		return err
	}
	c.dispatch(Succeeded{Action: ActionAdd, Item: created})
	return nil
}

// Toggle flips availability locally, then sends the flipped value. A failed
// request is recorded but the local flip is kept.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	target, ok := c.flip(id)
	if !ok {
		return menu.ErrNotFound
	}
	if err := c.api.Update(ctx, id, menu.AvailabilityPatch(target)); err != nil {
		logger.Warnf("menu page: toggle %s failed: %v", id, err)
		c.dispatch(Failed{Action: ActionToggle, ID: id, Err: err})
		return err
	}
	c.dispatch(Succeeded{Action: ActionToggle, ID: id})
	return nil
}

// flip applies Toggled and Requested in one step and returns the value the
// item now holds, so the request always matches the local flip.
func (c *Controller) flip(id string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := Reduce(c.state, Toggled{ID: id})
	for _, it := range next.Items {
		if it.ID == id {
			c.state = Reduce(next, Requested{Action: ActionToggle})
			return it.Available, true
		}
	}
	return false, false
}

// BeginEdit opens the editor on a copy of the item.
func (c *Controller) BeginEdit(id string) error {
	if _, ok := c.find(id); !ok {
		return menu.ErrNotFound
	}
	c.dispatch(EditStarted{ID: id})
	return nil
}

// UpdateEditing replaces the scratch copy. It is a no-op when no editor is open.
func (c *Controller) UpdateEditing(item menu.MenuItem) {
	c.dispatch(EditChanged{Item: item})
}

func (c *Controller) CancelEdit() {
	c.dispatch(EditCanceled{})
}

// SaveEdit sends the scratch copy as a full update. On failure the editor
// stays open with the edits.
func (c *Controller) SaveEdit(ctx context.Context) error {
	s := c.State()
	if s.Editing == nil {
		return errors.New("no item is being edited")
	}
	edited := *s.Editing
	if err := menu.Validate(edited); err != nil {
		c.dispatch(Notified{Message: err.Error()})
		return err
	}
	c.dispatch(Requested{Action: ActionEdit})
	if err := c.api.Update(ctx, edited.ID, menu.FullPatch(edited)); err != nil {
		logger.Warnf("menu page: save %s failed: %v", edited.ID, err)
		c.dispatch(Failed{Action: ActionEdit, ID: edited.ID, Err: err})
		return err
	}
	c.dispatch(Succeeded{Action: ActionEdit, ID: edited.ID, Item: edited})
	return nil
}

// Delete asks for confirmation, then deletes. The item leaves the local list
// once the request completes, whatever its outcome.
func (c *Controller) Delete(ctx context.Context, id string, confirm Confirmer) error {
	item, ok := c.find(id)
	if !ok {
		return menu.ErrNotFound
	}
	if confirm == nil || !confirm.Confirm(DeletePrompt(item)) {
		return ErrNotConfirmed
	}
	c.dispatch(Requested{Action: ActionDelete})
	if err := c.api.Delete(ctx, id); err != nil {
		logger.Warnf("menu page: delete %s failed: %v", id, err)
		c.dispatch(Failed{Action: ActionDelete, ID: id, Err: err})
		return err
	}
	c.dispatch(Succeeded{Action: ActionDelete, ID: id})
	return nil
}

// DismissNotice clears the blocking notice.
func (c *Controller) DismissNotice() {
	c.dispatch(NoticeDismissed{})
}

// DeletePrompt is the question shown before deleting item.
func DeletePrompt(item menu.MenuItem) string {
	return "Delete " + item.Name + "?"
}

func (c *Controller) find(id string) (menu.MenuItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.state.Items {
		if it.ID == id {
			return it, true
		}
	}
	return menu.MenuItem{}, false
}
