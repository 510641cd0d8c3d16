package ui

import "github.com/beanboard/menu-service/internal/menu"

// Phase is where a page load currently stands.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// Action names a remote mutation started from the page.
type Action string

const (
	ActionAdd    Action = "add"
	ActionToggle Action = "toggle"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// State is the page's local mirror of the menu.
type State struct {
	Phase Phase
	Items []menu.MenuItem
	// Editing is the scratch copy of the item open in the editor, if any.
	Editing *menu.MenuItem
	Draft   menu.MenuItem
	// Err is the load failure in PhaseError, otherwise the latest failed action.
	Err string
	// Notice is a blocking message the user must see before anything else.
	Notice  string
	Pending int
}

// EmptyDraft is the add form's value after a successful add.
func EmptyDraft() menu.MenuItem {
	return menu.MenuItem{Available: true}
}

// InitialState is the state of a freshly opened page.
func InitialState() State {
	return State{Phase: PhaseLoading, Draft: EmptyDraft()}
}

// Event is one state transition fed to Reduce.
type Event interface{ event() }

type (
	LoadSucceeded struct{ Items []menu.MenuItem }
	LoadFailed    struct{ Err error }

	Requested struct{ Action Action }
	// Succeeded carries the result of a remote mutation. Item is the created
	// or saved item for add/edit; ID identifies the target otherwise.
	Succeeded struct {
		Action Action
		ID     string
		Item   menu.MenuItem
	}
	Failed struct {
		Action Action
		ID     string
		Err    error
	}

	Toggled      struct{ ID string }
	DraftChanged struct{ Draft menu.MenuItem }
	EditStarted  struct{ ID string }
	EditChanged  struct{ Item menu.MenuItem }
	EditCanceled struct{}

	Notified        struct{ Message string }
	NoticeDismissed struct{}
)

func (LoadSucceeded) event()   {}
func (LoadFailed) event()      {}
func (Requested) event()       {}
func (Succeeded) event()       {}
func (Failed) event()          {}
func (Toggled) event()         {}
func (DraftChanged) event()    {}
func (EditStarted) event()     {}
func (EditChanged) event()     {}
func (EditCanceled) event()    {}
func (Notified) event()        {}
func (NoticeDismissed) event() {}

// Reduce returns the state that follows s after e. s is not modified.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case LoadSucceeded:
		s.Phase = PhaseReady
		s.Items = append([]menu.MenuItem{}, ev.Items...)
		s.Err = ""
		if s.Editing != nil && !containsItem(s.Items, s.Editing.ID) {
			s.Editing = nil
		}
	case LoadFailed:
		s.Phase = PhaseError
		s.Items = nil
		s.Editing = nil
		s.Err = errText(ev.Err)
	case Requested:
		s.Pending++
	case Succeeded:
		s.Pending = done(s.Pending)
		s.Err = ""
		switch ev.Action {
		case ActionAdd:
			s.Items = append(cloneItems(s.Items), ev.Item)
			s.Draft = EmptyDraft()
		case ActionEdit:
			s.Items = replaceItem(s.Items, ev.Item)
			s.Editing = nil
		case ActionDelete:
			s.Items = removeItem(s.Items, ev.ID)
		}
	case Failed:
		s.Pending = done(s.Pending)
		s.Err = errText(ev.Err)
		// the optimistic toggle stays flipped; the editor stays open
		if ev.Action == ActionDelete {
			s.Items = removeItem(s.Items, ev.ID)
		}
	case Toggled:
		items := cloneItems(s.Items)
		for i := range items {
			if items[i].ID == ev.ID {
				items[i].Available = !items[i].Available
			}
		}
		s.Items = items
	case DraftChanged:
		s.Draft = ev.Draft
	case EditStarted:
		s.Editing = nil
		for _, it := range s.Items {
			if it.ID == ev.ID {
				scratch := it
				s.Editing = &scratch
				break
			}
		}
	case EditChanged:
		if s.Editing != nil {
			scratch := ev.Item
			scratch.ID = s.Editing.ID
			s.Editing = &scratch
		}
	case EditCanceled:
		s.Editing = nil
	case Notified:
		s.Notice = ev.Message
	case NoticeDismissed:
		s.Notice = ""
	}
	return s
}

func done(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func cloneItems(items []menu.MenuItem) []menu.MenuItem {
	return append([]menu.MenuItem{}, items...)
}

func containsItem(items []menu.MenuItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func replaceItem(items []menu.MenuItem, item menu.MenuItem) []menu.MenuItem {
	out := cloneItems(items)
	for i := range out {
		if out[i].ID == item.ID {
			out[i] = item
		}
	}
	return out
}

func removeItem(items []menu.MenuItem, id string) []menu.MenuItem {
	out := make([]menu.MenuItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
