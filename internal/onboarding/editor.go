package onboarding

// Editor mutates a working copy of the layout under the page-placement
// invariants. The copy is distinct from whatever is persisted; callers hand
// the result to Service.Save when done. A rejected mutation leaves the
// working copy untouched and returns a *LayoutError carrying the
// user-visible message.
type Editor struct {
	cfg Config
}

func NewEditor(cfg Config) *Editor {
	return &Editor{cfg: cfg.Clone()}
}

// Config returns a copy of the working layout.
func (e *Editor) Config() Config {
	return e.cfg.Clone()
}

// AddComponent appends the component type to the page with
// order = max(existing orders) + 1, or 1 on an empty page.
func (e *Editor) AddComponent(page Page, t ComponentType) error {
	if !t.Valid() {
		return layoutErrorf("unknown component type %q", string(t))
	}
	if containsType(e.cfg.Components(page), t) {
		return layoutErrorf("%s is already added to this page", t.Label())
	}
	if containsType(e.cfg.Components(page.Other()), t) {
		return layoutErrorf("%s is already used on %s. Each component can only be used on one page.", t.Label(), page.Other().Label())
	}

	list := e.cfg.Components(page)
	maxOrder := 0
	for _, comp := range list {
		if comp.Order > maxOrder {
			maxOrder = comp.Order
		}
	}
	e.cfg.setComponents(page, append(list, Component{Type: t, Order: maxOrder + 1}))
	return nil
}

// RemoveComponent removes the component at index and renumbers the rest.
// A page is never emptied: removing its last component is rejected.
func (e *Editor) RemoveComponent(page Page, index int) error {
	list := e.cfg.Components(page)
	if index < 0 || index >= len(list) {
		return layoutErrorf("no component at index %d on %s", index, page.Label())
	}
	if len(list) <= 1 {
		return layoutErrorf("Cannot remove the last component from %s. Each page must have at least one component.", page.Label())
	}

	list = append(list[:index], list[index+1:]...)
	renumber(list)
	e.cfg.setComponents(page, list)
	return nil
}

// Reorder moves the component at from to position to — a splice, not a
// swap — and renumbers. The reorder intent is gesture-agnostic: whatever
// the UI layer uses to produce the index pair, the semantics live here.
// from == to and out-of-range indexes are no-ops.
func (e *Editor) Reorder(page Page, from, to int) {
	list := e.cfg.Components(page)
	if from == to || from < 0 || to < 0 || from >= len(list) || to >= len(list) {
		return
	}

	comp := list[from]
	spliced := make([]Component, 0, len(list))
	spliced = append(spliced, list[:from]...)
	spliced = append(spliced, list[from+1:]...)

	moved := make([]Component, 0, len(list))
	moved = append(moved, spliced[:to]...)
	moved = append(moved, comp)
	moved = append(moved, spliced[to:]...)

	renumber(moved)
	e.cfg.setComponents(page, moved)
}

// Placement reports where a component type currently lives relative to a
// page; the admin UI renders the three cases as ✓ (on this page),
// ✗ (on the other page) and + (available).
type Placement int

const (
	Available Placement = iota
	OnPage
	OnOtherPage
)

func (e *Editor) Placement(page Page, t ComponentType) Placement {
	if containsType(e.cfg.Components(page), t) {
		return OnPage
	}
	if containsType(e.cfg.Components(page.Other()), t) {
		return OnOtherPage
	}
	return Available
}

// IsAvailable reports whether the type can be added to the page, i.e. it is
// not placed anywhere yet.
func (e *Editor) IsAvailable(page Page, t ComponentType) bool {
	return e.Placement(page, t) == Available
}

func containsType(list []Component, t ComponentType) bool {
	for _, comp := range list {
		if comp.Type == t {
			return true
		}
	}
	return false
}
