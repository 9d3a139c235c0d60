package onboarding

import (
	"fmt"
	"sort"
	"time"
)

// Page selects one of the two configurable wizard pages.
type Page int

const (
	Page2 Page = 2
	Page3 Page = 3
)

func (p Page) Label() string {
	if p == Page2 {
		return "Page 2"
	}
	return "Page 3"
}

func (p Page) Other() Page {
	if p == Page2 {
		return Page3
	}
	return Page2
}

// Config is the singleton onboarding layout document. The two lists decide
// which field groups the wizard collects on pages 2 and 3 and in what order.
type Config struct {
	ID        string      `json:"id"`
	Page2     []Component `json:"page2Components"`
	Page3     []Component `json:"page3Components"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// DefaultLayout is the layout created on first read: the free-text and
// birthdate groups on page 2, the address group on page 3.
func DefaultLayout() (page2, page3 []Component) {
	page2 = []Component{
		{Type: TypeAboutMe, Order: 1},
		{Type: TypeBirthdate, Order: 2},
	}
	page3 = []Component{
		{Type: TypeAddress, Order: 1},
	}
	return page2, page3
}

// Components returns a copy of the given page's list.
func (c Config) Components(p Page) []Component {
	if p == Page2 {
		return append([]Component(nil), c.Page2...)
	}
	return append([]Component(nil), c.Page3...)
}

func (c *Config) setComponents(p Page, list []Component) {
	if p == Page2 {
		c.Page2 = list
	} else {
		c.Page3 = list
	}
}

func (c Config) Clone() Config {
	c.Page2 = append([]Component(nil), c.Page2...)
	c.Page3 = append([]Component(nil), c.Page3...)
	return c
}

// SortedByOrder returns the list sorted ascending by order, the sequence a
// renderer walks when laying out a page.
func SortedByOrder(list []Component) []Component {
	out := append([]Component(nil), list...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// renumber rewrites orders to 1..N by list position.
func renumber(list []Component) {
	for i := range list {
		list[i].Order = i + 1
	}
}

// LayoutError reports a violation of the page-placement invariants. Its
// message is user-visible and the offending mutation is never applied.
type LayoutError struct {
	msg string
}

func (e *LayoutError) Error() string { return e.msg }

func layoutErrorf(format string, args ...any) *LayoutError {
	return &LayoutError{msg: fmt.Sprintf(format, args...)}
}

// ValidateLayout checks a candidate layout before it is persisted, so the
// same invariants hold for any caller: both pages non-empty, only known
// component types, and each type placed on at most one page.
func ValidateLayout(page2, page3 []Component) error {
	if len(page2) == 0 {
		return layoutErrorf("%s must have at least one component", Page2.Label())
	}
	if len(page3) == 0 {
		return layoutErrorf("%s must have at least one component", Page3.Label())
	}

	placed := map[ComponentType]Page{}
	pages := []struct {
		page Page
		list []Component
	}{
		{Page2, page2},
		{Page3, page3},
	}
	for _, pc := range pages {
		for _, comp := range pc.list {
			if !comp.Type.Valid() {
				return layoutErrorf("unknown component type %q", string(comp.Type))
			}
			if prev, ok := placed[comp.Type]; ok {
				if prev == pc.page {
					return layoutErrorf("%s appears more than once on %s", comp.Type.Label(), pc.page.Label())
				}
				return layoutErrorf("%s is already used on %s. Each component can only be used on one page.", comp.Type.Label(), prev.Label())
			}
			placed[comp.Type] = pc.page
		}
	}

	return nil
}
