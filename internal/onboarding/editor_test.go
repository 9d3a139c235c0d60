package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() Config {
	page2, page3 := DefaultLayout()
	return Config{Page2: page2, Page3: page3}
}

func assertContiguousOrders(t *testing.T, list []Component) {
	t.Helper()
	require.NotEmpty(t, list)
	for i, comp := range list {
		assert.Equal(t, i+1, comp.Order, "order at position %d", i)
	}
}

func TestAddComponentAppendsWithNextOrder(t *testing.T) {
	e := NewEditor(Config{
		Page2: []Component{{Type: TypeAboutMe, Order: 1}},
		Page3: []Component{{Type: TypeAddress, Order: 1}},
	})

	require.NoError(t, e.AddComponent(Page2, TypeBirthdate))

	page2 := e.Config().Page2
	require.Len(t, page2, 2)
	assert.Equal(t, TypeBirthdate, page2[1].Type)
	assert.Equal(t, 2, page2[1].Order)
	assertContiguousOrders(t, page2)
}

func TestAddComponentRejectsTypeAlreadyOnPage(t *testing.T) {
	e := NewEditor(defaultConfig())
	before := e.Config()

	err := e.AddComponent(Page2, TypeAboutMe)

	require.Error(t, err)
	assert.Equal(t, "About Me is already added to this page", err.Error())
	assert.Equal(t, before, e.Config())
}

func TestAddComponentRejectsTypeOnOtherPage(t *testing.T) {
	e := NewEditor(defaultConfig())
	before := e.Config()

	err := e.AddComponent(Page2, TypeAddress)

	require.Error(t, err)
	assert.Equal(t, "Address is already used on Page 3. Each component can only be used on one page.", err.Error())
	assert.Equal(t, before, e.Config())

	err = e.AddComponent(Page3, TypeBirthdate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used on Page 2")
	assert.Equal(t, before, e.Config())
}

func TestRemoveComponentRenumbers(t *testing.T) {
	e := NewEditor(defaultConfig())

	require.NoError(t, e.RemoveComponent(Page2, 0))

	page2 := e.Config().Page2
	require.Len(t, page2, 1)
	assert.Equal(t, TypeBirthdate, page2[0].Type)
	assertContiguousOrders(t, page2)
}

func TestRemoveComponentKeepsPageNonEmpty(t *testing.T) {
	e := NewEditor(defaultConfig())
	before := e.Config()

	err := e.RemoveComponent(Page3, 0)

	require.Error(t, err)
	assert.Equal(t, "Cannot remove the last component from Page 3. Each page must have at least one component.", err.Error())
	assert.Equal(t, before, e.Config())
}

func TestRemoveComponentOutOfRange(t *testing.T) {
	e := NewEditor(defaultConfig())
	before := e.Config()

	require.Error(t, e.RemoveComponent(Page2, 5))
	require.Error(t, e.RemoveComponent(Page2, -1))
	assert.Equal(t, before, e.Config())
}

func TestReorderSplicesAndRenumbers(t *testing.T) {
	// three components on one page to tell a splice from a swap
	e := NewEditor(Config{
		Page2: []Component{
			{Type: TypeAboutMe, Order: 1},
			{Type: TypeBirthdate, Order: 2},
			{Type: TypeAddress, Order: 3},
		},
	})

	e.Reorder(Page2, 2, 0)

	page2 := e.Config().Page2
	require.Len(t, page2, 3)
	assert.Equal(t, TypeAddress, page2[0].Type)
	assert.Equal(t, TypeAboutMe, page2[1].Type)
	assert.Equal(t, TypeBirthdate, page2[2].Type)
	assertContiguousOrders(t, page2)

	e.Reorder(Page2, 0, 2)
	page2 = e.Config().Page2
	assert.Equal(t, TypeAboutMe, page2[0].Type)
	assert.Equal(t, TypeBirthdate, page2[1].Type)
	assert.Equal(t, TypeAddress, page2[2].Type)
	assertContiguousOrders(t, page2)
}

func TestReorderNoop(t *testing.T) {
	e := NewEditor(defaultConfig())
	before := e.Config()

	e.Reorder(Page2, 1, 1)
	e.Reorder(Page2, -1, 0)
	e.Reorder(Page2, 0, 9)

	assert.Equal(t, before, e.Config())
}

func TestPlacementAndAvailability(t *testing.T) {
	e := NewEditor(defaultConfig())

	assert.Equal(t, OnPage, e.Placement(Page2, TypeAboutMe))
	assert.Equal(t, OnOtherPage, e.Placement(Page2, TypeAddress))
	assert.Equal(t, OnPage, e.Placement(Page3, TypeAddress))

	assert.False(t, e.IsAvailable(Page2, TypeAboutMe))
	assert.False(t, e.IsAvailable(Page2, TypeAddress))

	require.NoError(t, e.RemoveComponent(Page2, 1))
	assert.Equal(t, Available, e.Placement(Page2, TypeBirthdate))
	assert.True(t, e.IsAvailable(Page2, TypeBirthdate))
	assert.True(t, e.IsAvailable(Page3, TypeBirthdate))
}

func TestMutationsPreserveInvariants(t *testing.T) {
	e := NewEditor(defaultConfig())

	_ = e.AddComponent(Page2, TypeAddress)
	_ = e.RemoveComponent(Page2, 0)
	e.Reorder(Page3, 0, 0)
	_ = e.AddComponent(Page3, TypeAboutMe)

	cfg := e.Config()
	assertContiguousOrders(t, cfg.Page2)
	assertContiguousOrders(t, cfg.Page3)
	require.NoError(t, ValidateLayout(cfg.Page2, cfg.Page3))
}

func TestValidateLayout(t *testing.T) {
	page2, page3 := DefaultLayout()

	require.NoError(t, ValidateLayout(page2, page3))

	err := ValidateLayout(nil, page3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Page 2 must have at least one component")

	err = ValidateLayout(page2, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Page 3 must have at least one component")

	err = ValidateLayout(page2, []Component{{Type: TypeAboutMe, Order: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used on Page 2")

	err = ValidateLayout([]Component{{Type: TypeAboutMe, Order: 1}, {Type: TypeAboutMe, Order: 2}}, page3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once on Page 2")

	err = ValidateLayout([]Component{{Type: "petName", Order: 1}}, page3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown component type "petName"`)
}

func TestSortedByOrder(t *testing.T) {
	list := []Component{
		{Type: TypeBirthdate, Order: 2},
		{Type: TypeAboutMe, Order: 1},
	}

	sorted := SortedByOrder(list)

	assert.Equal(t, TypeAboutMe, sorted[0].Type)
	assert.Equal(t, TypeBirthdate, sorted[1].Type)
	// input untouched
	assert.Equal(t, TypeBirthdate, list[0].Type)
}
