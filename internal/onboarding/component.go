package onboarding

// ComponentType identifies one of the three configurable field groups.
type ComponentType string

const (
	TypeAboutMe   ComponentType = "aboutMe"
	TypeAddress   ComponentType = "address"
	TypeBirthdate ComponentType = "birthdate"
)

// Types lists every component type an admin can place on a page.
var Types = []ComponentType{TypeAboutMe, TypeAddress, TypeBirthdate}

func (t ComponentType) Valid() bool {
	switch t {
	case TypeAboutMe, TypeAddress, TypeBirthdate:
		return true
	}
	return false
}

// Label is the human-readable name used in editor messages.
func (t ComponentType) Label() string {
	switch t {
	case TypeAboutMe:
		return "About Me"
	case TypeAddress:
		return "Address"
	case TypeBirthdate:
		return "Birthdate"
	}
	return string(t)
}

// Component is one field group placed on a wizard page together with its
// display order. Within a page orders are kept as a contiguous 1..N
// sequence matching list position.
type Component struct {
	Type  ComponentType `json:"type"`
	Order int           `json:"order"`
}
