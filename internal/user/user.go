package user

import (
	"strings"
	"time"
)

// Address is the structured mailing-address field group collected on a
// configurable wizard page.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// User is one onboarding participant. CurrentStep tracks how far the wizard
// has progressed: 1 is credentials, 2 and 3 are the configurable pages, 4
// means the flow is complete. The password is stored as received and
// stripped from every response.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Password    string     `json:"password,omitempty"`
	AboutMe     string     `json:"aboutMe"`
	Address     Address    `json:"address"`
	Birthdate   *time.Time `json:"birthdate"`
	CurrentStep int        `json:"currentStep"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Update is a partial payload merged into an existing record; nil fields
// keep their stored values.
type Update struct {
	Email       *string
	Password    *string
	AboutMe     *string
	Address     *Address
	Birthdate   *time.Time
	CurrentStep *int
}

// NormalizeEmail lowercases and trims, matching the case-insensitive unique
// index on the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
