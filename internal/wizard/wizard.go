// Package wizard drives a participant through the three onboarding steps.
// Step 1 collects credentials; steps 2 and 3 collect whichever field groups
// the admin-configured layout places on each page. A session is one
// participant's in-flight run; the user store holds the durable state.
package wizard

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"onboarding-backend/internal/onboarding"
	"onboarding-backend/internal/user"
)

// Validation messages surface inline in the step-1 form.
var (
	ErrEmailRequired    = errors.New("Email is required")
	ErrEmailInvalid     = errors.New("Email is invalid")
	ErrPasswordRequired = errors.New("Password is required")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")

	ErrSessionComplete = errors.New("onboarding is already complete")
	ErrStepMismatch    = errors.New("submission does not match the current step")
)

// emailShape mirrors the browser-side check: a non-space run, an @, and a
// domain containing a dot. Deliberately loose.
var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// Store is the slice of the user service the wizard needs.
type Store interface {
	GetByEmail(email string) (user.User, error)
	Create(email, password string) (user.User, error)
	Update(email string, upd user.Update) (user.User, error)
}

// Form carries one page's submitted values. Each field editor emits a full
// replacement value for its slice of the form; which slices actually get
// merged is decided by the page's configured component set, not by the
// submission.
type Form struct {
	AboutMe   string
	Address   user.Address
	Birthdate *time.Time
}

// Session is one participant's run through the wizard. The step counter
// here is a local mirror of the record's currentStep: it can move backward
// for navigation, but only forward transitions reach the store.
type Session struct {
	store     Store
	config    onboarding.Config
	user      user.User
	step      int
	completed bool
}

// NewSession binds a session to the layout in force when it starts. A
// config saved mid-flight is picked up by the next session, not this one.
func NewSession(store Store, cfg onboarding.Config) *Session {
	return &Session{store: store, config: cfg.Clone(), step: 1}
}

// Start looks up the participant by email. A known email resumes at the
// record's persisted step; an unknown one begins a fresh, not-yet-persisted
// session at step 1.
func (s *Session) Start(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}

	u, err := s.store.GetByEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.user = user.User{Email: user.NormalizeEmail(email), CurrentStep: 1}
			s.step = 1
			s.completed = false
			return nil
		}
		return err
	}

	s.user = u
	s.completed = u.CurrentStep > 3
	switch {
	case s.completed:
		s.step = 3
	case u.CurrentStep < 1:
		s.step = 1
	default:
		s.step = u.CurrentStep
	}
	return nil
}

func (s *Session) Step() int       { return s.step }
func (s *Session) Completed() bool { return s.completed }
func (s *Session) User() user.User { return s.user }

// ValidateCredentials applies the step-1 rules: a non-empty email of
// local@domain shape and a password of at least six characters.
func ValidateCredentials(email, password string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailShape.MatchString(email) {
		return ErrEmailInvalid
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

// SubmitCredentials drives Step 1 → Step 2. The record is created on the
// first submission; the store enforces email uniqueness. A store failure
// leaves the session on step 1 so the participant can resubmit.
func (s *Session) SubmitCredentials(email, password string) error {
	if s.completed {
		return ErrSessionComplete
	}
	if s.step != 1 {
		return ErrStepMismatch
	}
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}

	if s.user.ID == "" {
		created, err := s.store.Create(email, password)
		if err != nil {
			return err
		}
		s.user = created
	}

	next := 2
	updated, err := s.store.Update(s.user.Email, user.Update{
		Email:       &email,
		Password:    &password,
		CurrentStep: &next,
	})
	if err != nil {
		return err
	}

	s.user = updated
	s.step = 2
	return nil
}

// SubmitPage drives Step 2 → Step 3 and Step 3 → Completed. Exactly the
// fields whose component types are configured on the current page are
// merged; page fields carry no required-ness checks. A store failure leaves
// the session on the current step.
func (s *Session) SubmitPage(form Form) error {
	if s.completed {
		return ErrSessionComplete
	}
	if s.step != 2 && s.step != 3 {
		return ErrStepMismatch
	}

	upd := user.Update{}
	for _, comp := range s.Fields() {
		switch comp.Type {
		case onboarding.TypeAboutMe:
			aboutMe := form.AboutMe
			upd.AboutMe = &aboutMe
		case onboarding.TypeAddress:
			address := form.Address
			upd.Address = &address
		case onboarding.TypeBirthdate:
			upd.Birthdate = form.Birthdate
		}
	}
	next := s.step + 1
	upd.CurrentStep = &next

	updated, err := s.store.Update(s.user.Email, upd)
	if err != nil {
		return err
	}

	s.user = updated
	if next > 3 {
		s.completed = true
	} else {
		s.step = next
	}
	return nil
}

// Fields is the render plan for the current page: its configured components
// sorted by ascending order. Each type selects one field editor (free-text
// about-me, structured address, date picker).
func (s *Session) Fields() []onboarding.Component {
	page := onboarding.Page2
	if s.step == 3 {
		page = onboarding.Page3
	}
	return onboarding.SortedByOrder(s.config.Components(page))
}

// Back steps the session back one page locally. The store never sees the
// regression: resuming by email later lands on the last-submitted step, and
// re-entering forward re-submits and re-advances.
func (s *Session) Back() {
	if !s.completed && s.step > 1 {
		s.step--
	}
}

// StartNew resets the session to the anonymous pre-step-1 state. The stored
// record, if any, survives.
func (s *Session) StartNew() {
	s.user = user.User{}
	s.step = 1
	s.completed = false
}
