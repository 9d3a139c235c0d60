package user

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateUserRequest carries a partial record; absent fields are left
// untouched. The birthdate arrives as a string because browser date inputs
// post plain dates, not RFC 3339 timestamps.
type updateUserRequest struct {
	Email       *string  `json:"email"`
	Password    *string  `json:"password"`
	AboutMe     *string  `json:"aboutMe"`
	Address     *Address `json:"address"`
	Birthdate   *string  `json:"birthdate"`
	CurrentStep *int     `json:"currentStep"`
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/users", h.listUsers)
	app.Get("/api/users/:email", h.getUser)
	app.Post("/api/users", h.createUser)
	app.Put("/api/users/:email", h.updateUser)
	app.Delete("/api/users/:email", h.deleteUser)
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		h.log.Error("fetching users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	response := make([]User, 0, len(users))
	for _, u := range users {
		response = append(response, sanitizeUser(u))
	}
	return c.JSON(response)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	u, err := h.service.GetByEmail(emailParam(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		h.log.Error("fetching user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}
	return c.JSON(sanitizeUser(u))
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	payload := new(createUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	created, err := h.service.Create(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
		}
		h.log.Error("creating user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user": fiber.Map{
			"id":          created.ID,
			"email":       created.Email,
			"currentStep": created.CurrentStep,
		},
	})
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	payload := new(updateUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	birthdate, err := parseBirthdate(payload.Birthdate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.Update(emailParam(c), Update{
		Email:       payload.Email,
		Password:    payload.Password,
		AboutMe:     payload.AboutMe,
		Address:     payload.Address,
		Birthdate:   birthdate,
		CurrentStep: payload.CurrentStep,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		case errors.Is(err, ErrEmailExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already exists"})
		default:
			h.log.Error("updating user", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
		}
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    sanitizeUser(updated),
	})
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(emailParam(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		h.log.Error("deleting user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// emailParam reads the :email segment, undoing the percent-encoding clients
// apply to addresses in URLs. Path rules, not query rules: a literal + in an
// address must stay a +.
func emailParam(c *fiber.Ctx) string {
	raw := c.Params("email")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// parseBirthdate accepts the plain date a browser date input posts as well
// as a full RFC 3339 timestamp. An empty or absent value leaves the stored
// birthdate untouched.
func parseBirthdate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid birthdate %q", *value)
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
