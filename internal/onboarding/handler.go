package onboarding

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

type updateConfigRequest struct {
	Page2 []Component `json:"page2Components"`
	Page3 []Component `json:"page3Components"`
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/config", h.getConfig)
	app.Put("/api/config", h.updateConfig)
}

func (h *Handler) getConfig(c *fiber.Ctx) error {
	cfg, err := h.service.Get()
	if err != nil {
		h.log.Error("fetching onboarding config", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch onboarding configuration"})
	}
	return c.JSON(cfg)
}

func (h *Handler) updateConfig(c *fiber.Ctx) error {
	payload := new(updateConfigRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cfg, err := h.service.Save(payload.Page2, payload.Page3)
	if err != nil {
		var layoutErr *LayoutError
		if errors.As(err, &layoutErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": layoutErr.Error()})
		}
		h.log.Error("updating onboarding config", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update onboarding configuration"})
	}

	return c.JSON(fiber.Map{
		"message": "Onboarding configuration updated successfully",
		"config":  cfg,
	})
}
