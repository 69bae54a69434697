package server

import (
	"github.com/gofiber/fiber/v2"

	"codeberg.org/snonux/slangify/internal/boundary"
	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/prompt"
)

// Handler serves the capability routes.
type Handler struct {
	boundary *boundary.Boundary
}

// NewHandler creates a handler over b.
func NewHandler(b *boundary.Boundary) *Handler {
	return &Handler{boundary: b}
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Districts lists the fourteen districts in canonical order.
func (h *Handler) Districts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": dialect.DistrictNames(),
	})
}

// Capability returns a handler dispatching the request body to capability.
func (h *Handler) Capability(capability prompt.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// fasthttp reuses the body buffer once the handler returns
		payload := append([]byte(nil), c.Body()...)

		data, err := h.boundary.Dispatch(c.UserContext(), string(capability), payload)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"data": data,
		})
	}
}
