package metadata

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/reward-forge/reward_forge/internal/access"
	"github.com/reward-forge/reward_forge/internal/guard"
	"github.com/reward-forge/reward_forge/internal/issuance"
	"github.com/reward-forge/reward_forge/internal/middleware"
)

// Handler exposes metadata endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a metadata HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type locatorRequest struct {
	BaseLocator string `json:"base_locator"`
}

// Resolve returns the metadata locator for an item.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid item id")
	}

	locator, err := h.service.Resolve(c.UserContext(), itemID)
	if err != nil {
		if errors.Is(err, issuance.ErrItemNotFound) {
			return fiber.NewError(http.StatusNotFound, "item id does not exist")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"item_id": itemID, "metadata": locator})
}

// SetBaseLocator replaces the metadata root for all items.
func (h *Handler) SetBaseLocator(c *fiber.Ctx) error {
	var req locatorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.BaseLocator == "" {
		return fiber.NewError(http.StatusBadRequest, "base_locator is required")
	}

	if err := h.service.SetBaseLocator(c.UserContext(), middleware.Caller(c), req.BaseLocator); err != nil {
		switch {
		case errors.Is(err, access.ErrNotOwner):
			return fiber.NewError(http.StatusForbidden, "caller is not the owner")
		case errors.Is(err, guard.ErrReentrantCall):
			return fiber.NewError(http.StatusConflict, "another operation is in progress")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"base_locator": req.BaseLocator})
}
