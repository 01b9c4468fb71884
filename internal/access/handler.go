package access

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/reward-forge/reward_forge/internal/guard"
	"github.com/reward-forge/reward_forge/internal/middleware"
)

// Handler exposes owner-only administration endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an access administration handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type mintStatusRequest struct {
	Enabled bool `json:"enabled"`
}

type whitelistRequest struct {
	Principal string `json:"principal"`
}

// SetMintStatus toggles the platform-wide minting gate.
func (h *Handler) SetMintStatus(c *fiber.Ctx) error {
	var req mintStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	caller := middleware.Caller(c)
	if err := h.service.SetMintEnabled(c.UserContext(), caller, req.Enabled); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"enabled": req.Enabled})
}

// AddWhitelisted grants issuance rights to a principal.
func (h *Handler) AddWhitelisted(c *fiber.Ctx) error {
	var req whitelistRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Principal == "" {
		return fiber.NewError(http.StatusBadRequest, "principal is required")
	}
	caller := middleware.Caller(c)
	if err := h.service.AddWhitelisted(c.UserContext(), caller, req.Principal); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"principal": req.Principal, "whitelisted": true})
}

// RemoveWhitelisted revokes issuance rights from a principal.
func (h *Handler) RemoveWhitelisted(c *fiber.Ctx) error {
	principal := c.Params("principal")
	if principal == "" {
		return fiber.NewError(http.StatusBadRequest, "principal is required")
	}
	caller := middleware.Caller(c)
	if err := h.service.RemoveWhitelisted(c.UserContext(), caller, principal); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"principal": principal, "whitelisted": false})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusForbidden, "caller is not the owner")
	case errors.Is(err, ErrAlreadyWhitelisted):
		return fiber.NewError(http.StatusConflict, "principal already whitelisted")
	case errors.Is(err, ErrNotWhitelisted):
		return fiber.NewError(http.StatusNotFound, "principal not whitelisted")
	case errors.Is(err, guard.ErrReentrantCall):
		return fiber.NewError(http.StatusConflict, "another operation is in progress")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
