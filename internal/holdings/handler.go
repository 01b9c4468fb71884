package holdings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/reward-forge/reward_forge/internal/issuance"
)

// Handler exposes read-only holdings endpoints. No caller principal or guard
// applies here.
type Handler struct {
	service *Service
}

// NewHandler builds a holdings HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HoldingsOf returns the account's nonzero balances.
func (h *Handler) HoldingsOf(c *fiber.Ctx) error {
	account := c.Params("account")
	if account == "" {
		return fiber.NewError(http.StatusBadRequest, "account is required")
	}

	balances, err := h.service.HoldingsOf(c.UserContext(), account)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"account": account, "holdings": balances})
}

// Balance returns the account's balance for one item.
func (h *Handler) Balance(c *fiber.Ctx) error {
	account := c.Params("account")
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid item id")
	}

	balance, err := h.service.BalanceOf(c.UserContext(), account, itemID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"account": account, "item_id": itemID, "balance": balance})
}

// Supply returns the cumulative minted supply for an item.
func (h *Handler) Supply(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid item id")
	}

	supply, err := h.service.ItemSupply(c.UserContext(), itemID)
	if err != nil {
		if errors.Is(err, issuance.ErrItemNotFound) {
			return fiber.NewError(http.StatusNotFound, "item id does not exist")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"item_id": itemID, "total_supply": supply})
}
