package issuance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/reward-forge/reward_forge/internal/access"
	"github.com/reward-forge/reward_forge/internal/guard"
	"github.com/reward-forge/reward_forge/internal/ledger"
	"github.com/reward-forge/reward_forge/internal/middleware"
)

// Handler exposes mint endpoints for whitelisted issuers.
type Handler struct {
	service *Service
}

// NewHandler builds an issuance HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type mintRequest struct {
	ItemID    int64  `json:"item_id"`
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
}

type batchMintRequest struct {
	ItemIDs   []int64 `json:"item_ids"`
	Amounts   []int64 `json:"amounts"`
	Recipient string  `json:"recipient"`
}

type batchMultiMintRequest struct {
	ItemIDs    []int64  `json:"item_ids"`
	Recipients []string `json:"recipients"`
	Amounts    []int64  `json:"amounts"`
}

type increaseRequest struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

// MintSingle creates a new item id and credits it to the recipient.
func (h *Handler) MintSingle(c *fiber.Ctx) error {
	var req mintRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Recipient == "" {
		return fiber.NewError(http.StatusBadRequest, "recipient is required")
	}

	itemID, err := h.service.MintSingle(c.UserContext(), middleware.Caller(c), req.ItemID, req.Amount, req.Recipient)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"item_id": itemID})
}

// MintBatch creates several new item ids for one recipient.
func (h *Handler) MintBatch(c *fiber.Ctx) error {
	var req batchMintRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Recipient == "" {
		return fiber.NewError(http.StatusBadRequest, "recipient is required")
	}

	if err := h.service.MintBatch(c.UserContext(), middleware.Caller(c), req.ItemIDs, req.Amounts, req.Recipient); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"item_ids": req.ItemIDs, "recipient": req.Recipient})
}

// MintBatchMulti creates several new item ids, one recipient per id.
func (h *Handler) MintBatchMulti(c *fiber.Ctx) error {
	var req batchMultiMintRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	itemIDs, err := h.service.MintBatchMulti(c.UserContext(), middleware.Caller(c), req.ItemIDs, req.Recipients, req.Amounts)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"item_ids": itemIDs})
}

// IncreaseSupply mints additional units of an existing item id.
func (h *Handler) IncreaseSupply(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid item id")
	}

	var req increaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Account == "" {
		return fiber.NewError(http.StatusBadRequest, "account is required")
	}

	if err := h.service.IncreaseExisting(c.UserContext(), middleware.Caller(c), req.Account, itemID, req.Amount); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"item_id": itemID, "account": req.Account, "amount": req.Amount})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, access.ErrNotWhitelisted):
		return fiber.NewError(http.StatusForbidden, "caller is not whitelisted")
	case errors.Is(err, ErrMintingDisabled):
		return fiber.NewError(http.StatusConflict, "minting is disabled")
	case errors.Is(err, ErrAmountNotPositive), errors.Is(err, ledger.ErrAmountNotPositive):
		return fiber.NewError(http.StatusBadRequest, "amount must be above zero")
	case errors.Is(err, ErrItemExists):
		return fiber.NewError(http.StatusConflict, "item id already exists")
	case errors.Is(err, ErrItemNotFound):
		return fiber.NewError(http.StatusNotFound, "item id does not exist")
	case errors.Is(err, ledger.ErrLengthMismatch), errors.Is(err, errBatchShape):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, guard.ErrReentrantCall):
		return fiber.NewError(http.StatusConflict, "another operation is in progress")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
