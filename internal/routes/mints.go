package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reward-forge/reward_forge/internal/issuance"
	"github.com/reward-forge/reward_forge/internal/middleware"
)

// RegisterMintRoutes wires the issuance endpoints for whitelisted callers.
func RegisterMintRoutes(r fiber.Router, h *issuance.Handler, rateLimiter fiber.Handler) {
	mints := r.Group("", middleware.RequireCaller(), rateLimiter)
	mints.Post("/mints", h.MintSingle)
	mints.Post("/mints/batch", h.MintBatch)
	mints.Post("/mints/batch-multi", h.MintBatchMulti)
	mints.Post("/items/:id/supply", h.IncreaseSupply)
}
