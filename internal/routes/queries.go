package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reward-forge/reward_forge/internal/holdings"
	"github.com/reward-forge/reward_forge/internal/metadata"
)

// RegisterQueryRoutes wires the open read-only endpoints.
func RegisterQueryRoutes(r fiber.Router, metadataHandler *metadata.Handler, holdingsHandler *holdings.Handler) {
	r.Get("/items/:id/metadata", metadataHandler.Resolve)
	r.Get("/items/:id/supply", holdingsHandler.Supply)
	r.Get("/accounts/:account/holdings", holdingsHandler.HoldingsOf)
	r.Get("/accounts/:account/items/:id/balance", holdingsHandler.Balance)
}
