package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reward-forge/reward_forge/internal/access"
	"github.com/reward-forge/reward_forge/internal/config"
	"github.com/reward-forge/reward_forge/internal/metadata"
	"github.com/reward-forge/reward_forge/internal/middleware"
)

// RegisterAdminRoutes wires the owner-only administration endpoints.
func RegisterAdminRoutes(r fiber.Router, cfg config.Config, accessHandler *access.Handler, metadataHandler *metadata.Handler) {
	admin := r.Group("/admin", middleware.RequireCaller(), middleware.AdminKey(cfg.AdminKeyHash))
	admin.Post("/mint-status", accessHandler.SetMintStatus)
	admin.Post("/whitelist", accessHandler.AddWhitelisted)
	admin.Delete("/whitelist/:principal", accessHandler.RemoveWhitelisted)
	admin.Put("/base-locator", metadataHandler.SetBaseLocator)
}
