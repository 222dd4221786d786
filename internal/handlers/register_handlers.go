package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/middleware"
	"github.com/bankpro/bankpro_backend/pkg/config"
)

// RegisterRoutes wires every handler into the Gin engine. Auth routes stay
// public; everything under /api/v1 requires a valid token.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerAuthRoutes(r, services.Auth)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerClientRoutes(v1, services.Client, services.Account)
	registerAccountRoutes(v1, services.Account, services.Ledger)
	RegisterMovementRoutes(v1, services.Ledger)
	registerConfigRoutes(v1, services.Catalog, services.Ledger)
	registerReportingRoutes(v1, services.Reporting)
	registerUserRoutes(v1, services.User)
}
