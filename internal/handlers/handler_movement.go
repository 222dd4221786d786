package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/dto"
	"github.com/bankpro/bankpro_backend/internal/middleware"
)

// movementHandler handles HTTP requests for ledger movements.
type movementHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newMovementHandler(ls portssvc.LedgerSvcFacade) *movementHandler {
	return &movementHandler{ledgerService: ls}
}

// RegisterMovementRoutes registers routes related to movements.
func RegisterMovementRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newMovementHandler(ledgerService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("/:movementID", h.getMovement)
		movements.PUT("/:movementID", h.updateMovement)
		movements.DELETE("/:movementID", h.deleteMovement)
	}
}

func (h *movementHandler) createMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.ledgerService.CreateMovement(c.Request.Context(), req)
	if err != nil {
		h.respondMutationError(c, logger, err, "Failed to create movement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

func (h *movementHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	movement, err := h.ledgerService.GetMovement(c.Request.Context(), movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else {
			logger.Error("Failed to get movement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

func (h *movementHandler) updateMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.ledgerService.EditMovement(c.Request.Context(), movementID, req)
	if err != nil {
		h.respondMutationError(c, logger, err, "Failed to update movement")
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

func (h *movementHandler) deleteMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	if err := h.ledgerService.DeleteMovement(c.Request.Context(), movementID); err != nil {
		h.respondMutationError(c, logger, err, "Failed to delete movement")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondMutationError maps the ledger's error taxonomy onto HTTP statuses.
func (h *movementHandler) respondMutationError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrDuplicateDocument):
		c.JSON(http.StatusConflict, gin.H{"error": "Document number already registered for this document type"})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Operation would leave the account balance negative"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
