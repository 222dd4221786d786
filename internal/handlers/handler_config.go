package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/dto"
	"github.com/bankpro/bankpro_backend/internal/middleware"
)

// configHandler handles HTTP requests for the movement reference data:
// document types, zones and concepts.
type configHandler struct {
	catalogService portssvc.CatalogSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

func newConfigHandler(cs portssvc.CatalogSvcFacade, ls portssvc.LedgerSvcFacade) *configHandler {
	return &configHandler{catalogService: cs, ledgerService: ls}
}

// registerConfigRoutes registers routes for the movement reference data.
// Catalog mutations are restricted to admins.
func registerConfigRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newConfigHandler(catalogService, ledgerService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	docTypes := rg.Group("/document-types")
	{
		docTypes.POST("", adminOnly, h.createDocumentType)
		docTypes.GET("", h.listDocumentTypes)
		docTypes.GET("/:documentTypeID/next-number", h.getNextDocumentNumber)
		docTypes.DELETE("/:documentTypeID", adminOnly, h.deleteDocumentType)
	}

	zones := rg.Group("/zones")
	{
		zones.POST("", adminOnly, h.createZone)
		zones.POST("/bulk", adminOnly, h.bulkImportZones)
		zones.GET("", h.listZones)
		zones.DELETE("/:zoneID", adminOnly, h.deleteZone)
	}

	concepts := rg.Group("/concepts")
	{
		concepts.POST("", adminOnly, h.createConcept)
		concepts.POST("/bulk", adminOnly, h.bulkImportConcepts)
		concepts.GET("", h.listConcepts)
		concepts.DELETE("/:conceptID", adminOnly, h.deleteConcept)
	}

	rg.GET("/config/movements", h.getMovementConfig)
}

func (h *configHandler) createDocumentType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocumentType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	docType, err := h.catalogService.CreateDocumentType(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A document type with that code already exists"})
		} else {
			logger.Error("Failed to create document type", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document type"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentTypeResponse(docType))
}

func (h *configHandler) listDocumentTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	docTypes, err := h.catalogService.ListDocumentTypes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list document types", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list document types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documentTypes": dto.ToDocumentTypeResponses(docTypes)})
}

// getNextDocumentNumber returns the advisory next consecutive for a document
// type. The number is only reserved when a movement is actually registered.
func (h *configHandler) getNextDocumentNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentTypeID := c.Param("documentTypeID")

	next, err := h.ledgerService.PeekNextDocumentNumber(c.Request.Context(), documentTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document type not found"})
		} else {
			logger.Error("Failed to peek next document number", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve next document number"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.NextDocumentNumberResponse{Next: next})
}

func (h *configHandler) deleteDocumentType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentTypeID := c.Param("documentTypeID")

	if err := h.catalogService.DeleteDocumentType(c.Request.Context(), documentTypeID); err != nil {
		h.respondCatalogDeleteError(c, logger, err, "document type")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *configHandler) createZone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateZone", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	zone, err := h.catalogService.CreateZone(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "That province and district pair already exists"})
		} else {
			logger.Error("Failed to create zone", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create zone"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToZoneResponse(zone))
}

func (h *configHandler) bulkImportZones(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkZonesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inserted, err := h.catalogService.BulkImportZones(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to bulk import zones", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import zones"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.BulkImportResponse{InsertedCount: inserted})
}

func (h *configHandler) listZones(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	zones, err := h.catalogService.ListZones(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list zones", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list zones"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"zones": dto.ToZoneResponses(zones)})
}

func (h *configHandler) deleteZone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	zoneID := c.Param("zoneID")

	if err := h.catalogService.DeleteZone(c.Request.Context(), zoneID); err != nil {
		h.respondCatalogDeleteError(c, logger, err, "zone")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *configHandler) createConcept(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConcept", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	concept, err := h.catalogService.CreateConcept(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		} else {
			logger.Error("Failed to create concept", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create concept"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToConceptResponse(concept))
}

// bulkImportConcepts registers a batch of concepts in a single transaction,
// resolving or creating the zone for each row.
func (h *configHandler) bulkImportConcepts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkImportConceptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inserted, err := h.catalogService.BulkImportConcepts(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		} else {
			logger.Error("Failed to bulk import concepts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import concepts"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.BulkImportResponse{InsertedCount: inserted})
}

func (h *configHandler) listConcepts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var zoneID *string
	if v := c.Query("zoneID"); v != "" {
		zoneID = &v
	}

	concepts, err := h.catalogService.ListConcepts(c.Request.Context(), zoneID)
	if err != nil {
		logger.Error("Failed to list concepts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list concepts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"concepts": dto.ToConceptResponses(concepts)})
}

func (h *configHandler) deleteConcept(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	conceptID := c.Param("conceptID")

	if err := h.catalogService.DeleteConcept(c.Request.Context(), conceptID); err != nil {
		h.respondCatalogDeleteError(c, logger, err, "concept")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *configHandler) getMovementConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	docTypes, zones, err := h.catalogService.GetMovementConfig(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load movement config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load movement config"})
		return
	}

	c.JSON(http.StatusOK, dto.MovementConfigResponse{
		DocumentTypes: dto.ToDocumentTypeResponses(docTypes),
		Zones:         dto.ToZoneResponses(zones),
	})
}

func (h *configHandler) respondCatalogDeleteError(c *gin.Context, logger *slog.Logger, err error, entity string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "The " + entity + " is referenced by existing records"})
	default:
		logger.Error("Failed to delete "+entity, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + entity})
	}
}
