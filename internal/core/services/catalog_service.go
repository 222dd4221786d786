package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/dto"
	"github.com/bankpro/bankpro_backend/internal/middleware"
)

// catalogService manages the reference data movements point at.
type catalogService struct {
	catalogRepo portsrepo.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo portsrepo.CatalogRepository) portssvc.CatalogSvcFacade {
	return &catalogService{catalogRepo: catalogRepo}
}

// Ensure catalogService implements the portssvc.CatalogSvcFacade interface
var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) CreateDocumentType(ctx context.Context, req dto.CreateDocumentTypeRequest) (*domain.DocumentType, error) {
	now := time.Now().UTC()
	docType := domain.DocumentType{
		DocumentTypeID:     uuid.NewString(),
		Code:               strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:        req.Description,
		CurrentConsecutive: 0,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.catalogRepo.SaveDocumentType(ctx, docType); err != nil {
		return nil, fmt.Errorf("failed to create document type: %w", err)
	}
	return &docType, nil
}

func (s *catalogService) ListDocumentTypes(ctx context.Context) ([]domain.DocumentType, error) {
	docTypes, err := s.catalogRepo.ListDocumentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list document types: %w", err)
	}
	if docTypes == nil {
		return []domain.DocumentType{}, nil
	}
	return docTypes, nil
}

func (s *catalogService) DeleteDocumentType(ctx context.Context, documentTypeID string) error {
	return s.catalogRepo.DeleteDocumentType(ctx, documentTypeID)
}

func (s *catalogService) CreateZone(ctx context.Context, req dto.CreateZoneRequest) (*domain.Zone, error) {
	now := time.Now().UTC()
	zone := domain.Zone{
		ZoneID:   uuid.NewString(),
		Province: strings.TrimSpace(req.Province),
		District: strings.TrimSpace(req.District),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.catalogRepo.SaveZone(ctx, zone); err != nil {
		return nil, fmt.Errorf("failed to create zone: %w", err)
	}
	return &zone, nil
}

// BulkImportZones registers a batch of zones, skipping rows that already
// exist. It returns the number of zones actually inserted.
func (s *catalogService) BulkImportZones(ctx context.Context, req dto.BulkZonesRequest) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	zones := make([]domain.Zone, 0, len(req.Items))
	for _, item := range req.Items {
		province := strings.TrimSpace(item.Province)
		district := strings.TrimSpace(item.District)
		if province == "" || district == "" {
			continue
		}
		zones = append(zones, domain.Zone{
			ZoneID:   uuid.NewString(),
			Province: province,
			District: district,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		})
	}
	if len(zones) == 0 {
		return 0, fmt.Errorf("%w: no usable rows in zone import", apperrors.ErrValidation)
	}

	inserted, err := s.catalogRepo.BulkInsertZones(ctx, zones)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert zones: %w", err)
	}

	logger.Info("Zones imported", slog.Int("received", len(req.Items)), slog.Int64("inserted", inserted))
	return inserted, nil
}

func (s *catalogService) ListZones(ctx context.Context) ([]domain.Zone, error) {
	zones, err := s.catalogRepo.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	if zones == nil {
		return []domain.Zone{}, nil
	}
	return zones, nil
}

func (s *catalogService) DeleteZone(ctx context.Context, zoneID string) error {
	return s.catalogRepo.DeleteZone(ctx, zoneID)
}

func (s *catalogService) CreateConcept(ctx context.Context, req dto.CreateConceptRequest) (*domain.Concept, error) {
	now := time.Now().UTC()
	concept := domain.Concept{
		ConceptID:   uuid.NewString(),
		Description: strings.TrimSpace(req.Description),
		ZoneID:      req.ZoneID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.catalogRepo.SaveConcept(ctx, concept); err != nil {
		return nil, fmt.Errorf("failed to create concept: %w", err)
	}
	return &concept, nil
}

// BulkImportConcepts registers a batch of concept rows inside a single
// transaction. When the batch carries a fixed zone ID every concept lands
// there; otherwise each row's (province, district) pair is resolved against
// existing zones case-insensitively, creating the zone on first sight. Rows
// with a blank concept or no zone information are skipped; storage failures
// roll the whole batch back.
func (s *catalogService) BulkImportConcepts(ctx context.Context, req dto.BulkImportConceptsRequest) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	var inserted int64
	err := s.catalogRepo.WithTx(ctx, func(tx portsrepo.CatalogTx) error {
		// Zones resolved or created during this batch, keyed by the
		// lowercased (province, district) pair.
		resolved := make(map[string]string)

		resolveZone := func(province, district string) (string, error) {
			key := strings.ToLower(province) + "|" + strings.ToLower(district)
			if zoneID, ok := resolved[key]; ok {
				return zoneID, nil
			}

			zone, err := tx.FindZoneByProvinceDistrict(ctx, province, district)
			if err == nil {
				resolved[key] = zone.ZoneID
				return zone.ZoneID, nil
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return "", err
			}

			newZone := domain.Zone{
				ZoneID:   uuid.NewString(),
				Province: province,
				District: district,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					LastUpdatedAt: now,
				},
			}
			if err := tx.InsertZone(ctx, newZone); err != nil {
				return "", err
			}
			resolved[key] = newZone.ZoneID
			return newZone.ZoneID, nil
		}

		for _, item := range req.Items {
			description := strings.TrimSpace(item.Concept)
			if description == "" {
				continue
			}

			var zoneID string
			if req.FixedZoneID != nil && *req.FixedZoneID != "" {
				zoneID = *req.FixedZoneID
			} else {
				province := strings.TrimSpace(item.Province)
				district := strings.TrimSpace(item.District)
				if province == "" || district == "" {
					logger.Warn("Skipping concept row without zone information", slog.String("concept", description))
					continue
				}
				var err error
				zoneID, err = resolveZone(province, district)
				if err != nil {
					return fmt.Errorf("failed to resolve zone for concept %q: %w", description, err)
				}
			}

			concept := domain.Concept{
				ConceptID:   uuid.NewString(),
				Description: description,
				ZoneID:      zoneID,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					LastUpdatedAt: now,
				},
			}
			if err := tx.InsertConcept(ctx, concept); err != nil {
				return fmt.Errorf("failed to insert concept %q: %w", description, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Concepts imported", slog.Int("received", len(req.Items)), slog.Int64("inserted", inserted))
	return inserted, nil
}

func (s *catalogService) ListConcepts(ctx context.Context, zoneID *string) ([]domain.Concept, error) {
	concepts, err := s.catalogRepo.ListConcepts(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to list concepts: %w", err)
	}
	if concepts == nil {
		return []domain.Concept{}, nil
	}
	return concepts, nil
}

func (s *catalogService) DeleteConcept(ctx context.Context, conceptID string) error {
	return s.catalogRepo.DeleteConcept(ctx, conceptID)
}

// GetMovementConfig returns document types and zones in one call so the
// movement entry screen loads with a single round trip.
func (s *catalogService) GetMovementConfig(ctx context.Context) ([]domain.DocumentType, []domain.Zone, error) {
	docTypes, err := s.ListDocumentTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	zones, err := s.ListZones(ctx)
	if err != nil {
		return nil, nil, err
	}
	return docTypes, zones, nil
}
