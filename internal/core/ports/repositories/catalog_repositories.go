package repositories

import (
	"context"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
)

// CatalogTx is the set of catalog operations available inside one shared
// transaction, used by bulk concept import so a partial failure does not leave
// unreferenced zones behind.
type CatalogTx interface {
	// FindZoneByProvinceDistrict looks a zone up case-insensitively.
	// Returns apperrors.ErrNotFound when the pair is unknown.
	FindZoneByProvinceDistrict(ctx context.Context, province, district string) (*domain.Zone, error)

	InsertZone(ctx context.Context, zone domain.Zone) error
	InsertConcept(ctx context.Context, concept domain.Concept) error
}

// CatalogRepository defines storage operations for the reference data catalog:
// document types, zones and concepts. Deletes return apperrors.ErrInUse when a
// foreign reference still exists.
type CatalogRepository interface {
	SaveDocumentType(ctx context.Context, dt domain.DocumentType) error
	ListDocumentTypes(ctx context.Context) ([]domain.DocumentType, error)
	FindDocumentTypeByID(ctx context.Context, documentTypeID string) (*domain.DocumentType, error)
	DeleteDocumentType(ctx context.Context, documentTypeID string) error

	SaveZone(ctx context.Context, zone domain.Zone) error
	ListZones(ctx context.Context) ([]domain.Zone, error)
	// BulkInsertZones inserts zones skipping (province, district) pairs that
	// already exist; returns the number of rows actually inserted.
	BulkInsertZones(ctx context.Context, zones []domain.Zone) (int64, error)
	DeleteZone(ctx context.Context, zoneID string) error

	SaveConcept(ctx context.Context, concept domain.Concept) error
	// ListConcepts retrieves concepts ordered by description; zoneID filters
	// by zone when non-nil.
	ListConcepts(ctx context.Context, zoneID *string) ([]domain.Concept, error)
	DeleteConcept(ctx context.Context, conceptID string) error

	// WithTx runs fn inside a single storage transaction spanning every
	// CatalogTx call made by fn.
	WithTx(ctx context.Context, fn func(tx CatalogTx) error) error
}
