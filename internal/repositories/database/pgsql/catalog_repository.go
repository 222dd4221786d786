package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
)

type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepository {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCatalogRepository implements portsrepo.CatalogRepository
var _ portsrepo.CatalogRepository = (*PgxCatalogRepository)(nil)

// WithTx runs fn against a CatalogTx bound to a single transaction, so a
// bulk import either lands completely or not at all.
func (r *PgxCatalogRepository) WithTx(ctx context.Context, fn func(tx portsrepo.CatalogTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := fn(&pgxCatalogTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCatalogRepository) SaveDocumentType(ctx context.Context, docType domain.DocumentType) error {
	query := `
		INSERT INTO document_types (document_type_id, code, description, current_consecutive, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		docType.DocumentTypeID,
		docType.Code,
		docType.Description,
		docType.CurrentConsecutive,
		docType.CreatedAt,
		docType.LastUpdatedAt,
	)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PgxCatalogRepository) ListDocumentTypes(ctx context.Context) ([]domain.DocumentType, error) {
	query := `
		SELECT document_type_id, code, description, current_consecutive, created_at, last_updated_at
		FROM document_types ORDER BY code ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list document types", err)
	}
	defer rows.Close()

	var docTypes []domain.DocumentType
	for rows.Next() {
		var dt domain.DocumentType
		if err := rows.Scan(&dt.DocumentTypeID, &dt.Code, &dt.Description, &dt.CurrentConsecutive, &dt.CreatedAt, &dt.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document type", err)
		}
		docTypes = append(docTypes, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read document type rows", err)
	}
	return docTypes, nil
}

func (r *PgxCatalogRepository) FindDocumentTypeByID(ctx context.Context, documentTypeID string) (*domain.DocumentType, error) {
	return findDocumentTypeByID(ctx, r.Pool, documentTypeID)
}

// DeleteDocumentType refuses to remove a type still referenced by movements,
// surfacing the FK violation as ErrInUse.
func (r *PgxCatalogRepository) DeleteDocumentType(ctx context.Context, documentTypeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM document_types WHERE document_type_id = $1;`, documentTypeID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const zoneColumns = `zone_id, province, district, created_at, last_updated_at`

func scanZone(row pgx.Row) (*domain.Zone, error) {
	var z domain.Zone
	err := row.Scan(&z.ZoneID, &z.Province, &z.District, &z.CreatedAt, &z.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan zone", err)
	}
	return &z, nil
}

func insertZone(ctx context.Context, q querier, zone domain.Zone) error {
	query := `
		INSERT INTO zones (zone_id, province, district, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := q.Exec(ctx, query, zone.ZoneID, zone.Province, zone.District, zone.CreatedAt, zone.LastUpdatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func findZoneByProvinceDistrict(ctx context.Context, q querier, province, district string) (*domain.Zone, error) {
	query := `
		SELECT ` + zoneColumns + ` FROM zones
		WHERE lower(province) = lower($1) AND lower(district) = lower($2);
	`
	return scanZone(q.QueryRow(ctx, query, province, district))
}

func (r *PgxCatalogRepository) SaveZone(ctx context.Context, zone domain.Zone) error {
	return insertZone(ctx, r.Pool, zone)
}

func (r *PgxCatalogRepository) ListZones(ctx context.Context) ([]domain.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones ORDER BY province ASC, district ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list zones", err)
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, err
		}
		zones = append(zones, *z)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read zone rows", err)
	}
	return zones, nil
}

// BulkInsertZones inserts zones, silently skipping (province, district)
// pairs that already exist, and returns how many actually landed.
func (r *PgxCatalogRepository) BulkInsertZones(ctx context.Context, zones []domain.Zone) (int64, error) {
	query := `
		INSERT INTO zones (zone_id, province, district, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ((lower(province)), (lower(district))) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, zone := range zones {
		batch.Queue(query, zone.ZoneID, zone.Province, zone.District, zone.CreatedAt, zone.LastUpdatedAt)
	}

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	var inserted int64
	for range zones {
		tag, err := br.Exec()
		if err != nil {
			return 0, apperrors.NewAppError(500, "failed to bulk insert zones", err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

func (r *PgxCatalogRepository) DeleteZone(ctx context.Context, zoneID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM zones WHERE zone_id = $1;`, zoneID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func insertConcept(ctx context.Context, q querier, concept domain.Concept) error {
	query := `
		INSERT INTO concepts (concept_id, description, zone_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := q.Exec(ctx, query, concept.ConceptID, concept.Description, concept.ZoneID, concept.CreatedAt, concept.LastUpdatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PgxCatalogRepository) SaveConcept(ctx context.Context, concept domain.Concept) error {
	return insertConcept(ctx, r.Pool, concept)
}

// ListConcepts returns concepts with their zone joined in, optionally
// filtered to one zone.
func (r *PgxCatalogRepository) ListConcepts(ctx context.Context, zoneID *string) ([]domain.Concept, error) {
	query := `
		SELECT c.concept_id, c.description, c.zone_id, c.created_at, c.last_updated_at,
		       z.zone_id, z.province, z.district, z.created_at, z.last_updated_at
		FROM concepts c
		JOIN zones z ON z.zone_id = c.zone_id
	`
	args := []any{}
	if zoneID != nil && *zoneID != "" {
		query += ` WHERE c.zone_id = $1`
		args = append(args, *zoneID)
	}
	query += ` ORDER BY c.description ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list concepts", err)
	}
	defer rows.Close()

	var concepts []domain.Concept
	for rows.Next() {
		var c domain.Concept
		var z domain.Zone
		if err := rows.Scan(
			&c.ConceptID, &c.Description, &c.ZoneID, &c.CreatedAt, &c.LastUpdatedAt,
			&z.ZoneID, &z.Province, &z.District, &z.CreatedAt, &z.LastUpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan concept", err)
		}
		c.Zone = &z
		concepts = append(concepts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read concept rows", err)
	}
	return concepts, nil
}

func (r *PgxCatalogRepository) DeleteConcept(ctx context.Context, conceptID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM concepts WHERE concept_id = $1;`, conceptID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Transaction-bound implementation ---

// pgxCatalogTx implements portsrepo.CatalogTx over an open pgx transaction.
type pgxCatalogTx struct {
	tx pgx.Tx
}

var _ portsrepo.CatalogTx = (*pgxCatalogTx)(nil)

func (t *pgxCatalogTx) FindZoneByProvinceDistrict(ctx context.Context, province, district string) (*domain.Zone, error) {
	return findZoneByProvinceDistrict(ctx, t.tx, province, district)
}

func (t *pgxCatalogTx) InsertZone(ctx context.Context, zone domain.Zone) error {
	return insertZone(ctx, t.tx, zone)
}

func (t *pgxCatalogTx) InsertConcept(ctx context.Context, concept domain.Concept) error {
	return insertConcept(ctx, t.tx, concept)
}
