package dto

import (
	"github.com/bankpro/bankpro_backend/internal/core/domain"
)

// CreateDocumentTypeRequest carries the data to create a document type.
type CreateDocumentTypeRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// DocumentTypeResponse is the representation of a document type.
type DocumentTypeResponse struct {
	DocumentTypeID     string `json:"documentTypeID"`
	Code               string `json:"code"`
	Description        string `json:"description"`
	CurrentConsecutive int64  `json:"currentConsecutive"`
}

// CreateZoneRequest carries the data to create a zone.
type CreateZoneRequest struct {
	Province string `json:"province" binding:"required"`
	District string `json:"district" binding:"required"`
}

// BulkZonesRequest carries a batch of zones to register, skipping duplicates.
type BulkZonesRequest struct {
	Items []CreateZoneRequest `json:"items" binding:"required,min=1,dive"`
}

// ZoneResponse is the representation of a zone.
type ZoneResponse struct {
	ZoneID   string `json:"zoneID"`
	Province string `json:"province"`
	District string `json:"district"`
}

// CreateConceptRequest carries the data to create a concept under a zone.
type CreateConceptRequest struct {
	Description string `json:"description" binding:"required"`
	ZoneID      string `json:"zoneID" binding:"required"`
}

// ConceptResponse is the representation of a concept.
type ConceptResponse struct {
	ConceptID   string        `json:"conceptID"`
	Description string        `json:"description"`
	ZoneID      string        `json:"zoneID"`
	Zone        *ZoneResponse `json:"zone,omitempty"`
}

// BulkConceptRow is a single row of a bulk concept import. Province/District
// are ignored when the batch carries a fixed zone ID.
type BulkConceptRow struct {
	Concept  string `json:"concept"`
	Province string `json:"province"`
	District string `json:"district"`
}

// BulkImportConceptsRequest carries a batch of concept rows. When FixedZoneID
// is set every row is created under that zone; otherwise each row's
// (province, district) pair is resolved or created.
type BulkImportConceptsRequest struct {
	Items       []BulkConceptRow `json:"items" binding:"required,min=1"`
	FixedZoneID *string          `json:"fixedZoneID"`
}

// BulkImportResponse reports how many rows a bulk import actually inserted.
type BulkImportResponse struct {
	InsertedCount int64 `json:"insertedCount"`
}

// MovementConfigResponse bundles the reference data the movement entry screen
// needs in one round trip.
type MovementConfigResponse struct {
	DocumentTypes []DocumentTypeResponse `json:"documentTypes"`
	Zones         []ZoneResponse         `json:"zones"`
}

// ToDocumentTypeResponse converts a domain.DocumentType to DocumentTypeResponse.
func ToDocumentTypeResponse(dt *domain.DocumentType) DocumentTypeResponse {
	return DocumentTypeResponse{
		DocumentTypeID:     dt.DocumentTypeID,
		Code:               dt.Code,
		Description:        dt.Description,
		CurrentConsecutive: dt.CurrentConsecutive,
	}
}

// ToDocumentTypeResponses converts a slice of document types.
func ToDocumentTypeResponses(dts []domain.DocumentType) []DocumentTypeResponse {
	responses := make([]DocumentTypeResponse, len(dts))
	for i := range dts {
		responses[i] = ToDocumentTypeResponse(&dts[i])
	}
	return responses
}

// ToZoneResponse converts a domain.Zone to ZoneResponse.
func ToZoneResponse(z *domain.Zone) ZoneResponse {
	return ZoneResponse{
		ZoneID:   z.ZoneID,
		Province: z.Province,
		District: z.District,
	}
}

// ToZoneResponses converts a slice of zones.
func ToZoneResponses(zs []domain.Zone) []ZoneResponse {
	responses := make([]ZoneResponse, len(zs))
	for i := range zs {
		responses[i] = ToZoneResponse(&zs[i])
	}
	return responses
}

// ToConceptResponse converts a domain.Concept to ConceptResponse.
func ToConceptResponse(c *domain.Concept) ConceptResponse {
	resp := ConceptResponse{
		ConceptID:   c.ConceptID,
		Description: c.Description,
		ZoneID:      c.ZoneID,
	}
	if c.Zone != nil {
		zr := ToZoneResponse(c.Zone)
		resp.Zone = &zr
	}
	return resp
}

// ToConceptResponses converts a slice of concepts.
func ToConceptResponses(cs []domain.Concept) []ConceptResponse {
	responses := make([]ConceptResponse, len(cs))
	for i := range cs {
		responses[i] = ToConceptResponse(&cs[i])
	}
	return responses
}
