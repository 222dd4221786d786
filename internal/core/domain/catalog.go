package domain

// DocumentType classifies movements (deposit, withdrawal, transfer, ...).
// CurrentConsecutive tracks the highest numeric document number seen for the
// type; it is advisory only and never gates movement creation.
type DocumentType struct {
	DocumentTypeID     string `json:"documentTypeID"` // Primary Key (UUID)
	Code               string `json:"code"`           // Unique, stored uppercased
	Description        string `json:"description"`
	CurrentConsecutive int64  `json:"currentConsecutive"`
	AuditFields
}

// Zone is a (province, district) pair grouping concepts geographically.
// The pair is unique; a zone cannot be deleted while it owns concepts.
type Zone struct {
	ZoneID   string `json:"zoneID"` // Primary Key (UUID)
	Province string `json:"province"`
	District string `json:"district"`
	AuditFields
}

// Concept is a categorization label for movements, scoped to a zone.
// A concept cannot be deleted while any movement references it.
type Concept struct {
	ConceptID   string `json:"conceptID"` // Primary Key (UUID)
	Description string `json:"description"`
	ZoneID      string `json:"zoneID"` // FK -> zones.zone_id
	AuditFields
	Zone *Zone `json:"zone,omitempty"` // Populated on joined reads
}
