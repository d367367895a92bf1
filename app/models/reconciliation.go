package models

import "time"

const (
	RECON_MATCHED   = "matched"
	RECON_UNMATCHED = "unmatched"
	RECON_MANUAL    = "manual"
)

const (
	MATCH_TYPE_EXACT = "exact"
	MATCH_TYPE_FUZZY = "fuzzy"
)

// Reconciliation links a confirmed payment notification to a pending
// collection, or records that no candidate was found. At most one MATCHED
// reconciliation may ever exist per collection; the matcher's conditional
// claim on the collection row enforces that.
type Reconciliation struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	CollectionID *uint              `gorm:"index" json:"collection_id,omitempty"`
	Collection   *PendingCollection `gorm:"foreignKey:CollectionID" json:"-"`
	DeliveryID   *uint              `gorm:"index" json:"delivery_id,omitempty"`
	Delivery     *WebhookDelivery   `gorm:"foreignKey:DeliveryID" json:"-"`
	Outcome      string             `gorm:"type:varchar(20);not null;index" json:"outcome"`
	MatchType    string             `gorm:"type:varchar(20);default:''" json:"match_type"`
	DecidedAt    time.Time          `gorm:"not null" json:"decided_at"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

// IsMatched reports whether the reconciliation linked a collection.
func (r *Reconciliation) IsMatched() bool {
	return r.Outcome == RECON_MATCHED || r.Outcome == RECON_MANUAL
}
