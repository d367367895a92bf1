package models

import "time"

// Delivery outcomes. The stored row keeps the outcome of the first accepted
// processing; redeliveries short-circuit on the unique key and report
// DELIVERY_ACCEPTED_DUPLICATE to the caller without touching the row.
const (
	DELIVERY_ACCEPTED_NEW       = "accepted_new"
	DELIVERY_ACCEPTED_DUPLICATE = "accepted_duplicate"
	DELIVERY_REJECTED_SIGNATURE = "rejected_signature"
	DELIVERY_REJECTED_SCHEMA    = "rejected_schema"
)

// WebhookDelivery is the durable idempotency and audit record for inbound
// provider notifications. The unique (provider, external_txn_id) key
// guarantees at most one "new processing" path per notification.
type WebhookDelivery struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Provider         string     `gorm:"type:varchar(20);not null;index:ux_webhook_deliveries_provider_txn,unique,priority:1" json:"provider"`
	ExternalTxnID    string     `gorm:"type:varchar(100);not null;index:ux_webhook_deliveries_provider_txn,unique,priority:2" json:"external_txn_id"`
	Outcome          string     `gorm:"type:varchar(30);not null;index" json:"outcome"`
	ReceivedAt       time.Time  `gorm:"not null" json:"received_at"`
	PaymentEventID   *uint      `gorm:"index" json:"payment_event_id,omitempty"`
	ReconciliationID *uint      `gorm:"index" json:"reconciliation_id,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
