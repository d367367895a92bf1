package models

import "time"

const (
	ALERT_DEPOSIT_DELAY = "deposit_delay"
	ALERT_NO_UPDATE     = "no_update"
	ALERT_VARIANCE      = "variance"
)

const (
	SEVERITY_WARNING  = "warning"
	SEVERITY_ERROR    = "error"
	SEVERITY_CRITICAL = "critical"
)

const (
	ALERT_OPEN         = "open"
	ALERT_ACKNOWLEDGED = "acknowledged"
	ALERT_RESOLVED     = "resolved"
)

// Alert is a persisted alert candidate emitted by the reconciliation ledger
// (VARIANCE) or the SLA sweep (DEPOSIT_DELAY, NO_UPDATE). The unique
// (type, account_id, alert_date, reference) key makes repeated sweep runs
// idempotent. Sweep alerts leave Reference empty, so they dedup per account
// and day; variance alerts carry the provider transaction reference so
// distinct unmatched payments on the same day each keep their own alert.
// AccountID and BankID are zero for variance alerts, which could not be tied
// to any tenant row; those surface as system alerts to every bank's listing.
type Alert struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BankID       uint      `gorm:"index" json:"bank_id"`
	Type         string    `gorm:"type:varchar(30);not null;index:ux_alerts_type_account_date,unique,priority:1" json:"type"`
	AccountID    uint      `gorm:"not null;default:0;index:ux_alerts_type_account_date,unique,priority:2" json:"account_id"`
	AlertDate    string    `gorm:"type:varchar(10);not null;index:ux_alerts_type_account_date,unique,priority:3" json:"alert_date"`
	Reference    string    `gorm:"type:varchar(130);not null;default:'';index:ux_alerts_type_account_date,unique,priority:4" json:"reference"`
	Severity     string    `gorm:"type:varchar(20);not null;index" json:"severity"`
	CollectionID *uint     `gorm:"index" json:"collection_id,omitempty"`
	Description  string    `gorm:"type:text" json:"description"`
	Status       string    `gorm:"type:varchar(20);default:'open';index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AlertDateFor formats the dedup day bucket for a timestamp.
func AlertDateFor(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
