package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	NOTIFICATION_MATCHED   = "matched"
	NOTIFICATION_UNMATCHED = "unmatched"
	NOTIFICATION_ALERT     = "alert"
	NOTIFICATION_SYSTEM    = "system"
)

// Notification is an outbound record of a reconciliation outcome or alert,
// surfaced to bank operations (and optionally mirrored via email).
type Notification struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BankID      uint           `gorm:"index" json:"bank_id"`
	Type        string         `gorm:"type:varchar(50)" json:"type" validate:"oneof=matched unmatched alert system"`
	Content     string         `gorm:"type:text" json:"content"`
	IsRead      bool           `gorm:"default:false" json:"is_read"`
	ReferenceID uint           `json:"reference_id"` // id of the reconciliation or alert this refers to
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarkAsRead marks a notification as read.
func (n *Notification) MarkAsRead(db *gorm.DB) error {
	n.IsRead = true
	return db.Model(n).Update("is_read", true).Error
}

// CreateNotification stores a new notification row.
func CreateNotification(db *gorm.DB, bankID uint, notificationType string, content string, referenceID uint) error {
	notification := Notification{
		BankID:      bankID,
		Type:        notificationType,
		Content:     content,
		ReferenceID: referenceID,
		IsRead:      false,
	}

	return db.Create(&notification).Error
}
