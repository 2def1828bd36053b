package model

import (
	"time"

	"gorm.io/datatypes"
)

// DebugLog is one append-only entry in a transaction's processing trail.
// Entries are written outside the payment transaction so they survive a
// rollback and still tell the forensic story.
type DebugLog struct {
	ID            int64          `gorm:"primaryKey;autoIncrement;<-:create"`
	TransactionID string         `gorm:"column:transaction_id;type:varchar(255);not null;index:idx_transaction_id"`
	Category      string         `gorm:"column:category;type:varchar(100);not null;index:idx_category"`
	Message       string         `gorm:"column:message;type:text;not null"`
	Details       datatypes.JSON `gorm:"column:details"`
	CreatedAt     time.Time      `gorm:"column:created_at;default:CURRENT_TIMESTAMP;index:idx_created_at"`
}

func (DebugLog) TableName() string {
	return "payment_debug_log"
}
