package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CreditTypeSMS      = "sms"
	CreditTypeWhatsApp = "whatsapp"

	CreditTransactionTypePurchase = "purchase"
)

// CreditTransaction is one immutable ledger row per credit purchase. Amount is
// the integer number of credits granted, TotalAmount the money paid for them.
type CreditTransaction struct {
	ID              int64           `gorm:"primaryKey;autoIncrement;<-:create"`
	ISPID           uint            `gorm:"column:isp_id;not null;index"`
	TransactionType string          `gorm:"column:transaction_type;type:varchar(20);not null"`
	CreditType      string          `gorm:"column:credit_type;type:varchar(20);not null"`
	Amount          int64           `gorm:"column:amount;not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:decimal(6,2)"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)"`
	Reference       string          `gorm:"column:reference;type:varchar(50)"`
	Description     string          `gorm:"column:description;type:varchar(255)"`
	CreatedAt       time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}

// ISPCredit carries the integer credit counters per ISP. Counters are only
// incremented here; spending them is another service's business.
type ISPCredit struct {
	ISPID           uint  `gorm:"column:isp_id;primaryKey"`
	SMSCredits      int64 `gorm:"column:sms_credits;not null;default:0"`
	WhatsAppCredits int64 `gorm:"column:whatsapp_credits;not null;default:0"`
}

func (ISPCredit) TableName() string {
	return "isp_credits"
}
