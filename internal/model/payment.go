package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaybillPayment is the raw mobile-money callback, persisted verbatim as an
// audit trail row before any routing happens. Never updated after insert.
type PaybillPayment struct {
	ID                int64           `gorm:"primaryKey;autoIncrement;<-:create"`
	TransactionType   string          `gorm:"column:transaction_type;type:varchar(50)"`
	TransID           string          `gorm:"column:trans_id;type:varchar(50);uniqueIndex:idx_trans_id"`
	TransTime         string          `gorm:"column:trans_time;type:varchar(20)"`
	TransAmount       decimal.Decimal `gorm:"column:trans_amount;type:decimal(12,2)"`
	BusinessShortCode string          `gorm:"column:business_short_code;type:varchar(20)"`
	BillRefNumber     string          `gorm:"column:bill_ref_number;type:varchar(50)"`
	InvoiceNumber     string          `gorm:"column:invoice_number;type:varchar(50)"`
	OrgAccountBalance decimal.Decimal `gorm:"column:org_account_balance;type:decimal(14,2)"`
	ThirdPartyTransID string          `gorm:"column:third_party_trans_id;type:varchar(50)"`
	MSISDN            string          `gorm:"column:msisdn;type:varchar(20)"`
	FirstName         string          `gorm:"column:first_name;type:varchar(100)"`
	ReceivedAt        time.Time       `gorm:"column:received_at;default:CURRENT_TIMESTAMP"`
}

func (PaybillPayment) TableName() string {
	return "paybill_payments"
}
