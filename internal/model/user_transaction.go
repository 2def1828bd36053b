package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const PaymentMethodMpesa = "mpesa"

// UserTransaction is the append-only audit row written for every successful
// customer payment.
type UserTransaction struct {
	ID           int64           `gorm:"primaryKey;autoIncrement;<-:create"`
	ISPID        uint            `gorm:"column:isp_id;not null;index"`
	SubscriberID uint            `gorm:"column:pppoe_user_id;not null;index"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	Method       string          `gorm:"column:method;type:varchar(20);not null"`
	Reference    string          `gorm:"column:reference;type:varchar(50)"`
	ReceivedAt   time.Time       `gorm:"column:received_at;default:CURRENT_TIMESTAMP"`
}

func (UserTransaction) TableName() string {
	return "user_transactions_in"
}
