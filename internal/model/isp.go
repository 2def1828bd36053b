package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ISP account-code columns are the lookup targets for the three non-customer
// payment routes: smsaccount, waaccount and pay_account_number.
type ISP struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	Name             string `gorm:"column:name;type:varchar(100)"`
	ContactPhone     string `gorm:"column:contact_phone;type:varchar(20)"`
	SMSAccount       string `gorm:"column:smsaccount;type:varchar(50);index"`
	WhatsAppAccount  string `gorm:"column:waaccount;type:varchar(50);index"`
	PayAccountNumber string `gorm:"column:pay_account_number;type:varchar(50);index"`
}

func (ISP) TableName() string {
	return "isps"
}

// ISPWallet holds an ISP-scoped running balance. Created lazily on the first
// payment and only ever credited additively by this service.
type ISPWallet struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;<-:create"`
	ISPID       uint            `gorm:"column:isp_id;uniqueIndex"`
	Balance     decimal.Decimal `gorm:"column:balance;type:decimal(14,2)"`
	LastUpdated time.Time       `gorm:"column:last_updated"`
}

func (ISPWallet) TableName() string {
	return "isp_wallet"
}
