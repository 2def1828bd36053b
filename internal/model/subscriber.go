package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SubscriberStatusActive    = "active"
	SubscriberStatusSuspended = "suspended"
)

// Subscriber is a PPPoE customer. AccountName is the billing-reference match
// key on incoming payments; PackageAmount is the expected recurring charge.
type Subscriber struct {
	ID                uint            `gorm:"primaryKey;autoIncrement"`
	FullName          string          `gorm:"column:full_name;type:varchar(100)"`
	Username          string          `gorm:"column:username;type:varchar(50)"`
	AccountName       string          `gorm:"column:account_name;type:varchar(50);uniqueIndex"`
	PackageAmount     decimal.Decimal `gorm:"column:amount;type:decimal(12,2)"`
	RouterID          *uint           `gorm:"column:router_id"`
	ISPID             uint            `gorm:"column:isp_id"`
	Status            string          `gorm:"column:status;type:varchar(20)"`
	NextPaymentDate   *time.Time      `gorm:"column:next_payment_date;type:date"`
	LastReconnectedAt *time.Time      `gorm:"column:last_reconnected_at"`

	Router *NetworkRouter `gorm:"foreignKey:RouterID"`
	ISP    *ISP           `gorm:"foreignKey:ISPID"`
}

func (Subscriber) TableName() string {
	return "pppoe_users"
}

// NetworkRouter is read-only reference data for reconnection calls.
type NetworkRouter struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	LocalIP string `gorm:"column:local_ip;type:varchar(45)"`
	Name    string `gorm:"column:router_name;type:varchar(100)"`
}

func (NetworkRouter) TableName() string {
	return "routers"
}
