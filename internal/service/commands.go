package service

import "github.com/shopspring/decimal"

// PaymentCommand is the normalized form of one inbound callback, built by the
// ingress handler. Missing fields arrive as empty strings or zero amounts.
type PaymentCommand struct {
	TransactionID     string
	TransactionType   string
	TransactionTime   string
	Amount            decimal.Decimal
	BusinessShortCode string
	BillRef           string
	InvoiceNumber     string
	OrgAccountBalance decimal.Decimal
	ThirdPartyTransID string
	PayerMSISDN       string
	PayerFirstName    string
}

// ProcessResult is the routing outcome echoed inside the HTTP acknowledgement.
// Success=false with a Reason is a business outcome; Error carries the message
// of a transactional failure.
type ProcessResult struct {
	Success             bool            `json:"success"`
	Reason              string          `json:"reason,omitempty"`
	Error               string          `json:"error,omitempty"`
	User                string          `json:"user,omitempty"`
	Amount              decimal.Decimal `json:"amount,omitempty"`
	ReconnectionStatus  string          `json:"reconnectionStatus,omitempty"`
	WalletUpdated       bool            `json:"walletUpdated,omitempty"`
	TransactionRecorded bool            `json:"transactionRecorded,omitempty"`
	Credits             int64           `json:"credits,omitempty"`
	ISP                 string          `json:"isp,omitempty"`
	NewBalance          decimal.Decimal `json:"newBalance,omitempty"`
}
