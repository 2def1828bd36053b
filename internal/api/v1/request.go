package v1

// CallbackRequest mirrors the mobile-money gateway's paybill confirmation
// payload. Amount fields come in as either numbers or strings, so they stay
// untyped until the normalizer sees them. Only TransID is mandatory; every
// other missing field is defaulted downstream rather than rejected.
type CallbackRequest struct {
	TransactionType   string      `json:"TransactionType"`
	TransID           string      `json:"TransID" validate:"required"`
	TransTime         string      `json:"TransTime"`
	TransAmount       interface{} `json:"TransAmount"`
	BusinessShortCode string      `json:"BusinessShortCode"`
	BillRefNumber     string      `json:"BillRefNumber"`
	InvoiceNumber     string      `json:"InvoiceNumber"`
	OrgAccountBalance interface{} `json:"OrgAccountBalance"`
	ThirdPartyTransID string      `json:"ThirdPartyTransID"`
	MSISDN            string      `json:"MSISDN"`
	FirstName         string      `json:"FirstName"`
}
