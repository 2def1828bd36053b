package contract

// CallbackResponse acknowledges an accepted callback. Success here means the
// callback was received and routed; whether the business routing itself
// succeeded is inside ProcessingResult.
type CallbackResponse struct {
	Success          bool        `json:"success"`
	Processed        bool        `json:"processed"`
	TransactionID    string      `json:"transactionId"`
	ProcessingResult interface{} `json:"processingResult"`
	Timestamp        string      `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Service   string `json:"service,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}
