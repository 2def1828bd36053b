package constants

const ErrCodeOperationFailed = "OPERATION_FAILED"

// Business outcomes reported in the processing result body. These are not HTTP
// errors: the gateway always gets a 200 acknowledgement for a routed payment.
const (
	ReasonUnknownReference     = "unknown_reference"
	ReasonUserNotFound         = "user_not_found"
	ReasonISPNotFound          = "isp_not_found"
	ReasonDuplicateTransaction = "duplicate_transaction"
)

const (
	ErrMsgMissingTransID = "Missing TransID"
	ErrMsgMalformedBody  = "Invalid request body"
)
