package service

import (
	"context"
	"encoding/json"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"go.uber.org/zap"
)

// Audit categories, one fixed vocabulary per processing stage. A transaction's
// full path can be replayed by selecting its entries in order.
const (
	CategoryPaymentReceived    = "PAYMENT_RECEIVED"
	CategoryUnknownReference   = "UNKNOWN_REFERENCE"
	CategoryCustomerStart      = "CUSTOMER_PAYMENT_START"
	CategoryUserNotFound       = "USER_NOT_FOUND"
	CategoryUserFound          = "USER_FOUND"
	CategoryTransactionDone    = "TRANSACTION_RECORDED"
	CategoryWalletUpdated      = "WALLET_UPDATED"
	CategoryReconnectAttempt   = "RECONNECT_ATTEMPT"
	CategoryReconnectSuccess   = "RECONNECTION_SUCCESS"
	CategoryReconnectFailed    = "RECONNECTION_FAILED"
	CategoryNoRouterConfig     = "NO_ROUTER_CONFIG"
	CategoryInsufficientAmount = "INSUFFICIENT_PAYMENT"
	CategoryProcessingComplete = "PROCESSING_COMPLETE"
	CategoryProcessingError    = "PROCESSING_ERROR"
	CategoryFatalError         = "FATAL_ERROR"
	CategorySMSStart           = "SMS_PROCESSING_START"
	CategorySMSISPNotFound     = "SMS_ISP_NOT_FOUND"
	CategorySMSComplete        = "SMS_PROCESSING_COMPLETE"
	CategorySMSError           = "SMS_PROCESSING_ERROR"
	CategoryWhatsAppStart      = "WHATSAPP_PROCESSING_START"
	CategoryWhatsAppISPMissing = "WHATSAPP_ISP_NOT_FOUND"
	CategoryWhatsAppComplete   = "WHATSAPP_PROCESSING_COMPLETE"
	CategoryWhatsAppError      = "WHATSAPP_PROCESSING_ERROR"
	CategoryServiceStart       = "ISP_SERVICE_PAYMENT_START"
	CategoryServiceISPMissing  = "ISP_SERVICE_NOT_FOUND"
	CategoryServiceComplete    = "ISP_SERVICE_PAYMENT_COMPLETE"
	CategoryServiceError       = "ISP_SERVICE_PAYMENT_ERROR"
)

// AuditLogger records every significant step of a payment's lifecycle to the
// append-only debug log. Calls are fire-and-forget: a failed write is logged
// and swallowed, it must never fail the payment it describes.
type AuditLogger interface {
	Log(ctx context.Context, transactionID string, category string, message string, details map[string]interface{})
}

type auditLogger struct {
	repo   repository.DebugLogRepository
	logger *zap.Logger
}

func NewAuditLogger(repo repository.DebugLogRepository, logger *zap.Logger) AuditLogger {
	return &auditLogger{repo: repo, logger: logger}
}

func (a *auditLogger) Log(ctx context.Context, transactionID string, category string, message string, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}

	entry := model.DebugLog{
		TransactionID: transactionID,
		Category:      category,
		Message:       message,
		Details:       payload,
	}

	if err := a.repo.Create(ctx, &entry); err != nil {
		a.logger.Warn("Failed to write debug log entry",
			zap.String("transactionID", transactionID),
			zap.String("category", category),
			zap.Error(err))
		return
	}

	a.logger.Debug("DEBUG "+category,
		zap.String("transactionID", transactionID),
		zap.String("message", message))
}
