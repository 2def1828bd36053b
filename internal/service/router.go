package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/constants"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/metrics"
	"go.uber.org/zap"
)

// Route names used in audit details and metrics labels.
const (
	RouteSMSCredits      = "sms_credits"
	RouteWhatsAppCredits = "whatsapp_credits"
	RouteServicePayment  = "isp_service"
	RouteCustomerPayment = "customer"
	RouteUnknown         = "unknown"
)

// customerRefPattern matches subscriber account codes: one to four digits
// followed by at least two letters.
var customerRefPattern = regexp.MustCompile(`^\d{1,4}[a-zA-Z]{2}`)

// PaymentRouterService classifies a payment by its billing reference and
// dispatches it to exactly one handler.
type PaymentRouterService interface {
	Process(ctx context.Context, cmd PaymentCommand) ProcessResult
}

type routeRule struct {
	name   string
	match  func(billRef string) bool
	handle func(ctx context.Context, cmd PaymentCommand) (ProcessResult, error)
}

type paymentRouter struct {
	rules    []routeRule
	audit    AuditLogger
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewPaymentRouter builds the ordered rule list. First match wins, so the
// prefix rules shadow the customer pattern for any reference that could
// ambiguously match both.
func NewPaymentRouter(customer CustomerPaymentService, credits CreditPurchaseService,
	servicePay ServicePaymentService, audit AuditLogger, notifier Notifier,
	metrics *metrics.Metrics, logger *zap.Logger) PaymentRouterService {
	rules := []routeRule{
		{
			name:   RouteSMSCredits,
			match:  func(ref string) bool { return strings.HasPrefix(strings.ToLower(ref), "sms") },
			handle: credits.PurchaseSMS,
		},
		{
			name:   RouteWhatsAppCredits,
			match:  func(ref string) bool { return strings.HasPrefix(strings.ToLower(ref), "wa") },
			handle: credits.PurchaseWhatsApp,
		},
		{
			name:   RouteServicePayment,
			match:  func(ref string) bool { return strings.HasPrefix(strings.ToLower(ref), "acc") },
			handle: servicePay.Process,
		},
		{
			name:   RouteCustomerPayment,
			match:  customerRefPattern.MatchString,
			handle: customer.Process,
		},
	}

	return &paymentRouter{rules: rules, audit: audit, notifier: notifier, metrics: metrics, logger: logger}
}

func (r *paymentRouter) Process(ctx context.Context, cmd PaymentCommand) ProcessResult {
	if r.metrics != nil {
		r.metrics.RecordPaymentReceived()
	}

	r.logger.Info("Processing payment",
		zap.String("transactionID", cmd.TransactionID),
		zap.String("billRef", cmd.BillRef),
		zap.String("amount", cmd.Amount.String()))

	r.audit.Log(ctx, cmd.TransactionID, CategoryPaymentReceived,
		fmt.Sprintf("Payment received - Reference: %s, Amount: %s", cmd.BillRef, FormatCurrency(cmd.Amount)),
		map[string]interface{}{
			"billRef": cmd.BillRef,
			"amount":  cmd.Amount.String(),
			"route":   r.classify(cmd.BillRef),
		})

	for _, rule := range r.rules {
		if !rule.match(cmd.BillRef) {
			continue
		}

		result, err := rule.handle(ctx, cmd)
		if err != nil {
			r.logger.Error("Payment handler failed",
				zap.String("transactionID", cmd.TransactionID),
				zap.String("route", rule.name),
				zap.Error(err))
			r.audit.Log(ctx, cmd.TransactionID, CategoryFatalError,
				"Payment handler failed",
				map[string]interface{}{"route": rule.name, "error": err.Error()})
			result = ProcessResult{Success: false, Error: err.Error()}
		}

		if r.metrics != nil {
			r.metrics.RecordPaymentProcessed(rule.name, statusLabel(result))
		}

		return result
	}

	return r.unknownReference(ctx, cmd)
}

func (r *paymentRouter) unknownReference(ctx context.Context, cmd PaymentCommand) ProcessResult {
	r.audit.Log(ctx, cmd.TransactionID, CategoryUnknownReference,
		"Unknown payment reference format",
		map[string]interface{}{"billRef": cmd.BillRef, "amount": cmd.Amount.String()})

	r.notifier.NotifyAdmins(ctx, fmt.Sprintf("UNKNOWN PAYMENT REFERENCE\nReference: %s\nAmount: %s\nTransaction: %s",
		cmd.BillRef, FormatCurrency(cmd.Amount), cmd.TransactionID))

	if r.metrics != nil {
		r.metrics.RecordPaymentProcessed(RouteUnknown, "failure")
	}

	return ProcessResult{Success: false, Reason: constants.ReasonUnknownReference}
}

func (r *paymentRouter) classify(billRef string) string {
	for _, rule := range r.rules {
		if rule.match(billRef) {
			return rule.name
		}
	}
	return RouteUnknown
}

func statusLabel(result ProcessResult) string {
	if result.Success {
		return "success"
	}
	return "failure"
}
