package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/config"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/constants"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/metrics"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreditPurchaseService interface {
	PurchaseSMS(ctx context.Context, cmd PaymentCommand) (ProcessResult, error)
	PurchaseWhatsApp(ctx context.Context, cmd PaymentCommand) (ProcessResult, error)
}

type creditPurchase struct {
	txManager repository.TxManager
	isps      repository.ISPRepository
	credits   repository.CreditRepository
	audit     AuditLogger
	notifier  Notifier
	metrics   *metrics.Metrics
	logger    *zap.Logger

	smsUnitPrice      decimal.Decimal
	whatsappUnitPrice decimal.Decimal
}

func NewCreditPurchaseService(txManager repository.TxManager, isps repository.ISPRepository,
	credits repository.CreditRepository, audit AuditLogger, notifier Notifier,
	cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger) CreditPurchaseService {
	return &creditPurchase{
		txManager:         txManager,
		isps:              isps,
		credits:           credits,
		audit:             audit,
		notifier:          notifier,
		metrics:           metrics,
		logger:            logger,
		smsUnitPrice:      decimal.NewFromFloat(cfg.Credits.SMSUnitPrice),
		whatsappUnitPrice: decimal.NewFromFloat(cfg.Credits.WhatsAppUnitPrice),
	}
}

// creditRoute bundles the per-type differences so both purchase paths share
// one flow.
type creditRoute struct {
	creditType  string
	unitPrice   decimal.Decimal
	unitLabel   string
	startCat    string
	notFoundCat string
	completeCat string
	errorCat    string
	lookup      func(code string) (*model.ISP, error)
}

func (s *creditPurchase) PurchaseSMS(ctx context.Context, cmd PaymentCommand) (ProcessResult, error) {
	return s.purchase(ctx, cmd, creditRoute{
		creditType:  model.CreditTypeSMS,
		unitPrice:   s.smsUnitPrice,
		unitLabel:   "SMS",
		startCat:    CategorySMSStart,
		notFoundCat: CategorySMSISPNotFound,
		completeCat: CategorySMSComplete,
		errorCat:    CategorySMSError,
		lookup:      s.isps.FindBySMSAccount,
	})
}

func (s *creditPurchase) PurchaseWhatsApp(ctx context.Context, cmd PaymentCommand) (ProcessResult, error) {
	return s.purchase(ctx, cmd, creditRoute{
		creditType:  model.CreditTypeWhatsApp,
		unitPrice:   s.whatsappUnitPrice,
		unitLabel:   "WhatsApp",
		startCat:    CategoryWhatsAppStart,
		notFoundCat: CategoryWhatsAppISPMissing,
		completeCat: CategoryWhatsAppComplete,
		errorCat:    CategoryWhatsAppError,
		lookup:      s.isps.FindByWhatsAppAccount,
	})
}

func (s *creditPurchase) purchase(ctx context.Context, cmd PaymentCommand, route creditRoute) (ProcessResult, error) {
	s.audit.Log(ctx, cmd.TransactionID, route.startCat,
		fmt.Sprintf("Starting %s credits processing", route.unitLabel),
		map[string]interface{}{"billRef": cmd.BillRef, "amount": cmd.Amount.String()})

	isp, err := route.lookup(cmd.BillRef)
	if err != nil {
		if errors.Is(err, repository.ErrISPNotFound) {
			s.logger.Warn("ISP not found for credit account",
				zap.String("creditType", route.creditType),
				zap.String("billRef", cmd.BillRef))
			s.audit.Log(ctx, cmd.TransactionID, route.notFoundCat,
				"ISP not found for credit account",
				map[string]interface{}{"billRef": cmd.BillRef})
			return ProcessResult{Success: false, Reason: constants.ReasonISPNotFound}, nil
		}
		return ProcessResult{}, err
	}

	// Floor division: fractional remainders are forfeited, not refunded.
	granted := cmd.Amount.Div(route.unitPrice).IntPart()

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		ledger := model.CreditTransaction{
			ISPID:           isp.ID,
			TransactionType: model.CreditTransactionTypePurchase,
			CreditType:      route.creditType,
			Amount:          granted,
			UnitPrice:       route.unitPrice,
			TotalAmount:     cmd.Amount,
			Reference:       cmd.TransactionID,
			Description:     fmt.Sprintf("Purchased %d %s credits via M-Pesa", granted, route.unitLabel),
		}
		ledgerStart := time.Now()
		if err := s.credits.CreateTransaction(ctx, &ledger); err != nil {
			recordDBQuery(s.metrics, "insert", "credit_transactions", "error", ledgerStart)
			return err
		}
		recordDBQuery(s.metrics, "insert", "credit_transactions", "success", ledgerStart)

		countersStart := time.Now()
		if err := s.credits.AddCredits(ctx, isp.ID, route.creditType, granted); err != nil {
			recordDBQuery(s.metrics, "upsert", "isp_credits", "error", countersStart)
			return err
		}
		recordDBQuery(s.metrics, "upsert", "isp_credits", "success", countersStart)

		return nil
	})

	if err != nil {
		s.audit.Log(ctx, cmd.TransactionID, route.errorCat,
			fmt.Sprintf("Error during %s credits processing", route.unitLabel),
			map[string]interface{}{"error": err.Error()})
		return ProcessResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if s.metrics != nil {
		s.metrics.RecordCreditsGranted(route.creditType, granted)
	}

	s.audit.Log(ctx, cmd.TransactionID, route.completeCat,
		fmt.Sprintf("%s credits processed", route.unitLabel),
		map[string]interface{}{
			"ispId":   isp.ID,
			"ispName": isp.Name,
			"credits": granted,
			"amount":  cmd.Amount.String(),
		})

	s.notifier.NotifyAdmins(ctx, fmt.Sprintf("%s CREDITS PURCHASED\nISP: %s\nCredits: %d\nAmount: %s",
		route.unitLabel, isp.Name, granted, FormatCurrency(cmd.Amount)))
	s.notifier.NotifyISP(ctx, isp.ID, fmt.Sprintf("%s Credits Purchased\nHi %s,\nYour %s wallet was topped up.\nCredits: %d\nAmount: %s",
		route.unitLabel, isp.Name, route.unitLabel, granted, FormatCurrency(cmd.Amount)))

	s.logger.Info("Credits processed",
		zap.String("creditType", route.creditType),
		zap.Int64("credits", granted),
		zap.String("isp", isp.Name))

	return ProcessResult{Success: true, Credits: granted, ISP: isp.Name}, nil
}
