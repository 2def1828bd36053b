package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/constants"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/metrics"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/onenetwo/billing-services/callbackprocessor/pkg/netcontrol"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Reconnection outcomes surfaced in the processing result and notifications.
const (
	ReconnectionNotAttempted = "Not attempted"
	ReconnectionConnected    = "CONNECTED"
	ReconnectionFailedDate   = "FAILED (DATE UPDATED)"
	ReconnectionNoRouter     = "NO ROUTER CONFIGURED"
	ReconnectionInsufficient = "INSUFFICIENT PAYMENT"
)

type CustomerPaymentService interface {
	Process(ctx context.Context, cmd PaymentCommand) (ProcessResult, error)
}

type customerPayment struct {
	txManager   repository.TxManager
	subscribers repository.SubscriberRepository
	wallets     repository.WalletRepository
	userTxs     repository.UserTransactionRepository
	devices     netcontrol.Client
	audit       AuditLogger
	notifier    Notifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewCustomerPaymentService(txManager repository.TxManager, subscribers repository.SubscriberRepository,
	wallets repository.WalletRepository, userTxs repository.UserTransactionRepository,
	devices netcontrol.Client, audit AuditLogger, notifier Notifier,
	metrics *metrics.Metrics, logger *zap.Logger) CustomerPaymentService {
	return &customerPayment{
		txManager:   txManager,
		subscribers: subscribers,
		wallets:     wallets,
		userTxs:     userTxs,
		devices:     devices,
		audit:       audit,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *customerPayment) Process(ctx context.Context, cmd PaymentCommand) (ProcessResult, error) {
	s.audit.Log(ctx, cmd.TransactionID, CategoryCustomerStart,
		"Starting customer payment processing",
		map[string]interface{}{"billRef": cmd.BillRef, "amount": cmd.Amount.String()})

	sub, err := s.subscribers.FindByAccountName(cmd.BillRef)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriberNotFound) {
			s.logger.Warn("Subscriber not found for account name", zap.String("billRef", cmd.BillRef))
			s.audit.Log(ctx, cmd.TransactionID, CategoryUserNotFound,
				"Subscriber not found for account name",
				map[string]interface{}{"billRef": cmd.BillRef, "amount": cmd.Amount.String()})
			return ProcessResult{Success: false, Reason: constants.ReasonUserNotFound}, nil
		}
		return ProcessResult{}, err
	}

	s.audit.Log(ctx, cmd.TransactionID, CategoryUserFound,
		"Subscriber found for payment processing",
		map[string]interface{}{
			"userId":        sub.ID,
			"username":      sub.Username,
			"packageAmount": sub.PackageAmount.String(),
			"currentStatus": sub.Status,
		})

	var (
		walletAction        string
		newBalance          decimal.Decimal
		reconnectionStatus  = ReconnectionNotAttempted
		reconnectionDetails string
		newDueDate          *time.Time
	)

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		userTx := model.UserTransaction{
			ISPID:        sub.ISPID,
			SubscriberID: sub.ID,
			Amount:       cmd.Amount,
			Method:       model.PaymentMethodMpesa,
			Reference:    cmd.TransactionID,
			ReceivedAt:   time.Now(),
		}
		userTxStart := time.Now()
		if err := s.userTxs.Create(ctx, &userTx); err != nil {
			recordDBQuery(s.metrics, "insert", "user_transactions_in", "error", userTxStart)
			return err
		}
		recordDBQuery(s.metrics, "insert", "user_transactions_in", "success", userTxStart)

		s.audit.Log(ctx, cmd.TransactionID, CategoryTransactionDone,
			"User transaction recorded",
			map[string]interface{}{"ispId": sub.ISPID, "userId": sub.ID, "amount": cmd.Amount.String()})

		previousBalance := decimal.Zero
		wallet, err := s.wallets.Find(ctx, sub.ISPID)
		switch {
		case err == nil:
			previousBalance = wallet.Balance
			walletAction = "Updated existing wallet"
		case errors.Is(err, repository.ErrWalletNotFound):
			walletAction = "Created new wallet"
		default:
			return err
		}

		creditStart := time.Now()
		if err := s.wallets.Credit(ctx, sub.ISPID, cmd.Amount); err != nil {
			recordDBQuery(s.metrics, "upsert", "isp_wallet", "error", creditStart)
			return err
		}
		recordDBQuery(s.metrics, "upsert", "isp_wallet", "success", creditStart)

		newBalance, err = s.wallets.Balance(ctx, sub.ISPID)
		if err != nil {
			return err
		}

		s.audit.Log(ctx, cmd.TransactionID, CategoryWalletUpdated,
			"ISP wallet updated",
			map[string]interface{}{
				"ispId":           sub.ISPID,
				"previousBalance": previousBalance.String(),
				"amountAdded":     cmd.Amount.String(),
				"newBalance":      newBalance.String(),
				"walletAction":    walletAction,
			})

		reconnectionStatus, reconnectionDetails, newDueDate = s.handleReconnection(ctx, cmd, sub)
		if newDueDate != nil {
			if reconnectionStatus == ReconnectionConnected {
				if err := s.subscribers.MarkReconnected(ctx, sub.ID, *newDueDate, time.Now()); err != nil {
					return err
				}
			} else {
				if err := s.subscribers.UpdateNextPaymentDate(ctx, sub.ID, *newDueDate); err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		s.audit.Log(ctx, cmd.TransactionID, CategoryProcessingError,
			"Error during customer payment processing",
			map[string]interface{}{"error": err.Error()})
		return ProcessResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if s.metrics != nil {
		s.metrics.UpdateWalletBalance(fmt.Sprintf("%d", sub.ISPID), newBalance.InexactFloat64())
	}

	summary := s.buildSummary(cmd, sub, newBalance, walletAction, reconnectionStatus, reconnectionDetails, newDueDate)
	s.notifier.NotifyAdmins(ctx, summary)
	s.notifier.NotifyISP(ctx, sub.ISPID, summary)

	s.audit.Log(ctx, cmd.TransactionID, CategoryProcessingComplete,
		"Customer payment processing completed",
		map[string]interface{}{
			"reconnectionStatus":  reconnectionStatus,
			"walletUpdated":       true,
			"transactionRecorded": true,
			"finalBalance":        newBalance.String(),
		})

	s.logger.Info("Customer payment processed",
		zap.String("transactionID", cmd.TransactionID),
		zap.String("username", sub.Username),
		zap.String("reconnectionStatus", reconnectionStatus))

	return ProcessResult{
		Success:             true,
		User:                sub.Username,
		Amount:              cmd.Amount,
		ReconnectionStatus:  reconnectionStatus,
		WalletUpdated:       true,
		TransactionRecorded: true,
	}, nil
}

// handleReconnection decides whether the payment re-enables the subscriber and
// returns the outcome plus the new due date, if one applies. The device call's
// failure never becomes an error: the payment is honored either way.
func (s *customerPayment) handleReconnection(ctx context.Context, cmd PaymentCommand, sub *model.Subscriber) (string, string, *time.Time) {
	if cmd.Amount.LessThan(sub.PackageAmount) {
		shortfall := sub.PackageAmount.Sub(cmd.Amount)
		s.audit.Log(ctx, cmd.TransactionID, CategoryInsufficientAmount,
			"Payment amount insufficient for reconnection",
			map[string]interface{}{
				"amountPaid":    cmd.Amount.String(),
				"packageAmount": sub.PackageAmount.String(),
				"shortfall":     shortfall.String(),
			})
		details := fmt.Sprintf("Payment %s below package amount %s",
			FormatCurrency(cmd.Amount), FormatCurrency(sub.PackageAmount))
		return ReconnectionInsufficient, details, nil
	}

	routerIP := ""
	if sub.Router != nil {
		routerIP = sub.Router.LocalIP
	}

	if routerIP == "" || sub.Username == "" {
		s.audit.Log(ctx, cmd.TransactionID, CategoryNoRouterConfig,
			"Router configuration missing",
			map[string]interface{}{
				"hasRouterIP": routerIP != "",
				"hasUsername": sub.Username != "",
			})
		return ReconnectionNoRouter, "Router IP or username missing", nil
	}

	outcome := s.devices.EnableSubscriber(ctx, routerIP, sub.Username)
	s.audit.Log(ctx, cmd.TransactionID, CategoryReconnectAttempt,
		"Attempted device reconnection",
		map[string]interface{}{
			"routerIP": routerIP,
			"username": sub.Username,
			"success":  outcome.Success,
			"message":  outcome.Message,
		})

	due := nextDueDate(sub.NextPaymentDate, time.Now())

	if !outcome.Success {
		if s.metrics != nil {
			s.metrics.RecordReconnection("failure")
		}
		s.audit.Log(ctx, cmd.TransactionID, CategoryReconnectFailed,
			"Device reconnection failed",
			map[string]interface{}{"newDueDate": due.Format("2006-01-02"), "error": outcome.Message})
		s.logger.Error("Device reconnection failed",
			zap.String("transactionID", cmd.TransactionID),
			zap.String("message", outcome.Message))
		return ReconnectionFailedDate, "Control API failed but due date updated: " + outcome.Message, &due
	}

	if s.metrics != nil {
		s.metrics.RecordReconnection("success")
	}

	timing := "ON_TIME/LATE"
	if sub.NextPaymentDate != nil && sub.NextPaymentDate.After(time.Now()) {
		timing = "EARLY"
	}

	s.audit.Log(ctx, cmd.TransactionID, CategoryReconnectSuccess,
		"Subscriber reconnected",
		map[string]interface{}{"newDueDate": due.Format("2006-01-02"), "paymentTiming": timing})

	return ReconnectionConnected, "Reconnected via control API | Payment: " + timing, &due
}

// nextDueDate extends the subscription one month from the later of the current
// due date and today, so an early payment never drags the due date backward.
func nextDueDate(current *time.Time, today time.Time) time.Time {
	base := today
	if current != nil && current.After(today) {
		base = *current
	}
	return base.AddDate(0, 1, 0)
}

func (s *customerPayment) buildSummary(cmd PaymentCommand, sub *model.Subscriber, newBalance decimal.Decimal,
	walletAction string, reconnectionStatus string, reconnectionDetails string, newDueDate *time.Time) string {

	previousDue := "Not set"
	if sub.NextPaymentDate != nil {
		previousDue = sub.NextPaymentDate.Format("2006-01-02")
	}

	newDue := "Not updated"
	if newDueDate != nil {
		newDue = newDueDate.Format("2006-01-02")
	}

	routerName := ""
	if sub.Router != nil {
		routerName = sub.Router.Name
	}

	return fmt.Sprintf("*CUSTOMER PAYMENT RECEIVED*\n\n"+
		"Customer: %s\nUsername: %s\nRouter: %s\nPaid: %s\nPackage: %s\nTransaction: %s\n\n"+
		"Previous Due: %s\nNew Due Date: %s\n\n"+
		"ISP Wallet: %s\nWallet Action: %s\n\n"+
		"Reconnection Status: %s\n%s",
		sub.FullName, sub.Username, routerName,
		FormatCurrency(cmd.Amount), FormatCurrency(sub.PackageAmount), cmd.TransactionID,
		previousDue, newDue,
		FormatCurrency(newBalance), walletAction,
		reconnectionStatus, reconnectionDetails)
}
