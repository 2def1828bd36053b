package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/constants"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/metrics"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ServicePaymentService interface {
	Process(ctx context.Context, cmd PaymentCommand) (ProcessResult, error)
}

type servicePayment struct {
	txManager repository.TxManager
	isps      repository.ISPRepository
	wallets   repository.WalletRepository
	audit     AuditLogger
	notifier  Notifier
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewServicePaymentService(txManager repository.TxManager, isps repository.ISPRepository,
	wallets repository.WalletRepository, audit AuditLogger, notifier Notifier,
	metrics *metrics.Metrics, logger *zap.Logger) ServicePaymentService {
	return &servicePayment{
		txManager: txManager,
		isps:      isps,
		wallets:   wallets,
		audit:     audit,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *servicePayment) Process(ctx context.Context, cmd PaymentCommand) (ProcessResult, error) {
	s.audit.Log(ctx, cmd.TransactionID, CategoryServiceStart,
		"Starting ISP service payment processing",
		map[string]interface{}{"billRef": cmd.BillRef, "amount": cmd.Amount.String()})

	isp, err := s.isps.FindByPayAccount(cmd.BillRef)
	if err != nil {
		if errors.Is(err, repository.ErrISPNotFound) {
			s.logger.Warn("ISP not found for service account", zap.String("billRef", cmd.BillRef))
			s.audit.Log(ctx, cmd.TransactionID, CategoryServiceISPMissing,
				"ISP not found for service account",
				map[string]interface{}{"billRef": cmd.BillRef})
			return ProcessResult{Success: false, Reason: constants.ReasonISPNotFound}, nil
		}
		return ProcessResult{}, err
	}

	var newBalance decimal.Decimal

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		creditStart := time.Now()
		if err := s.wallets.Credit(ctx, isp.ID, cmd.Amount); err != nil {
			recordDBQuery(s.metrics, "upsert", "isp_wallet", "error", creditStart)
			return err
		}
		recordDBQuery(s.metrics, "upsert", "isp_wallet", "success", creditStart)

		newBalance, err = s.wallets.Balance(ctx, isp.ID)
		return err
	})

	if err != nil {
		s.audit.Log(ctx, cmd.TransactionID, CategoryServiceError,
			"Error during ISP service payment processing",
			map[string]interface{}{"error": err.Error()})
		return ProcessResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if s.metrics != nil {
		s.metrics.UpdateWalletBalance(fmt.Sprintf("%d", isp.ID), newBalance.InexactFloat64())
	}

	s.audit.Log(ctx, cmd.TransactionID, CategoryServiceComplete,
		"ISP service payment processed",
		map[string]interface{}{
			"ispId":      isp.ID,
			"ispName":    isp.Name,
			"amount":     cmd.Amount.String(),
			"newBalance": newBalance.String(),
		})

	s.notifier.NotifyAdmins(ctx, fmt.Sprintf("ISP SERVICE PAYMENT\nISP: %s\nAmount: %s\nNew Balance: %s",
		isp.Name, FormatCurrency(cmd.Amount), FormatCurrency(newBalance)))
	s.notifier.NotifyISP(ctx, isp.ID, fmt.Sprintf("Service Payment Received\nAmount: %s\nNew Balance: %s",
		FormatCurrency(cmd.Amount), FormatCurrency(newBalance)))

	s.logger.Info("ISP service payment processed",
		zap.String("isp", isp.Name),
		zap.String("amount", cmd.Amount.String()))

	return ProcessResult{Success: true, ISP: isp.Name, NewBalance: newBalance}, nil
}
