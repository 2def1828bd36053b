package service

import (
	"context"
	"errors"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"go.uber.org/zap"
)

// PaymentLogService persists the raw callback before any routing happens.
type PaymentLogService interface {
	LogRaw(ctx context.Context, cmd PaymentCommand) error
}

type paymentLog struct {
	repo   repository.PaymentRepository
	logger *zap.Logger
}

func NewPaymentLogService(repo repository.PaymentRepository, logger *zap.Logger) PaymentLogService {
	return &paymentLog{repo: repo, logger: logger}
}

func (s *paymentLog) LogRaw(ctx context.Context, cmd PaymentCommand) error {
	payment := model.PaybillPayment{
		TransactionType:   cmd.TransactionType,
		TransID:           cmd.TransactionID,
		TransTime:         cmd.TransactionTime,
		TransAmount:       cmd.Amount,
		BusinessShortCode: cmd.BusinessShortCode,
		BillRefNumber:     cmd.BillRef,
		InvoiceNumber:     cmd.InvoiceNumber,
		OrgAccountBalance: cmd.OrgAccountBalance,
		ThirdPartyTransID: cmd.ThirdPartyTransID,
		MSISDN:            cmd.PayerMSISDN,
		FirstName:         cmd.PayerFirstName,
	}

	if err := s.repo.Create(ctx, &payment); err != nil {
		if errors.Is(err, repository.ErrDuplicatePayment) {
			s.logger.Warn("Gateway replayed a known transaction",
				zap.String("transactionID", cmd.TransactionID))
			return err
		}

		s.logger.Error("Failed to log raw payment",
			zap.String("transactionID", cmd.TransactionID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Payment logged",
		zap.String("transactionID", cmd.TransactionID),
		zap.String("billRef", cmd.BillRef))

	return nil
}
