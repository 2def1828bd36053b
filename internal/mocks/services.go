package mocks

import (
	"context"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/service"
	"github.com/stretchr/testify/mock"
)

type AuditLogger struct {
	mock.Mock
}

func (m *AuditLogger) Log(ctx context.Context, transactionID string, category string, message string, details map[string]interface{}) {
	m.Called(ctx, transactionID, category, message, details)
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) NotifyAdmins(ctx context.Context, message string) {
	m.Called(ctx, message)
}

func (m *Notifier) NotifyISP(ctx context.Context, ispID uint, message string) {
	m.Called(ctx, ispID, message)
}

type PaymentLogService struct {
	mock.Mock
}

func (m *PaymentLogService) LogRaw(ctx context.Context, cmd service.PaymentCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type PaymentRouterService struct {
	mock.Mock
}

func (m *PaymentRouterService) Process(ctx context.Context, cmd service.PaymentCommand) service.ProcessResult {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ProcessResult)
}

type CustomerPaymentService struct {
	mock.Mock
}

func (m *CustomerPaymentService) Process(ctx context.Context, cmd service.PaymentCommand) (service.ProcessResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ProcessResult), args.Error(1)
}

type CreditPurchaseService struct {
	mock.Mock
}

func (m *CreditPurchaseService) PurchaseSMS(ctx context.Context, cmd service.PaymentCommand) (service.ProcessResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ProcessResult), args.Error(1)
}

func (m *CreditPurchaseService) PurchaseWhatsApp(ctx context.Context, cmd service.PaymentCommand) (service.ProcessResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ProcessResult), args.Error(1)
}

type ServicePaymentService struct {
	mock.Mock
}

func (m *ServicePaymentService) Process(ctx context.Context, cmd service.PaymentCommand) (service.ProcessResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ProcessResult), args.Error(1)
}
