package mocks

import (
	"context"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) Create(ctx context.Context, payment *model.PaybillPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type DebugLogRepository struct {
	mock.Mock
}

func (m *DebugLogRepository) Create(ctx context.Context, entry *model.DebugLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type SubscriberRepository struct {
	mock.Mock
}

func (m *SubscriberRepository) FindByAccountName(accountName string) (*model.Subscriber, error) {
	args := m.Called(accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *SubscriberRepository) MarkReconnected(ctx context.Context, id uint, nextPaymentDate time.Time, reconnectedAt time.Time) error {
	args := m.Called(ctx, id, nextPaymentDate, reconnectedAt)
	return args.Error(0)
}

func (m *SubscriberRepository) UpdateNextPaymentDate(ctx context.Context, id uint, nextPaymentDate time.Time) error {
	args := m.Called(ctx, id, nextPaymentDate)
	return args.Error(0)
}

type ISPRepository struct {
	mock.Mock
}

func (m *ISPRepository) FindByID(id uint) (*model.ISP, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ISP), args.Error(1)
}

func (m *ISPRepository) FindBySMSAccount(code string) (*model.ISP, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ISP), args.Error(1)
}

func (m *ISPRepository) FindByWhatsAppAccount(code string) (*model.ISP, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ISP), args.Error(1)
}

func (m *ISPRepository) FindByPayAccount(code string) (*model.ISP, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ISP), args.Error(1)
}

type WalletRepository struct {
	mock.Mock
}

func (m *WalletRepository) Find(ctx context.Context, ispID uint) (*model.ISPWallet, error) {
	args := m.Called(ctx, ispID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ISPWallet), args.Error(1)
}

func (m *WalletRepository) Credit(ctx context.Context, ispID uint, amount decimal.Decimal) error {
	args := m.Called(ctx, ispID, amount)
	return args.Error(0)
}

func (m *WalletRepository) Balance(ctx context.Context, ispID uint) (decimal.Decimal, error) {
	args := m.Called(ctx, ispID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type CreditRepository struct {
	mock.Mock
}

func (m *CreditRepository) CreateTransaction(ctx context.Context, tx *model.CreditTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *CreditRepository) AddCredits(ctx context.Context, ispID uint, creditType string, credits int64) error {
	args := m.Called(ctx, ispID, creditType, credits)
	return args.Error(0)
}

type UserTransactionRepository struct {
	mock.Mock
}

func (m *UserTransactionRepository) Create(ctx context.Context, tx *model.UserTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
