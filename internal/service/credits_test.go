package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/config"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/constants"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/mocks"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type creditsFixture struct {
	txManager *mocks.TxManager
	isps      *mocks.ISPRepository
	credits   *mocks.CreditRepository
	audit     *mocks.AuditLogger
	notifier  *mocks.Notifier
	svc       service.CreditPurchaseService
}

func newCreditsFixture() *creditsFixture {
	f := &creditsFixture{
		txManager: &mocks.TxManager{},
		isps:      &mocks.ISPRepository{},
		credits:   &mocks.CreditRepository{},
		audit:     &mocks.AuditLogger{},
		notifier:  &mocks.Notifier{},
	}

	f.audit.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	cfg := &config.Config{Credits: config.Credits{SMSUnitPrice: 0.50, WhatsAppUnitPrice: 0.20}}

	f.svc = service.NewCreditPurchaseService(f.txManager, f.isps, f.credits, f.audit, f.notifier,
		cfg, nil, zap.NewNop())

	return f
}

func testISP() *model.ISP {
	return &model.ISP{ID: 9, Name: "Acme Net", ContactPhone: "254700000001", SMSAccount: "SMS100"}
}

func TestCreditPurchase_PurchaseSMS(t *testing.T) {
	t.Run("whole multiple grants exact credits", func(t *testing.T) {
		f := newCreditsFixture()
		isp := testISP()
		cmd := service.PaymentCommand{TransactionID: "TX1", BillRef: "SMS100", Amount: decimal.NewFromInt(127)}

		f.isps.On("FindBySMSAccount", "SMS100").Return(isp, nil)
		f.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

		f.credits.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *model.CreditTransaction) bool {
			return tx.ISPID == 9 &&
				tx.TransactionType == model.CreditTransactionTypePurchase &&
				tx.CreditType == model.CreditTypeSMS &&
				tx.Amount == 254 &&
				tx.TotalAmount.Equal(cmd.Amount) &&
				tx.Reference == "TX1"
		})).Return(nil)
		f.credits.On("AddCredits", mock.Anything, uint(9), model.CreditTypeSMS, int64(254)).Return(nil)

		f.notifier.On("NotifyAdmins", mock.Anything, mock.Anything).Return()
		f.notifier.On("NotifyISP", mock.Anything, uint(9), mock.Anything).Return()

		result, err := f.svc.PurchaseSMS(context.Background(), cmd)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, int64(254), result.Credits)
		assert.Equal(t, "Acme Net", result.ISP)
		f.credits.AssertExpectations(t)
	})

	t.Run("fractional remainder is floored away", func(t *testing.T) {
		f := newCreditsFixture()
		isp := testISP()
		cmd := service.PaymentCommand{TransactionID: "TX2", BillRef: "SMS100", Amount: decimal.NewFromFloat(1.05)}

		f.isps.On("FindBySMSAccount", "SMS100").Return(isp, nil)
		f.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.credits.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
		f.credits.On("AddCredits", mock.Anything, uint(9), model.CreditTypeSMS, int64(2)).Return(nil)
		f.notifier.On("NotifyAdmins", mock.Anything, mock.Anything).Return()
		f.notifier.On("NotifyISP", mock.Anything, uint(9), mock.Anything).Return()

		result, err := f.svc.PurchaseSMS(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), result.Credits)
		f.credits.AssertExpectations(t)
	})

	t.Run("unknown sms account is a business outcome", func(t *testing.T) {
		f := newCreditsFixture()
		cmd := service.PaymentCommand{TransactionID: "TX3", BillRef: "SMS999", Amount: decimal.NewFromInt(100)}

		f.isps.On("FindBySMSAccount", "SMS999").Return(nil, repository.ErrISPNotFound)

		result, err := f.svc.PurchaseSMS(context.Background(), cmd)

		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, constants.ReasonISPNotFound, result.Reason)
		f.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("counter update failure rolls the ledger back", func(t *testing.T) {
		f := newCreditsFixture()
		isp := testISP()
		cmd := service.PaymentCommand{TransactionID: "TX4", BillRef: "SMS100", Amount: decimal.NewFromInt(50)}

		f.isps.On("FindBySMSAccount", "SMS100").Return(isp, nil)
		f.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.credits.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
		f.credits.On("AddCredits", mock.Anything, uint(9), model.CreditTypeSMS, int64(100)).
			Return(errors.New("lock wait timeout"))

		result, err := f.svc.PurchaseSMS(context.Background(), cmd)

		assert.Error(t, err)
		assert.False(t, result.Success)
		f.notifier.AssertNotCalled(t, "NotifyAdmins", mock.Anything, mock.Anything)
		f.audit.AssertCalled(t, "Log", mock.Anything, "TX4", service.CategorySMSError,
			mock.Anything, mock.Anything)
	})
}

func TestCreditPurchase_PurchaseWhatsApp(t *testing.T) {
	t.Run("uses the whatsapp unit price and lookup", func(t *testing.T) {
		f := newCreditsFixture()
		isp := testISP()
		isp.WhatsAppAccount = "WA55"
		cmd := service.PaymentCommand{TransactionID: "TX5", BillRef: "WA55", Amount: decimal.NewFromInt(1)}

		f.isps.On("FindByWhatsAppAccount", "WA55").Return(isp, nil)
		f.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)

		f.credits.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *model.CreditTransaction) bool {
			return tx.CreditType == model.CreditTypeWhatsApp && tx.Amount == 5
		})).Return(nil)
		f.credits.On("AddCredits", mock.Anything, uint(9), model.CreditTypeWhatsApp, int64(5)).Return(nil)

		f.notifier.On("NotifyAdmins", mock.Anything, mock.Anything).Return()
		f.notifier.On("NotifyISP", mock.Anything, uint(9), mock.Anything).Return()

		result, err := f.svc.PurchaseWhatsApp(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), result.Credits)
		f.isps.AssertNotCalled(t, "FindBySMSAccount", mock.Anything)
		f.credits.AssertExpectations(t)
	})
}
