package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/constants"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/mocks"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newRouterFixture() (*mocks.CustomerPaymentService, *mocks.CreditPurchaseService,
	*mocks.ServicePaymentService, *mocks.AuditLogger, *mocks.Notifier, service.PaymentRouterService) {

	customer := &mocks.CustomerPaymentService{}
	credits := &mocks.CreditPurchaseService{}
	servicePay := &mocks.ServicePaymentService{}
	audit := &mocks.AuditLogger{}
	notifier := &mocks.Notifier{}

	audit.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	router := service.NewPaymentRouter(customer, credits, servicePay, audit, notifier, nil, zap.NewNop())

	return customer, credits, servicePay, audit, notifier, router
}

func TestPaymentRouter_Process(t *testing.T) {
	t.Run("sms prefix dispatches to sms credit purchase", func(t *testing.T) {
		_, credits, _, _, _, router := newRouterFixture()

		cmd := service.PaymentCommand{TransactionID: "TX1", BillRef: "SMS100", Amount: decimal.NewFromInt(100)}

		credits.On("PurchaseSMS", mock.Anything, cmd).
			Return(service.ProcessResult{Success: true, Credits: 200}, nil)

		result := router.Process(context.Background(), cmd)

		assert.True(t, result.Success)
		assert.Equal(t, int64(200), result.Credits)
		credits.AssertExpectations(t)
	})

	t.Run("wa prefix dispatches to whatsapp credit purchase", func(t *testing.T) {
		_, credits, _, _, _, router := newRouterFixture()

		cmd := service.PaymentCommand{TransactionID: "TX2", BillRef: "wa5", Amount: decimal.NewFromInt(1)}

		credits.On("PurchaseWhatsApp", mock.Anything, cmd).
			Return(service.ProcessResult{Success: true, Credits: 5}, nil)

		result := router.Process(context.Background(), cmd)

		assert.True(t, result.Success)
		credits.AssertExpectations(t)
	})

	t.Run("acc prefix dispatches to isp service payment", func(t *testing.T) {
		_, _, servicePay, _, _, router := newRouterFixture()

		cmd := service.PaymentCommand{TransactionID: "TX3", BillRef: "ACC001", Amount: decimal.NewFromInt(5000)}

		servicePay.On("Process", mock.Anything, cmd).
			Return(service.ProcessResult{Success: true, ISP: "Acme Net"}, nil)

		result := router.Process(context.Background(), cmd)

		assert.True(t, result.Success)
		assert.Equal(t, "Acme Net", result.ISP)
		servicePay.AssertExpectations(t)
	})

	t.Run("digits then letters dispatches to customer payment", func(t *testing.T) {
		customer, _, _, _, _, router := newRouterFixture()

		cmd := service.PaymentCommand{TransactionID: "TX4", BillRef: "12AB", Amount: decimal.NewFromInt(1500)}

		customer.On("Process", mock.Anything, cmd).
			Return(service.ProcessResult{Success: true, User: "john"}, nil)

		result := router.Process(context.Background(), cmd)

		assert.True(t, result.Success)
		assert.Equal(t, "john", result.User)
		customer.AssertExpectations(t)
	})

	t.Run("customer pattern allows trailing characters", func(t *testing.T) {
		customer, _, _, _, _, router := newRouterFixture()

		cmd := service.PaymentCommand{TransactionID: "TX5", BillRef: "1234xy99", Amount: decimal.NewFromInt(1500)}

		customer.On("Process", mock.Anything, cmd).
			Return(service.ProcessResult{Success: true}, nil)

		result := router.Process(context.Background(), cmd)

		assert.True(t, result.Success)
		customer.AssertExpectations(t)
	})

	t.Run("unknown reference notifies admins exactly once", func(t *testing.T) {
		customer, credits, servicePay, _, notifier, router := newRouterFixture()

		cmd := service.PaymentCommand{TransactionID: "TX6", BillRef: "XYZ!", Amount: decimal.NewFromInt(750)}

		notifier.On("NotifyAdmins", mock.Anything, mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "XYZ!")
		})).Return()

		result := router.Process(context.Background(), cmd)

		assert.False(t, result.Success)
		assert.Equal(t, constants.ReasonUnknownReference, result.Reason)
		notifier.AssertNumberOfCalls(t, "NotifyAdmins", 1)
		customer.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
		credits.AssertNotCalled(t, "PurchaseSMS", mock.Anything, mock.Anything)
		credits.AssertNotCalled(t, "PurchaseWhatsApp", mock.Anything, mock.Anything)
		servicePay.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	})

	t.Run("single digit without letters is unknown", func(t *testing.T) {
		customer, _, _, _, notifier, router := newRouterFixture()

		cmd := service.PaymentCommand{TransactionID: "TX7", BillRef: "12345", Amount: decimal.NewFromInt(100)}

		notifier.On("NotifyAdmins", mock.Anything, mock.Anything).Return()

		result := router.Process(context.Background(), cmd)

		assert.False(t, result.Success)
		assert.Equal(t, constants.ReasonUnknownReference, result.Reason)
		customer.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	})

	t.Run("handler error folds into failed result", func(t *testing.T) {
		customer, _, _, audit, _, router := newRouterFixture()

		cmd := service.PaymentCommand{TransactionID: "TX8", BillRef: "1ab", Amount: decimal.NewFromInt(1500)}

		customer.On("Process", mock.Anything, cmd).
			Return(service.ProcessResult{}, errors.New("deadlock detected"))

		result := router.Process(context.Background(), cmd)

		assert.False(t, result.Success)
		assert.Equal(t, "deadlock detected", result.Error)
		audit.AssertCalled(t, "Log", mock.Anything, "TX8", service.CategoryFatalError,
			mock.Anything, mock.Anything)
	})
}
