package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/mocks"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPaymentLog_LogRaw(t *testing.T) {
	cmd := service.PaymentCommand{
		TransactionID:     "RKT1234",
		TransactionType:   "Pay Bill",
		TransactionTime:   "20260831120000",
		Amount:            decimal.NewFromInt(1500),
		BusinessShortCode: "600000",
		BillRef:           "12JD",
		OrgAccountBalance: decimal.NewFromInt(98000),
		PayerMSISDN:       "254700000001",
		PayerFirstName:    "John",
	}

	t.Run("persists the raw callback verbatim", func(t *testing.T) {
		repo := &mocks.PaymentRepository{}
		svc := service.NewPaymentLogService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.PaybillPayment) bool {
			return p.TransID == "RKT1234" &&
				p.TransactionType == "Pay Bill" &&
				p.TransTime == "20260831120000" &&
				p.TransAmount.Equal(cmd.Amount) &&
				p.BillRefNumber == "12JD" &&
				p.OrgAccountBalance.Equal(cmd.OrgAccountBalance) &&
				p.MSISDN == "254700000001" &&
				p.FirstName == "John"
		})).Return(nil)

		err := svc.LogRaw(context.Background(), cmd)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("replayed transaction surfaces the duplicate error", func(t *testing.T) {
		repo := &mocks.PaymentRepository{}
		svc := service.NewPaymentLogService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicatePayment)

		err := svc.LogRaw(context.Background(), cmd)

		assert.ErrorIs(t, err, repository.ErrDuplicatePayment)
	})

	t.Run("insert failure is returned", func(t *testing.T) {
		repo := &mocks.PaymentRepository{}
		svc := service.NewPaymentLogService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("table is full"))

		err := svc.LogRaw(context.Background(), cmd)

		assert.Error(t, err)
	})
}
