package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/config"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/mocks"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newNotifierFixture(phones []string) (*mocks.Publisher, *mocks.ISPRepository, service.Notifier) {
	publisher := &mocks.Publisher{}
	isps := &mocks.ISPRepository{}
	cfg := &config.Config{Notifications: config.Notifications{AdminPhones: phones}}

	return publisher, isps, service.NewNotifier(publisher, isps, cfg, zap.NewNop())
}

func TestNotifier_NotifyAdmins(t *testing.T) {
	t.Run("publishes one message per admin phone", func(t *testing.T) {
		publisher, _, notifier := newNotifierFixture([]string{"254700000001", "254700000002"})

		publisher.On("Publish", mock.Anything, "", service.QueueAdminNotifications,
			mock.MatchedBy(func(body []byte) bool {
				var payload map[string]interface{}
				if err := json.Unmarshal(body, &payload); err != nil {
					return false
				}
				return payload["message"] == "wallet credited"
			})).Return(nil)

		notifier.NotifyAdmins(context.Background(), "wallet credited")

		publisher.AssertNumberOfCalls(t, "Publish", 2)
	})

	t.Run("publish failure is swallowed", func(t *testing.T) {
		publisher, _, notifier := newNotifierFixture([]string{"254700000001"})

		publisher.On("Publish", mock.Anything, "", service.QueueAdminNotifications, mock.Anything).
			Return(errors.New("channel closed"))

		assert.NotPanics(t, func() {
			notifier.NotifyAdmins(context.Background(), "wallet credited")
		})
	})
}

func TestNotifier_NotifyISP(t *testing.T) {
	t.Run("publishes to the isp contact phone", func(t *testing.T) {
		publisher, isps, notifier := newNotifierFixture(nil)

		isps.On("FindByID", uint(7)).Return(&model.ISP{ID: 7, ContactPhone: "254711000001"}, nil)

		publisher.On("Publish", mock.Anything, "", service.QueueISPNotifications,
			mock.MatchedBy(func(body []byte) bool {
				var payload map[string]interface{}
				if err := json.Unmarshal(body, &payload); err != nil {
					return false
				}
				return payload["phone"] == "254711000001"
			})).Return(nil)

		notifier.NotifyISP(context.Background(), 7, "payment received")

		publisher.AssertExpectations(t)
	})

	t.Run("skips when the isp lookup fails", func(t *testing.T) {
		publisher, isps, notifier := newNotifierFixture(nil)

		isps.On("FindByID", uint(8)).Return(nil, repository.ErrISPNotFound)

		notifier.NotifyISP(context.Background(), 8, "payment received")

		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("skips when the isp has no contact phone", func(t *testing.T) {
		publisher, isps, notifier := newNotifierFixture(nil)

		isps.On("FindByID", uint(9)).Return(&model.ISP{ID: 9}, nil)

		notifier.NotifyISP(context.Background(), 9, "payment received")

		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
