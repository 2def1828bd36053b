package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/config"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/onenetwo/billing-services/callbackprocessor/pkg/mq"
	"go.uber.org/zap"
)

const (
	QueueAdminNotifications = "notify.admin"
	QueueISPNotifications   = "notify.isp"
)

// Notifier hands human-readable summaries to the delivery pipeline. Publishing
// is best-effort: the payment is already committed by the time these run, so
// failures are logged and dropped, never returned to the transactional core.
type Notifier interface {
	NotifyAdmins(ctx context.Context, message string)
	NotifyISP(ctx context.Context, ispID uint, message string)
}

type notification struct {
	Phone    string    `json:"phone"`
	Message  string    `json:"message"`
	QueuedAt time.Time `json:"queued_at"`
}

type notifier struct {
	publisher mq.Publisher
	ispRepo   repository.ISPRepository
	phones    []string
	logger    *zap.Logger
}

func NewNotifier(publisher mq.Publisher, ispRepo repository.ISPRepository, cfg *config.Config, logger *zap.Logger) Notifier {
	return &notifier{publisher: publisher, ispRepo: ispRepo, phones: cfg.Notifications.AdminPhones, logger: logger}
}

func (n *notifier) NotifyAdmins(ctx context.Context, message string) {
	for _, phone := range n.phones {
		n.publish(ctx, QueueAdminNotifications, phone, message)
	}
}

func (n *notifier) NotifyISP(ctx context.Context, ispID uint, message string) {
	isp, err := n.ispRepo.FindByID(ispID)
	if err != nil {
		n.logger.Warn("ISP notification skipped, lookup failed",
			zap.Uint("ispID", ispID),
			zap.Error(err))
		return
	}

	if isp.ContactPhone == "" {
		return
	}

	n.publish(ctx, QueueISPNotifications, isp.ContactPhone, message)
}

func (n *notifier) publish(ctx context.Context, queue string, phone string, message string) {
	body, err := json.Marshal(notification{Phone: phone, Message: message, QueuedAt: time.Now()})
	if err != nil {
		n.logger.Warn("Failed to encode notification", zap.Error(err))
		return
	}

	if err := n.publisher.Publish(ctx, "", queue, body); err != nil {
		n.logger.Warn("Failed to publish notification",
			zap.String("queue", queue),
			zap.String("phone", phone),
			zap.Error(err))
	}
}
