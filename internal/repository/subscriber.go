package repository

import (
	"context"
	"errors"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"gorm.io/gorm"
)

var ErrSubscriberNotFound = errors.New("SUBSCRIBER_NOT_FOUND")

type SubscriberRepository interface {
	FindByAccountName(accountName string) (*model.Subscriber, error)
	MarkReconnected(ctx context.Context, id uint, nextPaymentDate time.Time, reconnectedAt time.Time) error
	UpdateNextPaymentDate(ctx context.Context, id uint, nextPaymentDate time.Time) error
}

type Subscriber struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &Subscriber{db: db}
}

func (r *Subscriber) FindByAccountName(accountName string) (*model.Subscriber, error) {
	var sub model.Subscriber

	err := r.db.Preload("Router").Preload("ISP").
		Where("account_name = ?", accountName).
		First(&sub).Error
	if err == nil {
		return &sub, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriberNotFound
	}

	return nil, err
}

func (r *Subscriber) MarkReconnected(ctx context.Context, id uint, nextPaymentDate time.Time, reconnectedAt time.Time) error {
	db := GetTx(ctx, r.db)
	return db.Model(&model.Subscriber{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              model.SubscriberStatusActive,
			"next_payment_date":   nextPaymentDate,
			"last_reconnected_at": reconnectedAt,
		}).Error
}

func (r *Subscriber) UpdateNextPaymentDate(ctx context.Context, id uint, nextPaymentDate time.Time) error {
	db := GetTx(ctx, r.db)
	return db.Model(&model.Subscriber{}).
		Where("id = ?", id).
		Update("next_payment_date", nextPaymentDate).Error
}
