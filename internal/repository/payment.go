package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"gorm.io/gorm"
)

// ErrDuplicatePayment marks a replayed callback: the gateway retried a
// confirmation whose TransID is already on file.
var ErrDuplicatePayment = errors.New("DUPLICATE_PAYMENT")

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.PaybillPayment) error
}

type Payment struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &Payment{db: db}
}

func (r *Payment) Create(ctx context.Context, payment *model.PaybillPayment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDuplicatePayment
	}

	return err
}
