package repository

import (
	"context"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"gorm.io/gorm"
)

type UserTransactionRepository interface {
	Create(ctx context.Context, tx *model.UserTransaction) error
}

type UserTransaction struct {
	db *gorm.DB
}

func NewUserTransactionRepository(db *gorm.DB) UserTransactionRepository {
	return &UserTransaction{db: db}
}

func (r *UserTransaction) Create(ctx context.Context, tx *model.UserTransaction) error {
	db := GetTx(ctx, r.db)
	return db.Create(tx).Error
}
