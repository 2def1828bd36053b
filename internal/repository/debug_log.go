package repository

import (
	"context"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"gorm.io/gorm"
)

type DebugLogRepository interface {
	Create(ctx context.Context, entry *model.DebugLog) error
}

type DebugLog struct {
	db *gorm.DB
}

func NewDebugLogRepository(db *gorm.DB) DebugLogRepository {
	return &DebugLog{db: db}
}

// Create intentionally ignores any transaction carried in ctx: debug entries
// must survive a payment rollback.
func (r *DebugLog) Create(ctx context.Context, entry *model.DebugLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
