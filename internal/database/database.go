package database

import (
	"context"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/config"
	"github.com/onenetwo/billing-services/callbackprocessor/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(context.Background(), cfg.Database, logger)
}
