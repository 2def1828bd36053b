package repository

import (
	"context"
	"fmt"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditRepository interface {
	CreateTransaction(ctx context.Context, tx *model.CreditTransaction) error
	AddCredits(ctx context.Context, ispID uint, creditType string, credits int64) error
}

type Credit struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &Credit{db: db}
}

func (r *Credit) CreateTransaction(ctx context.Context, tx *model.CreditTransaction) error {
	db := GetTx(ctx, r.db)
	return db.Create(tx).Error
}

// AddCredits increments the ISP's counter for the given credit type, creating
// the counter row on first purchase.
func (r *Credit) AddCredits(ctx context.Context, ispID uint, creditType string, credits int64) error {
	db := GetTx(ctx, r.db)

	column, err := creditColumn(creditType)
	if err != nil {
		return err
	}

	row := model.ISPCredit{ISPID: ispID}
	switch creditType {
	case model.CreditTypeSMS:
		row.SMSCredits = credits
	case model.CreditTypeWhatsApp:
		row.WhatsAppCredits = credits
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "isp_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column + " + VALUES(" + column + ")"),
		}),
	}).Create(&row).Error
}

func creditColumn(creditType string) (string, error) {
	switch creditType {
	case model.CreditTypeSMS:
		return "sms_credits", nil
	case model.CreditTypeWhatsApp:
		return "whatsapp_credits", nil
	default:
		return "", fmt.Errorf("unknown credit type %q", creditType)
	}
}
