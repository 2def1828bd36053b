package repository

import (
	"context"
	"errors"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrWalletNotFound = errors.New("WALLET_NOT_FOUND")

type WalletRepository interface {
	Find(ctx context.Context, ispID uint) (*model.ISPWallet, error)
	Credit(ctx context.Context, ispID uint, amount decimal.Decimal) error
	Balance(ctx context.Context, ispID uint) (decimal.Decimal, error)
}

type Wallet struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &Wallet{db: db}
}

func (r *Wallet) Find(ctx context.Context, ispID uint) (*model.ISPWallet, error) {
	db := GetTx(ctx, r.db)

	var wallet model.ISPWallet
	err := db.Where("isp_id = ?", ispID).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWalletNotFound
	}

	return nil, err
}

// Credit creates the wallet on first payment, otherwise adds to the existing
// balance. The additive update happens in the store itself, so concurrent
// payments for the same ISP serialize on the row instead of racing a
// read-modify-write in the application.
func (r *Wallet) Credit(ctx context.Context, ispID uint, amount decimal.Decimal) error {
	db := GetTx(ctx, r.db)

	wallet := model.ISPWallet{ISPID: ispID, Balance: amount, LastUpdated: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "isp_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":      gorm.Expr("balance + VALUES(balance)"),
			"last_updated": gorm.Expr("NOW()"),
		}),
	}).Create(&wallet).Error
}

func (r *Wallet) Balance(ctx context.Context, ispID uint) (decimal.Decimal, error) {
	wallet, err := r.Find(ctx, ispID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}
