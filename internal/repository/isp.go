package repository

import (
	"errors"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"gorm.io/gorm"
)

var ErrISPNotFound = errors.New("ISP_NOT_FOUND")

type ISPRepository interface {
	FindByID(id uint) (*model.ISP, error)
	FindBySMSAccount(code string) (*model.ISP, error)
	FindByWhatsAppAccount(code string) (*model.ISP, error)
	FindByPayAccount(code string) (*model.ISP, error)
}

type ISP struct {
	db *gorm.DB
}

func NewISPRepository(db *gorm.DB) ISPRepository {
	return &ISP{db: db}
}

func (r *ISP) FindByID(id uint) (*model.ISP, error) {
	return r.findBy("id = ?", id)
}

func (r *ISP) FindBySMSAccount(code string) (*model.ISP, error) {
	return r.findBy("smsaccount = ?", code)
}

func (r *ISP) FindByWhatsAppAccount(code string) (*model.ISP, error) {
	return r.findBy("waaccount = ?", code)
}

func (r *ISP) FindByPayAccount(code string) (*model.ISP, error) {
	return r.findBy("pay_account_number = ?", code)
}

func (r *ISP) findBy(query string, arg interface{}) (*model.ISP, error) {
	var isp model.ISP

	err := r.db.Where(query, arg).First(&isp).Error
	if err == nil {
		return &isp, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrISPNotFound
	}

	return nil, err
}
