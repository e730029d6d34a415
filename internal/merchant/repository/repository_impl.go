package repository

import (
	"context"
	"errors"

	"github.com/bharatstack/gstbill/internal/merchant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByMerchant(ctx context.Context, db *gorm.DB, merchantID int64) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, p *domain.Profile) error {
	return db.WithContext(ctx).Create(p).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, p *domain.Profile) error {
	if p == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("merchant_id = ? AND id = ?", p.MerchantID, p.ID).
		Updates(map[string]any{
			"legal_name":         p.LegalName,
			"trading_name":       p.TradingName,
			"gstin":              p.GSTIN,
			"address_line1":      p.AddressLine1,
			"address_line2":      p.AddressLine2,
			"city":               p.City,
			"state_name":         p.StateName,
			"state_code":         p.StateCode,
			"pin_code":           p.PinCode,
			"phone":              p.Phone,
			"email":              p.Email,
			"default_hsn_code":   p.DefaultHSNCode,
			"default_gst_rate":   p.DefaultGSTRate,
			"price_includes_tax": p.PriceIncludesTax,
			"bank_name":          p.BankName,
			"bank_account_no":    p.BankAccountNo,
			"bank_ifsc":          p.BankIFSC,
			"signatory_name":     p.SignatoryName,
			"updated_at":         p.UpdatedAt,
		}).Error
}
