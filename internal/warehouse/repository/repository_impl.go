package repository

import (
	"context"
	"errors"

	"github.com/bharatstack/gstbill/internal/warehouse/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, w *domain.Warehouse) error {
	return db.WithContext(ctx).Create(w).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, merchantID, id int64) (*domain.Warehouse, error) {
	var w domain.Warehouse
	err := db.WithContext(ctx).
		Where("merchant_id = ? AND id = ?", merchantID, id).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, merchantID int64) ([]domain.Warehouse, error) {
	var items []domain.Warehouse
	err := db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindDefault(ctx context.Context, db *gorm.DB, merchantID int64) (*domain.Warehouse, error) {
	var w domain.Warehouse
	err := db.WithContext(ctx).
		Where("merchant_id = ? AND is_default = ?", merchantID, true).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repo) ClearDefault(ctx context.Context, db *gorm.DB, merchantID int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE warehouses SET is_default = ? WHERE merchant_id = ? AND is_default = ?`,
		false, merchantID, true,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, w *domain.Warehouse) error {
	if w == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE warehouses
		 SET name = ?, address_line1 = ?, address_line2 = ?, city = ?,
		     state_name = ?, state_code = ?, pin_code = ?, gstin = ?,
		     phone = ?, is_default = ?, updated_at = ?
		 WHERE merchant_id = ? AND id = ?`,
		w.Name,
		w.AddressLine1,
		w.AddressLine2,
		w.City,
		w.StateName,
		w.StateCode,
		w.PinCode,
		w.GSTIN,
		w.Phone,
		w.IsDefault,
		w.UpdatedAt,
		w.MerchantID,
		w.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, merchantID, id int64) error {
	return db.WithContext(ctx).
		Where("merchant_id = ? AND id = ?", merchantID, id).
		Delete(&domain.Warehouse{}).Error
}
