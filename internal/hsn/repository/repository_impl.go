package repository

import (
	"context"
	"errors"

	"github.com/bharatstack/gstbill/internal/hsn/domain"
	"github.com/bharatstack/gstbill/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, m *domain.Mapping) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, merchantID, id int64) (*domain.Mapping, error) {
	var m domain.Mapping
	err := db.WithContext(ctx).
		Where("merchant_id = ? AND id = ?", merchantID, id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, merchantID int64, filter domain.ListRequest) ([]domain.Mapping, error) {
	var items []domain.Mapping
	stmt := db.WithContext(ctx).
		Model(&domain.Mapping{}).
		Where("merchant_id = ?", merchantID)

	if filter.ProductID != "" {
		stmt = stmt.Where("product_id = ?", filter.ProductID)
	}
	if filter.CollectionID != "" {
		stmt = stmt.Where("collection_id = ?", filter.CollectionID)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at": true,
		"updated_at": true,
		"hsn_code":   true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *domain.Mapping) error {
	if m == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE hsn_mappings
		 SET hsn_code = ?, gst_rate = ?, updated_at = ?
		 WHERE merchant_id = ? AND id = ?`,
		m.HSNCode,
		m.GSTRate,
		m.UpdatedAt,
		m.MerchantID,
		m.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, merchantID, id int64) error {
	return db.WithContext(ctx).
		Where("merchant_id = ? AND id = ?", merchantID, id).
		Delete(&domain.Mapping{}).Error
}
