package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bharatstack/gstbill/internal/invoice/domain"
	"github.com/bharatstack/gstbill/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, inv *domain.Invoice) error {
	return db.WithContext(ctx).Create(inv).Error
}

func (r *repo) CreateLines(ctx context.Context, db *gorm.DB, lines []domain.InvoiceLineItem) error {
	if len(lines) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&lines).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, merchantID, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.WithContext(ctx).
		Where("merchant_id = ? AND id = ?", merchantID, id).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repo) FindActiveByOrder(ctx context.Context, db *gorm.DB, merchantID int64, orderID string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.WithContext(ctx).
		Where("merchant_id = ? AND order_id = ? AND is_credit_note = ? AND status <> ?",
			merchantID, orderID, false, domain.InvoiceStatusCancelled).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repo) FindByOriginal(ctx context.Context, db *gorm.DB, merchantID, originalInvoiceID int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.WithContext(ctx).
		Where("merchant_id = ? AND original_invoice_id = ?", merchantID, originalInvoiceID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, merchantID int64, filter domain.ListRequest) ([]domain.Invoice, error) {
	var items []domain.Invoice
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("merchant_id = ?", merchantID)

	if filter.IsCreditNote != nil {
		stmt = stmt.Where("is_credit_note = ?", *filter.IsCreditNote)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(filter.SortBy, filter.OrderBy, map[string]bool{
		"created_at":     true,
		"invoice_date":   true,
		"invoice_number": true,
		"grand_total":    true,
	})).Apply(stmt)

	if filter.Limit > 0 {
		stmt = option.WithLimit(filter.Limit).Apply(stmt)
	}

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindLines(ctx context.Context, db *gorm.DB, merchantID, invoiceID int64) ([]domain.InvoiceLineItem, error) {
	var items []domain.InvoiceLineItem
	err := db.WithContext(ctx).
		Where("merchant_id = ? AND invoice_id = ?", merchantID, invoiceID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, merchantID, id int64, status domain.InvoiceStatus) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, updated_at = ? WHERE merchant_id = ? AND id = ?`,
		status, time.Now().UTC(), merchantID, id,
	).Error
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, merchantID int64, isCreditNote bool) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("merchant_id = ? AND is_credit_note = ?", merchantID, isCreditNote).
		Count(&count).Error
	return count, err
}

func (r *repo) CountSince(ctx context.Context, db *gorm.DB, merchantID int64, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("merchant_id = ? AND invoice_date >= ?", merchantID, since).
		Count(&count).Error
	return count, err
}
