package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, inv *Invoice) error
	CreateLines(ctx context.Context, db *gorm.DB, lines []InvoiceLineItem) error

	FindByID(ctx context.Context, db *gorm.DB, merchantID, id int64) (*Invoice, error)
	// FindActiveByOrder returns the non-cancelled invoice (not credit
	// note) for an order, if one exists.
	FindActiveByOrder(ctx context.Context, db *gorm.DB, merchantID int64, orderID string) (*Invoice, error)
	FindByOriginal(ctx context.Context, db *gorm.DB, merchantID, originalInvoiceID int64) (*Invoice, error)
	FindAll(ctx context.Context, db *gorm.DB, merchantID int64, filter ListRequest) ([]Invoice, error)
	FindLines(ctx context.Context, db *gorm.DB, merchantID, invoiceID int64) ([]InvoiceLineItem, error)

	UpdateStatus(ctx context.Context, db *gorm.DB, merchantID, id int64, status InvoiceStatus) error

	Count(ctx context.Context, db *gorm.DB, merchantID int64, isCreditNote bool) (int64, error)
	CountSince(ctx context.Context, db *gorm.DB, merchantID int64, since time.Time) (int64, error)
}
