// Package domain contains persistence models and contracts for HSN mappings.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mapping binds a product or a collection to an HSN code and GST rate.
// Exactly one of ProductID and CollectionID is set.
type Mapping struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	MerchantID   int64           `json:"merchant_id" gorm:"column:merchant_id;not null;uniqueIndex:ux_hsn_merchant_product,priority:1;uniqueIndex:ux_hsn_merchant_collection,priority:1"`
	ProductID    *string         `json:"product_id,omitempty" gorm:"type:text;uniqueIndex:ux_hsn_merchant_product,priority:2"`
	CollectionID *string         `json:"collection_id,omitempty" gorm:"type:text;uniqueIndex:ux_hsn_merchant_collection,priority:2"`
	HSNCode      string          `json:"hsn_code" gorm:"type:text;not null"`
	GSTRate      decimal.Decimal `json:"gst_rate" gorm:"type:numeric(5,2);not null"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Mapping) TableName() string { return "hsn_mappings" }
