// Package domain contains warehouse dispatch-location models and contracts.
package domain

import "time"

// Warehouse is a dispatch location. The state on the chosen warehouse,
// not the merchant profile, decides the place of supply for an order
// shipped from it. At most one warehouse per merchant is the default.
type Warehouse struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	MerchantID int64 `json:"merchant_id" gorm:"column:merchant_id;not null;index"`

	Name         string `json:"name" gorm:"type:text;not null"`
	AddressLine1 string `json:"address_line1" gorm:"type:text"`
	AddressLine2 string `json:"address_line2" gorm:"type:text"`
	City         string `json:"city" gorm:"type:text"`
	StateName    string `json:"state_name" gorm:"type:text;not null"`
	StateCode    string `json:"state_code" gorm:"type:text;not null"`
	PinCode      string `json:"pin_code" gorm:"type:text"`
	GSTIN        string `json:"gstin" gorm:"type:text"`
	Phone        string `json:"phone" gorm:"type:text"`

	IsDefault bool `json:"is_default" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Warehouse) TableName() string { return "warehouses" }
