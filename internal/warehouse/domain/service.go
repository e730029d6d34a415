package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, w *Warehouse) error
	FindByID(ctx context.Context, db *gorm.DB, merchantID, id int64) (*Warehouse, error)
	FindAll(ctx context.Context, db *gorm.DB, merchantID int64) ([]Warehouse, error)
	FindDefault(ctx context.Context, db *gorm.DB, merchantID int64) (*Warehouse, error)
	ClearDefault(ctx context.Context, db *gorm.DB, merchantID int64) error
	Update(ctx context.Context, db *gorm.DB, w *Warehouse) error
	Delete(ctx context.Context, db *gorm.DB, merchantID, id int64) error
}

type Service interface {
	Create(ctx context.Context, req UpsertRequest) (*Warehouse, error)
	List(ctx context.Context) ([]Warehouse, error)
	Get(ctx context.Context, id string) (*Warehouse, error)
	Update(ctx context.Context, id string, req UpsertRequest) (*Warehouse, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) (*Warehouse, error)

	// Default returns the merchant's default warehouse, or nil when the
	// merchant has none. Invoice assembly then falls back to the profile
	// state for place of supply.
	Default(ctx context.Context) (*Warehouse, error)
}

type UpsertRequest struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	StateName    string `json:"state_name"`
	PinCode      string `json:"pin_code"`
	GSTIN        string `json:"gstin"`
	Phone        string `json:"phone"`
	IsDefault    *bool  `json:"is_default"`
}

var (
	ErrInvalidMerchant   = errors.New("invalid_merchant")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidState      = errors.New("invalid_state")
	ErrWarehouseNotFound = errors.New("warehouse_not_found")
)
