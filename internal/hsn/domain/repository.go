package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, m *Mapping) error
	FindByID(ctx context.Context, db *gorm.DB, merchantID, id int64) (*Mapping, error)
	FindAll(ctx context.Context, db *gorm.DB, merchantID int64, filter ListRequest) ([]Mapping, error)
	Update(ctx context.Context, db *gorm.DB, m *Mapping) error
	Delete(ctx context.Context, db *gorm.DB, merchantID, id int64) error
}
