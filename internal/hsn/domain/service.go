package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error

	// ResolverForMerchant loads the merchant's mappings into an in-memory
	// resolver, so invoice assembly does one query per invoice instead of
	// one per line.
	ResolverForMerchant(ctx context.Context) (*Resolver, error)
}

type ListRequest struct {
	ProductID    string
	CollectionID string
	SortBy       string
	OrderBy      string
}

type CreateRequest struct {
	ProductID    *string `json:"product_id"`
	CollectionID *string `json:"collection_id"`
	HSNCode      string  `json:"hsn_code"`
	GSTRate      string  `json:"gst_rate"`
}

type UpdateRequest struct {
	ID      string  `json:"-"`
	HSNCode *string `json:"hsn_code"`
	GSTRate *string `json:"gst_rate"`
}

type Response struct {
	ID           string          `json:"id"`
	MerchantID   string          `json:"merchant_id"`
	ProductID    *string         `json:"product_id,omitempty"`
	CollectionID *string         `json:"collection_id,omitempty"`
	HSNCode      string          `json:"hsn_code"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
