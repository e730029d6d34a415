package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/hsn/domain"
	"github.com/bharatstack/gstbill/internal/merchantctx"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("hsn.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	productID := trimPtr(req.ProductID)
	collectionID := trimPtr(req.CollectionID)
	if (productID == nil) == (collectionID == nil) {
		return nil, domain.ErrInvalidMappingKey
	}

	hsnCode := strings.TrimSpace(req.HSNCode)
	if hsnCode == "" {
		return nil, domain.ErrInvalidHSNCode
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(req.GSTRate))
	if err != nil || rate.IsNegative() {
		return nil, domain.ErrInvalidGSTRate
	}

	now := time.Now().UTC()
	m := &domain.Mapping{
		ID:           s.genID.Generate().Int64(),
		MerchantID:   merchantID.Int64(),
		ProductID:    productID,
		CollectionID: collectionID,
		HSNCode:      hsnCode,
		GSTRate:      rate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, m); err != nil {
		return nil, err
	}
	resp := s.toResponse(m)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	filter := domain.ListRequest{
		ProductID:    strings.TrimSpace(req.ProductID),
		CollectionID: strings.TrimSpace(req.CollectionID),
		SortBy:       strings.TrimSpace(req.SortBy),
		OrderBy:      strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.FindAll(ctx, s.db, merchantID.Int64(), filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	mappingID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrMappingNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, merchantID.Int64(), mappingID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrMappingNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	mappingID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrMappingNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, merchantID.Int64(), mappingID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrMappingNotFound
	}

	if req.HSNCode != nil {
		hsnCode := strings.TrimSpace(*req.HSNCode)
		if hsnCode == "" {
			return nil, domain.ErrInvalidHSNCode
		}
		item.HSNCode = hsnCode
	}
	if req.GSTRate != nil {
		rate, err := decimal.NewFromString(strings.TrimSpace(*req.GSTRate))
		if err != nil || rate.IsNegative() {
			return nil, domain.ErrInvalidGSTRate
		}
		item.GSTRate = rate
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return domain.ErrInvalidMerchant
	}

	mappingID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrMappingNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, merchantID.Int64(), mappingID.Int64())
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrMappingNotFound
	}

	return s.repo.Delete(ctx, s.db, merchantID.Int64(), mappingID.Int64())
}

func (s *Service) ResolverForMerchant(ctx context.Context) (*domain.Resolver, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	items, err := s.repo.FindAll(ctx, s.db, merchantID.Int64(), domain.ListRequest{})
	if err != nil {
		return nil, err
	}
	return domain.NewResolver(items), nil
}

func (s *Service) toResponse(m *domain.Mapping) domain.Response {
	return domain.Response{
		ID:           snowflake.ID(m.ID).String(),
		MerchantID:   snowflake.ID(m.MerchantID).String(),
		ProductID:    m.ProductID,
		CollectionID: m.CollectionID,
		HSNCode:      m.HSNCode,
		GSTRate:      m.GSTRate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
