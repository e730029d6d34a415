package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/gst"
	"github.com/bharatstack/gstbill/internal/merchantctx"
	"github.com/bharatstack/gstbill/internal/warehouse/domain"
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
		log:   p.Log.Named("warehouse.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.UpsertRequest) (*domain.Warehouse, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	stateName := strings.TrimSpace(req.StateName)
	stateCode := gst.StateCode(stateName)
	if stateCode == gst.UnknownStateCode {
		return nil, domain.ErrInvalidState
	}

	now := time.Now().UTC()
	w := &domain.Warehouse{
		ID:           s.genID.Generate().Int64(),
		MerchantID:   merchantID.Int64(),
		Name:         name,
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: strings.TrimSpace(req.AddressLine2),
		City:         strings.TrimSpace(req.City),
		StateName:    stateName,
		StateCode:    stateCode,
		PinCode:      strings.TrimSpace(req.PinCode),
		GSTIN:        strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		Phone:        strings.TrimSpace(req.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The first warehouse becomes the default even when the caller does
	// not ask for it. Setting a later default clears the previous one in
	// the same transaction.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindDefault(ctx, tx, merchantID.Int64())
		if err != nil {
			return err
		}
		wantDefault := existing == nil
		if req.IsDefault != nil && *req.IsDefault {
			wantDefault = true
		}
		if wantDefault && existing != nil {
			if err := s.repo.ClearDefault(ctx, tx, merchantID.Int64()); err != nil {
				return err
			}
		}
		w.IsDefault = wantDefault
		return s.repo.Create(ctx, tx, w)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Warehouse, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}
	return s.repo.FindAll(ctx, s.db, merchantID.Int64())
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Warehouse, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	warehouseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrWarehouseNotFound
	}

	w, err := s.repo.FindByID(ctx, s.db, merchantID.Int64(), warehouseID.Int64())
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrWarehouseNotFound
	}
	return w, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpsertRequest) (*domain.Warehouse, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	warehouseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrWarehouseNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	stateName := strings.TrimSpace(req.StateName)
	stateCode := gst.StateCode(stateName)
	if stateCode == gst.UnknownStateCode {
		return nil, domain.ErrInvalidState
	}

	var updated *domain.Warehouse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		w, err := s.repo.FindByID(ctx, tx, merchantID.Int64(), warehouseID.Int64())
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrWarehouseNotFound
		}

		if req.IsDefault != nil && *req.IsDefault && !w.IsDefault {
			if err := s.repo.ClearDefault(ctx, tx, merchantID.Int64()); err != nil {
				return err
			}
			w.IsDefault = true
		}

		w.Name = name
		w.AddressLine1 = strings.TrimSpace(req.AddressLine1)
		w.AddressLine2 = strings.TrimSpace(req.AddressLine2)
		w.City = strings.TrimSpace(req.City)
		w.StateName = stateName
		w.StateCode = stateCode
		w.PinCode = strings.TrimSpace(req.PinCode)
		w.GSTIN = strings.ToUpper(strings.TrimSpace(req.GSTIN))
		w.Phone = strings.TrimSpace(req.Phone)
		w.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, tx, w); err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return domain.ErrInvalidMerchant
	}

	warehouseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrWarehouseNotFound
	}

	w, err := s.repo.FindByID(ctx, s.db, merchantID.Int64(), warehouseID.Int64())
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrWarehouseNotFound
	}

	return s.repo.Delete(ctx, s.db, merchantID.Int64(), warehouseID.Int64())
}

func (s *Service) SetDefault(ctx context.Context, id string) (*domain.Warehouse, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	warehouseID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrWarehouseNotFound
	}

	var updated *domain.Warehouse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		w, err := s.repo.FindByID(ctx, tx, merchantID.Int64(), warehouseID.Int64())
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrWarehouseNotFound
		}
		if err := s.repo.ClearDefault(ctx, tx, merchantID.Int64()); err != nil {
			return err
		}
		w.IsDefault = true
		w.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, tx, w); err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Default(ctx context.Context) (*domain.Warehouse, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}
	return s.repo.FindDefault(ctx, s.db, merchantID.Int64())
}
