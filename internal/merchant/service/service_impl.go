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

	"github.com/bharatstack/gstbill/internal/config"
	"github.com/bharatstack/gstbill/internal/gst"
	"github.com/bharatstack/gstbill/internal/merchant/domain"
	"github.com/bharatstack/gstbill/internal/merchantctx"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Invoicing *config.InvoicingConfigHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	genID     *snowflake.Node
	invoicing *config.InvoicingConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("merchant.service"),
		repo:      p.Repo,
		genID:     p.GenID,
		invoicing: p.Invoicing,
	}
}

func (s *Service) Get(ctx context.Context) (*domain.Profile, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	p, err := s.repo.FindByMerchant(ctx, s.db, merchantID.Int64())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertRequest) (*domain.Profile, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	legalName := strings.TrimSpace(req.LegalName)
	if legalName == "" {
		return nil, domain.ErrInvalidLegalName
	}

	gstin := strings.ToUpper(strings.TrimSpace(req.GSTIN))
	if len(gstin) != 15 {
		return nil, domain.ErrInvalidGSTIN
	}

	stateName := strings.TrimSpace(req.StateName)
	stateCode := gst.StateCode(stateName)
	if stateCode == gst.UnknownStateCode {
		return nil, domain.ErrInvalidState
	}

	defaults := s.invoicing.Get()

	hsnCode := strings.TrimSpace(req.DefaultHSNCode)
	if hsnCode == "" {
		hsnCode = defaults.DefaultHSNCode
	}

	rateStr := strings.TrimSpace(req.DefaultGSTRate)
	if rateStr == "" {
		rateStr = defaults.DefaultGSTRate
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.IsNegative() {
		return nil, domain.ErrInvalidGSTRate
	}

	priceIncludesTax := defaults.PriceIncludesTax
	if req.PriceIncludesTax != nil {
		priceIncludesTax = *req.PriceIncludesTax
	}

	now := time.Now().UTC()

	existing, err := s.repo.FindByMerchant(ctx, s.db, merchantID.Int64())
	if err != nil {
		return nil, err
	}

	p := existing
	if p == nil {
		p = &domain.Profile{
			ID:         s.genID.Generate().Int64(),
			MerchantID: merchantID.Int64(),
			Country:    "India",
			CreatedAt:  now,
		}
	}

	p.LegalName = legalName
	p.TradingName = strings.TrimSpace(req.TradingName)
	p.GSTIN = gstin
	p.AddressLine1 = strings.TrimSpace(req.AddressLine1)
	p.AddressLine2 = strings.TrimSpace(req.AddressLine2)
	p.City = strings.TrimSpace(req.City)
	p.StateName = stateName
	p.StateCode = stateCode
	p.PinCode = strings.TrimSpace(req.PinCode)
	p.Phone = strings.TrimSpace(req.Phone)
	p.Email = strings.TrimSpace(req.Email)
	p.DefaultHSNCode = hsnCode
	p.DefaultGSTRate = rate
	p.PriceIncludesTax = priceIncludesTax
	p.BankName = strings.TrimSpace(req.BankName)
	p.BankAccountNo = strings.TrimSpace(req.BankAccountNo)
	p.BankIFSC = strings.TrimSpace(req.BankIFSC)
	p.SignatoryName = strings.TrimSpace(req.SignatoryName)
	p.UpdatedAt = now

	if existing == nil {
		if err := s.repo.Create(ctx, s.db, p); err != nil {
			return nil, err
		}
		s.log.Info("merchant profile created", zap.Int64("merchant_id", merchantID.Int64()))
		return p, nil
	}

	if err := s.repo.Update(ctx, s.db, p); err != nil {
		return nil, err
	}
	return p, nil
}
