package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/clock"
	"github.com/bharatstack/gstbill/internal/merchantctx"
	"github.com/bharatstack/gstbill/internal/sequence/domain"
	"github.com/bharatstack/gstbill/pkg/db"
)

const (
	defaultPrefix = "INV"
	maxPrefixLen  = 10
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("sequence.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Next(ctx context.Context) (string, error) {
	var number string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		n, err := s.NextInTx(ctx, tx)
		if err != nil {
			return err
		}
		number = n
		return nil
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

func (s *Service) NextInTx(ctx context.Context, tx *gorm.DB) (string, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return "", domain.ErrInvalidMerchant
	}

	st, err := s.lockOrCreate(ctx, tx, merchantID.Int64())
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	if domain.ShouldReset(st.LastIssuedAt, now, st.ResetFrequency) {
		st.LastNumber = 0
	}
	st.LastNumber++
	st.LastIssuedAt = now
	st.UpdatedAt = now

	if err := s.repo.Update(ctx, tx, st); err != nil {
		return "", err
	}

	return domain.FormatNumber(st.Prefix, domain.FiscalYearLabel(now), domain.MonthSegment(now), st.LastNumber), nil
}

// lockOrCreate loads the merchant's counter row under a row lock,
// seeding it on first use. Two merchants racing their first invoice hit
// the unique index; the loser re-reads the winner's row.
func (s *Service) lockOrCreate(ctx context.Context, tx *gorm.DB, merchantID int64) (*domain.SequenceState, error) {
	st, err := s.repo.FindByMerchantForUpdate(ctx, tx, merchantID)
	if err != nil {
		return nil, err
	}
	if st != nil {
		return st, nil
	}

	now := s.clock.Now()
	st = &domain.SequenceState{
		ID:             s.genID.Generate().Int64(),
		MerchantID:     merchantID,
		Prefix:         defaultPrefix,
		ResetFrequency: domain.ResetYearly,
		LastNumber:     0,
		LastIssuedAt:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, tx, st); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return s.repo.FindByMerchantForUpdate(ctx, tx, merchantID)
		}
		return nil, err
	}
	return st, nil
}

func (s *Service) Peek(ctx context.Context) (*domain.Preview, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	now := s.clock.Now()

	st, err := s.repo.FindByMerchant(ctx, s.db, merchantID.Int64())
	if err != nil {
		return nil, err
	}

	prefix := defaultPrefix
	freq := domain.ResetYearly
	next := int64(1)
	willReset := false

	if st != nil {
		prefix = st.Prefix
		freq = st.ResetFrequency
		willReset = domain.ShouldReset(st.LastIssuedAt, now, freq)
		if willReset {
			next = 1
		} else {
			next = st.LastNumber + 1
		}
	}

	fiscalYear := domain.FiscalYearLabel(now)
	return &domain.Preview{
		NextNumber:      domain.FormatNumber(prefix, fiscalYear, domain.MonthSegment(now), next),
		Prefix:          prefix,
		FiscalYear:      fiscalYear,
		ResetFrequency:  freq,
		CurrentSequence: next - 1,
		WillReset:       willReset,
	}, nil
}

func (s *Service) Get(ctx context.Context) (*domain.SequenceState, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}
	return s.repo.FindByMerchant(ctx, s.db, merchantID.Int64())
}

func (s *Service) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) (*domain.SequenceState, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	var prefix *string
	if req.Prefix != nil {
		p := strings.ToUpper(strings.TrimSpace(*req.Prefix))
		if !validPrefix(p) {
			return nil, domain.ErrInvalidPrefix
		}
		prefix = &p
	}

	var freq *domain.ResetFrequency
	if req.ResetFrequency != nil {
		f := domain.ResetFrequency(strings.ToUpper(strings.TrimSpace(*req.ResetFrequency)))
		if !domain.ValidResetFrequency(f) {
			return nil, domain.ErrInvalidResetFrequency
		}
		freq = &f
	}

	var updated *domain.SequenceState
	err := s.db.Transaction(func(tx *gorm.DB) error {
		st, err := s.lockOrCreate(ctx, tx, merchantID.Int64())
		if err != nil {
			return err
		}
		if prefix != nil {
			st.Prefix = *prefix
		}
		if freq != nil {
			st.ResetFrequency = *freq
		}
		st.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, tx, st); err != nil {
			return err
		}
		updated = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// validPrefix accepts short uppercase alphanumeric prefixes. Hyphens
// would collide with the segment separator in generated numbers.
func validPrefix(p string) bool {
	if p == "" || len(p) > maxPrefixLen {
		return false
	}
	for _, r := range p {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
