package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/config"
	"github.com/bharatstack/gstbill/internal/merchant/domain"
	"github.com/bharatstack/gstbill/internal/merchant/repository"
	"github.com/bharatstack/gstbill/internal/merchantctx"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Profile{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder := config.NewStaticInvoicingConfigHolder(config.DefaultInvoicingConfig())

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		Invoicing: holder,
	})
	return svc, node
}

func TestUpsertCreatesProfile(t *testing.T) {
	svc, node := newTestService(t)
	ctx := merchantctx.WithMerchantID(context.Background(), node.Generate())

	p, err := svc.Upsert(ctx, domain.UpsertRequest{
		LegalName: "Acme Traders Pvt Ltd",
		GSTIN:     "29ABCDE1234F1Z5",
		StateName: "Karnataka",
	})
	require.NoError(t, err)

	assert.Equal(t, "29", p.StateCode)
	assert.Equal(t, "99999", p.DefaultHSNCode)
	assert.True(t, p.PriceIncludesTax)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestUpsertUpdatesExistingProfile(t *testing.T) {
	svc, node := newTestService(t)
	ctx := merchantctx.WithMerchantID(context.Background(), node.Generate())

	first, err := svc.Upsert(ctx, domain.UpsertRequest{
		LegalName: "Acme Traders Pvt Ltd",
		GSTIN:     "29ABCDE1234F1Z5",
		StateName: "Karnataka",
	})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, domain.UpsertRequest{
		LegalName:      "Acme Traders Private Limited",
		GSTIN:          "27ABCDE1234F1Z5",
		StateName:      "Maharashtra",
		DefaultGSTRate: "12",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "27", second.StateCode)
	assert.True(t, second.DefaultGSTRate.Equal(decimalFromString(t, "12")))
}

func TestUpsertRejectsBadInput(t *testing.T) {
	svc, node := newTestService(t)
	ctx := merchantctx.WithMerchantID(context.Background(), node.Generate())

	_, err := svc.Upsert(ctx, domain.UpsertRequest{GSTIN: "29ABCDE1234F1Z5", StateName: "Karnataka"})
	assert.ErrorIs(t, err, domain.ErrInvalidLegalName)

	_, err = svc.Upsert(ctx, domain.UpsertRequest{LegalName: "Acme", GSTIN: "short", StateName: "Karnataka"})
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)

	_, err = svc.Upsert(ctx, domain.UpsertRequest{LegalName: "Acme", GSTIN: "29ABCDE1234F1Z5", StateName: "Atlantis"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestGetWithoutProfile(t *testing.T) {
	svc, node := newTestService(t)
	ctx := merchantctx.WithMerchantID(context.Background(), node.Generate())

	_, err := svc.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestMerchantScopeRequired(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidMerchant)
}
