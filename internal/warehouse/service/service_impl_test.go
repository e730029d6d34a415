package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/merchantctx"
	"github.com/bharatstack/gstbill/internal/warehouse/domain"
	"github.com/bharatstack/gstbill/internal/warehouse/repository"
)

func newTestService(t *testing.T) (domain.Service, context.Context) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Warehouse{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	ctx := merchantctx.WithMerchantID(context.Background(), node.Generate())
	return svc, ctx
}

func TestFirstWarehouseBecomesDefault(t *testing.T) {
	svc, ctx := newTestService(t)

	w, err := svc.Create(ctx, domain.UpsertRequest{Name: "Bengaluru DC", StateName: "Karnataka"})
	require.NoError(t, err)
	assert.True(t, w.IsDefault)
	assert.Equal(t, "29", w.StateCode)
}

func TestOnlyOneDefaultAtATime(t *testing.T) {
	svc, ctx := newTestService(t)

	first, err := svc.Create(ctx, domain.UpsertRequest{Name: "Bengaluru DC", StateName: "Karnataka"})
	require.NoError(t, err)

	yes := true
	second, err := svc.Create(ctx, domain.UpsertRequest{Name: "Mumbai DC", StateName: "Maharashtra", IsDefault: &yes})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	defaults := 0
	for _, item := range items {
		if item.IsDefault {
			defaults++
			assert.Equal(t, second.ID, item.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	// Flip the default back.
	_, err = svc.SetDefault(ctx, snowflake.ID(first.ID).String())
	require.NoError(t, err)

	def, err := svc.Default(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, first.ID, def.ID)
}

func TestCreateRejectsUnknownState(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.Create(ctx, domain.UpsertRequest{Name: "Nowhere DC", StateName: "Atlantis"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDefaultIsNilWithoutWarehouses(t *testing.T) {
	svc, ctx := newTestService(t)

	def, err := svc.Default(ctx)
	require.NoError(t, err)
	assert.Nil(t, def)
}
