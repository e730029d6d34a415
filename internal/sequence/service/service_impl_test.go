package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/clock"
	"github.com/bharatstack/gstbill/internal/merchantctx"
	"github.com/bharatstack/gstbill/internal/sequence/domain"
	"github.com/bharatstack/gstbill/internal/sequence/repository"
)

func newTestService(t *testing.T, fake *clock.FakeClock) (domain.Service, context.Context) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.SequenceState{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
	})
	ctx := merchantctx.WithMerchantID(context.Background(), node.Generate())
	return svc, ctx
}

func TestNextSeedsAndIncrements(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	svc, ctx := newTestService(t, fake)

	first, err := svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-06-00001", first)

	second, err := svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-06-00002", second)
}

func TestYearlyResetAtFiscalBoundary(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC))
	svc, ctx := newTestService(t, fake)

	n, err := svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-03-00001", n)

	// December to January stays in the same fiscal year, so no reset,
	// but crossing into April starts a new one.
	fake.Set(time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC))
	n, err = svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-26-04-00001", n)
}

func TestYearlyDoesNotResetInsideFiscalYear(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC))
	svc, ctx := newTestService(t, fake)

	n, err := svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-12-00001", n)

	fake.Set(time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC))
	n, err = svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-01-00002", n)
}

func TestMonthlyReset(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC))
	svc, ctx := newTestService(t, fake)

	_, err := svc.UpdateSettings(ctx, domain.UpdateSettingsRequest{ResetFrequency: strPtr("MONTHLY")})
	require.NoError(t, err)

	n, err := svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-06-00001", n)

	fake.Advance(24 * time.Hour)
	n, err = svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-07-00001", n)
}

func TestQuarterlyResetOnCalendarQuarter(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.December, 20, 12, 0, 0, 0, time.UTC))
	svc, ctx := newTestService(t, fake)

	_, err := svc.UpdateSettings(ctx, domain.UpdateSettingsRequest{ResetFrequency: strPtr("QUARTERLY")})
	require.NoError(t, err)

	n, err := svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-12-00001", n)

	// 1 January is a quarter boundary even though the fiscal year has
	// not rolled yet.
	fake.Set(time.Date(2025, time.January, 2, 12, 0, 0, 0, time.UTC))
	n, err = svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-01-00001", n)
}

func TestPeekDoesNotConsume(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	svc, ctx := newTestService(t, fake)

	preview, err := svc.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-06-00001", preview.NextNumber)
	assert.Equal(t, "2024-25", preview.FiscalYear)
	assert.Equal(t, int64(0), preview.CurrentSequence)

	n, err := svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, preview.NextNumber, n)

	preview, err = svc.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-06-00002", preview.NextNumber)
	assert.Equal(t, int64(1), preview.CurrentSequence)
}

func TestUpdateSettingsValidation(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	svc, ctx := newTestService(t, fake)

	_, err := svc.UpdateSettings(ctx, domain.UpdateSettingsRequest{Prefix: strPtr("MY-PREFIX")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrefix)

	_, err = svc.UpdateSettings(ctx, domain.UpdateSettingsRequest{ResetFrequency: strPtr("WEEKLY")})
	assert.ErrorIs(t, err, domain.ErrInvalidResetFrequency)

	st, err := svc.UpdateSettings(ctx, domain.UpdateSettingsRequest{Prefix: strPtr("acme")})
	require.NoError(t, err)
	assert.Equal(t, "ACME", st.Prefix)

	n, err := svc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ACME-2024-25-06-00001", n)
}

func TestConcurrentIssuanceIsGapFree(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	svc, ctx := newTestService(t, fake)

	// Seed the row first so the workers race on increments, not on the
	// initial insert.
	_, err := svc.Next(ctx)
	require.NoError(t, err)

	const workers = 8
	var mu sync.Mutex
	var issued []string

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// sqlite may refuse a concurrent writer; only successfully
			// issued numbers count.
			n, err := svc.Next(ctx)
			if err != nil {
				return
			}
			mu.Lock()
			issued = append(issued, n)
			mu.Unlock()
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, len(issued))
	for _, n := range issued {
		assert.False(t, seen[n], "number %s issued twice", n)
		assert.NotEqual(t, "INV-2024-25-06-00001", n)
		seen[n] = true
	}
}

func strPtr(s string) *string { return &s }
