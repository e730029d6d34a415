package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/bharatstack/gstbill/internal/config"
)

const (
	keyIssueRate = "invoice:issue:rate:%d"
	keyIssueLock = "invoice:issue:lock:%d:%s"
)

// IssuanceGuard throttles invoice generation per merchant and takes a
// short cross-instance lock per order, so the same order is never
// assembled twice concurrently. A nil guard allows everything, which is
// what single-instance deployments without redis get.
type IssuanceGuard struct {
	bucket *TokenBucket
	locker *Locker

	rate    float64
	burst   int
	lockTTL time.Duration
}

func NewIssuanceGuard(cfg config.Config) (*IssuanceGuard, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit requires REDIS_ADDR")
	}
	if limitCfg.IssueRate <= 0 || limitCfg.IssueBurst <= 0 {
		return nil, errors.New("issue rate limit must be positive")
	}
	if limitCfg.IssueLockTTLSeconds <= 0 {
		return nil, errors.New("issue lock ttl must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &IssuanceGuard{
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		rate:    limitCfg.IssueRate,
		burst:   limitCfg.IssueBurst,
		lockTTL: time.Duration(limitCfg.IssueLockTTLSeconds) * time.Second,
	}, nil
}

func (g *IssuanceGuard) Enabled() bool {
	return g != nil
}

// AllowMerchant reports whether the merchant may issue another invoice
// right now.
func (g *IssuanceGuard) AllowMerchant(ctx context.Context, merchantID int64) (bool, error) {
	if !g.Enabled() {
		return true, nil
	}
	return g.bucket.Allow(ctx, fmt.Sprintf(keyIssueRate, merchantID), g.rate, g.burst)
}

// LockOrder takes the per-order issuance lock. The returned token must
// be passed back to ReleaseOrder.
func (g *IssuanceGuard) LockOrder(ctx context.Context, merchantID int64, orderID string) (string, bool, error) {
	if !g.Enabled() {
		return "", true, nil
	}
	key := fmt.Sprintf(keyIssueLock, merchantID, strings.TrimSpace(orderID))
	return g.locker.TryLock(ctx, key, g.lockTTL)
}

func (g *IssuanceGuard) ReleaseOrder(ctx context.Context, merchantID int64, orderID, token string) error {
	if !g.Enabled() {
		return nil
	}
	key := fmt.Sprintf(keyIssueLock, merchantID, strings.TrimSpace(orderID))
	return g.locker.Release(ctx, key, token)
}
