package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func rate(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestResolverPrefersProductMapping(t *testing.T) {
	r := NewResolver([]Mapping{
		{ProductID: strPtr("prod-1"), HSNCode: "6109", GSTRate: rate(t, "5")},
		{CollectionID: strPtr("coll-1"), HSNCode: "6203", GSTRate: rate(t, "12")},
	})

	res := r.Resolve("prod-1", []string{"coll-1"}, Resolution{HSNCode: "99999", GSTRate: rate(t, "18")})
	assert.Equal(t, "6109", res.HSNCode)
	assert.True(t, res.GSTRate.Equal(rate(t, "5")))
}

func TestResolverFallsBackToCollection(t *testing.T) {
	r := NewResolver([]Mapping{
		{CollectionID: strPtr("coll-2"), HSNCode: "6203", GSTRate: rate(t, "12")},
	})

	res := r.Resolve("prod-unmapped", []string{"coll-1", "coll-2"}, Resolution{HSNCode: "99999", GSTRate: rate(t, "18")})
	assert.Equal(t, "6203", res.HSNCode)
	assert.True(t, res.GSTRate.Equal(rate(t, "12")))
}

func TestResolverCollectionOrderMatters(t *testing.T) {
	r := NewResolver([]Mapping{
		{CollectionID: strPtr("coll-a"), HSNCode: "1111", GSTRate: rate(t, "5")},
		{CollectionID: strPtr("coll-b"), HSNCode: "2222", GSTRate: rate(t, "28")},
	})

	res := r.Resolve("", []string{"coll-b", "coll-a"}, Resolution{})
	assert.Equal(t, "2222", res.HSNCode)
}

func TestResolverUsesFallbackWhenNothingMatches(t *testing.T) {
	r := NewResolver(nil)

	fallback := Resolution{HSNCode: "99999", GSTRate: rate(t, "18")}
	res := r.Resolve("prod-1", []string{"coll-1"}, fallback)
	assert.Equal(t, fallback, res)
}

func TestResolverIgnoresEmptyKeys(t *testing.T) {
	r := NewResolver([]Mapping{
		{ProductID: strPtr(""), HSNCode: "1111", GSTRate: rate(t, "5")},
	})

	res := r.Resolve("", nil, Resolution{HSNCode: "99999", GSTRate: rate(t, "18")})
	assert.Equal(t, "99999", res.HSNCode)
}
