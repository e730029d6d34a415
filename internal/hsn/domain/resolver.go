package domain

import "github.com/shopspring/decimal"

// Resolution is the HSN code and GST rate chosen for a line item.
type Resolution struct {
	HSNCode string
	GSTRate decimal.Decimal
}

// Resolver answers HSN lookups from an in-memory snapshot of a merchant's
// mappings. Strategies run in order: a product-level mapping wins over a
// collection-level one, and collections are tried in the order the caller
// lists them.
type Resolver struct {
	byProduct    map[string]Resolution
	byCollection map[string]Resolution
}

type strategy func(r *Resolver, productID string, collectionIDs []string) (Resolution, bool)

var strategies = []strategy{
	(*Resolver).matchProduct,
	(*Resolver).matchCollection,
}

func NewResolver(mappings []Mapping) *Resolver {
	r := &Resolver{
		byProduct:    make(map[string]Resolution),
		byCollection: make(map[string]Resolution),
	}
	for _, m := range mappings {
		res := Resolution{HSNCode: m.HSNCode, GSTRate: m.GSTRate}
		switch {
		case m.ProductID != nil && *m.ProductID != "":
			r.byProduct[*m.ProductID] = res
		case m.CollectionID != nil && *m.CollectionID != "":
			r.byCollection[*m.CollectionID] = res
		}
	}
	return r
}

// Resolve returns the mapping for the line, falling back to the merchant
// defaults when no strategy matches.
func (r *Resolver) Resolve(productID string, collectionIDs []string, fallback Resolution) Resolution {
	for _, s := range strategies {
		if res, ok := s(r, productID, collectionIDs); ok {
			return res
		}
	}
	return fallback
}

func (r *Resolver) matchProduct(productID string, _ []string) (Resolution, bool) {
	res, ok := r.byProduct[productID]
	return res, ok
}

func (r *Resolver) matchCollection(_ string, collectionIDs []string) (Resolution, bool) {
	for _, id := range collectionIDs {
		if res, ok := r.byCollection[id]; ok {
			return res, true
		}
	}
	return Resolution{}, false
}
