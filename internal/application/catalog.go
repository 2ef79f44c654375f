package application

import (
	"sort"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

// Catalog is an in-memory view of the store taken by a single LoadAll. It is
// rebuilt on every request and never cached.
type Catalog struct {
	records []model.Record
}

// NewCatalog wraps records, which must be in store row order.
func NewCatalog(records []model.Record) *Catalog {
	return &Catalog{records: records}
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Empty reports whether the catalog holds no records.
func (c *Catalog) Empty() bool {
	return len(c.records) == 0
}

// Brands returns the distinct brands, sorted.
func (c *Catalog) Brands() []string {
	seen := make(map[string]struct{})
	for _, r := range c.records {
		seen[r.Brand] = struct{}{}
	}
	return sortedKeys(seen)
}

// HasBrand reports whether any record carries brand exactly.
func (c *Catalog) HasBrand(brand string) bool {
	for _, r := range c.records {
		if r.Brand == brand {
			return true
		}
	}
	return false
}

// Models returns the distinct models of brand, sorted. Brand matching is exact
// and case-sensitive.
func (c *Catalog) Models(brand string) []string {
	seen := make(map[string]struct{})
	for _, r := range c.records {
		if r.Brand == brand {
			seen[r.Model] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Find returns the first record, in store order, for brand and deviceModel.
func (c *Catalog) Find(brand, deviceModel string) (model.Record, bool) {
	for _, r := range c.records {
		if r.Matches(brand, deviceModel) {
			return r, true
		}
	}
	return model.Record{}, false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
