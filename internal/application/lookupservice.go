package application

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
	"github.com/ericfisherdev/dvrhub/internal/domain/port/driven"
)

// Recoverable lookup errors. They are shown next to the selection and never
// stop the rest of the page from rendering.
var (
	ErrUnknownBrand   = errors.New("brand not found")
	ErrUnknownModel   = errors.New("model not found for this brand")
	ErrRecordNotFound = errors.New("error fetching data for this model")
)

// LookupState is the position of a search in the brand → model selection flow.
type LookupState int

const (
	StateNoBrandSelected LookupState = iota
	StateBrandSelected
	StateModelSelected
)

// String returns the state name used in logs and API responses.
func (s LookupState) String() string {
	switch s {
	case StateBrandSelected:
		return "brand_selected"
	case StateModelSelected:
		return "model_selected"
	default:
		return "no_brand_selected"
	}
}

// LookupResult is everything the search view needs to render one pass of the
// selection flow.
type LookupResult struct {
	State LookupState

	// Available is false when the store could not be read or holds no records.
	// When false no other field except LoadErr is populated.
	Available bool
	LoadErr   error

	Brands []string
	Models []string
	Brand  string
	Model  string
	Record *model.Record

	// Err is a recoverable selection error: ErrUnknownBrand, ErrUnknownModel
	// or ErrRecordNotFound.
	Err error
}

// LookupService drives the search flow. Every call reads the store once.
type LookupService struct {
	store  driven.RecordStore
	logger *slog.Logger
}

// NewLookupService creates a LookupService reading from store.
func NewLookupService(store driven.RecordStore, logger *slog.Logger) *LookupService {
	return &LookupService{store: store, logger: logger}
}

// Load reads the whole store into a Catalog. A read failure is logged and
// yields an empty catalog alongside the error, so callers that only render
// can ignore the error and show the empty state.
func (s *LookupService) Load(ctx context.Context) (*Catalog, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		s.logger.Warn("record store unavailable, serving empty catalog", "error", err)
		return NewCatalog(nil), err
	}
	return NewCatalog(records), nil
}

// Lookup loads the store and resolves the brand and model selection.
func (s *LookupService) Lookup(ctx context.Context, brand, deviceModel string) LookupResult {
	catalog, err := s.Load(ctx)
	if err != nil {
		return LookupResult{State: StateNoBrandSelected, LoadErr: err}
	}
	return Resolve(catalog, brand, deviceModel)
}

// Resolve runs the selection state machine against catalog. It has no side
// effects, so the same catalog and selection always give the same result.
func Resolve(catalog *Catalog, brand, deviceModel string) LookupResult {
	res := LookupResult{State: StateNoBrandSelected}
	if catalog.Empty() {
		return res
	}

	res.Available = true
	res.Brands = catalog.Brands()

	if brand == "" {
		return res
	}
	if !slices.Contains(res.Brands, brand) {
		res.Err = ErrUnknownBrand
		return res
	}

	res.State = StateBrandSelected
	res.Brand = brand
	res.Models = catalog.Models(brand)

	if deviceModel == "" {
		return res
	}
	if !slices.Contains(res.Models, deviceModel) {
		res.Err = ErrUnknownModel
		return res
	}

	res.Model = deviceModel
	rec, ok := catalog.Find(brand, deviceModel)
	if !ok {
		res.Err = ErrRecordNotFound
		return res
	}

	res.State = StateModelSelected
	res.Record = &rec
	return res
}
