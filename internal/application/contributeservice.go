package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
	"github.com/ericfisherdev/dvrhub/internal/domain/port/driven"
)

// ValidationError lists the required fields a contribution left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// BrandSource says whether the contribute form picked a brand from the
// existing list or typed a new one.
type BrandSource string

const (
	BrandSourceExisting BrandSource = "existing"
	BrandSourceNew      BrandSource = "new"
)

// ResolveBrand returns the brand a contribution should be stored under. The
// existing selection only counts when that option was chosen and there were
// brands to choose from; otherwise the typed name is used.
func ResolveBrand(source BrandSource, existing, typed string, haveExisting bool) string {
	if source == BrandSourceExisting && haveExisting {
		return existing
	}
	return typed
}

// ValidateContribution checks that Brand and Model are non-empty. Values are
// not trimmed: a single space is accepted.
func ValidateContribution(record model.Record) error {
	var missing []string
	if record.Brand == "" {
		missing = append(missing, model.ColumnBrand)
	}
	if record.Model == "" {
		missing = append(missing, model.ColumnModel)
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ContributeService appends community submissions to the store.
type ContributeService struct {
	store  driven.RecordStore
	logger *slog.Logger
}

// NewContributeService creates a ContributeService writing to store.
func NewContributeService(store driven.RecordStore, logger *slog.Logger) *ContributeService {
	return &ContributeService{store: store, logger: logger}
}

// Contribute validates record and appends it. A *ValidationError means nothing
// was written.
func (s *ContributeService) Contribute(ctx context.Context, record model.Record) error {
	if err := ValidateContribution(record); err != nil {
		return err
	}

	if err := s.store.Append(ctx, record); err != nil {
		return fmt.Errorf("contribute %s/%s: %w", record.Brand, record.Model, err)
	}

	s.logger.Info("record contributed", "brand", record.Brand, "model", record.Model)
	return nil
}
