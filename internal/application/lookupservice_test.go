package application

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

func TestResolve_StateMachine(t *testing.T) {
	catalog := NewCatalog([]model.Record{hikvision, hikvision2, dahua})

	tests := []struct {
		name       string
		brand      string
		model      string
		wantState  LookupState
		wantErr    error
		wantModels []string
	}{
		{name: "nothing selected", wantState: StateNoBrandSelected},
		{name: "unknown brand", brand: "Uniview", wantState: StateNoBrandSelected, wantErr: ErrUnknownBrand},
		{name: "brand only", brand: "Hikvision", wantState: StateBrandSelected, wantModels: []string{"DS-7204", "DS-7208"}},
		{name: "model from another brand", brand: "Hikvision", model: "XVR5104", wantState: StateBrandSelected, wantErr: ErrUnknownModel, wantModels: []string{"DS-7204", "DS-7208"}},
		{name: "model case mismatch", brand: "Dahua", model: "xvr5104", wantState: StateBrandSelected, wantErr: ErrUnknownModel, wantModels: []string{"XVR5104"}},
		{name: "full selection", brand: "Dahua", model: "XVR5104", wantState: StateModelSelected, wantModels: []string{"XVR5104"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(catalog, tt.brand, tt.model)

			assert.True(t, res.Available)
			assert.Equal(t, []string{"Dahua", "Hikvision"}, res.Brands)
			assert.Equal(t, tt.wantState, res.State)
			assert.Equal(t, tt.wantModels, res.Models)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
			} else {
				assert.NoError(t, res.Err)
			}
		})
	}
}

func TestResolve_DisplaysMatchedRecord(t *testing.T) {
	res := Resolve(NewCatalog([]model.Record{hikvision}), "Hikvision", "DS-7204")

	require.Equal(t, StateModelSelected, res.State)
	require.NotNil(t, res.Record)
	assert.Equal(t, "admin", res.Record.User)
	assert.Equal(t, "12345", res.Record.Pass)
	assert.Equal(t, "Hold reset 10s", res.Record.Info)
}

func TestResolve_Idempotent(t *testing.T) {
	catalog := NewCatalog([]model.Record{hikvision, {Brand: "Hikvision", Model: "DS-7204", Pass: "dup"}, dahua})

	first := Resolve(catalog, "Hikvision", "DS-7204")
	second := Resolve(catalog, "Hikvision", "DS-7204")

	assert.Equal(t, first, second)
	require.NotNil(t, first.Record)
	assert.Equal(t, "12345", first.Record.Pass)
}

func TestResolve_EmptyCatalogUnavailable(t *testing.T) {
	res := Resolve(NewCatalog(nil), "Hikvision", "DS-7204")

	assert.False(t, res.Available)
	assert.Equal(t, StateNoBrandSelected, res.State)
	assert.Nil(t, res.Record)
	assert.NoError(t, res.Err)
}

func TestLookupService_LoadFailureIsSoft(t *testing.T) {
	loadErr := errors.New("sheets: 503 backend error")
	store := &memStore{loadErr: loadErr}
	svc := NewLookupService(store, slog.Default())

	res := svc.Lookup(context.Background(), "Hikvision", "DS-7204")

	assert.False(t, res.Available)
	assert.ErrorIs(t, res.LoadErr, loadErr)
	assert.NoError(t, res.Err)
	assert.Equal(t, 1, store.loads)
}

func TestLookupService_LoadReturnsEmptyCatalogOnError(t *testing.T) {
	svc := NewLookupService(&memStore{loadErr: errors.New("boom")}, slog.Default())

	catalog, err := svc.Load(context.Background())

	require.Error(t, err)
	require.NotNil(t, catalog)
	assert.True(t, catalog.Empty())
}

func TestLookupService_ReadsStoreOnEveryCall(t *testing.T) {
	store := &memStore{records: []model.Record{hikvision}}
	svc := NewLookupService(store, slog.Default())

	svc.Lookup(context.Background(), "", "")
	svc.Lookup(context.Background(), "", "")

	assert.Equal(t, 2, store.loads)
}

func TestLookupState_String(t *testing.T) {
	assert.Equal(t, "no_brand_selected", StateNoBrandSelected.String())
	assert.Equal(t, "brand_selected", StateBrandSelected.String())
	assert.Equal(t, "model_selected", StateModelSelected.String())
}
