package web

import (
	"errors"
	"fmt"

	vm "github.com/ericfisherdev/dvrhub/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/dvrhub/internal/application"
	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

const (
	msgMissingRequired = "Please fill in at least the Brand and Model fields."
	msgSaveFailed      = "Could not save to the database. Please try again later."
)

// toSearchViewModel converts one pass of the lookup state machine into the
// Search tab view model.
func toSearchViewModel(res application.LookupResult) vm.SearchViewModel {
	out := vm.SearchViewModel{Available: res.Available}
	if !res.Available {
		return out
	}

	out.Brands = toOptions(res.Brands, res.Brand)

	if res.State != application.StateNoBrandSelected {
		out.ShowModels = true
		out.SelectedBrand = res.Brand
		out.Models = toOptions(res.Models, res.Model)
	}

	if res.Record != nil {
		out.Record = &vm.RecordViewModel{
			Brand:    res.Record.Brand,
			Model:    res.Record.Model,
			User:     res.Record.User,
			Pass:     res.Record.Pass,
			InfoHTML: RenderMarkdown(res.Record.Info),
		}
	}

	if res.Err != nil {
		out.ErrorMessage = lookupErrorMessage(res.Err)
	}

	return out
}

func lookupErrorMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrUnknownBrand):
		return "That brand is not in the database."
	case errors.Is(err, application.ErrUnknownModel):
		return "That model is not listed for this brand."
	default:
		return "Error fetching data for this model."
	}
}

// newContributeViewModel returns a cleared contribute form. User is prefilled
// with the default username.
func newContributeViewModel(brands []string, csrfToken string) vm.ContributeViewModel {
	source := string(application.BrandSourceExisting)
	if len(brands) == 0 {
		source = string(application.BrandSourceNew)
	}

	return vm.ContributeViewModel{
		CSRFToken:         csrfToken,
		ExistingBrands:    toOptions(brands, ""),
		HasExistingBrands: len(brands) > 0,
		BrandSource:       source,
		User:              model.DefaultUser,
	}
}

// refillContributeViewModel re-renders a rejected submission with the values
// the user typed.
func refillContributeViewModel(brands []string, csrfToken string, form contributeForm, errMsg string) vm.ContributeViewModel {
	out := newContributeViewModel(brands, csrfToken)
	out.ExistingBrands = toOptions(brands, form.ExistingBrand)
	if form.Source != "" {
		out.BrandSource = string(form.Source)
	}
	out.NewBrand = form.NewBrand
	out.Model = form.Record.Model
	out.User = form.Record.User
	out.Pass = form.Record.Pass
	out.Info = form.Record.Info
	out.ErrorMessage = errMsg
	return out
}

func successMessage(added string) string {
	return fmt.Sprintf("Success! %s has been added. Thank you for contributing!", added)
}

func toOptions(values []string, selected string) []vm.OptionViewModel {
	opts := make([]vm.OptionViewModel, 0, len(values))
	for _, v := range values {
		opts = append(opts, vm.OptionViewModel{Value: v, Selected: v == selected})
	}
	return opts
}
