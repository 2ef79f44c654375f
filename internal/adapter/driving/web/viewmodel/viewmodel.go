// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// OptionViewModel is one entry of a <select>.
type OptionViewModel struct {
	Value    string
	Selected bool
}

// RecordViewModel holds a matched record ready for display.
type RecordViewModel struct {
	Brand    string
	Model    string
	User     string
	Pass     string
	InfoHTML string // sanitized HTML rendered from the markdown notes
}

// SearchViewModel holds everything the Search tab renders.
type SearchViewModel struct {
	// Available is false when the store is empty or could not be read; the
	// page then shows only the unavailable notice.
	Available bool

	Brands        []OptionViewModel
	Models        []OptionViewModel
	ShowModels    bool // a brand is selected, so the model select is shown
	SelectedBrand string

	Record       *RecordViewModel
	ErrorMessage string // recoverable selection error
}

// ContributeViewModel holds the Add/Contribute form state.
type ContributeViewModel struct {
	CSRFToken string

	ExistingBrands    []OptionViewModel
	HasExistingBrands bool
	BrandSource       string // "existing" or "new"

	NewBrand string
	Model    string
	User     string
	Pass     string
	Info     string

	ErrorMessage   string
	SuccessMessage string
}
