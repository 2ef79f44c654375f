package model

// DefaultUser is the username most devices ship with; the contribute form
// prefills it.
const DefaultUser = "admin"

// Column names of the store's header row, in store order.
const (
	ColumnBrand = "Brand"
	ColumnModel = "Model"
	ColumnUser  = "User"
	ColumnPass  = "Pass"
	ColumnInfo  = "Info"
)

// Columns lists the header row of the store in column order.
var Columns = []string{ColumnBrand, ColumnModel, ColumnUser, ColumnPass, ColumnInfo}

// Record holds the default credentials and reset notes for one device model.
// Brand and Model together form the lookup key, but the store does not enforce
// uniqueness; when several records share a key the first one in store order wins.
type Record struct {
	Brand string
	Model string
	User  string
	Pass  string
	Info  string
}

// Values returns the record's fields in store column order.
func (r Record) Values() []string {
	return []string{r.Brand, r.Model, r.User, r.Pass, r.Info}
}

// Matches reports whether the record belongs to the given brand and model.
// Comparison is exact and case-sensitive.
func (r Record) Matches(brand, deviceModel string) bool {
	return r.Brand == brand && r.Model == deviceModel
}
