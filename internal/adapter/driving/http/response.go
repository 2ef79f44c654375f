package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// RecordResponse is the JSON representation of a credential record.
type RecordResponse struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	User  string `json:"user"`
	Pass  string `json:"pass"`
	Info  string `json:"info"`
}

// BrandsResponse lists the distinct brands.
type BrandsResponse struct {
	Brands []string `json:"brands"`
}

// ModelsResponse lists the distinct models of one brand.
type ModelsResponse struct {
	Brand  string   `json:"brand"`
	Models []string `json:"models"`
}

// HealthResponse is the JSON body returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// CreateRecordRequest is the JSON body accepted by POST /api/v1/records.
// User is a pointer so an omitted field can fall back to the default username.
type CreateRecordRequest struct {
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	User  *string `json:"user"`
	Pass  string  `json:"pass"`
	Info  string  `json:"info"`
}

func toRecordResponse(r model.Record) RecordResponse {
	return RecordResponse{
		Brand: r.Brand,
		Model: r.Model,
		User:  r.User,
		Pass:  r.Pass,
		Info:  r.Info,
	}
}
