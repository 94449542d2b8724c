package models

// Airport is reference data owned by the remote service. The ID is nil until
// the server has persisted the record.
type Airport struct {
	ID      *int64 `json:"id,omitempty"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}
