package models

// SetupPayload is the JSON encoded in the store's QR setup code.
type SetupPayload struct {
	Slug   string `json:"slug"`
	APIURL string `json:"api_url"`
	Name   string `json:"name"`
}
