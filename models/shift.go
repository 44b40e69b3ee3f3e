package models

// ShiftState mirrors the backend status endpoint. StartCash is fixed once the
// shift is opened.
type ShiftState struct {
	IsOpen    bool  `json:"is_open"`
	StartCash int64 `json:"start_cash"`
}
