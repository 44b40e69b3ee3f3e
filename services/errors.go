package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yeremiapane/pos-till/utils"
)

var (
	ErrSetupIncomplete      = errors.New("toko belum terhubung, scan QR setup terlebih dahulu")
	ErrNotAuthenticated     = errors.New("belum login, silakan pilih karyawan dan masukkan PIN")
	ErrShiftClosed          = errors.New("toko belum dibuka, masukkan modal awal terlebih dahulu")
	ErrShiftAlreadyOpen     = errors.New("shift sudah dibuka")
	ErrSessionEnded         = errors.New("shift sudah ditutup, silakan login ulang")
	ErrEmptyCart            = errors.New("keranjang masih kosong")
	ErrConfirmationRequired = errors.New("aksi ini perlu konfirmasi")
	ErrOrderNotFound        = errors.New("pesanan tidak ditemukan")
	ErrAlreadyCancelled     = errors.New("pesanan sudah dibatalkan")
)

// GenericServerMessage dipakai kalau backend tidak mengirim pesan apa pun.
const GenericServerMessage = "Terjadi kesalahan server."

// ValidationError is malformed cashier input; the operation is not attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// amountError converts a utils.ParseAmount failure into a ValidationError.
func amountError(field string, err error) *ValidationError {
	switch {
	case errors.Is(err, utils.ErrAmountEmpty):
		return newValidationError(field, "harus diisi")
	case errors.Is(err, utils.ErrAmountNegative):
		return newValidationError(field, "tidak boleh negatif")
	default:
		return newValidationError(field, "harus berupa angka rupiah")
	}
}

// NetworkError means the request never got an answer from the backend.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: tidak bisa menghubungi server: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerRejection is a non-2xx answer from the backend. Message is the
// server's own message when it sent one.
type ServerRejection struct {
	StatusCode int
	Message    string
}

func (e *ServerRejection) Error() string {
	if e.Message == "" {
		return GenericServerMessage
	}
	return e.Message
}

// InsufficientPaymentError blocks a cash checkout before any request is made.
type InsufficientPaymentError struct {
	Total    int64
	Received int64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("uang tunai kurang: total %s, diterima %s",
		utils.FormatCurrencyIDR(e.Total), utils.FormatCurrencyIDR(e.Received))
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNetwork(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}

// IsSessionExpired reports a 401 from the backend.
func IsSessionExpired(err error) bool {
	var r *ServerRejection
	return errors.As(err, &r) && r.StatusCode == http.StatusUnauthorized
}

const (
	NetworkMessage        = "Tidak bisa menghubungi server. Cek koneksi internet."
	SessionExpiredMessage = "Sesi habis. Silakan Login Ulang."
	WrongRouteMessage     = "URL Salah. Pastikan route API benar."
)

// Prompt tells the UI which screen should handle the error.
const (
	PromptOpenShift = "open_shift"
	PromptLogin     = "login"
	PromptSetup     = "setup"
	PromptConfirm   = "confirm"
)

// HTTPError is how a service error is presented by the local API.
type HTTPError struct {
	Status  int
	Message string
	Prompt  string
}

// ToHTTPError maps the error taxonomy onto status codes and cashier-facing messages.
func ToHTTPError(err error) HTTPError {
	var (
		validation   *ValidationError
		insufficient *InsufficientPaymentError
		network      *NetworkError
		rejection    *ServerRejection
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &insufficient), errors.Is(err, ErrEmptyCart):
		return HTTPError{Status: http.StatusUnprocessableEntity, Message: err.Error()}
	case errors.Is(err, ErrShiftClosed):
		return HTTPError{Status: http.StatusConflict, Message: err.Error(), Prompt: PromptOpenShift}
	case errors.Is(err, ErrShiftAlreadyOpen), errors.Is(err, ErrAlreadyCancelled):
		return HTTPError{Status: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, ErrSessionEnded), errors.Is(err, ErrNotAuthenticated):
		return HTTPError{Status: http.StatusUnauthorized, Message: err.Error(), Prompt: PromptLogin}
	case errors.Is(err, ErrSetupIncomplete):
		return HTTPError{Status: http.StatusPreconditionFailed, Message: err.Error(), Prompt: PromptSetup}
	case errors.Is(err, ErrConfirmationRequired):
		return HTTPError{Status: http.StatusPreconditionRequired, Message: err.Error(), Prompt: PromptConfirm}
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrUnknownTopic):
		return HTTPError{Status: http.StatusNotFound, Message: err.Error()}
	case errors.As(err, &network):
		return HTTPError{Status: http.StatusBadGateway, Message: NetworkMessage}
	case errors.As(err, &rejection):
		return rejectionToHTTP(rejection)
	default:
		return HTTPError{Status: http.StatusInternalServerError, Message: GenericServerMessage}
	}
}

func rejectionToHTTP(r *ServerRejection) HTTPError {
	switch {
	case r.StatusCode == http.StatusUnauthorized && r.Message == WrongPINMessage:
		return HTTPError{Status: http.StatusUnauthorized, Message: WrongPINMessage}
	case r.StatusCode == http.StatusUnauthorized:
		return HTTPError{Status: http.StatusUnauthorized, Message: SessionExpiredMessage, Prompt: PromptLogin}
	case r.StatusCode == http.StatusNotFound && r.Message == "":
		return HTTPError{Status: http.StatusBadGateway, Message: WrongRouteMessage}
	case r.StatusCode < 400:
		// backend menjawab 200 tapi menolak (mis. status != "success")
		return HTTPError{Status: http.StatusBadGateway, Message: r.Error()}
	default:
		return HTTPError{Status: r.StatusCode, Message: r.Error()}
	}
}
