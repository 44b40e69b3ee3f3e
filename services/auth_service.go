package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
)

const (
	PINLength       = 6
	WrongPINMessage = "PIN yang Anda masukkan salah."
)

type AuthService struct {
	sessions *SessionManager
	client   *PosClient
	shift    *ShiftGuard
}

func NewAuthService(sessions *SessionManager, client *PosClient, shift *ShiftGuard) *AuthService {
	return &AuthService{sessions: sessions, client: client, shift: shift}
}

// Employees lists the cashier accounts of the connected store.
func (s *AuthService) Employees(ctx context.Context) ([]models.Employee, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return nil, err
	}
	if !sess.SetupComplete() {
		return nil, ErrSetupIncomplete
	}
	return s.client.Employees(ctx)
}

func validatePIN(pin string) error {
	if pin == "" {
		return newValidationError("pin", "PIN wajib diisi")
	}
	if len(pin) != PINLength {
		return newValidationError("pin", "PIN harus 6 digit")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return newValidationError("pin", "PIN hanya boleh angka")
		}
	}
	return nil
}

// Login verifies the PIN with the backend and stores the new session.
func (s *AuthService) Login(ctx context.Context, userID int64, userName, pin string) error {
	if userID <= 0 {
		return newValidationError("user_id", "pilih karyawan terlebih dahulu")
	}
	if err := validatePIN(pin); err != nil {
		return err
	}
	sess, err := s.sessions.Current()
	if err != nil {
		return err
	}
	if !sess.SetupComplete() {
		return ErrSetupIncomplete
	}

	token, err := s.client.VerifyPIN(ctx, userID, pin)
	if err != nil {
		var rejection *ServerRejection
		if errors.As(err, &rejection) {
			return &ServerRejection{StatusCode: http.StatusUnauthorized, Message: WrongPINMessage}
		}
		return err
	}

	if err := s.sessions.SaveLogin(token, userName); err != nil {
		return err
	}
	s.shift.Reset()
	utils.InfoLogger.Infof("Kasir %s login di toko %s", userName, sess.StoreSlug)
	return nil
}

// Logout ends the session. The cart stays so the next cashier can pick it up.
func (s *AuthService) Logout() error {
	if err := s.sessions.Logout(); err != nil {
		return err
	}
	s.shift.Reset()
	return nil
}

// Initials builds the avatar badge text: "Budi Santoso" -> "BS".
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "?"
	}
	var out []rune
	for _, p := range parts {
		out = append(out, unicode.ToUpper([]rune(p)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
