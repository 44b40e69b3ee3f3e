package services

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/yeremiapane/pos-till/models"
)

// ParseSetupPayload validates the JSON scanned from a store QR code.
func ParseSetupPayload(raw string) (models.SetupPayload, error) {
	var p models.SetupPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &p); err != nil {
		return models.SetupPayload{}, newValidationError("payload", "QR Code tidak valid")
	}
	p.Slug = strings.TrimSpace(p.Slug)
	p.Name = strings.TrimSpace(p.Name)
	p.APIURL = strings.TrimRight(strings.TrimSpace(p.APIURL), "/")

	switch {
	case p.Slug == "":
		return models.SetupPayload{}, newValidationError("slug", "wajib diisi")
	case p.APIURL == "":
		return models.SetupPayload{}, newValidationError("api_url", "wajib diisi")
	case p.Name == "":
		return models.SetupPayload{}, newValidationError("name", "wajib diisi")
	}

	u, err := url.Parse(p.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.SetupPayload{}, newValidationError("api_url", "harus URL http(s) lengkap")
	}
	return p, nil
}

type SetupService struct {
	sessions *SessionManager
	shift    *ShiftGuard
	cart     *CartBuilder
}

func NewSetupService(sessions *SessionManager, shift *ShiftGuard, cart *CartBuilder) *SetupService {
	return &SetupService{sessions: sessions, shift: shift, cart: cart}
}

// Apply parses and stores a scanned setup code. Nothing is written when the
// payload is rejected.
func (s *SetupService) Apply(raw string) (models.SetupPayload, error) {
	p, err := ParseSetupPayload(raw)
	if err != nil {
		return models.SetupPayload{}, err
	}
	if err := s.sessions.SaveSetup(p); err != nil {
		return models.SetupPayload{}, err
	}
	s.shift.Reset()
	s.cart.Clear()
	return p, nil
}

// Reset disconnects the till from its store.
func (s *SetupService) Reset() error {
	if err := s.sessions.Reset(); err != nil {
		return err
	}
	s.shift.Reset()
	s.cart.Clear()
	return nil
}
