package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
)

// SettingsStore is the local key-value store the session lives in.
type SettingsStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
	Clear() error
}

// SessionManager reads and writes the till session. It never caches: every
// call reads the keys again so a logout in one request is seen by the next.
type SessionManager struct {
	store       SettingsStore
	fallbackURL string
	now         func() time.Time
}

func NewSessionManager(store SettingsStore, fallbackURL string) *SessionManager {
	return &SessionManager{
		store:       store,
		fallbackURL: strings.TrimRight(fallbackURL, "/"),
		now:         time.Now,
	}
}

// Current reads the session key by key. A missing key is an empty field.
func (m *SessionManager) Current() (models.Session, error) {
	var s models.Session
	fields := []struct {
		key string
		dst *string
	}{
		{models.KeyStoreSlug, &s.StoreSlug},
		{models.KeyStoreName, &s.StoreName},
		{models.KeyAPIURL, &s.APIURL},
		{models.KeyToken, &s.Token},
		{models.KeyUserName, &s.UserName},
	}
	for _, f := range fields {
		v, _, err := m.store.Get(f.key)
		if err != nil {
			return models.Session{}, err
		}
		*f.dst = v
	}
	if s.APIURL == "" {
		s.APIURL = m.fallbackURL
	}
	return s, nil
}

// Authenticated is true when a token is stored and, if it is a JWT, not expired.
func (m *SessionManager) Authenticated(s models.Session) bool {
	return s.HasToken() && !utils.TokenExpired(s.Token, m.now())
}

func (m *SessionManager) Stage() (models.Stage, error) {
	s, err := m.Current()
	if err != nil {
		return "", err
	}
	switch {
	case !s.SetupComplete():
		return models.StageSetup, nil
	case !m.Authenticated(s):
		return models.StageSelectUser, nil
	default:
		return models.StageReady, nil
	}
}

// Require returns the session for endpoints that need a logged-in cashier.
func (m *SessionManager) Require() (models.Session, error) {
	s, err := m.Current()
	if err != nil {
		return models.Session{}, err
	}
	if !s.SetupComplete() {
		return models.Session{}, ErrSetupIncomplete
	}
	if !m.Authenticated(s) {
		return models.Session{}, ErrNotAuthenticated
	}
	return s, nil
}

// SaveSetup stores a newly scanned store. Login data of the previous store is dropped.
func (m *SessionManager) SaveSetup(p models.SetupPayload) error {
	if err := m.Logout(); err != nil {
		return err
	}
	for key, value := range map[string]string{
		models.KeyStoreSlug: p.Slug,
		models.KeyStoreName: p.Name,
		models.KeyAPIURL:    p.APIURL,
	} {
		if err := m.store.Set(key, value); err != nil {
			return err
		}
	}
	utils.InfoLogger.Infof("Till terhubung ke toko %s (%s)", p.Slug, p.APIURL)
	return nil
}

func (m *SessionManager) SaveLogin(token, userName string) error {
	if err := m.store.Set(models.KeyToken, token); err != nil {
		return err
	}
	return m.store.Set(models.KeyUserName, userName)
}

// Logout removes the token, the cashier name and the cached start cash.
// Store setup stays.
func (m *SessionManager) Logout() error {
	return m.store.Delete(models.KeyToken, models.KeyUserName, models.KeyStartCash)
}

// Reset is "Ganti Toko": everything goes.
func (m *SessionManager) Reset() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	utils.InfoLogger.Info("Till direset, menunggu scan QR toko baru")
	return nil
}

func (m *SessionManager) StartCash() (int64, bool, error) {
	v, ok, err := m.store.Get(models.KeyStartCash)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("cached start cash %q: %w", v, err)
	}
	return n, true, nil
}

func (m *SessionManager) SaveStartCash(amount int64) error {
	return m.store.Set(models.KeyStartCash, strconv.FormatInt(amount, 10))
}
