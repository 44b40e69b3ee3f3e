package services

import (
	"context"
	"sync"

	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
)

// ShiftBackend is the part of the backend the guard needs.
type ShiftBackend interface {
	Status(ctx context.Context) (models.ShiftState, error)
	OpenStore(ctx context.Context, startCash int64) error
}

// StartCashCache keeps the opening float for the rest of the shift.
type StartCashCache interface {
	StartCash() (int64, bool, error)
	SaveStartCash(amount int64) error
}

// ShiftGuard tracks whether the store is open and blocks sales while it is not.
//
//	CLOSED -> OpenShift -> OPEN -> MarkClosed -> CLOSED (session ended)
//
// Once closed in a session the shift cannot be reopened until the next login.
type ShiftGuard struct {
	backend ShiftBackend
	cache   StartCashCache

	mu     sync.Mutex
	state  models.ShiftState
	known  bool
	closed bool
}

func NewShiftGuard(backend ShiftBackend, cache StartCashCache) *ShiftGuard {
	return &ShiftGuard{backend: backend, cache: cache}
}

// CheckStatus asks the backend. The start cash falls back to the local cache
// when the backend does not report one.
func (g *ShiftGuard) CheckStatus(ctx context.Context) (models.ShiftState, error) {
	st, err := g.backend.Status(ctx)
	if err != nil {
		return models.ShiftState{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		// backend bisa masih melaporkan open sebentar setelah close-store
		return g.state, nil
	}
	if st.IsOpen {
		st.StartCash = g.resolveStartCash(st.StartCash)
	}
	g.state = st
	g.known = true
	return st, nil
}

func (g *ShiftGuard) resolveStartCash(reported int64) int64 {
	if reported > 0 {
		if err := g.cache.SaveStartCash(reported); err != nil {
			utils.ErrorLogger.Warnf("cache start cash: %v", err)
		}
		return reported
	}
	cached, ok, err := g.cache.StartCash()
	if err != nil {
		utils.ErrorLogger.Warnf("read cached start cash: %v", err)
		return 0
	}
	if ok {
		return cached
	}
	return 0
}

// StatusOrAssumeOpen treats an unreachable backend as open so sales are not
// blocked. Server rejections are still returned.
func (g *ShiftGuard) StatusOrAssumeOpen(ctx context.Context) (models.ShiftState, error) {
	st, err := g.CheckStatus(ctx)
	if err == nil {
		return st, nil
	}
	if !IsNetwork(err) {
		return models.ShiftState{}, err
	}
	utils.ErrorLogger.Warnf("Gagal cek status toko, dianggap buka: %v", err)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return g.state, nil
	}
	return models.ShiftState{IsOpen: true, StartCash: g.resolveStartCash(g.state.StartCash)}, nil
}

// OpenShift validates the cashier's starting float and opens the store.
// On any failure the guard state is left as it was.
func (g *ShiftGuard) OpenShift(ctx context.Context, raw string) (models.ShiftState, error) {
	amount, err := utils.ParseAmount(raw)
	if err != nil {
		return models.ShiftState{}, amountError("start_cash", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return models.ShiftState{}, ErrSessionEnded
	}
	if g.known && g.state.IsOpen {
		return models.ShiftState{}, ErrShiftAlreadyOpen
	}

	if err := g.backend.OpenStore(ctx, amount); err != nil {
		return models.ShiftState{}, err
	}
	g.state = models.ShiftState{IsOpen: true, StartCash: amount}
	g.known = true
	if err := g.cache.SaveStartCash(amount); err != nil {
		utils.ErrorLogger.Warnf("cache start cash: %v", err)
	}
	utils.InfoLogger.Infof("Toko dibuka dengan modal %s", utils.FormatCurrencyIDR(amount))
	return g.state, nil
}

// RequireOpen gates every order-creation path.
func (g *ShiftGuard) RequireOpen(ctx context.Context) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrShiftClosed
	}
	if g.known && g.state.IsOpen {
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	st, err := g.StatusOrAssumeOpen(ctx)
	if err != nil {
		return err
	}
	if !st.IsOpen {
		return ErrShiftClosed
	}
	return nil
}

// State returns the last known state without calling the backend.
func (g *ShiftGuard) State() (models.ShiftState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state, g.known
}

// MarkClosed is called after the backend confirmed close-store.
func (g *ShiftGuard) MarkClosed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = models.ShiftState{}
	g.known = true
	g.closed = true
}

// Reset forgets everything; used on login, logout and store change.
func (g *ShiftGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = models.ShiftState{}
	g.known = false
	g.closed = false
}
