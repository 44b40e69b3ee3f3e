package services

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

type confirmation struct {
	action    string
	expiresAt time.Time
}

// ConfirmationBook hands out single-use tokens for irreversible actions
// (tutup shift, batalkan pesanan). A token is bound to one action string.
type ConfirmationBook struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]confirmation
	now    func() time.Time
}

func NewConfirmationBook(ttl time.Duration) *ConfirmationBook {
	return &ConfirmationBook{
		ttl:    ttl,
		tokens: make(map[string]confirmation),
		now:    time.Now,
	}
}

// Issue returns a new token and its expiry.
func (b *ConfirmationBook) Issue(action string) (string, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweep()
	token := uuid.NewString()
	exp := b.now().Add(b.ttl)
	b.tokens[token] = confirmation{action: action, expiresAt: exp}
	return token, exp
}

// Consume burns the token. Unknown, expired or mismatched tokens give
// ErrConfirmationRequired; a mismatched token stays valid for its own action.
func (b *ConfirmationBook) Consume(token, action string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.tokens[token]
	if !ok || c.action != action {
		return ErrConfirmationRequired
	}
	delete(b.tokens, token)
	if !b.now().Before(c.expiresAt) {
		return ErrConfirmationRequired
	}
	return nil
}

func (b *ConfirmationBook) sweep() {
	now := b.now()
	for t, c := range b.tokens {
		if !now.Before(c.expiresAt) {
			delete(b.tokens, t)
		}
	}
}

func cancelAction(orderID int64) string {
	return "cancel-order:" + strconv.FormatInt(orderID, 10)
}

// closeShiftAction binds the token to the counted cash that was previewed.
func closeShiftAction(countedCash int64) string {
	return "close-shift:" + strconv.FormatInt(countedCash, 10)
}
