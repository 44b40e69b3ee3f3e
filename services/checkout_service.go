package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
)

type CheckoutBackend interface {
	Checkout(ctx context.Context, payload models.CheckoutPayload) (string, error)
}

type CheckoutService struct {
	backend CheckoutBackend
	shift   *ShiftGuard
	cart    *CartBuilder
}

func NewCheckoutService(backend CheckoutBackend, shift *ShiftGuard, cart *CartBuilder) *CheckoutService {
	return &CheckoutService{backend: backend, shift: shift, cart: cart}
}

// Submit sends the cart to the backend. The cart is cleared only after the
// backend confirmed the order; on any failure it is left untouched for a retry.
// rawMoney is ignored for QRIS.
func (s *CheckoutService) Submit(ctx context.Context, method, rawMoney string) (models.CheckoutReceipt, error) {
	if err := s.shift.RequireOpen(ctx); err != nil {
		return models.CheckoutReceipt{}, err
	}

	pm := models.PaymentMethod(strings.ToLower(strings.TrimSpace(method)))
	var received int64
	if pm == models.PaymentCash {
		v, err := utils.ParseAmount(rawMoney)
		if err != nil {
			return models.CheckoutReceipt{}, amountError("money_received", err)
		}
		received = v
	}

	lines := s.cart.Lines()
	payload, err := s.cart.ToCheckoutPayload(pm, received)
	if err != nil {
		return models.CheckoutReceipt{}, err
	}

	invoice, err := s.backend.Checkout(ctx, payload)
	if err != nil {
		utils.ErrorLogger.Errorf("Checkout gagal, keranjang dipertahankan: %v", err)
		return models.CheckoutReceipt{}, err
	}

	s.cart.Clear()
	utils.InfoLogger.Infof("Transaksi %s berhasil: %s via %s", invoice, utils.FormatCurrencyIDR(payload.Total()), pm)
	return models.CheckoutReceipt{
		InvoiceNumber: invoice,
		PaymentMethod: pm,
		Total:         payload.Total(),
		MoneyReceived: payload.MoneyReceived,
		Change:        payload.Change,
		Lines:         lines,
	}, nil
}
