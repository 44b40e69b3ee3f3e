package services

import (
	"context"
	"time"

	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
)

type OrderBackend interface {
	Reports(ctx context.Context) (models.Report, error)
	CancelOrder(ctx context.Context, orderID int64) error
}

// CancelPrompt is shown to the cashier before an order is cancelled.
type CancelPrompt struct {
	Order        models.OrderSummary `json:"order"`
	ConfirmToken string              `json:"confirm_token"`
	ExpiresAt    time.Time           `json:"expires_at"`
}

type OrderService struct {
	backend  OrderBackend
	confirms *ConfirmationBook
}

func NewOrderService(backend OrderBackend, confirms *ConfirmationBook) *OrderService {
	return &OrderService{backend: backend, confirms: confirms}
}

// History is read from the reports endpoint; there is no dedicated order list.
func (s *OrderService) History(ctx context.Context) ([]models.OrderSummary, error) {
	r, err := s.backend.Reports(ctx)
	if err != nil {
		return nil, err
	}
	orders := r.History()
	if orders == nil {
		orders = []models.OrderSummary{}
	}
	return orders, nil
}

func (s *OrderService) Detail(ctx context.Context, orderID int64) (models.OrderSummary, error) {
	orders, err := s.History(ctx)
	if err != nil {
		return models.OrderSummary{}, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return models.OrderSummary{}, ErrOrderNotFound
}

// PrepareCancel is the confirmation step: it checks the order can still be
// cancelled and issues a token for Cancel.
func (s *OrderService) PrepareCancel(ctx context.Context, orderID int64) (CancelPrompt, error) {
	o, err := s.Detail(ctx, orderID)
	if err != nil {
		return CancelPrompt{}, err
	}
	if o.Cancelled() {
		return CancelPrompt{}, ErrAlreadyCancelled
	}
	token, exp := s.confirms.Issue(cancelAction(orderID))
	return CancelPrompt{Order: o, ConfirmToken: token, ExpiresAt: exp}, nil
}

func (s *OrderService) Cancel(ctx context.Context, orderID int64, confirmToken string) error {
	if err := s.confirms.Consume(confirmToken, cancelAction(orderID)); err != nil {
		return err
	}
	if err := s.backend.CancelOrder(ctx, orderID); err != nil {
		utils.ErrorLogger.Errorf("Gagal membatalkan pesanan %d: %v", orderID, err)
		return err
	}
	utils.InfoLogger.Infof("Pesanan %d dibatalkan", orderID)
	return nil
}
