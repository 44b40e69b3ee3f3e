package services

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/pos-till/models"
)

type KitchenBackend interface {
	Kitchen(ctx context.Context) ([]models.KitchenOrder, error)
	KitchenOrders(ctx context.Context) ([]models.KitchenOrder, error)
	MarkItemReady(ctx context.Context, itemID int64) error
}

type WaitLevel string

const (
	WaitFresh   WaitLevel = "fresh"
	WaitWaiting WaitLevel = "waiting"
	WaitLate    WaitLevel = "late"
)

// WaitLevelFor colours a warehouse card by how long the order has waited.
func WaitLevelFor(createdAt, now time.Time) WaitLevel {
	minutes := now.Sub(createdAt).Minutes()
	switch {
	case minutes > 20:
		return WaitLate
	case minutes > 10:
		return WaitWaiting
	default:
		return WaitFresh
	}
}

// QueueOrder is a kitchen order decorated for display.
type QueueOrder struct {
	models.KitchenOrder
	WaitMinutes int       `json:"wait_minutes"`
	WaitLevel   WaitLevel `json:"wait_level"`
	Pending     int       `json:"pending_items"`
}

type Queue struct {
	Orders   []QueueOrder `json:"orders"`
	NewOrder bool         `json:"new_order"`
}

type KitchenService struct {
	backend   KitchenBackend
	kitchen   *NewOrderDetector
	warehouse *NewOrderDetector
	now       func() time.Time
}

func NewKitchenService(backend KitchenBackend) *KitchenService {
	return &KitchenService{
		backend:   backend,
		kitchen:   &NewOrderDetector{},
		warehouse: &NewOrderDetector{},
		now:       time.Now,
	}
}

func (s *KitchenService) Kitchen(ctx context.Context) (Queue, error) {
	orders, err := s.backend.Kitchen(ctx)
	if err != nil {
		return Queue{}, err
	}
	return s.decorate(orders, s.kitchen), nil
}

func (s *KitchenService) Warehouse(ctx context.Context) (Queue, error) {
	orders, err := s.backend.KitchenOrders(ctx)
	if err != nil {
		return Queue{}, err
	}
	return s.decorate(orders, s.warehouse), nil
}

func (s *KitchenService) MarkItemReady(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return newValidationError("item_id", "tidak valid")
	}
	return s.backend.MarkItemReady(ctx, itemID)
}

func (s *KitchenService) decorate(orders []models.KitchenOrder, d *NewOrderDetector) Queue {
	now := s.now()
	q := Queue{Orders: make([]QueueOrder, 0, len(orders)), NewOrder: d.Observe(len(orders))}
	for _, o := range orders {
		qo := QueueOrder{KitchenOrder: o, WaitLevel: WaitFresh}
		if created, ok := o.CreatedTime(); ok {
			qo.WaitMinutes = int(now.Sub(created).Minutes())
			qo.WaitLevel = WaitLevelFor(created, now)
		}
		for _, it := range o.Items {
			if !it.Done() {
				qo.Pending++
			}
		}
		q.Orders = append(q.Orders, qo)
	}
	return q
}

// NewOrderDetector signals a new order when the queue grew since the previous
// poll. Nothing is signalled when the previous poll saw an empty queue.
type NewOrderDetector struct {
	mu   sync.Mutex
	last int
}

func (d *NewOrderDetector) Observe(count int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	grew := d.last != 0 && count > d.last
	d.last = count
	return grew
}
