package services

import (
	"context"

	"github.com/yeremiapane/pos-till/config"
	"github.com/yeremiapane/pos-till/kds"
	"github.com/yeremiapane/pos-till/utils"
)

// Till wires one till session: local store, backend client, the session
// state holders and the services built on them.
type Till struct {
	Sessions *SessionManager
	Client   *PosClient
	Shift    *ShiftGuard
	Cart     *CartBuilder
	Confirms *ConfirmationBook

	Setup    *SetupService
	Auth     *AuthService
	Checkout *CheckoutService
	Catalog  *CatalogService
	Kitchen  *KitchenService
	Orders   *OrderService
	Reports  *ReportService
	Closing  *ClosingReconciler

	Hub      *kds.Hub
	Monitors *MonitorRegistry
}

func NewTill(cfg *config.Config, store SettingsStore, hub *kds.Hub) *Till {
	sessions := NewSessionManager(store, cfg.Backend.BaseURL)
	client := NewPosClient(sessions, cfg.Backend.Timeout)
	shift := NewShiftGuard(client, sessions)
	cart := NewCartBuilder()
	confirms := NewConfirmationBook(cfg.Guard.ConfirmTTL)

	t := &Till{
		Sessions: sessions,
		Client:   client,
		Shift:    shift,
		Cart:     cart,
		Confirms: confirms,
		Setup:    NewSetupService(sessions, shift, cart),
		Auth:     NewAuthService(sessions, client, shift),
		Checkout: NewCheckoutService(client, shift, cart),
		Catalog:  NewCatalogService(client, sessions),
		Kitchen:  NewKitchenService(client),
		Orders:   NewOrderService(client, confirms),
		Reports:  NewReportService(client, sessions, shift),
		Closing:  NewClosingReconciler(client, shift, cart, sessions, confirms),
		Hub:      hub,
		Monitors: NewMonitorRegistry(),
	}
	client.OnUnauthorized = t.expireSession

	t.Monitors.Register(kds.TopicKitchen, func() *Monitor {
		return NewMonitor(kds.TopicKitchen, cfg.Poll.Kitchen, t.pollKitchen)
	})
	t.Monitors.Register(kds.TopicWarehouse, func() *Monitor {
		return NewMonitor(kds.TopicWarehouse, cfg.Poll.Warehouse, t.pollWarehouse)
	})
	t.Monitors.Register(kds.TopicDashboard, func() *Monitor {
		return NewMonitor(kds.TopicDashboard, cfg.Poll.Dashboard, t.pollDashboard)
	})
	return t
}

// expireSession handles a 401 from the backend: the token is gone and the
// cashier must log in again. The cart is kept for after re-login.
func (t *Till) expireSession() {
	utils.ErrorLogger.Warn("Sesi berakhir (401), token dihapus")
	if err := t.Sessions.Logout(); err != nil {
		utils.ErrorLogger.Errorf("hapus token: %v", err)
	}
	t.Shift.Reset()
	t.Hub.BroadcastShiftUpdate(map[string]interface{}{"session_expired": true})
}

// ShiftClosed announces a closed shift to every open screen.
func (t *Till) ShiftClosed() {
	t.Hub.BroadcastShiftUpdate(map[string]interface{}{"is_open": false})
}

func (t *Till) ShiftOpened(startCash int64) {
	t.Hub.BroadcastShiftUpdate(map[string]interface{}{"is_open": true, "start_cash": startCash})
}

// loggedIn keeps background polling quiet while nobody is logged in.
func (t *Till) loggedIn() bool {
	_, err := t.Sessions.Require()
	return err == nil
}

func (t *Till) pollKitchen(ctx context.Context) error {
	if !t.loggedIn() {
		return nil
	}
	q, err := t.Kitchen.Kitchen(ctx)
	if err != nil {
		return err
	}
	t.Hub.BroadcastKitchenUpdate(q)
	if q.NewOrder {
		t.Hub.BroadcastNewOrder(kds.TopicKitchen, len(q.Orders))
	}
	return nil
}

func (t *Till) pollWarehouse(ctx context.Context) error {
	if !t.loggedIn() {
		return nil
	}
	q, err := t.Kitchen.Warehouse(ctx)
	if err != nil {
		return err
	}
	t.Hub.BroadcastWarehouseUpdate(q)
	if q.NewOrder {
		t.Hub.BroadcastNewOrder(kds.TopicWarehouse, len(q.Orders))
	}
	return nil
}

func (t *Till) pollDashboard(ctx context.Context) error {
	if !t.loggedIn() {
		return nil
	}
	d, err := t.Reports.Dashboard(ctx)
	if err != nil {
		return err
	}
	t.Hub.BroadcastDashboardUpdate(d)
	return nil
}

// Shutdown stops every running monitor.
func (t *Till) Shutdown() {
	t.Monitors.StopAll()
}
