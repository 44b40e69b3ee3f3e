package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-till/config"
	"github.com/yeremiapane/pos-till/database"
	"github.com/yeremiapane/pos-till/kds"
	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testSlug  = "warung-uwais"
	testToken = "tok-1"
)

// fakeBackend is a gin stand-in for the remote POS backend.
type fakeBackend struct {
	mu sync.Mutex

	isOpen    bool
	startCash string // dikirim sebagai string desimal seperti backend Laravel

	report   gin.H
	closing  gin.H
	products []gin.H
	kitchen  []gin.H
	pins     map[int64]string

	checkoutStatus int
	closeStatus    int
	closingStatus  int
	cancelBody     gin.H
	unauthorized   bool

	checkouts  []models.CheckoutPayload
	openCalls  []int64
	closeCalls []int64
	cancelled  []int64
	readyItems []int64
	authSeen   []string
	calls      int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fb := &fakeBackend{
		startCash: "0.00",
		report: gin.H{
			"daily_revenue":    "275000.00",
			"total_orders_day": 7,
			"weekly_revenue":   1250000,
			"chart_labels":     []string{"Sen", "Sel", "Rab"},
			"chart_values":     []interface{}{100000, "150000.00", 0},
			"top_products":     []gin.H{{"product_name": "Es Teh", "total_qty": 12}},
			"latest_orders": []gin.H{
				{"id": 11, "invoice_number": "INV-011", "status": "paid", "payment_method": "cash", "total_price": "50000.00",
					"items": []gin.H{{"id": 1, "product": gin.H{"name": "Nasi Goreng"}, "quantity": 2, "price": 25000}}},
				{"id": 12, "invoice_number": "INV-012", "status": "cancelled", "payment_method": "qris", "total_price": 20000},
			},
		},
		closing: gin.H{
			"total_orders":     9,
			"cancelled_orders": 1,
			"cash_total":       "250000.00",
			"qris_total":       120000,
			"grand_total":      370000,
			"date":             "2026-10-17",
		},
		products: []gin.H{
			{"id": 1, "name": "Nasi Goreng", "price": "25000.00", "image": "products/nasgor.jpg", "category": gin.H{"id": 1, "name": "Makanan"}},
			{"id": 2, "name": "Es Teh Manis", "price": 5000, "image": "https://cdn.example.com/esteh.png", "category": gin.H{"id": 2, "name": "Minuman"}},
			{"id": 3, "name": "Mie Goreng", "price": 22000, "category": gin.H{"id": 1, "name": "Makanan"}},
		},
		pins: map[int64]string{1: "123456"},
	}

	r := gin.New()
	api := r.Group("/api")
	api.POST("/pos/verify-pin", fb.verifyPIN)
	api.GET("/pos/:slug/employees", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{{"id": 1, "name": "Budi Santoso", "role": "cashier"}, {"id": 2, "name": "siti"}}})
	})

	authed := api.Group("", fb.requireToken)
	authed.GET("/pos/:slug/status", func(c *gin.Context) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"is_open": fb.isOpen, "data": gin.H{"start_cash": fb.startCash}})
	})
	authed.POST("/pos/:slug/open-store", func(c *gin.Context) {
		var body struct {
			StartCash int64 `json:"start_cash"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "start_cash wajib"})
			return
		}
		fb.mu.Lock()
		defer fb.mu.Unlock()
		fb.openCalls = append(fb.openCalls, body.StartCash)
		fb.isOpen = true
		fb.startCash = strconv.FormatInt(body.StartCash, 10) + ".00"
		c.JSON(http.StatusOK, gin.H{"message": "Toko dibuka"})
	})
	authed.GET("/pos/:slug/reports", func(c *gin.Context) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"data": fb.report})
	})
	authed.GET("/pos/:slug/closing", func(c *gin.Context) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		if fb.closingStatus != 0 {
			c.JSON(fb.closingStatus, gin.H{"message": "Laporan tidak tersedia"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": fb.closing})
	})
	authed.POST("/pos/:slug/close-store", func(c *gin.Context) {
		var body struct {
			EndCash int64 `json:"end_cash"`
		}
		_ = c.ShouldBindJSON(&body)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		fb.closeCalls = append(fb.closeCalls, body.EndCash)
		if fb.closeStatus != 0 {
			c.JSON(fb.closeStatus, gin.H{"message": "Shift gagal ditutup"})
			return
		}
		fb.isOpen = false
		c.JSON(http.StatusOK, gin.H{"message": "Shift ditutup"})
	})
	authed.GET("/pos/:slug/menu", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": fb.products})
	})
	authed.GET("/pos/:slug/kitchen", func(c *gin.Context) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"data": fb.kitchen})
	})
	authed.GET("/pos/:slug/kitchen-orders", func(c *gin.Context) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		c.JSON(http.StatusOK, fb.kitchen)
	})
	authed.POST("/order-items/:id/ready", func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		fb.readyItems = append(fb.readyItems, id)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	authed.POST("/pos/:slug/checkout", func(c *gin.Context) {
		var body models.CheckoutPayload
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		fb.mu.Lock()
		defer fb.mu.Unlock()
		if fb.checkoutStatus != 0 {
			c.JSON(fb.checkoutStatus, gin.H{"message": "Stok tidak cukup"})
			return
		}
		fb.checkouts = append(fb.checkouts, body)
		c.JSON(http.StatusCreated, gin.H{"order": gin.H{"invoice_number": fmt.Sprintf("INV-%03d", len(fb.checkouts))}})
	})
	authed.POST("/pos/:slug/orders/:id/cancel", func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		fb.mu.Lock()
		defer fb.mu.Unlock()
		if fb.cancelBody != nil {
			c.JSON(http.StatusOK, fb.cancelBody)
			return
		}
		fb.cancelled = append(fb.cancelled, id)
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) requireToken(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	fb.mu.Lock()
	fb.calls++
	fb.authSeen = append(fb.authSeen, auth)
	denied := fb.unauthorized || auth != "Bearer "+testToken
	fb.mu.Unlock()

	if denied {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}
	c.Next()
}

func (fb *fakeBackend) verifyPIN(c *gin.Context) {
	var body struct {
		UserID int64  `json:"user_id"`
		PIN    string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid"})
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.pins[body.UserID] != body.PIN {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "PIN salah"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": fmt.Sprintf("tok-%d", body.UserID)})
}

func (fb *fakeBackend) setKitchen(orders ...gin.H) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.kitchen = orders
}

func newTestStore(t *testing.T) *database.SettingsStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))
	return database.NewSettingsStore(db)
}

func testConfig() *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{Timeout: 2 * time.Second},
		Poll: config.PollConfig{
			Kitchen:   20 * time.Millisecond,
			Warehouse: 20 * time.Millisecond,
			Dashboard: 20 * time.Millisecond,
		},
		Guard: config.GuardConfig{ConfirmTTL: time.Minute},
	}
}

// newTestTill returns a till already connected to the fake backend. When
// loggedIn is true the cashier token is stored as well.
func newTestTill(t *testing.T, srv *httptest.Server, loggedIn bool) *Till {
	t.Helper()
	utils.Silence()
	till := NewTill(testConfig(), newTestStore(t), kds.NewHub())
	t.Cleanup(till.Shutdown)
	require.NoError(t, till.Sessions.SaveSetup(models.SetupPayload{
		Slug:   testSlug,
		APIURL: srv.URL + "/api",
		Name:   "Warung Uwais",
	}))
	if loggedIn {
		require.NoError(t, till.Sessions.SaveLogin(testToken, "Budi Santoso"))
	}
	return till
}

func (fb *fakeBackend) openShift(startCash string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.isOpen = true
	fb.startCash = startCash
}

// with runs f under the backend lock; tests read and change state through it.
func (fb *fakeBackend) with(f func()) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	f()
}
