package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-till/config"
	"github.com/yeremiapane/pos-till/database"
	"github.com/yeremiapane/pos-till/kds"
	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/router"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const storeSlug = "warung-uwais"

// posBackend meniru backend POS secukupnya untuk test controller
type posBackend struct {
	mu        sync.Mutex
	isOpen    bool
	startCash int64
	cashTotal int64
	checkouts []models.CheckoutPayload
	cancelled []int64
	ready     []int64
	endCash   []int64
}

func newPosBackend(t *testing.T) (*posBackend, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	pb := &posBackend{cashTotal: 50000}

	r := gin.New()
	api := r.Group("/api")
	api.GET("/pos/:slug/employees", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{{"id": 1, "name": "Budi Santoso"}, {"id": 2, "name": "Siti Aminah"}}})
	})
	api.POST("/pos/verify-pin", func(c *gin.Context) {
		var body struct {
			UserID int64  `json:"user_id"`
			PIN    string `json:"pin"`
		}
		_ = c.ShouldBindJSON(&body)
		if body.PIN != "123456" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "PIN salah"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "token": fmt.Sprintf("tok-%d", body.UserID)})
	})

	authed := api.Group("", func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer tok-") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}
		c.Next()
	})
	authed.GET("/pos/:slug/status", func(c *gin.Context) {
		pb.mu.Lock()
		defer pb.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"is_open": pb.isOpen, "data": gin.H{"start_cash": strconv.FormatInt(pb.startCash, 10) + ".00"}})
	})
	authed.POST("/pos/:slug/open-store", func(c *gin.Context) {
		var body struct {
			StartCash int64 `json:"start_cash"`
		}
		_ = c.ShouldBindJSON(&body)
		pb.mu.Lock()
		defer pb.mu.Unlock()
		pb.isOpen = true
		pb.startCash = body.StartCash
		c.JSON(http.StatusOK, gin.H{"message": "Toko dibuka"})
	})
	authed.GET("/pos/:slug/menu", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": []gin.H{
			{"id": 1, "name": "Nasi Goreng", "price": "25000.00", "image": "products/nasgor.jpg", "category": gin.H{"id": 1, "name": "Makanan"}},
			{"id": 2, "name": "Es Teh Manis", "price": 5000, "category": gin.H{"id": 2, "name": "Minuman"}},
		}})
	})
	authed.POST("/pos/:slug/checkout", func(c *gin.Context) {
		var body models.CheckoutPayload
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		pb.mu.Lock()
		defer pb.mu.Unlock()
		pb.checkouts = append(pb.checkouts, body)
		c.JSON(http.StatusCreated, gin.H{"order": gin.H{"invoice_number": fmt.Sprintf("INV-%03d", len(pb.checkouts))}})
	})
	authed.GET("/pos/:slug/reports", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"daily_revenue":    "75000.00",
			"total_orders_day": 3,
			"chart_labels":     []string{"Sen", "Sel"},
			"chart_values":     []int{50000, 25000},
			"latest_orders": []gin.H{
				{"id": 21, "invoice_number": "INV-021", "status": "paid", "payment_method": "cash", "total_price": 50000},
				{"id": 22, "invoice_number": "INV-022", "status": "cancelled", "payment_method": "qris", "total_price": 25000},
			},
		}})
	})
	authed.POST("/pos/:slug/orders/:id/cancel", func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		pb.mu.Lock()
		defer pb.mu.Unlock()
		pb.cancelled = append(pb.cancelled, id)
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	authed.GET("/pos/:slug/kitchen", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{{
			"id": 31, "invoice_number": "INV-031", "created_at": time.Now().Add(-15 * time.Minute).Format(time.RFC3339),
			"items": []gin.H{{"id": 301, "product": gin.H{"name": "Nasi Goreng"}, "quantity": 1, "status": "pending"}},
		}}})
	})
	authed.GET("/pos/:slug/kitchen-orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{})
	})
	authed.POST("/order-items/:id/ready", func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		pb.mu.Lock()
		defer pb.mu.Unlock()
		pb.ready = append(pb.ready, id)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	authed.GET("/pos/:slug/closing", func(c *gin.Context) {
		pb.mu.Lock()
		defer pb.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"total_orders": 3, "cancelled_orders": 1,
			"cash_total": pb.cashTotal, "qris_total": 25000, "grand_total": pb.cashTotal + 25000,
		}})
	})
	authed.POST("/pos/:slug/close-store", func(c *gin.Context) {
		var body struct {
			EndCash int64 `json:"end_cash"`
		}
		_ = c.ShouldBindJSON(&body)
		pb.mu.Lock()
		defer pb.mu.Unlock()
		pb.isOpen = false
		pb.endCash = append(pb.endCash, body.EndCash)
		c.JSON(http.StatusOK, gin.H{"message": "Shift ditutup"})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return pb, srv
}

func (pb *posBackend) with(f func()) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	f()
}

type tillRig struct {
	router  *gin.Engine
	till    *services.Till
	backend *posBackend
	apiURL  string
}

// setupTill -> till + router yang terhubung ke posBackend. connected=true
// berarti QR toko sudah di-scan.
func setupTill(t *testing.T, connected bool) *tillRig {
	t.Helper()
	utils.Silence()
	pb, srv := newPosBackend(t)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	cfg := &config.Config{
		App:     config.AppConfig{CORSOrigin: "*"},
		Backend: config.BackendConfig{Timeout: 2 * time.Second},
		Poll: config.PollConfig{
			Kitchen:   20 * time.Millisecond,
			Warehouse: 20 * time.Millisecond,
			Dashboard: 20 * time.Millisecond,
		},
		Guard: config.GuardConfig{ConfirmTTL: time.Minute, PinRatePerMinute: 5, RequestsPerSec: 1000},
	}
	till := services.NewTill(cfg, database.NewSettingsStore(db), kds.NewHub())
	t.Cleanup(till.Shutdown)

	rig := &tillRig{router: router.SetupRouter(till, cfg), till: till, backend: pb, apiURL: srv.URL + "/api"}
	if connected {
		rig.scan(t)
	}
	return rig
}

func (rig *tillRig) qrPayload() string {
	b, _ := json.Marshal(gin.H{"slug": storeSlug, "api_url": rig.apiURL, "name": "Warung Uwais"})
	return string(b)
}

func (rig *tillRig) scan(t *testing.T) {
	t.Helper()
	w, _ := rig.do(t, http.MethodPost, "/setup/scan", gin.H{"payload": rig.qrPayload()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (rig *tillRig) login(t *testing.T) {
	t.Helper()
	w, _ := rig.do(t, http.MethodPost, "/auth/pin", gin.H{"user_id": 1, "name": "Budi Santoso", "pin": "123456"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (rig *tillRig) openShift(t *testing.T, startCash interface{}) {
	t.Helper()
	w, _ := rig.do(t, http.MethodPost, "/shift/open", gin.H{"start_cash": startCash})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// do mengirim request JSON ke router dan decode envelope-nya. Data berupa
// array tidak di-decode ke env.Data; pakai doList.
func (rig *tillRig) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rig.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		var raw struct {
			Status  bool            `json:"status"`
			Message string          `json:"message"`
			Data    json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
		env.Status, env.Message = raw.Status, raw.Message
		if len(raw.Data) > 0 && raw.Data[0] == '{' {
			require.NoError(t, json.Unmarshal(raw.Data, &env.Data))
		}
	}
	return w, env
}

func (rig *tillRig) doList(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	rig.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}
