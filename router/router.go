package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/config"
	"github.com/yeremiapane/pos-till/controllers"
	"github.com/yeremiapane/pos-till/middlewares"
	"github.com/yeremiapane/pos-till/services"
	"golang.org/x/time/rate"
)

func SetupRouter(till *services.Till, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders("/reports/chart.png"))
	r.Use(middlewares.CORSMiddlewares(cfg.App.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	rps := cfg.Guard.RequestsPerSec
	if rps <= 0 {
		rps = 50
	}
	r.Use(middlewares.NewRateLimiter(rate.Limit(rps), rps).RateLimit())

	// Inisialisasi controller
	setupCtrl := controllers.NewSetupController(till.Sessions, till.Setup)
	authCtrl := controllers.NewAuthController(till.Auth)
	shiftCtrl := controllers.NewShiftController(till)
	reportCtrl := controllers.NewReportController(till.Reports)
	menuCtrl := controllers.NewMenuController(till.Catalog)
	cartCtrl := controllers.NewCartController(till.Cart)
	checkoutCtrl := controllers.NewCheckoutController(till.Checkout)
	kitchenCtrl := controllers.NewKitchenController(till)
	orderCtrl := controllers.NewOrderController(till.Orders)
	closingCtrl := controllers.NewClosingController(till)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", controllers.Ping)

	r.GET("/setup", setupCtrl.GetSetup)
	r.POST("/setup/scan", setupCtrl.ScanQR)
	r.POST("/setup/reset", setupCtrl.ResetSetup)

	r.GET("/employees", authCtrl.GetEmployees)

	// Rate limiter untuk PIN
	pinLimiter := middlewares.NewPinRateLimiter(cfg.Guard.PinRatePerMinute)
	r.POST("/auth/pin", pinLimiter.RateLimit(), authCtrl.VerifyPIN)

	// ----------------------------------------------------------------
	//                 ROUTES DENGAN SESSION KASIR
	// ----------------------------------------------------------------
	authorized := r.Group("/")
	authorized.Use(middlewares.SessionRequired(till.Sessions))
	{
		authorized.POST("/auth/logout", authCtrl.Logout)

		authorized.GET("/shift", shiftCtrl.GetShift)
		authorized.POST("/shift/open", shiftCtrl.OpenShift)

		authorized.GET("/dashboard", reportCtrl.GetDashboard)
		authorized.GET("/menu", menuCtrl.GetMenu)

		shiftOpen := middlewares.ShiftOpenRequired(till.Shift)

		// -- CART --
		authorized.GET("/cart", cartCtrl.GetCart)
		authorized.POST("/cart/items", shiftOpen, cartCtrl.AddItem)
		authorized.POST("/cart/items/:product_id/decrease", cartCtrl.DecreaseItem)
		authorized.DELETE("/cart", cartCtrl.ClearCart)

		authorized.POST("/checkout", shiftOpen, checkoutCtrl.Checkout)

		// -- KITCHEN / WAREHOUSE --
		authorized.GET("/kitchen", kitchenCtrl.GetKitchen)
		authorized.GET("/warehouse", kitchenCtrl.GetWarehouse)
		authorized.POST("/kitchen/items/:item_id/ready", kitchenCtrl.MarkItemReady)

		// -- ORDERS --
		authorized.GET("/orders", orderCtrl.GetOrders)
		authorized.GET("/orders/:order_id", orderCtrl.GetOrderDetail)
		authorized.POST("/orders/:order_id/cancel/prepare", orderCtrl.PrepareCancel)
		authorized.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

		// -- REPORTS / CLOSING --
		authorized.GET("/reports", reportCtrl.GetReports)
		authorized.GET("/reports/chart.png", reportCtrl.GetRevenueChart)
		authorized.GET("/closing", closingCtrl.GetClosing)
		authorized.POST("/closing/preview", closingCtrl.PreviewClosing)
		authorized.POST("/closing/confirm", closingCtrl.ConfirmClosing)
		authorized.GET("/closing/report.pdf", closingCtrl.GetClosingPDF)

		// Endpoint KDS WebSocket
		authorized.GET("/ws/:topic", middlewares.WebSocketTopicMiddleware(), kitchenCtrl.KDSHandler)
	}

	return r
}
