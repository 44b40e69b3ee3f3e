package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetOrders -> riwayat pesanan hari ini
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.Orders.History(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderDetail(c *gin.Context) {
	orderID, ok := int64Param(c, "order_id")
	if !ok {
		return
	}
	order, err := oc.Orders.Detail(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// PrepareCancel -> langkah konfirmasi, mengembalikan confirm_token
func (oc *OrderController) PrepareCancel(c *gin.Context) {
	orderID, ok := int64Param(c, "order_id")
	if !ok {
		return
	}
	prompt, err := oc.Orders.PrepareCancel(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Batalkan pesanan "+prompt.Order.InvoiceNumber+"?", prompt)
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID, ok := int64Param(c, "order_id")
	if !ok {
		return
	}
	var body struct {
		ConfirmToken string `json:"confirm_token"`
	}
	_ = c.ShouldBindJSON(&body)

	if err := oc.Orders.Cancel(c.Request.Context(), orderID, body.ConfirmToken); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pesanan dibatalkan", gin.H{"order_id": orderID})
}
