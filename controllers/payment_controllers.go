package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type CheckoutController struct {
	Service *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Service: checkout}
}

// Checkout -> bayar cash atau qris, keranjang dikosongkan kalau berhasil
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var body struct {
		PaymentMethod string      `json:"payment_method" binding:"required"`
		MoneyReceived amountInput `json:"money_received"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := cc.Service.Submit(c.Request.Context(), body.PaymentMethod, string(body.MoneyReceived))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Transaksi berhasil", receipt)
}
