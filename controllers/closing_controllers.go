package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type ClosingController struct {
	Closing  *services.ClosingReconciler
	Sessions *services.SessionManager
	Till     *services.Till
}

func NewClosingController(till *services.Till) *ClosingController {
	return &ClosingController{Closing: till.Closing, Sessions: till.Sessions, Till: till}
}

// GetClosing -> laporan tutup shift (selalu diambil ulang dari backend)
func (cc *ClosingController) GetClosing(c *gin.Context) {
	sum, err := cc.Closing.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Closing report", sum)
}

// PreviewClosing -> hitung selisih uang fisik, kembalikan confirm_token
func (cc *ClosingController) PreviewClosing(c *gin.Context) {
	var body struct {
		CountedCash amountInput `json:"counted_cash"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	preview, err := cc.Closing.Preview(c.Request.Context(), string(body.CountedCash))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Konfirmasi tutup shift", preview)
}

// ConfirmClosing -> tutup shift, kasir otomatis logout
func (cc *ClosingController) ConfirmClosing(c *gin.Context) {
	var body struct {
		CountedCash  amountInput `json:"counted_cash"`
		ConfirmToken string      `json:"confirm_token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	rec, err := cc.Closing.CloseShift(c.Request.Context(), string(body.CountedCash), body.ConfirmToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	cc.Till.ShiftClosed()
	utils.RespondJSON(c, http.StatusOK, "Shift ditutup. Silakan login untuk shift berikutnya.", rec)
}

// GetClosingPDF -> /closing/report.pdf?counted_cash=150000
func (cc *ClosingController) GetClosingPDF(c *gin.Context) {
	ctx := c.Request.Context()
	sum, rec, err := cc.Closing.Reconcile(ctx, c.Query("counted_cash"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	s, err := cc.Sessions.Current()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pdf, err := services.ClosingPDF(s.DisplayStoreName(), sum, rec)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	name := fmt.Sprintf("tutup-shift-%s.pdf", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
