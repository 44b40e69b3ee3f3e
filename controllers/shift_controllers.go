package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type ShiftController struct {
	Shift *services.ShiftGuard
	Till  *services.Till
}

func NewShiftController(till *services.Till) *ShiftController {
	return &ShiftController{Shift: till.Shift, Till: till}
}

// GetShift -> status toko; kalau backend tidak terjangkau dianggap buka
func (sc *ShiftController) GetShift(c *gin.Context) {
	st, err := sc.Shift.StatusOrAssumeOpen(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift status", st)
}

// OpenShift -> buka toko dengan modal awal
func (sc *ShiftController) OpenShift(c *gin.Context) {
	var body struct {
		StartCash amountInput `json:"start_cash"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	st, err := sc.Shift.OpenShift(c.Request.Context(), string(body.StartCash))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.Till.ShiftOpened(st.StartCash)
	utils.RespondJSON(c, http.StatusOK, "Toko dibuka", st)
}
