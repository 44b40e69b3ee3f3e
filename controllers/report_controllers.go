package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// GetDashboard -> ringkasan home: toko buka/tutup, omzet, transaksi, antrian
func (rc *ReportController) GetDashboard(c *gin.Context) {
	d, err := rc.Reports.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard", d)
}

func (rc *ReportController) GetReports(c *gin.Context) {
	r, err := rc.Reports.Reports(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reports", r)
}

// GetRevenueChart -> grafik pendapatan mingguan dalam PNG
func (rc *ReportController) GetRevenueChart(c *gin.Context) {
	r, err := rc.Reports.Reports(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	png, err := services.RevenueChartPNG(r)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
