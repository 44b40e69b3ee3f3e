package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type SetupController struct {
	Sessions *services.SessionManager
	Setup    *services.SetupService
}

func NewSetupController(sessions *services.SessionManager, setup *services.SetupService) *SetupController {
	return &SetupController{Sessions: sessions, Setup: setup}
}

func Ping(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "pong", nil)
}

// GetSetup -> layar mana yang harus dibuka UI (setup, pilih kasir, atau home)
func (sc *SetupController) GetSetup(c *gin.Context) {
	stage, err := sc.Sessions.Stage()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	s, err := sc.Sessions.Current()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Setup status", gin.H{
		"stage":      stage,
		"store_slug": s.StoreSlug,
		"store_name": s.DisplayStoreName(),
		"user_name":  s.UserName,
	})
}

// ScanQR -> simpan payload QR toko
func (sc *SetupController) ScanQR(c *gin.Context) {
	var body struct {
		Payload string `json:"payload" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := sc.Setup.Apply(body.Payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Toko "+p.Name+" terhubung", gin.H{
		"store_slug": p.Slug,
		"store_name": p.Name,
		"api_url":    p.APIURL,
	})
}

var errResetNotConfirmed = errors.New("Ini akan mereset koneksi toko. Kirim confirm=true untuk lanjut.")

// ResetSetup -> "Ganti Toko", hapus semua data lokal
func (sc *SetupController) ResetSetup(c *gin.Context) {
	var body struct {
		Confirm bool `json:"confirm"`
	}
	_ = c.ShouldBindJSON(&body)
	if !body.Confirm {
		utils.RespondErrorData(c, http.StatusPreconditionRequired, errResetNotConfirmed, gin.H{"prompt": services.PromptConfirm})
		return
	}

	if err := sc.Setup.Reset(); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Till direset", nil)
}
