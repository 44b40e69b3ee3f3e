package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/pos-till/services"
)

func TestPing(t *testing.T) {
	rig := setupTill(t, false)
	w, env := rig.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", env.Message)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetupScanFlow(t *testing.T) {
	rig := setupTill(t, false)

	_, env := rig.do(t, http.MethodGet, "/setup", nil)
	assert.Equal(t, "setup", env.Data["stage"])

	// QR bukan JSON
	w, env := rig.do(t, http.MethodPost, "/setup/scan", gin.H{"payload": "bukan-qr"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Status)

	// QR tanpa api_url
	w, _ = rig.do(t, http.MethodPost, "/setup/scan", gin.H{"payload": `{"slug":"x","name":"X"}`})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	_, env = rig.do(t, http.MethodGet, "/setup", nil)
	assert.Equal(t, "setup", env.Data["stage"])

	w, env = rig.do(t, http.MethodPost, "/setup/scan", gin.H{"payload": rig.qrPayload()})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, storeSlug, env.Data["store_slug"])

	_, env = rig.do(t, http.MethodGet, "/setup", nil)
	assert.Equal(t, "select_user", env.Data["stage"])
	assert.Equal(t, "Warung Uwais", env.Data["store_name"])
}

func TestSetupResetNeedsConfirm(t *testing.T) {
	rig := setupTill(t, true)
	rig.login(t)

	w, env := rig.do(t, http.MethodPost, "/setup/reset", gin.H{})
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Equal(t, services.PromptConfirm, env.Data["prompt"])

	_, env = rig.do(t, http.MethodGet, "/setup", nil)
	assert.Equal(t, "ready", env.Data["stage"])

	w, _ = rig.do(t, http.MethodPost, "/setup/reset", gin.H{"confirm": true})
	assert.Equal(t, http.StatusOK, w.Code)

	_, env = rig.do(t, http.MethodGet, "/setup", nil)
	assert.Equal(t, "setup", env.Data["stage"])
	assert.Equal(t, "Toko Saya", env.Data["store_name"])
}
