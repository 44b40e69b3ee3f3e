package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/pos-till/kds"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // till hanya listen di jaringan lokal
	},
}

type KitchenController struct {
	Kitchen  *services.KitchenService
	Hub      *kds.Hub
	Monitors *services.MonitorRegistry
}

func NewKitchenController(till *services.Till) *KitchenController {
	return &KitchenController{Kitchen: till.Kitchen, Hub: till.Hub, Monitors: till.Monitors}
}

// GetKitchen -> antrian dapur
func (kc *KitchenController) GetKitchen(c *gin.Context) {
	q, err := kc.Kitchen.Kitchen(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen queue", q)
}

// GetWarehouse -> antrian gudang/bar
func (kc *KitchenController) GetWarehouse(c *gin.Context) {
	q, err := kc.Kitchen.Warehouse(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Warehouse queue", q)
}

// MarkItemReady -> tandai satu item pesanan sudah siap
func (kc *KitchenController) MarkItemReady(c *gin.Context) {
	itemID, ok := int64Param(c, "item_id")
	if !ok {
		return
	}
	if err := kc.Kitchen.MarkItemReady(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item siap", gin.H{"item_id": itemID})
}

// KDSHandler -> endpoint WebSocket. Selama ada client di topic, monitor
// topic itu polling backend dan broadcast hasilnya lewat hub.
func (kc *KitchenController) KDSHandler(c *gin.Context) {
	topic := c.GetString("topic")

	release, err := kc.Monitors.Acquire(topic)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer release()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Warnf("websocket upgrade %s: %v", topic, err)
		return
	}
	kc.Hub.RegisterClient(ws, topic)
	utils.InfoLogger.Debugf("client websocket %s terhubung", topic)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kc.Hub.UnregisterClient(ws)
}
