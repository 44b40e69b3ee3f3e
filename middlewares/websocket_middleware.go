package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/kds"
	"github.com/yeremiapane/pos-till/utils"
)

var errUnknownTopic = errors.New("topic tidak dikenal")

// WebSocketTopicMiddleware menolak topic selain kitchen, warehouse, dashboard
// sebelum koneksi di-upgrade.
func WebSocketTopicMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		topic := c.Param("topic")
		if !kds.ValidTopic(topic) {
			utils.RespondErrorData(c, http.StatusNotFound, errUnknownTopic, gin.H{"topic": topic})
			return
		}
		c.Set("topic", topic)
		c.Next()
	}
}
