package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

const SessionKey = "session"

func abortWithServiceError(c *gin.Context, err error) {
	he := services.ToHTTPError(err)
	var data interface{}
	if he.Prompt != "" {
		data = gin.H{"prompt": he.Prompt}
	}
	utils.RespondFailure(c, he.Status, he.Message, data)
}

// SessionRequired lets a request through only when the till is connected to a
// store and a cashier is logged in.
func SessionRequired(sessions *services.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := sessions.Require()
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		c.Set(SessionKey, s)
		c.Next()
	}
}

// ShiftOpenRequired short-circuits order-taking routes to the "open shift" prompt.
func ShiftOpenRequired(shift *services.ShiftGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := shift.RequireOpen(c.Request.Context()); err != nil {
			abortWithServiceError(c, err)
			return
		}
		c.Next()
	}
}
