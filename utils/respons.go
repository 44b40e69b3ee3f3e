package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondErrorData sama seperti RespondError tapi membawa payload tambahan,
// misalnya prompt "open_shift" untuk UI.
func RespondErrorData(c *gin.Context, code int, err error, data interface{}) {
	c.AbortWithStatusJSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    data,
	})
}

// RespondFailure is RespondErrorData for a message that is already cashier-facing.
func RespondFailure(c *gin.Context, code int, message string, data interface{}) {
	c.AbortWithStatusJSON(code, JSONResponse{
		Status:  false,
		Message: message,
		Data:    data,
	})
}
