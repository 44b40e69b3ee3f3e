package middlewares

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddlewares mengizinkan UI till (webview/dev server) memanggil agent.
// origin boleh "*" atau daftar dipisah koma.
func CORSMiddlewares(origin string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Accept", "Content-Type", "Content-Length", "Origin", "Cache-Control", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowWebSockets: true,
		MaxAge:          12 * time.Hour,
	}

	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" && o != "*" {
			corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, o)
		}
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowCredentials = true
	}

	return cors.New(corsConfig)
}
