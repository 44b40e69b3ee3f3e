package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the headers the cashier webview gets on every
// response. Data kasir dan sesi tidak boleh di-cache, kecuali path di
// cacheable (gambar grafik) yang boleh disimpan sebentar oleh webview.
func SecurityHeaders(cacheable ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")

		if hasPrefix(c.Request.URL.Path, cacheable) {
			c.Header("Cache-Control", "private, max-age=60")
		} else {
			c.Header("Cache-Control", "no-store")
			c.Header("Pragma", "no-cache")
		}

		c.Next()
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
