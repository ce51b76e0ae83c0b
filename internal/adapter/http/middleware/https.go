package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireHTTPS redirects plain HTTP requests to HTTPS, keeping the method
// and body. TLS terminated by a proxy is recognised via X-Forwarded-Proto.
// Local hosts are exempt.
func RequireHTTPS(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			c.Next()
			return
		}

		host := c.Request.Host

		if strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
			c.Next()
			return
		}

		httpsURL := "https://" + host + c.Request.RequestURI

		logger.Info("Redirecting to HTTPS",
			zap.String("original_url", c.Request.URL.String()),
			zap.String("https_url", httpsURL),
		)

		c.Redirect(http.StatusPermanentRedirect, httpsURL)
		c.Abort()
	}
}
