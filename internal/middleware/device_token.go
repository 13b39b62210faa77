package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"bikerental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// DeviceTokenAuth protects the location telemetry endpoint with a static
// device credential. Trackers mounted on bikes push position updates on
// this surface; it is deliberately separate from user JWT auth so a
// device can report without acting as any user.
func DeviceTokenAuth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			logDeviceAuthFailure(c, http.StatusInternalServerError, "token_not_configured")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Device token is not configured")
			c.Abort()
			return
		}

		got := strings.TrimSpace(c.GetHeader("X-Device-Token"))
		if got == "" {
			logDeviceAuthFailure(c, http.StatusUnauthorized, "missing_token")
			response.Error(c, http.StatusUnauthorized, "AUTH_MISSING", "X-Device-Token header is required")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			logDeviceAuthFailure(c, http.StatusForbidden, "invalid_token")
			response.Error(c, http.StatusForbidden, "AUTH_INVALID", "Invalid device token")
			c.Abort()
			return
		}

		c.Next()
	}
}

func logDeviceAuthFailure(c *gin.Context, status int, reason string) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	log.Printf("device_auth status=%d request_id=%s path=%s reason=%s", status, requestID, c.Request.URL.Path, reason)
}
