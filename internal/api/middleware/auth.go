package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/mediagate/internal/config"
	"github.com/denisAlshanov/mediagate/internal/metrics"
	"github.com/denisAlshanov/mediagate/internal/models"
	"github.com/denisAlshanov/mediagate/internal/utils"
)

// APIKeyHeader is the header the shared credential is read from.
const APIKeyHeader = "x-api-key"

// AuthMiddleware rejects requests whose x-api-key does not match the configured key.
func AuthMiddleware(cfg *config.APIConfig) gin.HandlerFunc {
	expected := []byte(cfg.APIKey)

	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey != "" && subtle.ConstantTimeCompare([]byte(apiKey), expected) == 1 {
			c.Set("auth_method", "api_key")
			c.Next()
			return
		}

		metrics.IncAuthFailure()
		utils.LogWarn(c.Request.Context(), "Rejected request with invalid API key", utils.Fields{
			"path":        c.Request.URL.Path,
			"ip":          c.ClientIP(),
			"key_present": apiKey != "",
		})

		c.AbortWithStatusJSON(http.StatusUnauthorized, models.AuthErrorResponse{
			Detail: utils.NewUnauthorizedError().Message,
		})
	}
}
