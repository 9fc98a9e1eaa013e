package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vigia-app/vigia-backend/internal/config"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/internal/service"
)

const identityContextKey = "requester_identity"

// APIKeyAuthMiddleware authenticates the calling client by API key.
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if key == apiKey {
				isValid = true
				break
			}
		}

		if !isValid {
			log.Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

// IdentityMiddleware resolves the requesting user from the X-User-ID header
// through the auth directory and stores the identity on the context. The
// header is set by the upstream auth proxy, which is out of scope here.
func IdentityMiddleware(directory service.AuthDirectory, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader("X-User-ID")
		if rawID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		identity, err := directory.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			log.WithError(err).WithField("user_id", rawID).Warn("Failed to resolve requester identity")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// identityFrom returns the identity resolved by IdentityMiddleware.
func identityFrom(c *gin.Context) *models.UserIdentity {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*models.UserIdentity)
	return identity
}
