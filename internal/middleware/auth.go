package middleware

import (
	"context"
	"errors"

	"shopping-list-api/internal/auth"
	"shopping-list-api/internal/logger"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const identityKey = "identity"

// IdentityResolver verifies an Authorization header value.
type IdentityResolver interface {
	Resolve(ctx context.Context, header string) (*auth.Identity, error)
}

func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			var appErr *appErrors.AppError
			if !errors.As(err, &appErr) {
				appErr = appErrors.Internal(err)
			}
			if appErr.Kind == appErrors.KindInternal {
				logger.WithRequestID(GetRequestID(c)).Error("Failed to authenticate request",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
			}

			utils.ErrorResponseWithCode(c, appErr.Kind.HTTPStatus(), appErr.Code, appErr.Message)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Set("userID", identity.UserID)

		c.Next()
	}
}

// GetIdentity returns the identity stored by AuthMiddleware.
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok
}

// GetUserID returns the authenticated caller's id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		return uuid.Nil, false
	}
	return identity.UserID, true
}
