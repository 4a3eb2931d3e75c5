package middleware

import (
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminOnly rejects callers without admin rights. It must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			utils.ErrorResponseWithCode(c, appErrors.KindUnauthenticated.HTTPStatus(),
				appErrors.ErrTokenMissing.Code, appErrors.ErrTokenMissing.Message)
			c.Abort()
			return
		}

		if !identity.Admin {
			utils.ErrorResponseWithCode(c, appErrors.ErrAdminRequired.Kind.HTTPStatus(),
				appErrors.ErrAdminRequired.Code, appErrors.ErrAdminRequired.Message)
			c.Abort()
			return
		}

		c.Next()
	}
}
