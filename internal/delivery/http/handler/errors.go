package handler

import (
	"errors"
	"net/http"

	"shopping-list-api/internal/logger"
	"shopping-list-api/internal/middleware"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/pagination"
	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) || appErr.Kind == appErrors.KindInternal {
		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		_ = c.Error(err)
		utils.ErrorResponseWithCode(c, http.StatusInternalServerError, "INTERNAL", "Internal server error")
		return
	}

	message := appErr.Message
	if appErr.Code == "VALIDATION_ERROR" && appErr.Err != nil {
		message = message + ": " + appErr.Err.Error()
	}

	utils.ErrorResponseWithCode(c, appErr.Kind.HTTPStatus(), appErr.Code, message)
}

// bindJSON decodes the request body into req. Bodies cut off by the size
// limit answer 413, anything else undecodable 400.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.RespondTooLarge(c)
			return false
		}
		utils.ErrorResponseWithCode(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondWithError(c, appErrors.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (pagination.Params, bool) {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return pagination.Params{}, false
	}
	return params, true
}

// currentUserID returns the authenticated caller. Routes using it sit behind
// AuthMiddleware, so a miss is answered as a missing token.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondWithError(c, appErrors.ErrTokenMissing)
		return uuid.Nil, false
	}
	return userID, true
}
