package handler

import (
	"net/http"

	"shopping-list-api/internal/usecase/share"
	"shopping-list-api/internal/usecase/shoppinglist"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	service *share.Service
	lists   *shoppinglist.Service
}

func NewShareHandler(service *share.Service, lists *shoppinglist.Service) *ShareHandler {
	return &ShareHandler{service: service, lists: lists}
}

func (h *ShareHandler) RegisterRoutes(router *gin.RouterGroup) {
	shared := router.Group("/shopping_lists/share")
	{
		shared.POST("", h.ShareList)
		shared.GET("", h.ListShared)
		shared.DELETE("/:id", h.Unshare)
		shared.GET("/:id/items", h.ListSharedItems)
	}
}

func (h *ShareHandler) ShareList(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req share.ShareListRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		respondWithError(c, appErrors.NewValidationError(err))
		return
	}

	if err := h.service.ShareList(c.Request.Context(), callerID, req.ListID, req.FriendID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shopping list shared successfully", nil)
}

func (h *ShareHandler) ListShared(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	params, ok := parsePagination(c)
	if !ok {
		return
	}

	lists, err := h.service.ListSharedWith(c.Request.Context(), callerID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shared shopping lists retrieved successfully", lists)
}

func (h *ShareHandler) Unshare(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req share.UnshareRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		respondWithError(c, appErrors.NewValidationError(err))
		return
	}

	if err := h.service.Unshare(c.Request.Context(), listID, callerID, req.FriendID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping list unshared successfully", nil)
}

func (h *ShareHandler) ListSharedItems(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, ok := parseID(c, "id")
	if !ok {
		return
	}
	params, ok := parsePagination(c)
	if !ok {
		return
	}

	items, err := h.lists.ListItems(c.Request.Context(), callerID, listID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Items retrieved successfully", items)
}
