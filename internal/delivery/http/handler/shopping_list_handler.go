package handler

import (
	"net/http"

	"shopping-list-api/internal/usecase/shoppinglist"
	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShoppingListHandler struct {
	service *shoppinglist.Service
}

func NewShoppingListHandler(service *shoppinglist.Service) *ShoppingListHandler {
	return &ShoppingListHandler{service: service}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/shopping_lists")
	{
		lists.POST("", h.CreateList)
		lists.GET("", h.ListLists)
		lists.GET("/:id", h.GetList)
		lists.PUT("/:id", h.UpdateList)
		lists.DELETE("/:id", h.DeleteList)

		lists.POST("/:id/items", h.CreateItem)
		lists.GET("/:id/items", h.ListItems)
		lists.GET("/:id/items/:item_id", h.GetItem)
		lists.PUT("/:id/items/:item_id", h.UpdateItem)
		lists.DELETE("/:id/items/:item_id", h.DeleteItem)
	}
}

func (h *ShoppingListHandler) CreateList(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req shoppinglist.CreateListRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = utils.SanitizeName(req.Name)
	req.Description = utils.SanitizeText(req.Description)

	list, err := h.service.CreateList(c.Request.Context(), callerID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shopping list created successfully", list)
}

func (h *ShoppingListHandler) ListLists(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	params, ok := parsePagination(c)
	if !ok {
		return
	}

	lists, err := h.service.ListLists(c.Request.Context(), callerID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping lists retrieved successfully", lists)
}

func (h *ShoppingListHandler) GetList(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, ok := parseID(c, "id")
	if !ok {
		return
	}

	list, err := h.service.GetList(c.Request.Context(), callerID, listID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping list retrieved successfully", list)
}

func (h *ShoppingListHandler) UpdateList(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req shoppinglist.UpdateListRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name != nil {
		sanitized := utils.SanitizeName(*req.Name)
		req.Name = &sanitized
	}
	if req.Description != nil {
		sanitized := utils.SanitizeText(*req.Description)
		req.Description = &sanitized
	}

	list, err := h.service.UpdateList(c.Request.Context(), callerID, listID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping list updated successfully", list)
}

func (h *ShoppingListHandler) DeleteList(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteList(c.Request.Context(), callerID, listID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shopping list deleted successfully", nil)
}

func (h *ShoppingListHandler) CreateItem(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req shoppinglist.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = utils.SanitizeName(req.Name)

	item, err := h.service.CreateItem(c.Request.Context(), callerID, listID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Item created successfully", item)
}

func (h *ShoppingListHandler) ListItems(c *gin.Context) {
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

	items, err := h.service.ListItems(c.Request.Context(), callerID, listID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Items retrieved successfully", items)
}

func (h *ShoppingListHandler) GetItem(c *gin.Context) {
	callerID, listID, itemID, ok := h.itemPath(c)
	if !ok {
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), callerID, listID, itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item retrieved successfully", item)
}

func (h *ShoppingListHandler) UpdateItem(c *gin.Context) {
	callerID, listID, itemID, ok := h.itemPath(c)
	if !ok {
		return
	}

	var req shoppinglist.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name != nil {
		sanitized := utils.SanitizeName(*req.Name)
		req.Name = &sanitized
	}

	item, err := h.service.UpdateItem(c.Request.Context(), callerID, listID, itemID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item updated successfully", item)
}

func (h *ShoppingListHandler) DeleteItem(c *gin.Context) {
	callerID, listID, itemID, ok := h.itemPath(c)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), callerID, listID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Item deleted successfully", nil)
}

func (h *ShoppingListHandler) itemPath(c *gin.Context) (callerID, listID, itemID uuid.UUID, ok bool) {
	if callerID, ok = currentUserID(c); !ok {
		return
	}
	if listID, ok = parseID(c, "id"); !ok {
		return
	}
	itemID, ok = parseID(c, "item_id")
	return
}
