package handler

import (
	"net/http"

	"shopping-list-api/internal/usecase/friend"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	service *friend.Service
}

func NewFriendHandler(service *friend.Service) *FriendHandler {
	return &FriendHandler{service: service}
}

func (h *FriendHandler) RegisterRoutes(router *gin.RouterGroup) {
	friends := router.Group("/friends")
	{
		friends.POST("", h.SendRequest)
		friends.GET("", h.ListFriends)
		friends.GET("/requests", h.ListRequests)
		friends.PUT("/:id", h.AcceptRequest)
		friends.DELETE("/:id", h.RemoveFriend)
	}
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req friend.SendRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		respondWithError(c, appErrors.NewValidationError(err))
		return
	}

	link, err := h.service.SendRequest(c.Request.Context(), callerID, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Friend request sent", link)
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	params, ok := parsePagination(c)
	if !ok {
		return
	}

	friends, err := h.service.ListFriends(c.Request.Context(), callerID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Friends retrieved successfully", friends)
}

func (h *FriendHandler) ListRequests(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	params, ok := parsePagination(c)
	if !ok {
		return
	}

	requests, err := h.service.ListIncomingRequests(c.Request.Context(), callerID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Friend requests retrieved successfully", requests)
}

// AcceptRequest accepts the request sent by the user in the path.
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	requesterID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.AcceptRequest(c.Request.Context(), callerID, requesterID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Friend request accepted", nil)
}

func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	friendID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveFriend(c.Request.Context(), callerID, friendID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Friend removed", nil)
}
