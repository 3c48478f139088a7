package handler

import (
	"net/http"

	"github.com/AbyssT34/Ecommerce-Shop/internal/apierror"
	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/middleware"
	"github.com/AbyssT34/Ecommerce-Shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct{ svc service.CartService }

func NewCartHandler(svc service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return uuid.Nil, false
	}
	return userID, true
}

func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req dto.AddToCartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Add(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Clear(c.Request.Context(), userID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
