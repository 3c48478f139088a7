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

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return
	}
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns the caller's own orders; admins see every order.
func (h *OrdersHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims.Role == middleware.RoleAdmin {
		resp, err := h.svc.FindAll(c.Request.Context())
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	userID, _ := uuid.Parse(claims.UserID)
	resp, err := h.svc.FindByUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// Customers may only read their own orders.
	claims := middleware.GetClaims(c)
	if claims.Role != middleware.RoleAdmin && resp.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, apierror.New("You do not have access to this resource"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	adminID, _ := middleware.UserID(c)
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, adminID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, uok := middleware.UserID(c)
	if !uok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return
	}
	resp, err := h.svc.Cancel(c.Request.Context(), id, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
