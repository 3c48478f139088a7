package handler

import (
	"net/http"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/service"

	"github.com/gin-gonic/gin"
)

type IngredientsHandler struct{ svc service.IngredientService }

func NewIngredientsHandler(svc service.IngredientService) *IngredientsHandler {
	return &IngredientsHandler{svc: svc}
}

func (h *IngredientsHandler) Create(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngredientsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
