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

type RecipesHandler struct {
	svc  service.RecipeService
	cart service.CartService
}

func NewRecipesHandler(svc service.RecipeService, cart service.CartService) *RecipesHandler {
	return &RecipesHandler{svc: svc, cart: cart}
}

func (h *RecipesHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeRequest
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

func (h *RecipesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Available annotates every active recipe with what the shelf can satisfy
// right now, ranked best-first.
func (h *RecipesHandler) Available(c *gin.Context) {
	resp, err := h.svc.GetAvailableRecipes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipesHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipesHandler) WithProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetRecipeWithProducts(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipesHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreateRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipesHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestFromCart matches the caller's cart against every active recipe.
// An explicit product_ids list in the body overrides the stored cart, which
// lets anonymous clients ask "what could I cook with these?".
func (h *RecipesHandler) SuggestFromCart(c *gin.Context) {
	var req dto.SuggestFromCartRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var productIDs []uuid.UUID
	if len(req.ProductIDs) > 0 {
		productIDs = make([]uuid.UUID, 0, len(req.ProductIDs))
		for _, raw := range req.ProductIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, apierror.New("Invalid product id: "+raw))
				return
			}
			productIDs = append(productIDs, id)
		}
	} else if userID, ok := middleware.UserID(c); ok {
		ids, err := h.cart.ProductIDs(c.Request.Context(), userID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		productIDs = ids
	}

	resp, err := h.svc.SuggestRecipesFromCart(c.Request.Context(), productIDs)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
