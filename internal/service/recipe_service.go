package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// cartMatchThreshold is the minimum (inclusive) match percentage for a recipe
// to appear in cart suggestions. Policy constant — tune here, not inline.
const cartMatchThreshold = 30.0

// RecipeService covers recipe CRUD plus the availability engine and the
// cart-to-recipe matcher.
type RecipeService interface {
	Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	List(ctx context.Context) ([]dto.RecipeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error

	// GetAvailableRecipes annotates every active recipe with availability
	// metadata and ranks them: fully available first, then fewest missing
	// ingredients, then highest total stock.
	GetAvailableRecipes(ctx context.Context) ([]dto.RecipeAvailability, error)

	// GetRecipeWithProducts is the single-recipe resolution form.
	GetRecipeWithProducts(ctx context.Context, id uuid.UUID) (*dto.RecipeWithProducts, error)

	// SuggestRecipesFromCart matches cart contents against every active
	// recipe and returns those at or above the match threshold, sorted by
	// match percentage descending.
	SuggestRecipesFromCart(ctx context.Context, productIDs []uuid.UUID) ([]dto.RecipeCartMatch, error)
}

type recipeService struct {
	repo   repository.RecipeRepository
	piRepo repository.ProductIngredientRepository
}

func NewRecipeService(repo repository.RecipeRepository, piRepo repository.ProductIngredientRepository) RecipeService {
	return &recipeService{repo: repo, piRepo: piRepo}
}

// ── CRUD ─────────────────────────────────────────────────────────────────────

func (s *recipeService) Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	ingredients, err := ingredientEntriesToModel(req.Ingredients)
	if err != nil {
		return nil, err
	}
	rec := &model.Recipe{
		Name:        req.Name,
		Description: req.Description,
		Ingredients: ingredients,
		Steps:       model.RecipeSteps(req.Steps),
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		Difficulty:  req.Difficulty,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if rec.Servings == 0 {
		rec.Servings = 4
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	resp := recipeToResponse(rec)
	return &resp, nil
}

func (s *recipeService) List(ctx context.Context) ([]dto.RecipeResponse, error) {
	recipes, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		result = append(result, recipeToResponse(&recipes[i]))
	}
	return result, nil
}

func (s *recipeService) Get(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := recipeToResponse(rec)
	return &resp, nil
}

func (s *recipeService) Update(ctx context.Context, id uuid.UUID, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	ingredients, err := ingredientEntriesToModel(req.Ingredients)
	if err != nil {
		return nil, err
	}
	rec.Name = req.Name
	rec.Description = req.Description
	rec.Ingredients = ingredients
	rec.Steps = model.RecipeSteps(req.Steps)
	rec.PrepTime = req.PrepTime
	rec.CookTime = req.CookTime
	if req.Servings > 0 {
		rec.Servings = req.Servings
	}
	rec.Difficulty = req.Difficulty
	rec.ImageURL = req.ImageURL
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	resp := recipeToResponse(rec)
	return &resp, nil
}

func (s *recipeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Deactivate(ctx, id)
}

// ── Ingredient-product resolver ──────────────────────────────────────────────

// resolveIngredient picks the single best in-stock product for an ingredient,
// or nil when none exists. Absence of any product link and zero stock are
// treated identically: the ingredient is simply unavailable.
func (s *recipeService) resolveIngredient(ctx context.Context, ingredientID uuid.UUID) *dto.ProductSuggestion {
	pi, err := s.piRepo.BestForIngredient(ctx, ingredientID)
	if err != nil || pi == nil || pi.Product == nil {
		return nil
	}
	name := ""
	if pi.Ingredient != nil {
		name = pi.Ingredient.Name
	}
	return &dto.ProductSuggestion{
		IngredientID:   ingredientID.String(),
		IngredientName: name,
		Product: dto.ProductSnapshot{
			ID:            pi.Product.ID.String(),
			Name:          pi.Product.Name,
			SKU:           pi.Product.SKU,
			Price:         pi.Product.Price,
			StockQuantity: pi.Product.StockQuantity,
			ImageURL:      pi.Product.ImageURL,
		},
		IsPrimary: pi.IsPrimary,
		Priority:  pi.Priority,
	}
}

// productSuggestionsFor resolves each distinct ingredient of a recipe in list
// order. Ingredients with no in-stock product are skipped, not errors.
func (s *recipeService) productSuggestionsFor(ctx context.Context, ingredients model.RecipeIngredients) []dto.ProductSuggestion {
	suggestions := make([]dto.ProductSuggestion, 0, len(ingredients))
	seen := make(map[uuid.UUID]bool, len(ingredients))
	for _, ing := range ingredients {
		if seen[ing.IngredientID] {
			continue
		}
		seen[ing.IngredientID] = true
		if sug := s.resolveIngredient(ctx, ing.IngredientID); sug != nil {
			suggestions = append(suggestions, *sug)
		}
	}
	return suggestions
}

// ── Availability engine ──────────────────────────────────────────────────────

func (s *recipeService) GetAvailableRecipes(ctx context.Context) ([]dto.RecipeAvailability, error) {
	recipes, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RecipeAvailability, 0, len(recipes))
	for i := range recipes {
		rec := &recipes[i]
		// Recipes with no ingredients are malformed data — skip them.
		if len(rec.Ingredients) == 0 {
			continue
		}

		requiredIDs := distinctIngredientIDs(rec.Ingredients)
		suggestions := s.productSuggestionsFor(ctx, rec.Ingredients)

		available := make(map[string]bool, len(suggestions))
		totalStock := 0
		for _, sug := range suggestions {
			available[sug.IngredientID] = true
			totalStock += sug.Product.StockQuantity
		}

		missing := 0
		for _, id := range requiredIDs {
			if !available[id.String()] {
				missing++
			}
		}

		annotated := make([]dto.AnnotatedIngredient, 0, len(rec.Ingredients))
		for _, ing := range rec.Ingredients {
			annotated = append(annotated, dto.AnnotatedIngredient{
				IngredientID:   ing.IngredientID.String(),
				IngredientName: ing.IngredientName,
				Quantity:       ing.Quantity,
				IsAvailable:    available[ing.IngredientID.String()],
			})
		}

		result = append(result, dto.RecipeAvailability{
			Recipe:                  recipeToResponse(rec),
			Ingredients:             annotated,
			ProductSuggestions:      suggestions,
			TotalAvailability:       totalStock,
			MissingIngredientsCount: missing,
			IsFullyAvailable:        missing == 0,
		})
	}

	// Three-key ranking. Stable sort keeps the repository's newest-first
	// order as the final tie-break, so repeated calls rank identically.
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.IsFullyAvailable != b.IsFullyAvailable {
			return a.IsFullyAvailable
		}
		if a.MissingIngredientsCount != b.MissingIngredientsCount {
			return a.MissingIngredientsCount < b.MissingIngredientsCount
		}
		return a.TotalAvailability > b.TotalAvailability
	})

	return result, nil
}

func (s *recipeService) GetRecipeWithProducts(ctx context.Context, id uuid.UUID) (*dto.RecipeWithProducts, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dto.RecipeWithProducts{
		Recipe:             recipeToResponse(rec),
		ProductSuggestions: s.productSuggestionsFor(ctx, rec.Ingredients),
	}, nil
}

// ── Cart-to-recipe matcher ───────────────────────────────────────────────────

func (s *recipeService) SuggestRecipesFromCart(ctx context.Context, productIDs []uuid.UUID) ([]dto.RecipeCartMatch, error) {
	// Empty cart is an empty result, never an error.
	if len(productIDs) == 0 {
		return []dto.RecipeCartMatch{}, nil
	}

	// Cart ingredient set: every ingredient linked to any cart product,
	// regardless of stock.
	links, err := s.piRepo.FindByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	cartIngredients := make(map[uuid.UUID]bool, len(links))
	for _, link := range links {
		cartIngredients[link.IngredientID] = true
	}
	if len(cartIngredients) == 0 {
		return []dto.RecipeCartMatch{}, nil
	}

	recipes, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]dto.RecipeCartMatch, 0, len(recipes))
	for i := range recipes {
		rec := &recipes[i]
		if len(rec.Ingredients) == 0 {
			continue
		}

		requiredIDs := distinctIngredientIDs(rec.Ingredients)
		matched := 0
		for _, id := range requiredIDs {
			if cartIngredients[id] {
				matched++
			}
		}

		// Threshold applies to the unrounded percentage; rounding is for
		// display only.
		pct := float64(matched) / float64(len(requiredIDs)) * 100
		if pct < cartMatchThreshold {
			continue
		}

		suggestions := s.productSuggestionsFor(ctx, rec.Ingredients)

		// Partition by ingredient-set membership, not stock availability.
		split := dto.CartSuggestionSplit{
			InCart: []dto.ProductSuggestion{},
			Needed: []dto.ProductSuggestion{},
		}
		additionalCost := decimal.Zero
		for _, sug := range suggestions {
			id, err := uuid.Parse(sug.IngredientID)
			if err == nil && cartIngredients[id] {
				split.InCart = append(split.InCart, sug)
				continue
			}
			split.Needed = append(split.Needed, sug)
			additionalCost = additionalCost.Add(sug.Product.Price)
		}

		matches = append(matches, dto.RecipeCartMatch{
			Recipe:                  recipeToResponse(rec),
			MatchPercentage:         int(math.Round(pct)),
			IngredientsInCart:       len(split.InCart),
			IngredientsNeeded:       len(split.Needed),
			TotalIngredients:        len(requiredIDs),
			ProductSuggestions:      split,
			EstimatedAdditionalCost: additionalCost,
		})
	}

	// Stable sort: equal percentages keep recipe creation order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercentage > matches[j].MatchPercentage
	})

	return matches, nil
}

// ── Mapping helpers ──────────────────────────────────────────────────────────

func distinctIngredientIDs(ingredients model.RecipeIngredients) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(ingredients))
	seen := make(map[uuid.UUID]bool, len(ingredients))
	for _, ing := range ingredients {
		if seen[ing.IngredientID] {
			continue
		}
		seen[ing.IngredientID] = true
		ids = append(ids, ing.IngredientID)
	}
	return ids
}

func ingredientEntriesToModel(entries []dto.RecipeIngredientEntry) (model.RecipeIngredients, error) {
	ingredients := make(model.RecipeIngredients, 0, len(entries))
	for _, e := range entries {
		id, err := uuid.Parse(e.IngredientID)
		if err != nil {
			return nil, errors.New("invalid ingredient_id: " + e.IngredientID)
		}
		ingredients = append(ingredients, model.RecipeIngredient{
			IngredientID:   id,
			IngredientName: e.IngredientName,
			Quantity:       e.Quantity,
		})
	}
	return ingredients, nil
}

func recipeToResponse(rec *model.Recipe) dto.RecipeResponse {
	ingredients := make([]dto.RecipeIngredientEntry, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		ingredients = append(ingredients, dto.RecipeIngredientEntry{
			IngredientID:   ing.IngredientID.String(),
			IngredientName: ing.IngredientName,
			Quantity:       ing.Quantity,
		})
	}
	return dto.RecipeResponse{
		ID:          rec.ID.String(),
		Name:        rec.Name,
		Description: rec.Description,
		Ingredients: ingredients,
		Steps:       []string(rec.Steps),
		PrepTime:    rec.PrepTime,
		CookTime:    rec.CookTime,
		Servings:    rec.Servings,
		Difficulty:  rec.Difficulty,
		ImageURL:    rec.ImageURL,
		Active:      rec.Active,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}
