package tests

import (
	"context"
	"testing"

	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func recipeWith(name string, ingredientIDs ...uuid.UUID) model.Recipe {
	ingredients := make(model.RecipeIngredients, 0, len(ingredientIDs))
	for i, id := range ingredientIDs {
		ingredients = append(ingredients, model.RecipeIngredient{
			IngredientID:   id,
			IngredientName: name + "-ing-" + string(rune('a'+i)),
		})
	}
	return model.Recipe{
		Name:        name,
		Ingredients: ingredients,
		Steps:       model.RecipeSteps{"step 1"},
		Servings:    2,
	}
}

func TestResolverPrefersHigherPriorityThenDeeperStock(t *testing.T) {
	products := newStubProductRepo()
	links := newStubProductIngredientRepo(products)
	recipes := newStubRecipeRepo()
	svc := service.NewRecipeService(recipes, links)

	tomato := uuid.New()

	cheap := products.seed(model.Product{Name: "Budget Tomatoes", SKU: "TOM-1", Price: price("1.50"), StockQuantity: 100, IsActive: true})
	premium := products.seed(model.Product{Name: "Vine Tomatoes", SKU: "TOM-2", Price: price("3.20"), StockQuantity: 5, IsActive: true})
	links.link(cheap.ID, tomato, true, 1)
	links.link(premium.ID, tomato, true, 2)

	rec := recipes.seed(recipeWith("Tomato Soup", tomato))

	resolved, err := svc.GetRecipeWithProducts(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Len(t, resolved.ProductSuggestions, 1)
	// Priority 2 beats priority 1 despite far lower stock.
	assert.Equal(t, premium.ID.String(), resolved.ProductSuggestions[0].Product.ID)

	// Drain the premium product: resolver falls back to the deeper shelf.
	premium.StockQuantity = 0
	resolved, err = svc.GetRecipeWithProducts(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Len(t, resolved.ProductSuggestions, 1)
	assert.Equal(t, cheap.ID.String(), resolved.ProductSuggestions[0].Product.ID)
}

func TestResolverEqualPriorityBreaksTiesOnStock(t *testing.T) {
	products := newStubProductRepo()
	links := newStubProductIngredientRepo(products)
	recipes := newStubRecipeRepo()
	svc := service.NewRecipeService(recipes, links)

	flour := uuid.New()
	small := products.seed(model.Product{Name: "Flour 1kg", SKU: "FL-1", Price: price("2.00"), StockQuantity: 3, IsActive: true})
	big := products.seed(model.Product{Name: "Flour 5kg", SKU: "FL-5", Price: price("8.00"), StockQuantity: 40, IsActive: true})
	links.link(small.ID, flour, true, 1)
	links.link(big.ID, flour, true, 1)

	rec := recipes.seed(recipeWith("Bread", flour))

	for i := 0; i < 3; i++ {
		resolved, err := svc.GetRecipeWithProducts(context.Background(), rec.ID)
		require.NoError(t, err)
		require.Len(t, resolved.ProductSuggestions, 1)
		assert.Equal(t, big.ID.String(), resolved.ProductSuggestions[0].Product.ID,
			"same inputs must resolve to the same product on every call")
	}
}

func TestResolverSkipsInactiveAndOutOfStock(t *testing.T) {
	products := newStubProductRepo()
	links := newStubProductIngredientRepo(products)
	recipes := newStubRecipeRepo()
	svc := service.NewRecipeService(recipes, links)

	saffron := uuid.New()
	gone := products.seed(model.Product{Name: "Saffron", SKU: "SAF-1", Price: price("9.99"), StockQuantity: 0, IsActive: true})
	hidden := products.seed(model.Product{Name: "Saffron Deluxe", SKU: "SAF-2", Price: price("12.99"), StockQuantity: 10, IsActive: false})
	links.link(gone.ID, saffron, true, 5)
	links.link(hidden.ID, saffron, true, 5)

	rec := recipes.seed(recipeWith("Paella", saffron))

	resolved, err := svc.GetRecipeWithProducts(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Empty(t, resolved.ProductSuggestions)
}

func TestAvailabilityRankingThreeKeys(t *testing.T) {
	products := newStubProductRepo()
	links := newStubProductIngredientRepo(products)
	recipes := newStubRecipeRepo()
	svc := service.NewRecipeService(recipes, links)

	ingA, ingB, ingC, ingMissing := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	pa := products.seed(model.Product{Name: "A", SKU: "A", Price: price("1.00"), StockQuantity: 10, IsActive: true})
	pb := products.seed(model.Product{Name: "B", SKU: "B", Price: price("1.00"), StockQuantity: 50, IsActive: true})
	pc := products.seed(model.Product{Name: "C", SKU: "C", Price: price("1.00"), StockQuantity: 5, IsActive: true})
	links.link(pa.ID, ingA, true, 1)
	links.link(pb.ID, ingB, true, 1)
	links.link(pc.ID, ingC, true, 1)

	// Fully available, total stock 10.
	lowStock := recipes.seed(recipeWith("Low Stock Full", ingA))
	// Fully available, total stock 60.
	highStock := recipes.seed(recipeWith("High Stock Full", ingA, ingB))
	// One missing ingredient.
	oneMissing := recipes.seed(recipeWith("One Missing", ingA, ingMissing))
	// Two missing ingredients.
	twoMissing := recipes.seed(recipeWith("Two Missing", ingMissing, uuid.New(), ingC))

	result, err := svc.GetAvailableRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 4)

	assert.Equal(t, highStock.Name, result[0].Recipe.Name)
	assert.Equal(t, lowStock.Name, result[1].Recipe.Name)
	assert.Equal(t, oneMissing.Name, result[2].Recipe.Name)
	assert.Equal(t, twoMissing.Name, result[3].Recipe.Name)

	assert.True(t, result[0].IsFullyAvailable)
	assert.Equal(t, 60, result[0].TotalAvailability)
	assert.False(t, result[2].IsFullyAvailable)
	assert.Equal(t, 1, result[2].MissingIngredientsCount)
	assert.Equal(t, 2, result[3].MissingIngredientsCount)
}

func TestAvailabilityAnnotatesEveryIngredient(t *testing.T) {
	products := newStubProductRepo()
	links := newStubProductIngredientRepo(products)
	recipes := newStubRecipeRepo()
	svc := service.NewRecipeService(recipes, links)

	ingOk, ingGone := uuid.New(), uuid.New()
	p := products.seed(model.Product{Name: "Rice", SKU: "R-1", Price: price("2.50"), StockQuantity: 8, IsActive: true})
	links.link(p.ID, ingOk, true, 1)

	recipes.seed(recipeWith("Risotto", ingOk, ingGone))

	result, err := svc.GetAvailableRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0].Ingredients, 2)

	byID := map[string]bool{}
	for _, ing := range result[0].Ingredients {
		byID[ing.IngredientID] = ing.IsAvailable
	}
	assert.True(t, byID[ingOk.String()])
	assert.False(t, byID[ingGone.String()])
}

func TestAvailabilitySkipsRecipesWithoutIngredients(t *testing.T) {
	products := newStubProductRepo()
	links := newStubProductIngredientRepo(products)
	recipes := newStubRecipeRepo()
	svc := service.NewRecipeService(recipes, links)

	recipes.seed(model.Recipe{Name: "Empty", Ingredients: model.RecipeIngredients{}, Steps: model.RecipeSteps{"n/a"}, Servings: 1})

	result, err := svc.GetAvailableRecipes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestAvailabilityRankingIsStableAcrossCalls(t *testing.T) {
	products := newStubProductRepo()
	links := newStubProductIngredientRepo(products)
	recipes := newStubRecipeRepo()
	svc := service.NewRecipeService(recipes, links)

	ing := uuid.New()
	p := products.seed(model.Product{Name: "Eggs", SKU: "E-1", Price: price("3.00"), StockQuantity: 12, IsActive: true})
	links.link(p.ID, ing, true, 1)

	// Identical availability metadata — order must still be deterministic.
	recipes.seed(recipeWith("Omelette", ing))
	recipes.seed(recipeWith("Scramble", ing))
	recipes.seed(recipeWith("Frittata", ing))

	first, err := svc.GetAvailableRecipes(context.Background())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.GetAvailableRecipes(context.Background())
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Recipe.ID, again[j].Recipe.ID)
		}
	}
}
