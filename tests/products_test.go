package tests

import (
	"context"
	"testing"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture() (service.ProductService, *stubProductRepo, *stubProductIngredientRepo, *stubMovementRepo) {
	products := newStubProductRepo()
	links := newStubProductIngredientRepo(products)
	movements := newStubMovementRepo()
	svc := service.NewProductService(products, links, movements)
	return svc, products, links, movements
}

func TestProductCreateLinksIngredientsInOrder(t *testing.T) {
	svc, _, links, _ := newProductFixture()

	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:          "Tomato Passata",
		SKU:           "PAS-001",
		Price:         price("3.20"),
		StockQuantity: 12,
		IngredientIDs: []string{first.String(), second.String(), third.String()},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)

	require.Len(t, links.links, 3)

	// First listed ingredient is primary and carries the highest priority.
	assert.Equal(t, first, links.links[0].IngredientID)
	assert.True(t, links.links[0].IsPrimary)
	assert.Equal(t, 3, links.links[0].Priority)

	assert.False(t, links.links[1].IsPrimary)
	assert.Equal(t, 2, links.links[1].Priority)
	assert.Equal(t, 1, links.links[2].Priority)
}

func TestProductCreateRejectsDuplicateSKU(t *testing.T) {
	svc, products, _, _ := newProductFixture()

	products.seed(model.Product{Name: "Olive Oil", SKU: "OIL-001", Price: price("8.00"), StockQuantity: 4, IsActive: true})

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Olive Oil Extra",
		SKU:   "OIL-001",
		Price: price("9.50"),
	})
	assert.ErrorIs(t, err, service.ErrDuplicate)
}

func TestProductUpdateRejectsDuplicateSKU(t *testing.T) {
	svc, products, _, _ := newProductFixture()
	ctx := context.Background()

	products.seed(model.Product{Name: "Olive Oil", SKU: "OIL-001", Price: price("8.00"), IsActive: true})
	target := products.seed(model.Product{Name: "Sunflower Oil", SKU: "OIL-002", Price: price("4.00"), IsActive: true})

	taken := "OIL-001"
	_, err := svc.Update(ctx, target.ID, dto.UpdateProductRequest{SKU: &taken})
	assert.ErrorIs(t, err, service.ErrDuplicate)

	// Re-sending the product's own SKU is not a conflict.
	own := "OIL-002"
	name := "Sunflower Oil 1L"
	resp, err := svc.Update(ctx, target.ID, dto.UpdateProductRequest{SKU: &own, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Sunflower Oil 1L", resp.Name)
}

func TestProductUpdateReplacesIngredientLinks(t *testing.T) {
	svc, products, links, _ := newProductFixture()
	ctx := context.Background()

	p := products.seed(model.Product{Name: "Pasta Sauce", SKU: "SAU-001", Price: price("5.00"), IsActive: true})
	oldIngredient := uuid.New()
	links.link(p.ID, oldIngredient, true, 1)

	newIngredient := uuid.New()
	_, err := svc.Update(ctx, p.ID, dto.UpdateProductRequest{
		IngredientIDs: []string{newIngredient.String()},
	})
	require.NoError(t, err)

	require.Len(t, links.links, 1)
	assert.Equal(t, newIngredient, links.links[0].IngredientID)
	assert.True(t, links.links[0].IsPrimary)
}

func TestProductAdjustStockRecordsMovement(t *testing.T) {
	svc, products, _, movements := newProductFixture()
	ctx := context.Background()

	p := products.seed(model.Product{Name: "Basmati Rice", SKU: "RIC-001", Price: price("6.00"), StockQuantity: 8, IsActive: true})

	resp, err := svc.AdjustStock(ctx, p.ID, dto.AdjustStockRequest{StockQuantity: 20, Reason: "Weekly restock"})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.StockQuantity)

	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, "manual_adjustment", mov.Kind)
	assert.Equal(t, 12, mov.Quantity)
	assert.Equal(t, 8, mov.StockBefore)
	assert.Equal(t, 20, mov.StockAfter)
	assert.Equal(t, "Weekly restock", mov.Reason)
	assert.Nil(t, mov.OrderID)

	// Shrinking stock records a negative delta and a default reason.
	_, err = svc.AdjustStock(ctx, p.ID, dto.AdjustStockRequest{StockQuantity: 15})
	require.NoError(t, err)
	require.Len(t, movements.movements, 2)
	assert.Equal(t, -5, movements.movements[1].Quantity)
	assert.Equal(t, "Manual stock adjustment", movements.movements[1].Reason)
}

func TestProductDeleteDeactivates(t *testing.T) {
	svc, products, _, _ := newProductFixture()
	ctx := context.Background()

	p := products.seed(model.Product{Name: "Oat Milk", SKU: "OAT-001", Price: price("2.90"), StockQuantity: 6, IsActive: true})

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.False(t, p.IsActive)

	err := svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestProductStockMovementsRequiresProduct(t *testing.T) {
	svc, products, _, movements := newProductFixture()
	ctx := context.Background()

	p := products.seed(model.Product{Name: "Honey", SKU: "HON-001", Price: price("7.50"), StockQuantity: 3, IsActive: true})
	movements.CreateTx(nil, &model.StockMovement{ProductID: p.ID, Kind: "manual_adjustment", Quantity: 3, StockAfter: 3})

	_, err := svc.StockMovements(ctx, uuid.New(), 50)
	assert.ErrorIs(t, err, service.ErrNotFound)

	list, err := svc.StockMovements(ctx, p.ID, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID.String(), list[0].ProductID)
}
