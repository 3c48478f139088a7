package service

import (
	"context"
	"errors"
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	StockMovements(ctx context.Context, id uuid.UUID, limit int) ([]dto.StockMovementResponse, error)
}

type productService struct {
	repo         repository.ProductRepository
	piRepo       repository.ProductIngredientRepository
	movementRepo repository.StockMovementRepository
}

func NewProductService(
	repo repository.ProductRepository,
	piRepo repository.ProductIngredientRepository,
	movementRepo repository.StockMovementRepository,
) ProductService {
	return &productService{repo: repo, piRepo: piRepo, movementRepo: movementRepo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, err := s.repo.FindBySKU(ctx, req.SKU); err == nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicate
	}

	p := &model.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrNotFound
		}
		p.CategoryID = &cid
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.linkIngredients(ctx, p.ID, req.IngredientIDs); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, p.ID)
}

// linkIngredients replaces a product's ingredient links. The list is ordered:
// the first entry is the primary ingredient and earlier entries get a higher
// resolver priority.
func (s *productService) linkIngredients(ctx context.Context, productID uuid.UUID, ingredientIDs []string) error {
	if err := s.piRepo.DeleteForProduct(ctx, productID); err != nil {
		return err
	}
	if len(ingredientIDs) == 0 {
		return nil
	}
	links := make([]model.ProductIngredient, 0, len(ingredientIDs))
	for i, raw := range ingredientIDs {
		iid, err := uuid.Parse(raw)
		if err != nil {
			return ErrNotFound
		}
		links = append(links, model.ProductIngredient{
			ProductID:    productID,
			IngredientID: iid,
			IsPrimary:    i == 0,
			Priority:     len(ingredientIDs) - i,
		})
	}
	return s.piRepo.CreateMany(ctx, links)
}

func (s *productService) FindByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SKU != nil && *req.SKU != p.SKU {
		if existing, err := s.repo.FindBySKU(ctx, *req.SKU); err == nil && existing.ID != uuid.Nil {
			return nil, ErrDuplicate
		}
		p.SKU = *req.SKU
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrNotFound
		}
		p.CategoryID = &cid
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	// Clear relations so Save does not cascade stale preloaded rows.
	p.ProductIngredients = nil
	p.Category = nil

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if req.IngredientIDs != nil {
		if err := s.linkIngredients(ctx, p.ID, req.IngredientIDs); err != nil {
			return nil, err
		}
	}
	return s.FindByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.SoftDelete(ctx, id)
}

// AdjustStock sets the absolute quantity and records a manual_adjustment
// movement with the before/after values.
func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	before := p.StockQuantity
	if err := s.repo.SetStock(ctx, id, req.StockQuantity); err != nil {
		return nil, err
	}
	reason := req.Reason
	if reason == "" {
		reason = "Manual stock adjustment"
	}
	mov := &model.StockMovement{
		ProductID:   id,
		Kind:        "manual_adjustment",
		Quantity:    req.StockQuantity - before,
		StockBefore: before,
		StockAfter:  req.StockQuantity,
		Reason:      reason,
	}
	if err := s.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *productService) StockMovements(ctx context.Context, id uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, ErrNotFound
	}
	movements, err := s.movementRepo.ListByProduct(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		entry := dto.StockMovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Kind:        m.Kind,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if m.OrderID != nil {
			oid := m.OrderID.String()
			entry.OrderID = &oid
		}
		out = append(out, entry)
	}
	return out, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		Ingredients:   make([]dto.ProductIngredientResponse, 0, len(p.ProductIngredients)),
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.CategoryID != nil {
		cid := p.CategoryID.String()
		resp.CategoryID = &cid
	}
	if p.Category != nil {
		resp.CategoryName = &p.Category.Name
	}
	for _, link := range p.ProductIngredients {
		entry := dto.ProductIngredientResponse{
			IngredientID: link.IngredientID.String(),
			IsPrimary:    link.IsPrimary,
			Priority:     link.Priority,
		}
		if link.Ingredient != nil {
			entry.IngredientName = link.Ingredient.Name
		}
		resp.Ingredients = append(resp.Ingredients, entry)
	}
	return resp
}
