package service

import (
	"context"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService interface {
	Get(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error)
	Add(ctx context.Context, userID uuid.UUID, req dto.AddToCartRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*dto.CartResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	// ProductIDs returns the product ids currently in the user's cart,
	// the shape the recipe suggester consumes.
	ProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{repo: repo, productRepo: productRepo}
}

func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error) {
	items, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartToResponse(items), nil
}

// Add merges quantities when the product is already in the cart. The final
// quantity is capped against current stock so a cart never promises more than
// the shelf holds.
func (s *cartService) Add(ctx context.Context, userID uuid.UUID, req dto.AddToCartRequest) (*dto.CartResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.productRepo.FindByID(ctx, pid)
	if err != nil || !p.IsActive {
		return nil, ErrNotFound
	}

	quantity := req.Quantity
	if existing, err := s.repo.FindItem(ctx, userID, pid); err == nil && existing.ID != uuid.Nil {
		quantity += existing.Quantity
	}
	if quantity > p.StockQuantity {
		return nil, &InsufficientStockError{ProductName: p.Name, Available: p.StockQuantity}
	}

	item, err := s.repo.FindItem(ctx, userID, pid)
	if err != nil || item.ID == uuid.Nil {
		item = &model.CartItem{UserID: userID, ProductID: pid}
	}
	item.Quantity = quantity
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	item, err := s.repo.FindItemByID(ctx, itemID, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if item.Product != nil && req.Quantity > item.Product.StockQuantity {
		return nil, &InsufficientStockError{ProductName: item.Product.Name, Available: item.Product.StockQuantity}
	}
	item.Quantity = req.Quantity
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*dto.CartResponse, error) {
	item, err := s.repo.FindItemByID(ctx, itemID, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.repo.Delete(ctx, item); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.repo.ClearUser(ctx, userID)
}

func (s *cartService) ProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	items, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids, nil
}

func cartToResponse(items []model.CartItem) *dto.CartResponse {
	resp := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		entry := dto.CartItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			entry.ProductName = item.Product.Name
			entry.UnitPrice = item.Product.Price
			entry.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			entry.ImageURL = item.Product.ImageURL
			total = total.Add(entry.Subtotal)
		}
		resp.Summary.TotalItems += item.Quantity
		resp.Items = append(resp.Items, entry)
	}
	resp.Summary.TotalPrice = total
	return resp
}
