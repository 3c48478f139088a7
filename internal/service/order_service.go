package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"
	"github.com/AbyssT34/Ecommerce-Shop/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService owns the order lifecycle, including the stock reconciliation
// on approval and rejection.
type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	FindAll(ctx context.Context) ([]dto.OrderResponse, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error)
	// UpdateStatus applies an administrative status change. Stock is touched
	// on exactly two transitions: pending→approved deducts it inside a single
	// locked transaction, approved→rejected restores it. Every other change
	// only updates the status field.
	UpdateStatus(ctx context.Context, id, adminID uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	// Cancel is the self-service path: owner only, pending only, no stock
	// side effect (stock was never deducted for a pending order).
	Cancel(ctx context.Context, id, userID uuid.UUID) (*dto.OrderResponse, error)
	Stats(ctx context.Context) (*dto.OrderStatsResponse, error)
}

type orderService struct {
	repo         repository.OrderRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	cart         CartService
	dispatcher   *worker.Dispatcher
}

func NewOrderService(
	repo repository.OrderRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	cart CartService,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{
		repo:         repo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		cart:         cart,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ───────────────────────────────────────────────────────────────────
// Stock is checked but NOT deducted at creation — deduction happens at
// approval. Price, name and SKU are snapshotted so later product edits never
// change this order.

func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	totalAmount := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, ErrNotFound
		}
		if p.StockQuantity < item.Quantity {
			return nil, &InsufficientStockError{ProductName: p.Name, Available: p.StockQuantity}
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(subtotal)
		items = append(items, model.OrderItem{
			ProductID:   p.ID,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
			Subtotal:    subtotal,
			ProductName: p.Name,
			ProductSKU:  p.SKU,
		})
	}

	order := &model.Order{
		UserID:          userID,
		Status:          model.OrderStatusPending,
		TotalAmount:     totalAmount,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Notes:           req.Notes,
		Items:           items,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	// Best effort — a stale cart is an inconvenience, not a failed order.
	if s.cart != nil {
		_ = s.cart.Clear(ctx, userID)
	}

	return s.FindByID(ctx, order.ID)
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *orderService) FindByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *orderService) FindAll(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ordersToResponses(orders), nil
}

func (s *orderService) FindByUser(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ordersToResponses(orders), nil
}

// ── Status transitions ───────────────────────────────────────────────────────

func (s *orderService) UpdateStatus(ctx context.Context, id, adminID uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !model.ValidOrderStatus(req.Status) {
		return nil, ErrInvalidTransition
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	previous := order.Status
	order.Status = req.Status
	if req.AdminNotes != nil {
		order.AdminNotes = req.AdminNotes
	}

	switch {
	case req.Status == model.OrderStatusApproved && previous == model.OrderStatusPending:
		if err := s.approve(ctx, order, adminID); err != nil {
			return nil, err
		}
	case req.Status == model.OrderStatusRejected && previous == model.OrderStatusApproved:
		if err := s.reject(ctx, order); err != nil {
			return nil, err
		}
	default:
		// Administrative change with no stock side effect.
		if err := s.repo.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	s.notifyStatusChange(ctx, order)

	return s.FindByID(ctx, id)
}

// approve deducts stock for every line item inside one transaction. All rows
// are locked and validated before anything is mutated, so a failing item
// leaves every stock value untouched.
func (s *orderService) approve(ctx context.Context, order *model.Order, adminID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		type locked struct {
			product *model.Product
			qty     int
		}

		// Pass 1: lock and validate every product row.
		validated := make([]locked, 0, len(order.Items))
		for _, item := range order.Items {
			p, err := s.productRepo.FindByIDForUpdateTx(tx, item.ProductID)
			if err != nil {
				// Product physically gone — nothing to deduct for this line.
				continue
			}
			if p.StockQuantity < item.Quantity {
				return &InsufficientStockError{ProductName: p.Name, Available: p.StockQuantity}
			}
			validated = append(validated, locked{product: p, qty: item.Quantity})
		}

		// Pass 2: deduct and record movements.
		for _, l := range validated {
			if err := s.productRepo.AdjustStockTx(tx, l.product.ID, -l.qty); err != nil {
				return err
			}
			orderRef := order.ID
			mov := &model.StockMovement{
				ProductID:   l.product.ID,
				Kind:        "order_approval",
				Quantity:    -l.qty,
				StockBefore: l.product.StockQuantity,
				StockAfter:  l.product.StockQuantity - l.qty,
				Reason:      fmt.Sprintf("Order %s approved", order.ID),
				OrderID:     &orderRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		now := time.Now()
		order.ApprovedAt = &now
		order.ApprovedBy = &adminID
		return s.repo.UpdateTx(tx, order)
	})
}

// reject restores stock for every line item. No stock ceiling check — the
// increments mirror exactly what approval deducted.
func (s *orderService) reject(ctx context.Context, order *model.Order) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range order.Items {
			p, err := s.productRepo.FindByIDForUpdateTx(tx, item.ProductID)
			if err != nil {
				continue
			}
			if err := s.productRepo.AdjustStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			orderRef := order.ID
			mov := &model.StockMovement{
				ProductID:   item.ProductID,
				Kind:        "order_rejection",
				Quantity:    item.Quantity,
				StockBefore: p.StockQuantity,
				StockAfter:  p.StockQuantity + item.Quantity,
				Reason:      fmt.Sprintf("Order %s rejected", order.ID),
				OrderID:     &orderRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.UpdateTx(tx, order)
	})
}

func (s *orderService) Cancel(ctx context.Context, id, userID uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if order.Status != model.OrderStatusPending {
		return nil, ErrInvalidTransition
	}

	order.Status = model.OrderStatusCancelled
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// notifyStatusChange enqueues an async customer notification for approval and
// rejection. Fire and forget — notification failure never fails the transition.
func (s *orderService) notifyStatusChange(ctx context.Context, order *model.Order) {
	if s.dispatcher == nil {
		return
	}
	if order.Status != model.OrderStatusApproved && order.Status != model.OrderStatusRejected {
		return
	}
	email := ""
	if order.User != nil {
		email = order.User.Email
	}
	_ = s.dispatcher.EnqueueOrderNotification(ctx, worker.OrderNotificationPayload{
		OrderID: order.ID.String(),
		Status:  order.Status,
		ToEmail: email,
	})
}

// ── Stats ────────────────────────────────────────────────────────────────────

func (s *orderService) Stats(ctx context.Context) (*dto.OrderStatsResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.repo.CountByStatus(ctx, model.OrderStatusApproved)
	if err != nil {
		return nil, err
	}
	delivered, err := s.repo.CountByStatus(ctx, model.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.RevenueTotal(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatsResponse{
		TotalOrders:     total,
		PendingOrders:   pending,
		ApprovedOrders:  approved,
		DeliveredOrders: delivered,
		TotalRevenue:    revenue,
	}, nil
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func orderToResponse(o *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	var approvedAt *string
	if o.ApprovedAt != nil {
		ts := o.ApprovedAt.UTC().Format(time.RFC3339)
		approvedAt = &ts
	}
	var approvedBy *string
	if o.ApprovedBy != nil {
		id := o.ApprovedBy.String()
		approvedBy = &id
	}
	return dto.OrderResponse{
		ID:              o.ID.String(),
		UserID:          o.UserID.String(),
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		PhoneNumber:     o.PhoneNumber,
		Notes:           o.Notes,
		AdminNotes:      o.AdminNotes,
		ApprovedAt:      approvedAt,
		ApprovedBy:      approvedBy,
		Items:           items,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ordersToResponses(orders []model.Order) []dto.OrderResponse {
	result := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, orderToResponse(&orders[i]))
	}
	return result
}
