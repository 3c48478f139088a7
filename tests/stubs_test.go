package tests

import (
	"context"
	"sort"
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := p
	r.products[cp.ID] = &cp
	return &cp
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindManyByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = false
	return nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) SetStock(_ context.Context, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubProductIngredientRepo mirrors the resolver's SQL ordering in memory:
// stock > 0 and active only, priority DESC then stock DESC.
type stubProductIngredientRepo struct {
	links    []model.ProductIngredient
	products *stubProductRepo
}

func newStubProductIngredientRepo(products *stubProductRepo) *stubProductIngredientRepo {
	return &stubProductIngredientRepo{products: products}
}

func (r *stubProductIngredientRepo) link(productID, ingredientID uuid.UUID, primary bool, priority int) {
	r.links = append(r.links, model.ProductIngredient{
		ID:           uuid.New(),
		ProductID:    productID,
		IngredientID: ingredientID,
		IsPrimary:    primary,
		Priority:     priority,
	})
}

func (r *stubProductIngredientRepo) BestForIngredient(_ context.Context, ingredientID uuid.UUID) (*model.ProductIngredient, error) {
	candidates := make([]model.ProductIngredient, 0)
	for _, l := range r.links {
		if l.IngredientID != ingredientID {
			continue
		}
		p, ok := r.products.products[l.ProductID]
		if !ok || !p.IsActive || p.StockQuantity <= 0 {
			continue
		}
		cp := l
		prod := *p
		cp.Product = &prod
		candidates = append(candidates, cp)
	}
	if len(candidates) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].Product.StockQuantity > candidates[j].Product.StockQuantity
	})
	best := candidates[0]
	return &best, nil
}

func (r *stubProductIngredientRepo) FindByProductIDs(_ context.Context, productIDs []uuid.UUID) ([]model.ProductIngredient, error) {
	wanted := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := make([]model.ProductIngredient, 0)
	for _, l := range r.links {
		if wanted[l.ProductID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubProductIngredientRepo) CreateMany(_ context.Context, links []model.ProductIngredient) error {
	for _, l := range links {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		r.links = append(r.links, l)
	}
	return nil
}

func (r *stubProductIngredientRepo) DeleteForProduct(_ context.Context, productID uuid.UUID) error {
	kept := r.links[:0]
	for _, l := range r.links {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	r.links = kept
	return nil
}

var _ repository.ProductIngredientRepository = (*stubProductIngredientRepo)(nil)

// stubRecipeRepo returns active recipes newest-first like the real query.
type stubRecipeRepo struct {
	recipes []*model.Recipe
}

func newStubRecipeRepo() *stubRecipeRepo { return &stubRecipeRepo{} }

func (r *stubRecipeRepo) seed(rec model.Recipe) *model.Recipe {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.Active = true
	cp := rec
	r.recipes = append(r.recipes, &cp)
	return &cp
}

func (r *stubRecipeRepo) Create(_ context.Context, rec *model.Recipe) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recipes = append(r.recipes, rec)
	return nil
}

func (r *stubRecipeRepo) FindAllActive(_ context.Context) ([]model.Recipe, error) {
	out := make([]model.Recipe, 0, len(r.recipes))
	for i := len(r.recipes) - 1; i >= 0; i-- {
		if r.recipes[i].Active {
			out = append(out, *r.recipes[i])
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Recipe, error) {
	for _, rec := range r.recipes {
		if rec.ID == id && rec.Active {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRecipeRepo) Update(_ context.Context, rec *model.Recipe) error {
	for i, existing := range r.recipes {
		if existing.ID == rec.ID {
			r.recipes[i] = rec
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRecipeRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, rec := range r.recipes {
		if rec.ID == id {
			rec.Active = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.RecipeRepository = (*stubRecipeRepo)(nil)

// stubOrderRepo is an in-memory OrderRepository.
type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	o.CreatedAt = time.Now()
	r.orders[o.ID] = o
	return nil
}

// FindByID returns a copy, mirroring the DB: mutations are invisible until an
// explicit Update.
func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	cp.Items = append([]model.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *stubOrderRepo) FindAll(_ context.Context) ([]model.Order, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	out := make([]model.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) UpdateTx(_ *gorm.DB, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) RevenueTotal(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.orders {
		switch o.Status {
		case model.OrderStatusApproved, model.OrderStatusProcessing,
			model.OrderStatusShipped, model.OrderStatusDelivered:
			total = total.Add(o.TotalAmount)
		}
	}
	return total, nil
}

func (r *stubOrderRepo) FindPendingOlderThan(_ context.Context, cutoff time.Time) ([]model.Order, error) {
	out := make([]model.Order, 0)
	for _, o := range r.orders {
		if o.Status == model.OrderStatusPending && o.CreatedAt.Before(cutoff) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// stubMovementRepo records stock movements in order.
type stubMovementRepo struct {
	movements []*model.StockMovement
}

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{} }

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID uuid.UUID, _ int) ([]model.StockMovement, error) {
	out := make([]model.StockMovement, 0)
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, *m)
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// stubCartRepo is an in-memory CartRepository.
type stubCartRepo struct {
	items    map[uuid.UUID]*model.CartItem
	products *stubProductRepo
}

func newStubCartRepo(products *stubProductRepo) *stubCartRepo {
	return &stubCartRepo{items: make(map[uuid.UUID]*model.CartItem), products: products}
}

func (r *stubCartRepo) attachProduct(item *model.CartItem) *model.CartItem {
	cp := *item
	if p, ok := r.products.products[cp.ProductID]; ok {
		prod := *p
		cp.Product = &prod
	}
	return &cp
}

func (r *stubCartRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	out := make([]model.CartItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, *r.attachProduct(item))
		}
	}
	return out, nil
}

func (r *stubCartRepo) FindItem(_ context.Context, userID, productID uuid.UUID) (*model.CartItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			return r.attachProduct(item), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCartRepo) FindItemByID(_ context.Context, id, userID uuid.UUID) (*model.CartItem, error) {
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.attachProduct(item), nil
}

func (r *stubCartRepo) Save(_ context.Context, item *model.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	cp.Product = nil
	r.items[cp.ID] = &cp
	return nil
}

func (r *stubCartRepo) Delete(_ context.Context, item *model.CartItem) error {
	delete(r.items, item.ID)
	return nil
}

func (r *stubCartRepo) ClearUser(_ context.Context, userID uuid.UUID) error {
	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

var _ repository.CartRepository = (*stubCartRepo)(nil)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
