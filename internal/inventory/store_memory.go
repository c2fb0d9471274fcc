package inventory

import (
	"context"
	"sort"
	"sync"
)

// MemStore keeps categories and products in maps guarded by one mutex. Every
// method holds the lock for its whole body, so each call is atomic and
// concurrent writers to the same entity resolve as last-write-wins.
type MemStore struct {
	mu sync.RWMutex

	categories map[int]Category
	products   map[int]Product

	nextCategoryID int
	nextProductID  int
}

// NewMemStore returns a store preloaded with the reference dataset.
func NewMemStore() *MemStore {
	return NewMemStoreSeeded(true)
}

// NewMemStoreSeeded returns a store that is preloaded only when seed is set.
func NewMemStoreSeeded(seed bool) *MemStore {
	s := NewEmptyMemStore()
	if seed {
		s.seed()
	}
	return s
}

func NewEmptyMemStore() *MemStore {
	return &MemStore{
		categories:     map[int]Category{},
		products:       map[int]Product{},
		nextCategoryID: 1,
		nextProductID:  1,
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListCategories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c.clone())
	}

	// Ids are handed out in increasing order, so id order is insertion order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetCategory(ctx context.Context, id int) (Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	return c.clone(), ok, nil
}

func (s *MemStore) CreateCategory(ctx context.Context, cmd CreateCategoryCommand) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertCategory(cmd).clone(), nil
}

func (s *MemStore) UpdateCategory(ctx context.Context, id int, cmd UpdateCategoryCommand) (Category, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return Category{}, false, nil
	}

	cmd.apply(&c)
	s.categories[id] = c
	return c.clone(), true, nil
}

// DeleteCategory leaves products that reference the category untouched.
func (s *MemStore) DeleteCategory(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, nil
}

func (s *MemStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(Product) bool { return true }), nil
}

func (s *MemStore) GetProduct(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p.clone(), ok, nil
}

// ListProductsByCategory does not check that the category exists; an unknown
// id simply matches nothing.
func (s *MemStore) ListProductsByCategory(ctx context.Context, categoryID int) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(p Product) bool { return p.CategoryID == categoryID }), nil
}

func (s *MemStore) CreateProduct(ctx context.Context, cmd CreateProductCommand) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[cmd.CategoryID]; !ok {
		return Product{}, ErrInvalidCategory
	}
	return s.insertProduct(cmd).clone(), nil
}

func (s *MemStore) UpdateProduct(ctx context.Context, id int, cmd UpdateProductCommand) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	if cmd.CategoryID.Set {
		if _, ok := s.categories[cmd.CategoryID.Value]; !ok {
			return Product{}, ErrInvalidCategory
		}
	}

	cmd.apply(&p)
	s.products[id] = p
	return p.clone(), nil
}

func (s *MemStore) DeleteProduct(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

// Counts reports how many categories and products are stored.
func (s *MemStore) Counts() (categories, products int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.categories), len(s.products)
}

func (s *MemStore) insertCategory(cmd CreateCategoryCommand) Category {
	c := Category{
		ID:          s.nextCategoryID,
		Name:        cmd.Name,
		Description: cloneString(cmd.Description),
	}
	s.categories[c.ID] = c
	s.nextCategoryID++
	return c
}

func (s *MemStore) insertProduct(cmd CreateProductCommand) Product {
	p := Product{
		ID:          s.nextProductID,
		Name:        cmd.Name,
		SKU:         cmd.SKU,
		Stock:       cmd.Stock,
		Price:       cmd.Price,
		CategoryID:  cmd.CategoryID,
		Status:      cmd.Status,
		Description: cloneString(cmd.Description),
	}
	s.products[p.ID] = p
	s.nextProductID++
	return p
}

func (s *MemStore) collectProducts(keep func(Product) bool) []Product {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p.clone())
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
