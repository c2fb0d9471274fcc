package inventory

import (
	"bytes"
	"encoding/json"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusDiscontinued Status = "discontinued"
	StatusOutOfStock   Status = "out_of_stock"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDiscontinued, StatusOutOfStock:
		return true
	}
	return false
}

type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
	CategoryID  int     `json:"category_id"`
	Status      Status  `json:"status"`
	Description *string `json:"description"`
}

// Optional is a field of a partial update. It tells apart a field that was
// left out (Set=false), one sent as null (Set=true, Null=true) and one sent
// with a value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, which is
// what makes Set meaningful.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// Ptr returns nil for an explicit null, otherwise a pointer to a copy of the value.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

type CreateCategoryCommand struct {
	Name        string
	Description *string
}

type UpdateCategoryCommand struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

func (c UpdateCategoryCommand) apply(cat *Category) {
	if c.Name.Set {
		cat.Name = c.Name.Value
	}
	if c.Description.Set {
		cat.Description = c.Description.Ptr()
	}
}

type CreateProductCommand struct {
	Name        string
	SKU         string
	Stock       int
	Price       float64
	CategoryID  int
	Status      Status
	Description *string
}

type UpdateProductCommand struct {
	Name        Optional[string]  `json:"name"`
	SKU         Optional[string]  `json:"sku"`
	Stock       Optional[int]     `json:"stock"`
	Price       Optional[float64] `json:"price"`
	CategoryID  Optional[int]     `json:"category_id"`
	Status      Optional[Status]  `json:"status"`
	Description Optional[string]  `json:"description"`
}

func (c UpdateProductCommand) apply(p *Product) {
	if c.Name.Set {
		p.Name = c.Name.Value
	}
	if c.SKU.Set {
		p.SKU = c.SKU.Value
	}
	if c.Stock.Set {
		p.Stock = c.Stock.Value
	}
	if c.Price.Set {
		p.Price = c.Price.Value
	}
	if c.CategoryID.Set {
		p.CategoryID = c.CategoryID.Value
	}
	if c.Status.Set {
		p.Status = c.Status.Value
	}
	if c.Description.Set {
		p.Description = c.Description.Ptr()
	}
}

// clone detaches the description so callers cannot write through to the store.
func (c Category) clone() Category {
	c.Description = cloneString(c.Description)
	return c
}

func (p Product) clone() Product {
	p.Description = cloneString(p.Description)
	return p
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
