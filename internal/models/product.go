package models

import (
	"time"
)

type Product struct {
	ID          int64     `json:"id" db:"id"`
	CategoryID  int64     `json:"categoryId" db:"category_id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	IsDigital   bool      `json:"isDigital" db:"is_digital"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Stock       *Stock    `json:"stock,omitempty" db:"-"` // populated by nested-create and detail reads
}

// ProductInput is the creation payload for /products. StockQuantity seeds
// the product's stock row; nil means 0.
type ProductInput struct {
	CategoryID    int64   `json:"categoryId"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Description   string  `json:"description"`
	IsDigital     bool    `json:"isDigital"`
	IsActive      bool    `json:"isActive"`
	Price         float64 `json:"price"`
	StockQuantity *int    `json:"stockQuantity"`
}

func (in *ProductInput) Product() *Product {
	return &Product{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		IsDigital:   in.IsDigital,
		IsActive:    in.IsActive,
		Price:       in.Price,
	}
}

// Quantity returns the stock quantity to seed, defaulting to 0.
func (in *ProductInput) Quantity() int {
	if in.StockQuantity == nil {
		return 0
	}
	return *in.StockQuantity
}
