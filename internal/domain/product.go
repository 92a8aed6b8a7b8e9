package domain

import (
	"time"
)

type Product struct {
	ProductID string `dynamodbav:"product_id" json:"product_id"`
	Name      string `dynamodbav:"name"       json:"name"`
	// NameLower backs the case-insensitive substring filter on listings.
	NameLower string    `dynamodbav:"name_lower" json:"-"`
	Price     float64   `dynamodbav:"price"      json:"price"`
	Stock     int       `dynamodbav:"stock"      json:"stock"`
	SellerID  string    `dynamodbav:"seller_id"  json:"seller_id,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

type CreateProductRequest struct {
	Name  string  `json:"name"  binding:"required"`
	Price float64 `json:"price" binding:"min=0"`
	Stock int     `json:"stock" binding:"min=0"`
}

// UpdateProductRequest carries a partial update; only non-nil fields are
// applied. A request with no fields set is rejected.
type UpdateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Stock *int     `json:"stock"`
}

func (r UpdateProductRequest) Empty() bool {
	return r.Name == nil && r.Price == nil && r.Stock == nil
}

// ProductFilter narrows catalog listings. Query matches the product name
// case-insensitively; nil price bounds are open.
type ProductFilter struct {
	Query    string
	MinPrice *float64
	MaxPrice *float64
}

type ProductResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	SellerID  string  `json:"seller_id,omitempty"`
}

func NewProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		SellerID:  p.SellerID,
	}
}
