package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Price nil = sin precio.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	TypeID      string           `json:"type_id" validate:"max=100"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
	Attributes  json.RawMessage  `json:"attributes"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock solo cambia vía recepciones, traslados y pedidos.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	TypeID      *string          `json:"type_id" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	ClearPrice  bool             `json:"clear_price"`
	Description *string          `json:"description"`
	Attributes  json.RawMessage  `json:"attributes"`
}

// ProductResponse salida de un producto con su stock total.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	TypeID      string           `json:"type_id"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description"`
	Attributes  json.RawMessage  `json:"attributes,omitempty"`
	TotalStock  int64            `json:"total_stock"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	Search string `query:"search"`
	TypeID string `query:"type_id"`
	PageRequest
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
