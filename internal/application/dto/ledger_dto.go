package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveInvoiceRequest body de POST /api/invoices.
type ReceiveInvoiceRequest struct {
	ProductID   string     `json:"product_id" validate:"required"`
	WarehouseID string     `json:"warehouse_id" validate:"required"`
	Quantity    int64      `json:"quantity"`
	ReceivedAt  *time.Time `json:"received_at"`
}

// InvoiceResponse salida de una recepción.
type InvoiceResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	ReceivedAt  time.Time `json:"received_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMovementRequest body de POST /api/movements. Status vacío = in_transit.
type CreateMovementRequest struct {
	ProductID       string     `json:"product_id" validate:"required"`
	FromWarehouseID string     `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string     `json:"to_warehouse_id" validate:"required"`
	Quantity        int64      `json:"quantity"`
	MovedAt         *time.Time `json:"moved_at"`
	Status          string     `json:"status" validate:"omitempty,oneof=in_transit delivered cancelled"`
}

// UpdateStatusRequest body de los PATCH .../status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// MovementResponse salida de un traslado.
type MovementResponse struct {
	ID              string     `json:"id"`
	ProductID       string     `json:"product_id"`
	FromWarehouseID string     `json:"from_warehouse_id"`
	ToWarehouseID   string     `json:"to_warehouse_id"`
	Quantity        int64      `json:"quantity"`
	MovedAt         time.Time  `json:"moved_at"`
	Status          string     `json:"status"`
	EmployeeID      string     `json:"employee_id,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StatusChangeResponse resultado de un cambio de estado; changed=false si ya estaba en ese estado.
type StatusChangeResponse struct {
	Changed  bool              `json:"changed"`
	Movement *MovementResponse `json:"movement,omitempty"`
	Order    *OrderResponse    `json:"order,omitempty"`
}

// CreateOrderRequest body de POST /api/orders.
type CreateOrderRequest struct {
	PartnerID   string  `json:"partner_id" validate:"required"`
	WarehouseID *string `json:"warehouse_id"`
	Comment     string  `json:"comment" validate:"max=1000"`
	Status      string  `json:"status" validate:"omitempty,oneof=processing accepted"`
}

// AddLineItemRequest body de POST /api/orders/:id/items.
type AddLineItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string     `json:"id"`
	PartnerID       string     `json:"partner_id"`
	EmployeeID      *string    `json:"employee_id,omitempty"`
	WarehouseID     *string    `json:"warehouse_id,omitempty"`
	DeliveryID      *string    `json:"delivery_id,omitempty"`
	PaymentID       *string    `json:"payment_id,omitempty"`
	Status          string     `json:"status"`
	Comment         string     `json:"comment"`
	StockDeductedAt *time.Time `json:"stock_deducted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LineItemResponse salida de una línea de pedido.
type LineItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
	PaidAt *time.Time      `json:"paid_at,omitempty"`
}

// SetDeliveryRequest body de PUT /api/orders/:id/delivery. Status vacío = pending.
type SetDeliveryRequest struct {
	Method  string          `json:"method" validate:"required,max=200"`
	Address string          `json:"address" validate:"required,max=500"`
	Status  string          `json:"status" validate:"omitempty,oneof=pending shipped delivered cancelled"`
	Cost    decimal.Decimal `json:"cost"`
}

// DeliveryResponse salida de la entrega de un pedido.
type DeliveryResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	Method    string          `json:"method"`
	Address   string          `json:"address"`
	Status    string          `json:"status"`
	Cost      decimal.Decimal `json:"cost"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OrderDetailResponse pedido con sus líneas, pago y entrega.
type OrderDetailResponse struct {
	Order    OrderResponse      `json:"order"`
	Items    []LineItemResponse `json:"items"`
	Payment  *PaymentResponse   `json:"payment,omitempty"`
	Delivery *DeliveryResponse  `json:"delivery,omitempty"`
}

// LineItemResultResponse resultado de agregar una línea.
type LineItemResultResponse struct {
	Item    LineItemResponse `json:"item"`
	Payment *PaymentResponse `json:"payment"`
}

// StockEntryResponse cantidad de un producto en una bodega.
type StockEntryResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

// ProductStockResponse stock de un producto por bodega más el total.
type ProductStockResponse struct {
	ProductID string               `json:"product_id"`
	Total     int64                `json:"total"`
	Entries   []StockEntryResponse `json:"entries"`
}

// WarehouseStockResponse stock de una bodega.
type WarehouseStockResponse struct {
	WarehouseID string               `json:"warehouse_id"`
	Entries     []StockEntryResponse `json:"entries"`
}

// QuantityResponse cantidad puntual de GET /api/stock.
type QuantityResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}
