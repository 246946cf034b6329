package sqlite

import (
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Modelos gorm. Los timestamps los fija la capa de aplicación, no gorm.

type productModel struct {
	ID          string              `gorm:"primaryKey"`
	Name        string              `gorm:"not null;index"`
	TypeID      string              `gorm:"index"`
	Price       decimal.NullDecimal `gorm:"type:text"`
	Description string
	Attributes  []byte
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (productModel) TableName() string { return "products" }

func toProductModel(p *entity.Product) productModel {
	m := productModel{
		ID: p.ID, Name: p.Name, TypeID: p.TypeID, Description: p.Description,
		Attributes: p.Attributes, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	if p.Price != nil {
		m.Price = decimal.NewNullDecimal(*p.Price)
	}
	return m
}

func (m productModel) entity() *entity.Product {
	p := &entity.Product{
		ID: m.ID, Name: m.Name, TypeID: m.TypeID, Description: m.Description,
		Attributes: m.Attributes, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
	if m.Price.Valid {
		price := m.Price.Decimal
		p.Price = &price
	}
	return p
}

type warehouseModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	TypeID    string
	Address   string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (warehouseModel) TableName() string { return "warehouses" }

func toWarehouseModel(w *entity.Warehouse) warehouseModel {
	return warehouseModel{ID: w.ID, Name: w.Name, TypeID: w.TypeID, Address: w.Address,
		CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
}

func (m warehouseModel) entity() *entity.Warehouse {
	return &entity.Warehouse{ID: m.ID, Name: m.Name, TypeID: m.TypeID, Address: m.Address,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

type partnerModel struct {
	ID            string `gorm:"primaryKey"`
	Name          string `gorm:"not null;index"`
	PartnerTypeID string
	ScopeID       string
	TaxID         string
	Director      string
	Phone         string
	Email         string
	LegalAddress  string
	Rating        int       `gorm:"not null;default:0;check:rating >= 0"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func (partnerModel) TableName() string { return "partners" }

func toPartnerModel(p *entity.Partner) partnerModel {
	return partnerModel(*p)
}

func (m partnerModel) entity() *entity.Partner {
	p := entity.Partner(m)
	return &p
}

type stockModel struct {
	ProductID   string    `gorm:"primaryKey"`
	WarehouseID string    `gorm:"primaryKey;index"`
	Quantity    int64     `gorm:"not null;check:quantity > 0"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (stockModel) TableName() string { return "stock" }

func (m stockModel) entity() entity.StockEntry {
	return entity.StockEntry(m)
}

type invoiceModel struct {
	ID          string `gorm:"primaryKey"`
	ProductID   string `gorm:"not null;index"`
	WarehouseID string `gorm:"not null;index"`
	Quantity    int64  `gorm:"not null;check:quantity > 0"`
	ReceivedAt  time.Time
	CreatedBy   string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

func (invoiceModel) TableName() string { return "incoming_invoices" }

type movementModel struct {
	ID              string `gorm:"primaryKey"`
	ProductID       string `gorm:"not null;index"`
	FromWarehouseID string `gorm:"not null;index"`
	ToWarehouseID   string `gorm:"not null;index"`
	Quantity        int64  `gorm:"not null;check:quantity > 0"`
	MovedAt         time.Time
	Status          string `gorm:"not null"`
	EmployeeID      string
	DeliveredAt     *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (movementModel) TableName() string { return "product_movements" }

func toMovementModel(m *entity.ProductMovement) movementModel {
	return movementModel{
		ID: m.ID, ProductID: m.ProductID, FromWarehouseID: m.FromWarehouseID, ToWarehouseID: m.ToWarehouseID,
		Quantity: m.Quantity, MovedAt: m.MovedAt, Status: string(m.Status), EmployeeID: m.EmployeeID,
		DeliveredAt: m.DeliveredAt, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func (m movementModel) entity() *entity.ProductMovement {
	return &entity.ProductMovement{
		ID: m.ID, ProductID: m.ProductID, FromWarehouseID: m.FromWarehouseID, ToWarehouseID: m.ToWarehouseID,
		Quantity: m.Quantity, MovedAt: m.MovedAt, Status: entity.MovementStatus(m.Status), EmployeeID: m.EmployeeID,
		DeliveredAt: m.DeliveredAt, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type orderModel struct {
	ID              string `gorm:"primaryKey"`
	EmployeeID      *string
	PartnerID       string  `gorm:"not null;index"`
	WarehouseID     *string
	Status          string `gorm:"not null"`
	DeliveryID      *string
	PaymentID       *string
	Comment         string
	StockDeductedAt *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (orderModel) TableName() string { return "orders" }

func toOrderModel(o *entity.Order) orderModel {
	return orderModel{
		ID: o.ID, EmployeeID: o.EmployeeID, PartnerID: o.PartnerID, WarehouseID: o.WarehouseID,
		Status: string(o.Status), DeliveryID: o.DeliveryID, PaymentID: o.PaymentID, Comment: o.Comment,
		StockDeductedAt: o.StockDeductedAt, CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func (m orderModel) entity() *entity.Order {
	return &entity.Order{
		ID: m.ID, EmployeeID: m.EmployeeID, PartnerID: m.PartnerID, WarehouseID: m.WarehouseID,
		Status: entity.OrderStatus(m.Status), DeliveryID: m.DeliveryID, PaymentID: m.PaymentID, Comment: m.Comment,
		StockDeductedAt: m.StockDeductedAt, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type orderItemModel struct {
	ID        string          `gorm:"primaryKey"`
	OrderID   string          `gorm:"not null;uniqueIndex:idx_order_items_order_product"`
	ProductID string          `gorm:"not null;uniqueIndex:idx_order_items_order_product"`
	Quantity  int64           `gorm:"not null;check:quantity > 0"`
	Cost      decimal.Decimal `gorm:"type:text;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime:false"`
}

func (orderItemModel) TableName() string { return "order_items" }

func (m orderItemModel) entity() *entity.OrderLineItem {
	it := entity.OrderLineItem(m)
	return &it
}

type paymentModel struct {
	ID        string          `gorm:"primaryKey"`
	OrderID   string          `gorm:"not null;index"`
	Amount    decimal.Decimal `gorm:"type:text;not null"`
	Status    string          `gorm:"not null"`
	PaidAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (paymentModel) TableName() string { return "payments" }

func (m paymentModel) entity() *entity.Payment {
	p := entity.Payment(m)
	return &p
}

type deliveryModel struct {
	ID        string `gorm:"primaryKey"`
	OrderID   string `gorm:"not null;uniqueIndex"`
	Method    string
	Address   string
	Status    string          `gorm:"not null"`
	Cost      decimal.Decimal `gorm:"type:text;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime:false"`
}

func (deliveryModel) TableName() string { return "deliveries" }

func toDeliveryModel(d *entity.Delivery) deliveryModel {
	return deliveryModel{
		ID: d.ID, OrderID: d.OrderID, Method: d.Method, Address: d.Address, Status: string(d.Status),
		Cost: d.Cost, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func (m deliveryModel) entity() *entity.Delivery {
	return &entity.Delivery{
		ID: m.ID, OrderID: m.OrderID, Method: m.Method, Address: m.Address, Status: entity.DeliveryStatus(m.Status),
		Cost: m.Cost, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func allModels() []any {
	return []any{
		&productModel{}, &warehouseModel{}, &partnerModel{}, &stockModel{}, &invoiceModel{},
		&movementModel{}, &orderModel{}, &orderItemModel{}, &paymentModel{}, &deliveryModel{},
	}
}
