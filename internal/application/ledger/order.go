package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/inventory"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CreateOrderInput datos de un pedido nuevo. Status vacío = processing.
type CreateOrderInput struct {
	PartnerID   string
	EmployeeID  *string
	WarehouseID *string
	Comment     string
	Status      entity.OrderStatus
}

// DeliveryInput datos de la entrega de un pedido. Status vacío = pending.
type DeliveryInput struct {
	Method  string
	Address string
	Status  entity.DeliveryStatus
	Cost    decimal.Decimal
}

// LineItemResult línea afectada y el pago recalculado del pedido.
type LineItemResult struct {
	Item    *entity.OrderLineItem
	Payment *entity.Payment
}

// OrderStatusResult resultado de un cambio de estado del pedido.
type OrderStatusResult struct {
	Order   *entity.Order
	Changed bool
}

// OrderDetail pedido con sus líneas, su pago y su entrega (nil si aún no tiene).
type OrderDetail struct {
	Order    *entity.Order
	Items    []*entity.OrderLineItem
	Payment  *entity.Payment
	Delivery *entity.Delivery
}

// OrderProcessor administra pedidos: líneas, pago y descuento de stock al aprobar.
type OrderProcessor struct {
	tx  TxRunner
	now func() time.Time
}

func NewOrderProcessor(tx TxRunner) *OrderProcessor {
	return &OrderProcessor{tx: tx, now: time.Now}
}

// CreateOrder crea el pedido. Solo se permite nacer en processing o accepted:
// la aprobación pasa siempre por Approve.
func (p *OrderProcessor) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	if in.PartnerID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.OrderProcessing
	}
	if status != entity.OrderProcessing && status != entity.OrderAccepted {
		return nil, domain.ErrInvalidInput
	}
	now := p.now().UTC()

	var created *entity.Order
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		if _, err := requirePartner(ctx, r, in.PartnerID); err != nil {
			return err
		}
		if in.WarehouseID != nil {
			if _, err := requireWarehouse(ctx, r, *in.WarehouseID); err != nil {
				return err
			}
		}
		o := &entity.Order{
			ID:          uuid.New().String(),
			EmployeeID:  in.EmployeeID,
			PartnerID:   in.PartnerID,
			WarehouseID: in.WarehouseID,
			Status:      status,
			Comment:     in.Comment,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := r.Orders.Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetOrder devuelve el pedido con líneas, pago y entrega.
func (p *OrderProcessor) GetOrder(ctx context.Context, id string) (*OrderDetail, error) {
	var detail *OrderDetail
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		o, err := r.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		items, err := r.Orders.ListItems(ctx, id)
		if err != nil {
			return err
		}
		d := &OrderDetail{Order: o, Items: items}
		if o.PaymentID != nil {
			if d.Payment, err = r.Payments.GetByID(ctx, *o.PaymentID); err != nil {
				return err
			}
		}
		if o.DeliveryID != nil {
			if d.Delivery, err = r.Deliveries.GetByID(ctx, *o.DeliveryID); err != nil {
				return err
			}
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListOrders lista pedidos por rango de fecha de creación.
func (p *OrderProcessor) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		var err error
		out, err = r.Orders.List(ctx, filter)
		return err
	})
	return out, err
}

// DeleteOrder elimina el pedido con sus líneas y pago. Un pedido con stock descontado no se puede eliminar.
func (p *OrderProcessor) DeleteOrder(ctx context.Context, id string) error {
	return p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		o, err := r.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.StockDeductedAt != nil {
			return domain.ErrInvalidTransition
		}
		return r.Orders.Delete(ctx, id)
	})
}

// AddLineItem agrega quantity del producto al pedido. Si la línea ya existe la cantidad se acumula
// y el costo se recalcula con el precio vigente. El pago del pedido se recalcula (o se crea pendiente).
func (p *OrderProcessor) AddLineItem(ctx context.Context, orderID, productID string, quantity int64) (*LineItemResult, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var res *LineItemResult
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		o, err := p.editableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		product, err := requireProduct(ctx, r, productID)
		if err != nil {
			return err
		}
		now := p.now().UTC()
		item, err := r.Orders.GetItem(ctx, orderID, productID)
		if err != nil {
			return err
		}
		if item == nil {
			item = &entity.OrderLineItem{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: productID,
				CreatedAt: now,
			}
		}
		item.Quantity += quantity
		item.Cost = inventory.LineCost(product.UnitPrice(), item.Quantity)
		item.UpdatedAt = now
		if err := r.Orders.UpsertItem(ctx, item); err != nil {
			return err
		}
		pay, err := p.syncPayment(ctx, r, o, now)
		if err != nil {
			return err
		}
		res = &LineItemResult{Item: item, Payment: pay}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RemoveLineItem quita la línea del producto y recalcula el pago.
func (p *OrderProcessor) RemoveLineItem(ctx context.Context, orderID, productID string) (*entity.Payment, error) {
	var pay *entity.Payment
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		o, err := p.editableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		item, err := r.Orders.GetItem(ctx, orderID, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := r.Orders.DeleteItem(ctx, orderID, productID); err != nil {
			return err
		}
		pay, err = p.syncPayment(ctx, r, o, p.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return pay, nil
}

func (p *OrderProcessor) editableOrder(ctx context.Context, r Repos, orderID string) (*entity.Order, error) {
	o, err := r.Orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.StockDeductedAt != nil || o.Status.Terminal() {
		return nil, domain.ErrInvalidTransition
	}
	// un pago ya cobrado no se recalcula
	if o.PaymentID != nil {
		pay, err := r.Payments.GetByID(ctx, *o.PaymentID)
		if err != nil {
			return nil, err
		}
		if pay != nil && pay.Status == entity.PaymentPaid {
			return nil, domain.ErrInvalidTransition
		}
	}
	return o, nil
}

// syncPayment fija Amount = Σ costos de las líneas; crea el pago pendiente si el pedido no tiene.
func (p *OrderProcessor) syncPayment(ctx context.Context, r Repos, o *entity.Order, now time.Time) (*entity.Payment, error) {
	items, err := r.Orders.ListItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	total := inventory.PaymentTotal(items)

	if o.PaymentID != nil {
		pay, err := r.Payments.GetByID(ctx, *o.PaymentID)
		if err != nil {
			return nil, err
		}
		if pay != nil {
			pay.Amount = total
			pay.UpdatedAt = now
			if err := r.Payments.Update(ctx, pay); err != nil {
				return nil, err
			}
			return pay, nil
		}
	}

	pay := &entity.Payment{
		ID:        uuid.New().String(),
		OrderID:   o.ID,
		Amount:    total,
		Status:    entity.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Payments.Create(ctx, pay); err != nil {
		return nil, err
	}
	o.PaymentID = &pay.ID
	o.UpdatedAt = now
	if err := r.Orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return pay, nil
}

// Approve pasa el pedido a approved. La primera vez descuenta del stock la cantidad de cada línea;
// si alguna línea no alcanza, no se descuenta nada y retorna *InsufficientStockError.
func (p *OrderProcessor) Approve(ctx context.Context, orderID string) (*OrderStatusResult, error) {
	var res *OrderStatusResult
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		o, err := r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		res, err = p.approve(ctx, r, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (p *OrderProcessor) approve(ctx context.Context, r Repos, o *entity.Order) (*OrderStatusResult, error) {
	if o.Status == entity.OrderApproved && o.StockDeductedAt != nil {
		return &OrderStatusResult{Order: o}, nil
	}
	if o.Status.Terminal() {
		return nil, domain.ErrInvalidTransition
	}
	now := p.now().UTC()
	if o.StockDeductedAt == nil {
		items, err := r.Orders.ListItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		stock := NewStockLedger(r.Stock)
		for _, item := range items {
			if err := p.deduct(ctx, stock, o, item); err != nil {
				return nil, err
			}
		}
		o.StockDeductedAt = &now
	}
	o.Status = entity.OrderApproved
	o.UpdatedAt = now
	if err := r.Orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return &OrderStatusResult{Order: o, Changed: true}, nil
}

// deduct descuenta una línea de la bodega del pedido o, sin bodega, del stock agregado
// empezando por la bodega con más unidades.
func (p *OrderProcessor) deduct(ctx context.Context, stock *StockLedger, o *entity.Order, item *entity.OrderLineItem) error {
	if o.WarehouseID != nil {
		return stock.Remove(ctx, item.ProductID, *o.WarehouseID, item.Quantity)
	}
	entries, err := stock.ByProduct(ctx, item.ProductID)
	if err != nil {
		return err
	}
	plan, available, ok := inventory.DrainPlan(entries, item.Quantity)
	if !ok {
		return &domain.InsufficientStockError{
			ProductID: item.ProductID,
			Requested: item.Quantity,
			Available: available,
		}
	}
	for _, d := range plan {
		if err := stock.Remove(ctx, item.ProductID, d.WarehouseID, d.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus cambia el estado del pedido; approved se enruta por Approve.
// completed y cancelled son terminales.
func (p *OrderProcessor) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*OrderStatusResult, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	var res *OrderStatusResult
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		o, err := r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if status == entity.OrderApproved {
			res, err = p.approve(ctx, r, o)
			return err
		}
		if o.Status == status {
			res = &OrderStatusResult{Order: o}
			return nil
		}
		if o.Status.Terminal() {
			return domain.ErrInvalidTransition
		}
		o.Status = status
		o.UpdatedAt = p.now().UTC()
		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		res = &OrderStatusResult{Order: o, Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// MarkPaid marca como pagado el pago del pedido.
func (p *OrderProcessor) MarkPaid(ctx context.Context, orderID string) (*entity.Payment, error) {
	var pay *entity.Payment
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		o, err := r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil || o.PaymentID == nil {
			return domain.ErrNotFound
		}
		pay, err = r.Payments.GetByID(ctx, *o.PaymentID)
		if err != nil {
			return err
		}
		if pay == nil {
			return domain.ErrNotFound
		}
		if pay.Status == entity.PaymentPaid {
			return nil
		}
		if pay.Status == entity.PaymentCancelled {
			return domain.ErrInvalidTransition
		}
		now := p.now().UTC()
		pay.Status = entity.PaymentPaid
		pay.PaidAt = &now
		pay.UpdatedAt = now
		return r.Payments.Update(ctx, pay)
	})
	if err != nil {
		return nil, err
	}
	return pay, nil
}

// SetDelivery crea o actualiza la entrega del pedido. Un pedido cancelado no admite cambios de entrega.
func (p *OrderProcessor) SetDelivery(ctx context.Context, orderID string, in DeliveryInput) (*entity.Delivery, error) {
	status := in.Status
	if status == "" {
		status = entity.DeliveryPending
	}
	if !status.Valid() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Delivery
	err := p.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		o, err := r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status == entity.OrderCancelled {
			return domain.ErrInvalidTransition
		}
		now := p.now().UTC()

		var d *entity.Delivery
		if o.DeliveryID != nil {
			if d, err = r.Deliveries.GetByID(ctx, *o.DeliveryID); err != nil {
				return err
			}
		}
		if d != nil {
			d.Method, d.Address, d.Status, d.Cost = in.Method, in.Address, status, in.Cost
			d.UpdatedAt = now
			if err := r.Deliveries.Update(ctx, d); err != nil {
				return err
			}
			out = d
			return nil
		}

		d = &entity.Delivery{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			Method:    in.Method,
			Address:   in.Address,
			Status:    status,
			Cost:      in.Cost,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Deliveries.Create(ctx, d); err != nil {
			return err
		}
		o.DeliveryID = &d.ID
		o.UpdatedAt = now
		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
