package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Config opciones del servicio de ledger.
type Config struct {
	RestockOnCancel bool
}

// Service fachada del ledger de inventario: recepciones, traslados, pedidos y consultas de stock.
// Cada operación corre en su propia transacción y se registra en métricas y log.
type Service struct {
	tx        TxRunner
	invoices  *InvoiceProcessor
	movements *MovementProcessor
	orders    *OrderProcessor
	rec       Recorder
	log       zerolog.Logger
}

// NewService arma la fachada. rec puede ser nil.
func NewService(tx TxRunner, rec Recorder, log zerolog.Logger, cfg Config) *Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{
		tx:        tx,
		invoices:  NewInvoiceProcessor(tx),
		movements: NewMovementProcessor(tx, MovementConfig{RestockOnCancel: cfg.RestockOnCancel}),
		orders:    NewOrderProcessor(tx),
		rec:       rec,
		log:       log.With().Str("component", "ledger").Logger(),
	}
}

func (s *Service) observe(op string, start time.Time, err error) {
	s.rec.Observe(op, err, time.Since(start))
	if err == nil {
		return
	}
	if isDomainError(err) {
		s.log.Debug().Err(err).Str("op", op).Msg("operación rechazada")
		return
	}
	s.log.Error().Err(err).Str("op", op).Msg("operación de ledger fallida")
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrInvalidQuantity, domain.ErrSameWarehouse,
		domain.ErrInsufficientStock, domain.ErrInvalidTransition, domain.ErrDuplicate, domain.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ─── Recepciones ─────────────────────────────────────────────────────────────

func (s *Service) ReceiveInvoice(ctx context.Context, in ReceiveInput) (*entity.IncomingInvoice, error) {
	start := time.Now()
	inv, err := s.invoices.Receive(ctx, in)
	s.observe("receive_invoice", start, err)
	if err == nil {
		s.log.Info().Str("invoice_id", inv.ID).Str("product_id", inv.ProductID).
			Str("warehouse_id", inv.WarehouseID).Int64("quantity", inv.Quantity).Msg("recepción registrada")
	}
	return inv, err
}

func (s *Service) ListInvoices(ctx context.Context, f repository.InvoiceFilter) ([]*entity.IncomingInvoice, error) {
	start := time.Now()
	out, err := s.invoices.List(ctx, f)
	s.observe("list_invoices", start, err)
	return out, err
}

// ─── Traslados ───────────────────────────────────────────────────────────────

func (s *Service) CreateMovement(ctx context.Context, in CreateMovementInput) (*entity.ProductMovement, error) {
	start := time.Now()
	m, err := s.movements.Create(ctx, in)
	s.observe("create_movement", start, err)
	if err == nil {
		s.log.Info().Str("movement_id", m.ID).Str("status", string(m.Status)).
			Int64("quantity", m.Quantity).Msg("traslado registrado")
	}
	return m, err
}

func (s *Service) UpdateMovementStatus(ctx context.Context, id string, status entity.MovementStatus) (*MovementStatusResult, error) {
	start := time.Now()
	res, err := s.movements.UpdateStatus(ctx, id, status)
	s.observe("update_movement_status", start, err)
	if err == nil && res.Changed {
		s.log.Info().Str("movement_id", id).Str("status", string(status)).Msg("estado de traslado actualizado")
	}
	return res, err
}

func (s *Service) GetMovement(ctx context.Context, id string) (*entity.ProductMovement, error) {
	start := time.Now()
	m, err := s.movements.Get(ctx, id)
	s.observe("get_movement", start, err)
	return m, err
}

func (s *Service) ListMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.ProductMovement, error) {
	start := time.Now()
	out, err := s.movements.List(ctx, f)
	s.observe("list_movements", start, err)
	return out, err
}

// ─── Pedidos ─────────────────────────────────────────────────────────────────

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	start := time.Now()
	o, err := s.orders.CreateOrder(ctx, in)
	s.observe("create_order", start, err)
	return o, err
}

func (s *Service) GetOrder(ctx context.Context, id string) (*OrderDetail, error) {
	start := time.Now()
	d, err := s.orders.GetOrder(ctx, id)
	s.observe("get_order", start, err)
	return d, err
}

func (s *Service) ListOrders(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	start := time.Now()
	out, err := s.orders.ListOrders(ctx, f)
	s.observe("list_orders", start, err)
	return out, err
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	start := time.Now()
	err := s.orders.DeleteOrder(ctx, id)
	s.observe("delete_order", start, err)
	return err
}

func (s *Service) AddLineItem(ctx context.Context, orderID, productID string, quantity int64) (*LineItemResult, error) {
	start := time.Now()
	res, err := s.orders.AddLineItem(ctx, orderID, productID, quantity)
	s.observe("add_line_item", start, err)
	return res, err
}

func (s *Service) RemoveLineItem(ctx context.Context, orderID, productID string) (*entity.Payment, error) {
	start := time.Now()
	pay, err := s.orders.RemoveLineItem(ctx, orderID, productID)
	s.observe("remove_line_item", start, err)
	return pay, err
}

func (s *Service) ApproveOrder(ctx context.Context, orderID string) (*OrderStatusResult, error) {
	start := time.Now()
	res, err := s.orders.Approve(ctx, orderID)
	s.observe("approve_order", start, err)
	if err == nil && res.Changed {
		s.log.Info().Str("order_id", orderID).Msg("pedido aprobado")
	}
	return res, err
}

func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*OrderStatusResult, error) {
	start := time.Now()
	res, err := s.orders.UpdateStatus(ctx, orderID, status)
	s.observe("update_order_status", start, err)
	return res, err
}

func (s *Service) MarkOrderPaid(ctx context.Context, orderID string) (*entity.Payment, error) {
	start := time.Now()
	pay, err := s.orders.MarkPaid(ctx, orderID)
	s.observe("mark_order_paid", start, err)
	return pay, err
}

func (s *Service) SetOrderDelivery(ctx context.Context, orderID string, in DeliveryInput) (*entity.Delivery, error) {
	start := time.Now()
	d, err := s.orders.SetDelivery(ctx, orderID, in)
	s.observe("set_order_delivery", start, err)
	return d, err
}

// ─── Stock ───────────────────────────────────────────────────────────────────

// Quantity cantidad de un producto en una bodega.
func (s *Service) Quantity(ctx context.Context, productID, warehouseID string) (int64, error) {
	var q int64
	err := s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		var err error
		q, err = NewStockLedger(r.Stock).Quantity(ctx, productID, warehouseID)
		return err
	})
	return q, err
}

// TotalQuantity cantidad de un producto sumada en todas las bodegas.
func (s *Service) TotalQuantity(ctx context.Context, productID string) (int64, error) {
	var q int64
	err := s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		var err error
		q, err = NewStockLedger(r.Stock).Total(ctx, productID)
		return err
	})
	return q, err
}

func (s *Service) StockByProduct(ctx context.Context, productID string) ([]entity.StockEntry, error) {
	var out []entity.StockEntry
	err := s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		var err error
		out, err = NewStockLedger(r.Stock).ByProduct(ctx, productID)
		return err
	})
	return out, err
}

func (s *Service) StockByWarehouse(ctx context.Context, warehouseID string) ([]entity.StockEntry, error) {
	var out []entity.StockEntry
	err := s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		var err error
		out, err = NewStockLedger(r.Stock).ByWarehouse(ctx, warehouseID)
		return err
	})
	return out, err
}
