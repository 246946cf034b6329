package ledger

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

type stockKey struct{ product, warehouse string }
type itemKey struct{ order, product string }

// memoryStore implementa TxRunner con todos los repositorios en memoria.
// Run toma una foto del estado y la restaura si fn falla.
type memoryStore struct {
	mu sync.Mutex

	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	partners   map[string]entity.Partner
	stock      map[stockKey]entity.StockEntry
	invoices   map[string]entity.IncomingInvoice
	movements  map[string]entity.ProductMovement
	orders     map[string]entity.Order
	items      map[itemKey]entity.OrderLineItem
	payments   map[string]entity.Payment
	deliveries map[string]entity.Delivery

	stockErr error // si no es nil, Upsert de stock falla
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
		partners:   map[string]entity.Partner{},
		stock:      map[stockKey]entity.StockEntry{},
		invoices:   map[string]entity.IncomingInvoice{},
		movements:  map[string]entity.ProductMovement{},
		orders:     map[string]entity.Order{},
		items:      map[itemKey]entity.OrderLineItem{},
		payments:   map[string]entity.Payment{},
		deliveries: map[string]entity.Delivery{},
	}
}

type memorySnapshot struct {
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	partners   map[string]entity.Partner
	stock      map[stockKey]entity.StockEntry
	invoices   map[string]entity.IncomingInvoice
	movements  map[string]entity.ProductMovement
	orders     map[string]entity.Order
	items      map[itemKey]entity.OrderLineItem
	payments   map[string]entity.Payment
	deliveries map[string]entity.Delivery
}

func (m *memoryStore) snapshot() memorySnapshot {
	return memorySnapshot{
		products:   maps.Clone(m.products),
		warehouses: maps.Clone(m.warehouses),
		partners:   maps.Clone(m.partners),
		stock:      maps.Clone(m.stock),
		invoices:   maps.Clone(m.invoices),
		movements:  maps.Clone(m.movements),
		orders:     maps.Clone(m.orders),
		items:      maps.Clone(m.items),
		payments:   maps.Clone(m.payments),
		deliveries: maps.Clone(m.deliveries),
	}
}

func (m *memoryStore) restore(s memorySnapshot) {
	m.products, m.warehouses, m.partners = s.products, s.warehouses, s.partners
	m.stock, m.invoices, m.movements = s.stock, s.invoices, s.movements
	m.orders, m.items, m.payments = s.orders, s.items, s.payments
	m.deliveries = s.deliveries
}

func (m *memoryStore) Run(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.snapshot()
	if err := fn(ctx, m.repos()); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memoryStore) repos() Repos {
	return Repos{
		Products:   memProducts{m},
		Warehouses: memWarehouses{m},
		Partners:   memPartners{m},
		Stock:      memStock{m},
		Invoices:   memInvoices{m},
		Movements:  memMovements{m},
		Orders:     memOrders{m},
		Payments:   memPayments{m},
		Deliveries: memDeliveries{m},
	}
}

// qty lee el stock sin pasar por Run (solo tests).
func (m *memoryStore) qty(product, warehouse string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[stockKey{product, warehouse}].Quantity
}

func (m *memoryStore) hasStockRow(product, warehouse string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.stock[stockKey{product, warehouse}]
	return ok
}

func (m *memoryStore) invoiceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.invoices)
}

func (m *memoryStore) movementCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.movements)
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset > len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// ─── Catálogo ────────────────────────────────────────────────────────────────

type memProducts struct{ m *memoryStore }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.m.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.m.products[p.ID] = *p
	return nil
}

func (r memProducts) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.m.products {
		if f.TypeID != "" && p.TypeID != f.TypeID {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, f.Limit, f.Offset), nil
}

func (r memProducts) Delete(_ context.Context, id string) error {
	delete(r.m.products, id)
	return nil
}

type memWarehouses struct{ m *memoryStore }

func (r memWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	r.m.warehouses[w.ID] = *w
	return nil
}

func (r memWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.m.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r memWarehouses) Update(_ context.Context, w *entity.Warehouse) error {
	r.m.warehouses[w.ID] = *w
	return nil
}

func (r memWarehouses) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.m.warehouses {
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r memWarehouses) Delete(_ context.Context, id string) error {
	delete(r.m.warehouses, id)
	return nil
}

type memPartners struct{ m *memoryStore }

func (r memPartners) Create(_ context.Context, p *entity.Partner) error {
	r.m.partners[p.ID] = *p
	return nil
}

func (r memPartners) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	p, ok := r.m.partners[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memPartners) List(_ context.Context, limit, offset int) ([]*entity.Partner, error) {
	var out []*entity.Partner
	for _, p := range r.m.partners {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r memPartners) Update(_ context.Context, p *entity.Partner) error {
	r.m.partners[p.ID] = *p
	return nil
}

func (r memPartners) Delete(_ context.Context, id string) error {
	delete(r.m.partners, id)
	return nil
}

// ─── Stock ───────────────────────────────────────────────────────────────────

type memStock struct{ m *memoryStore }

func (r memStock) Find(_ context.Context, productID, warehouseID string) (entity.StockEntry, bool, error) {
	e, ok := r.m.stock[stockKey{productID, warehouseID}]
	return e, ok, nil
}

func (r memStock) FindForUpdate(ctx context.Context, productID, warehouseID string) (entity.StockEntry, bool, error) {
	return r.Find(ctx, productID, warehouseID)
}

func (r memStock) Upsert(_ context.Context, e entity.StockEntry) error {
	if r.m.stockErr != nil {
		return r.m.stockErr
	}
	r.m.stock[stockKey{e.ProductID, e.WarehouseID}] = e
	return nil
}

func (r memStock) Delete(_ context.Context, productID, warehouseID string) error {
	delete(r.m.stock, stockKey{productID, warehouseID})
	return nil
}

func (r memStock) SumByProduct(_ context.Context, productID string) (int64, error) {
	var total int64
	for k, e := range r.m.stock {
		if k.product == productID {
			total += e.Quantity
		}
	}
	return total, nil
}

func (r memStock) ListByProduct(_ context.Context, productID string) ([]entity.StockEntry, error) {
	var out []entity.StockEntry
	for k, e := range r.m.stock {
		if k.product == productID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

func (r memStock) ListByWarehouse(_ context.Context, warehouseID string) ([]entity.StockEntry, error) {
	var out []entity.StockEntry
	for k, e := range r.m.stock {
		if k.warehouse == warehouseID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// ─── Recepciones y traslados ─────────────────────────────────────────────────

type memInvoices struct{ m *memoryStore }

func (r memInvoices) Create(_ context.Context, inv *entity.IncomingInvoice) error {
	r.m.invoices[inv.ID] = *inv
	return nil
}

func (r memInvoices) GetByID(_ context.Context, id string) (*entity.IncomingInvoice, error) {
	inv, ok := r.m.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r memInvoices) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.IncomingInvoice, error) {
	var out []*entity.IncomingInvoice
	for _, inv := range r.m.invoices {
		if f.ProductID != "" && inv.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && inv.WarehouseID != f.WarehouseID {
			continue
		}
		if !inRange(inv.ReceivedAt, f.From, f.To) {
			continue
		}
		inv := inv
		out = append(out, &inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

type memMovements struct{ m *memoryStore }

func (r memMovements) Create(_ context.Context, mv *entity.ProductMovement) error {
	r.m.movements[mv.ID] = *mv
	return nil
}

func (r memMovements) GetByID(_ context.Context, id string) (*entity.ProductMovement, error) {
	mv, ok := r.m.movements[id]
	if !ok {
		return nil, nil
	}
	return &mv, nil
}

func (r memMovements) GetForUpdate(ctx context.Context, id string) (*entity.ProductMovement, error) {
	return r.GetByID(ctx, id)
}

func (r memMovements) UpdateStatus(_ context.Context, mv *entity.ProductMovement) error {
	r.m.movements[mv.ID] = *mv
	return nil
}

func (r memMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.ProductMovement, error) {
	var out []*entity.ProductMovement
	for _, mv := range r.m.movements {
		if f.ProductID != "" && mv.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && mv.FromWarehouseID != f.WarehouseID && mv.ToWarehouseID != f.WarehouseID {
			continue
		}
		if f.Status != "" && mv.Status != f.Status {
			continue
		}
		if !inRange(mv.MovedAt, f.From, f.To) {
			continue
		}
		mv := mv
		out = append(out, &mv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovedAt.After(out[j].MovedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

// ─── Pedidos y pagos ─────────────────────────────────────────────────────────

type memOrders struct{ m *memoryStore }

func (r memOrders) Create(_ context.Context, o *entity.Order) error {
	r.m.orders[o.ID] = *o
	return nil
}

func (r memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r memOrders) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r memOrders) Update(_ context.Context, o *entity.Order) error {
	r.m.orders[o.ID] = *o
	return nil
}

func (r memOrders) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.m.orders {
		if !inRange(o.CreatedAt, f.From, f.To) {
			continue
		}
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (r memOrders) ListCreatedAfter(_ context.Context, since time.Time, limit int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.m.orders {
		if o.CreatedAt.After(since) {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, limit, 0), nil
}

func (r memOrders) Delete(_ context.Context, id string) error {
	delete(r.m.orders, id)
	for k := range r.m.items {
		if k.order == id {
			delete(r.m.items, k)
		}
	}
	for pid, p := range r.m.payments {
		if p.OrderID == id {
			delete(r.m.payments, pid)
		}
	}
	for did, d := range r.m.deliveries {
		if d.OrderID == id {
			delete(r.m.deliveries, did)
		}
	}
	return nil
}

func (r memOrders) GetItem(_ context.Context, orderID, productID string) (*entity.OrderLineItem, error) {
	it, ok := r.m.items[itemKey{orderID, productID}]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r memOrders) ListItems(_ context.Context, orderID string) ([]*entity.OrderLineItem, error) {
	var out []*entity.OrderLineItem
	for k, it := range r.m.items {
		if k.order == orderID {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r memOrders) UpsertItem(_ context.Context, it *entity.OrderLineItem) error {
	r.m.items[itemKey{it.OrderID, it.ProductID}] = *it
	return nil
}

func (r memOrders) DeleteItem(_ context.Context, orderID, productID string) error {
	delete(r.m.items, itemKey{orderID, productID})
	return nil
}

type memPayments struct{ m *memoryStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.m.payments[p.ID] = *p
	return nil
}

func (r memPayments) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	p, ok := r.m.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memPayments) Update(_ context.Context, p *entity.Payment) error {
	r.m.payments[p.ID] = *p
	return nil
}

func (r memPayments) Delete(_ context.Context, id string) error {
	delete(r.m.payments, id)
	return nil
}

type memDeliveries struct{ m *memoryStore }

func (r memDeliveries) Create(_ context.Context, d *entity.Delivery) error {
	r.m.deliveries[d.ID] = *d
	return nil
}

func (r memDeliveries) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	d, ok := r.m.deliveries[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r memDeliveries) Update(_ context.Context, d *entity.Delivery) error {
	r.m.deliveries[d.ID] = *d
	return nil
}
