package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
	"github.com/jhoicas/bentonit-ledger/internal/infrastructure/sqlite"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Open("file:ledger_" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, sqlite.AutoMigrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type catalog struct {
	product, cheap string
	w1, w2         string
	partner        string
}

func seed(t *testing.T, db *gorm.DB) catalog {
	t.Helper()
	ctx := context.Background()
	repos := sqlite.NewRepos(db)
	now := time.Now().UTC()
	c := catalog{
		product: uuid.NewString(), cheap: uuid.NewString(),
		w1: uuid.NewString(), w2: uuid.NewString(), partner: uuid.NewString(),
	}
	price := decimal.RequireFromString("12.50")
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: c.product, Name: "Bentonita sódica", Price: &price, Description: "Arcilla para perforación", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: c.cheap, Name: "Muestra", TypeID: "sample", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: c.w1, Name: "Central", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: c.w2, Name: "Norte", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Partners.Create(ctx, &entity.Partner{ID: c.partner, Name: "Perforaciones SA", Rating: 7, CreatedAt: now, UpdatedAt: now}))
	return c
}

func newService(db *gorm.DB) *ledger.Service {
	return ledger.NewService(sqlite.NewTxRunner(db), nil, zerolog.Nop(), ledger.Config{})
}

func TestStockRepo_UpsertYBorrado(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	ctx := context.Background()
	stock := sqlite.NewStockRepository(db)

	_, found, err := stock.Find(ctx, c.product, c.w1)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, stock.Upsert(ctx, entity.StockEntry{ProductID: c.product, WarehouseID: c.w1, Quantity: 5, UpdatedAt: time.Now().UTC()}))
	require.NoError(t, stock.Upsert(ctx, entity.StockEntry{ProductID: c.product, WarehouseID: c.w1, Quantity: 8, UpdatedAt: time.Now().UTC()}))
	require.NoError(t, stock.Upsert(ctx, entity.StockEntry{ProductID: c.product, WarehouseID: c.w2, Quantity: 2, UpdatedAt: time.Now().UTC()}))

	e, found, err := stock.Find(ctx, c.product, c.w1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(8), e.Quantity)

	total, err := stock.SumByProduct(ctx, c.product)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	require.NoError(t, stock.Delete(ctx, c.product, c.w1))
	list, err := stock.ListByProduct(ctx, c.product)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.w2, list[0].WarehouseID)
}

func TestStockRepo_CantidadCeroViolaCheck(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	err := sqlite.NewStockRepository(db).Upsert(context.Background(),
		entity.StockEntry{ProductID: c.product, WarehouseID: c.w1, Quantity: 0, UpdatedAt: time.Now().UTC()})
	assert.Error(t, err)
}

func TestProductRepo_BusquedaYPrecioNulo(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	ctx := context.Background()
	products := sqlite.NewProductRepository(db)

	found, err := products.List(ctx, repository.ProductFilter{Search: "PERFORACIÓN"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, c.product, found[0].ID)
	require.NotNil(t, found[0].Price)
	assert.True(t, decimal.RequireFromString("12.50").Equal(*found[0].Price))

	byType, err := products.List(ctx, repository.ProductFilter{TypeID: "sample"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Nil(t, byType[0].Price)

	missing, err := products.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWarehouseRepo_NombreDuplicado(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	now := time.Now().UTC()
	err := sqlite.NewWarehouseRepository(db).Create(context.Background(),
		&entity.Warehouse{ID: uuid.NewString(), Name: "Central", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLedgerSobreSQLite_FlujoCompleto(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	svc := newService(db)
	ctx := context.Background()

	_, err := svc.ReceiveInvoice(ctx, ledger.ReceiveInput{ProductID: c.product, WarehouseID: c.w1, Quantity: 100})
	require.NoError(t, err)

	// traslado mayor al disponible: nada cambia
	_, err = svc.CreateMovement(ctx, ledger.CreateMovementInput{
		ProductID: c.product, FromWarehouseID: c.w1, ToWarehouseID: c.w2, Quantity: 400, Status: entity.MovementDelivered,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	q, err := svc.Quantity(ctx, c.product, c.w1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), q)

	m, err := svc.CreateMovement(ctx, ledger.CreateMovementInput{
		ProductID: c.product, FromWarehouseID: c.w1, ToWarehouseID: c.w2, Quantity: 40,
	})
	require.NoError(t, err)
	res, err := svc.UpdateMovementStatus(ctx, m.ID, entity.MovementDelivered)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	res, err = svc.UpdateMovementStatus(ctx, m.ID, entity.MovementDelivered)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	q, err = svc.Quantity(ctx, c.product, c.w2)
	require.NoError(t, err)
	assert.Equal(t, int64(40), q)

	o, err := svc.CreateOrder(ctx, ledger.CreateOrderInput{PartnerID: c.partner})
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, o.ID, c.product, 3)
	require.NoError(t, err)
	line, err := svc.AddLineItem(ctx, o.ID, c.product, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), line.Item.Quantity)
	assert.True(t, decimal.RequireFromString("62.50").Equal(line.Payment.Amount))

	_, err = svc.ApproveOrder(ctx, o.ID)
	require.NoError(t, err)
	total, err := svc.TotalQuantity(ctx, c.product)
	require.NoError(t, err)
	assert.Equal(t, int64(95), total)

	// la bodega con más stock (60 en central) se drena primero
	q, err = svc.Quantity(ctx, c.product, c.w1)
	require.NoError(t, err)
	assert.Equal(t, int64(55), q)

	detail, err := svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderApproved, detail.Order.Status)
	require.NotNil(t, detail.Payment)
	assert.Equal(t, entity.PaymentPending, detail.Payment.Status)
}

func TestLedgerSobreSQLite_AprobacionFallidaRevierte(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	svc := newService(db)
	ctx := context.Background()

	_, err := svc.ReceiveInvoice(ctx, ledger.ReceiveInput{ProductID: c.product, WarehouseID: c.w1, Quantity: 10})
	require.NoError(t, err)
	o, err := svc.CreateOrder(ctx, ledger.CreateOrderInput{PartnerID: c.partner, WarehouseID: &c.w1})
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, o.ID, c.product, 4)
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, o.ID, c.cheap, 1)
	require.NoError(t, err)

	_, err = svc.ApproveOrder(ctx, o.ID)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, c.cheap, insufficient.ProductID)

	q, err := svc.Quantity(ctx, c.product, c.w1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), q)
}

func TestOrderRepo_DeleteEliminaLineasYPago(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	svc := newService(db)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, ledger.CreateOrderInput{PartnerID: c.partner})
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, o.ID, c.product, 1)
	require.NoError(t, err)
	_, err = svc.SetOrderDelivery(ctx, o.ID, ledger.DeliveryInput{Method: "Recoge el cliente"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteOrder(ctx, o.ID))

	items, err := sqlite.NewOrderRepository(db).ListItems(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	var payments int64
	require.NoError(t, db.Table("payments").Where("order_id = ?", o.ID).Count(&payments).Error)
	assert.Zero(t, payments)
	var deliveries int64
	require.NoError(t, db.Table("deliveries").Where("order_id = ?", o.ID).Count(&deliveries).Error)
	assert.Zero(t, deliveries)
}

func TestLedgerSobreSQLite_EntregaDelPedido(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	svc := newService(db)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, ledger.CreateOrderInput{PartnerID: c.partner})
	require.NoError(t, err)
	d, err := svc.SetOrderDelivery(ctx, o.ID, ledger.DeliveryInput{
		Method: "Transportadora", Address: "Km 5 vía Tunja", Cost: decimal.RequireFromString("35.90"),
	})
	require.NoError(t, err)
	_, err = svc.SetOrderDelivery(ctx, o.ID, ledger.DeliveryInput{
		Method: "Transportadora", Address: "Km 5 vía Tunja", Status: entity.DeliveryDelivered, Cost: decimal.RequireFromString("35.90"),
	})
	require.NoError(t, err)

	detail, err := svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Delivery)
	assert.Equal(t, d.ID, detail.Delivery.ID)
	assert.Equal(t, entity.DeliveryDelivered, detail.Delivery.Status)
	assert.Equal(t, "Km 5 vía Tunja", detail.Delivery.Address)
	assert.True(t, decimal.RequireFromString("35.90").Equal(detail.Delivery.Cost))
	require.NotNil(t, detail.Order.DeliveryID)
	assert.Equal(t, d.ID, *detail.Order.DeliveryID)
}

func TestLedgerSobreSQLite_PagoCobradoBloqueaLineas(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	svc := newService(db)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, ledger.CreateOrderInput{PartnerID: c.partner})
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, o.ID, c.product, 1)
	require.NoError(t, err)
	_, err = svc.MarkOrderPaid(ctx, o.ID)
	require.NoError(t, err)

	_, err = svc.AddLineItem(ctx, o.ID, c.product, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	detail, err := svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, detail.Payment.Status)
	assert.True(t, decimal.RequireFromString("12.50").Equal(detail.Payment.Amount))
}

func TestOrderRepo_ListCreatedAfter(t *testing.T) {
	db := newTestDB(t)
	c := seed(t, db)
	ctx := context.Background()
	orders := sqlite.NewOrderRepository(db)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, orders.Create(ctx, &entity.Order{
			ID: uuid.NewString(), PartnerID: c.partner, Status: entity.OrderProcessing, CreatedAt: at, UpdatedAt: at,
		}))
	}

	after, err := orders.ListCreatedAfter(ctx, base, 10)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.True(t, after[0].CreatedAt.Before(after[1].CreatedAt))
}
