package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Partners   repository.PartnerRepository
	Stock      repository.StockRepository
	Invoices   repository.IncomingInvoiceRepository
	Movements  repository.ProductMovementRepository
	Orders     repository.OrderRepository
	Payments   repository.PaymentRepository
	Deliveries repository.DeliveryRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn retorna nil, Rollback en cualquier otro caso: garantiza atomicidad del ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// Recorder registra el resultado de cada operación del ledger (métricas).
type Recorder interface {
	Observe(operation string, err error, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, error, time.Duration) {}
