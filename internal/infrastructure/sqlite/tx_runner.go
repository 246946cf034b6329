package sqlite

import (
	"context"

	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"gorm.io/gorm"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite (gorm).
type TxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run hace Commit si fn retorna nil y Rollback en cualquier otro caso.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos ledger.Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepos(tx))
	})
}

// NewRepos construye todos los repositorios sobre db (conexión o tx).
func NewRepos(db *gorm.DB) ledger.Repos {
	return ledger.Repos{
		Products:   &ProductRepo{db: db},
		Warehouses: &WarehouseRepo{db: db},
		Partners:   &PartnerRepo{db: db},
		Stock:      &StockRepo{db: db},
		Invoices:   &IncomingInvoiceRepo{db: db},
		Movements:  &ProductMovementRepo{db: db},
		Orders:     &OrderRepo{db: db},
		Payments:   &PaymentRepo{db: db},
		Deliveries: &DeliveryRepo{db: db},
	}
}
