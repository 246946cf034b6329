package repository

import (
	"context"

	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

// PartnerRepository define el puerto de persistencia para Partner (clientes).
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Partner, error)
	Update(ctx context.Context, partner *entity.Partner) error
	Delete(ctx context.Context, id string) error
}
