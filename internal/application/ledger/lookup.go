package ledger

import (
	"context"

	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

func requireProduct(ctx context.Context, r Repos, id string) (*entity.Product, error) {
	p, err := r.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func requireWarehouse(ctx context.Context, r Repos, id string) (*entity.Warehouse, error) {
	w, err := r.Warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func requirePartner(ctx context.Context, r Repos, id string) (*entity.Partner, error) {
	p, err := r.Partners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
