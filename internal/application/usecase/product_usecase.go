package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bentonit-ledger/internal/application/dto"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
	"github.com/jhoicas/bentonit-ledger/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía el ledger.
type ProductUseCase struct {
	tx ledger.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ledger.TxRunner) *ProductUseCase {
	return &ProductUseCase{tx: tx}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		TypeID:      in.TypeID,
		Price:       in.Price,
		Description: in.Description,
		Attributes:  in.Attributes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		return r.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, 0), nil
}

// GetByID obtiene un producto con su stock total.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		product, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		total, err := r.Stock.SumByProduct(ctx, id)
		if err != nil {
			return err
		}
		out = toProductResponse(product, total)
		return nil
	})
	return out, err
}

// Update actualiza un producto. ClearPrice deja el producto sin precio.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		product, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			product.Name = name
		}
		if in.TypeID != nil {
			product.TypeID = *in.TypeID
		}
		switch {
		case in.ClearPrice:
			product.Price = nil
		case in.Price != nil:
			product.Price = in.Price
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if len(in.Attributes) > 0 {
			product.Attributes = in.Attributes
		}
		product.UpdatedAt = time.Now().UTC()
		if err := r.Products.Update(ctx, product); err != nil {
			return err
		}
		total, err := r.Stock.SumByProduct(ctx, id)
		if err != nil {
			return err
		}
		out = toProductResponse(product, total)
		return nil
	})
	return out, err
}

// List lista productos filtrando por nombre/descripción y tipo, cada uno con su stock total.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	var items []dto.ProductResponse
	err := uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		list, err := r.Products.List(ctx, repository.ProductFilter{
			Search: strings.TrimSpace(in.Search),
			TypeID: in.TypeID,
			Limit:  in.Limit,
			Offset: in.Offset,
		})
		if err != nil {
			return err
		}
		items = make([]dto.ProductResponse, 0, len(list))
		for _, p := range list {
			total, err := r.Stock.SumByProduct(ctx, p.ID)
			if err != nil {
				return err
			}
			items = append(items, *toProductResponse(p, total))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un producto sin stock. Con stock en alguna bodega retorna ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		product, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		entries, err := r.Stock.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return domain.ErrConflict
		}
		return r.Products.Delete(ctx, id)
	})
}

func toProductResponse(p *entity.Product, total int64) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		TypeID:      p.TypeID,
		Price:       p.Price,
		Description: p.Description,
		Attributes:  p.Attributes,
		TotalStock:  total,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
