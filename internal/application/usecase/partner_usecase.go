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
)

// PartnerUseCase casos de uso CRUD para clientes.
type PartnerUseCase struct {
	tx ledger.TxRunner
}

func NewPartnerUseCase(tx ledger.TxRunner) *PartnerUseCase {
	return &PartnerUseCase{tx: tx}
}

func (uc *PartnerUseCase) Create(ctx context.Context, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	partner := &entity.Partner{
		ID:            uuid.New().String(),
		Name:          name,
		PartnerTypeID: in.PartnerTypeID,
		ScopeID:       in.ScopeID,
		TaxID:         in.TaxID,
		Director:      in.Director,
		Phone:         in.Phone,
		Email:         in.Email,
		LegalAddress:  in.LegalAddress,
		Rating:        in.Rating,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		return r.Partners.Create(ctx, partner)
	})
	if err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

func (uc *PartnerUseCase) GetByID(ctx context.Context, id string) (*dto.PartnerResponse, error) {
	var partner *entity.Partner
	err := uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		var err error
		partner, err = r.Partners.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}
	return toPartnerResponse(partner), nil
}

func (uc *PartnerUseCase) Update(ctx context.Context, id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	var partner *entity.Partner
	err := uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		var err error
		partner, err = r.Partners.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if partner == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			partner.Name = name
		}
		setString(&partner.PartnerTypeID, in.PartnerTypeID)
		setString(&partner.ScopeID, in.ScopeID)
		setString(&partner.TaxID, in.TaxID)
		setString(&partner.Director, in.Director)
		setString(&partner.Phone, in.Phone)
		setString(&partner.Email, in.Email)
		setString(&partner.LegalAddress, in.LegalAddress)
		if in.Rating != nil {
			partner.Rating = *in.Rating
		}
		partner.UpdatedAt = time.Now().UTC()
		return r.Partners.Update(ctx, partner)
	})
	if err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

func (uc *PartnerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PartnerListResponse, error) {
	page.DefaultPage()
	var list []*entity.Partner
	err := uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		var err error
		list, err = r.Partners.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartnerResponse(p))
	}
	return &dto.PartnerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un cliente. Si tiene pedidos, el almacenamiento responde ErrConflict.
func (uc *PartnerUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(ctx context.Context, r ledger.Repos) error {
		return r.Partners.Delete(ctx, id)
	})
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:            p.ID,
		Name:          p.Name,
		PartnerTypeID: p.PartnerTypeID,
		ScopeID:       p.ScopeID,
		TaxID:         p.TaxID,
		Director:      p.Director,
		Phone:         p.Phone,
		Email:         p.Email,
		LegalAddress:  p.LegalAddress,
		Rating:        p.Rating,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
