package dto

import "time"

// CreatePartnerRequest entrada para crear un cliente.
type CreatePartnerRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	PartnerTypeID string `json:"partner_type_id"`
	ScopeID       string `json:"scope_id"`
	TaxID         string `json:"tax_id" validate:"max=20"`
	Director      string `json:"director"`
	Phone         string `json:"phone" validate:"max=30"`
	Email         string `json:"email" validate:"omitempty,email"`
	LegalAddress  string `json:"legal_address"`
	Rating        int    `json:"rating" validate:"min=0,max=10"`
}

// UpdatePartnerRequest entrada para actualizar un cliente.
type UpdatePartnerRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	PartnerTypeID *string `json:"partner_type_id"`
	ScopeID       *string `json:"scope_id"`
	TaxID         *string `json:"tax_id" validate:"omitempty,max=20"`
	Director      *string `json:"director"`
	Phone         *string `json:"phone" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email"`
	LegalAddress  *string `json:"legal_address"`
	Rating        *int    `json:"rating" validate:"omitempty,min=0,max=10"`
}

// PartnerResponse salida de un cliente.
type PartnerResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	PartnerTypeID string    `json:"partner_type_id"`
	ScopeID       string    `json:"scope_id"`
	TaxID         string    `json:"tax_id"`
	Director      string    `json:"director"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	LegalAddress  string    `json:"legal_address"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PartnerListResponse lista paginada de clientes.
type PartnerListResponse struct {
	Items []PartnerResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
