package entity

import "time"

// Partner representa un cliente (contraparte de los pedidos).
type Partner struct {
	ID            string
	Name          string
	PartnerTypeID string
	ScopeID       string // ámbito de aplicación
	TaxID         string
	Director      string
	Phone         string
	Email         string
	LegalAddress  string
	Rating        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
