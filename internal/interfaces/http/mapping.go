package http

import (
	"github.com/jhoicas/bentonit-ledger/internal/application/dto"
	"github.com/jhoicas/bentonit-ledger/internal/domain/entity"
)

func toInvoiceResponse(inv *entity.IncomingInvoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:          inv.ID,
		ProductID:   inv.ProductID,
		WarehouseID: inv.WarehouseID,
		Quantity:    inv.Quantity,
		ReceivedAt:  inv.ReceivedAt,
		CreatedBy:   inv.CreatedBy,
		CreatedAt:   inv.CreatedAt,
	}
}

func toMovementResponse(m *entity.ProductMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		Quantity:        m.Quantity,
		MovedAt:         m.MovedAt,
		Status:          string(m.Status),
		EmployeeID:      m.EmployeeID,
		DeliveredAt:     m.DeliveredAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:              o.ID,
		PartnerID:       o.PartnerID,
		EmployeeID:      o.EmployeeID,
		WarehouseID:     o.WarehouseID,
		DeliveryID:      o.DeliveryID,
		PaymentID:       o.PaymentID,
		Status:          string(o.Status),
		Comment:         o.Comment,
		StockDeductedAt: o.StockDeductedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toLineItemResponse(it *entity.OrderLineItem) dto.LineItemResponse {
	return dto.LineItemResponse{ProductID: it.ProductID, Quantity: it.Quantity, Cost: it.Cost}
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentResponse{ID: p.ID, Amount: p.Amount, Status: p.Status, PaidAt: p.PaidAt}
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	if d == nil {
		return nil
	}
	return &dto.DeliveryResponse{
		ID:        d.ID,
		OrderID:   d.OrderID,
		Method:    d.Method,
		Address:   d.Address,
		Status:    string(d.Status),
		Cost:      d.Cost,
		UpdatedAt: d.UpdatedAt,
	}
}

func toStockEntries(entries []entity.StockEntry) []dto.StockEntryResponse {
	out := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.StockEntryResponse{ProductID: e.ProductID, WarehouseID: e.WarehouseID, Quantity: e.Quantity})
	}
	return out
}
