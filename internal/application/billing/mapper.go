package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
)

// LineItemsFromDTO convierte las líneas de la API. Fecha vacía = hoy.
func LineItemsFromDTO(in []dto.LineItemDTO, now time.Time) ([]entity.LineItem, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]entity.LineItem, 0, len(in))
	for i, it := range in {
		date := today
		if s := strings.TrimSpace(it.Date); s != "" {
			d, err := time.Parse(dto.DateLayout, s)
			if err != nil {
				return nil, fmt.Errorf("%w: línea %d: fecha %q inválida", domain.ErrValidation, i, it.Date)
			}
			date = d
		}
		out = append(out, entity.LineItem{
			Description: strings.TrimSpace(it.Description),
			Date:        date,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		})
	}
	return out, nil
}

// LineItemsToDTO inverso de LineItemsFromDTO; nunca devuelve nil.
func LineItemsToDTO(items []entity.LineItem) []dto.LineItemDTO {
	out := make([]dto.LineItemDTO, 0, len(items))
	for _, it := range items {
		date := ""
		if !it.Date.IsZero() {
			date = it.Date.Format(dto.DateLayout)
		}
		out = append(out, dto.LineItemDTO{
			Description: it.Description,
			Date:        date,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		})
	}
	return out
}

// ToInvoiceResponse mapea la entidad a la salida de la API.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	tax := ledger.ComputeTax(inv.Items)
	return &dto.InvoiceResponse{
		ID:          inv.ID,
		Type:        string(inv.Type),
		ClientName:  inv.ClientName,
		ClientPhone: inv.ClientPhone,
		ClientEmail: inv.ClientEmail,
		Items:       LineItemsToDTO(inv.Items),
		Object:      inv.Object,
		TotalAmount: inv.TotalAmount,
		AmountPaid:  inv.AmountPaid,
		Remainder:   inv.Remainder,
		Status:      string(inv.Status),
		Tax:         tax,
		TotalTTC:    inv.TotalAmount.Add(tax),
		Date:        inv.Date.Format(dto.DateLayout),
		UserID:      inv.UserID,
		Role:        inv.Role,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// ToPaymentResponse mapea un pago; nil si no hubo pago.
func ToPaymentResponse(e *entity.PaymentEntry) *dto.PaymentResponse {
	if e == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:        e.ID,
		InvoiceID: e.InvoiceID,
		Amount:    e.Amount,
		AppliedBy: e.AppliedBy,
		Mode:      e.Mode,
		CreatedAt: e.CreatedAt,
	}
}

// DocumentFileName nombre del PDF: facture_<cliente>_<aaaammdd>.pdf o recu_...
func DocumentFileName(inv *entity.Invoice) string {
	prefix := "facture"
	if inv.Type == entity.TypeReceipt {
		prefix = "recu"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", prefix, slug(inv.ClientName), inv.Date.Format("20060102"))
}

// slug deja letras y dígitos ASCII; cualquier otra secuencia pasa a "_".
func slug(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "client"
	}
	return b.String()
}
