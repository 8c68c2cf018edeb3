package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Alcance: documentos del usuario, o todos si es admin.
type DashboardSummaryDTO struct {
	InvoiceTotal decimal.Decimal `json:"total_factures"` // Σ montant_total de facturas
	ReceiptTotal decimal.Decimal `json:"total_recus"`    // Σ montant_total de recibos
	GrandTotal   decimal.Decimal `json:"total_global"`
	PaidTotal    decimal.Decimal `json:"total_paye"`

	Documents    int64 `json:"documents"`
	InvoiceCount int64 `json:"factures"`
	ReceiptCount int64 `json:"recus"`

	// Documentos con reliquat > 0
	OutstandingCount  int64           `json:"impayees"`
	OutstandingAmount decimal.Decimal `json:"reliquat_total"`

	Currency string `json:"currency"`
}
