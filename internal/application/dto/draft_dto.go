package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftRequest cabecera de un borrador (crear y actualizar).
type DraftRequest struct {
	Type        string          `json:"type" jsonschema:"required,enum=facture,enum=recu"`
	ClientName  string          `json:"client_name,omitempty" jsonschema:"maxLength=200"`
	ClientPhone string          `json:"client_phone,omitempty" jsonschema:"maxLength=50"`
	ClientEmail string          `json:"client_email,omitempty" jsonschema:"maxLength=200"`
	Object      string          `json:"objet,omitempty" jsonschema:"maxLength=500"`
	Amount      decimal.Decimal `json:"montant"`
}

// DraftResponse borrador con el total calculado de sus líneas.
type DraftResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone"`
	ClientEmail string          `json:"client_email"`
	Object      string          `json:"objet,omitempty"`
	Amount      decimal.Decimal `json:"montant"`
	Items       []LineItemDTO   `json:"items"`
	Total       decimal.Decimal `json:"montant_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SubmitDraftRequest acompte opcional al convertir el borrador en factura.
type SubmitDraftRequest struct {
	InitialPayment decimal.Decimal `json:"acompte"`
}
