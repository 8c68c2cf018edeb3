package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// paymentService lo implementa *billing.PaymentUseCase.
type paymentService interface {
	ApplyPayment(ctx context.Context, s entity.Session, invoiceID string, amount decimal.Decimal) (*dto.ApplyPaymentResponse, error)
	Settle(ctx context.Context, s entity.Session, invoiceID string) (*dto.ApplyPaymentResponse, error)
	ListPayments(ctx context.Context, s entity.Session, invoiceID string) ([]dto.PaymentResponse, error)
}

// PaymentHandler registro de pagos sobre una factura.
type PaymentHandler struct {
	uc        paymentService
	validator *BodyValidator
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc paymentService, validator *BodyValidator) *PaymentHandler {
	return &PaymentHandler{uc: uc, validator: validator}
}

// Apply godoc
// @Summary      Registrar un pago
// @Description  Suma montant a montant_paye. 422 si es negativo o supera el reliquat; 0 no modifica nada.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del documento"
// @Param        body  body  dto.PaymentRequest  true  "Monto"
// @Success      200   {object}  dto.ApplyPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments [post]
func (h *PaymentHandler) Apply(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := h.validator.Bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ApplyPayment(c.Context(), GetSession(c), c.Params("id"), in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Settle godoc
// @Summary      Saldar el documento
// @Description  Registra un pago por el reliquat actual.
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.ApplyPaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/settle [post]
func (h *PaymentHandler) Settle(c *fiber.Ctx) error {
	out, err := h.uc.Settle(c.Context(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de pagos
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListPayments(c.Context(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
