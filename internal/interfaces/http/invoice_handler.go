package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// invoiceService lo implementa *billing.InvoiceUseCase.
type invoiceService interface {
	CreateInvoice(ctx context.Context, s entity.Session, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, s entity.Session, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, s entity.Session, q dto.InvoiceListQuery) (*dto.InvoiceListResponse, error)
	DeleteInvoice(ctx context.Context, s entity.Session, id string) error
	DeleteAll(ctx context.Context, s entity.Session) (int64, error)
}

// documentService lo implementa *billing.PDFUseCase.
type documentService interface {
	DownloadInvoicePDF(ctx context.Context, s entity.Session, invoiceID string) ([]byte, string, error)
	SendInvoice(ctx context.Context, s entity.Session, invoiceID string, in dto.SendInvoiceRequest) (*dto.SendInvoiceResponse, error)
}

// exportService lo implementa *billing.ExportUseCase.
type exportService interface {
	ExportXLSX(ctx context.Context, s entity.Session, q dto.InvoiceListQuery) ([]byte, string, error)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceHandler maneja las peticiones HTTP de facturas y recibos (protegido).
type InvoiceHandler struct {
	invoices  invoiceService
	documents documentService
	export    exportService
	validator *BodyValidator
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices invoiceService, documents documentService, export exportService, validator *BodyValidator) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, documents: documents, export: export, validator: validator}
}

// Create godoc
// @Summary      Crear factura o recibo
// @Description  type=facture requiere items (acompte opcional); type=recu requiere montant y nace pagado.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Documento"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := h.validator.Bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.CreateInvoice(c.Context(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Description  Un admin ve todos; el resto solo los propios. Orden: fecha descendente.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        type         query  string  false  "facture | recu"
// @Param        status       query  string  false  "impayee | partielle | payee"
// @Param        outstanding  query  bool    false  "solo reliquat > 0"
// @Param        limit        query  int     false  "máximo 100"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.InvoiceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.invoices.ListInvoices(c.Context(), GetSession(c), listQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.invoices.GetInvoice(c.Context(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento (admin)
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID del documento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.DeleteInvoice(c.Context(), GetSession(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAll godoc
// @Summary      Eliminar todos los documentos (admin)
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        confirm  query  bool  true  "debe ser true"
// @Success      200  {object}  dto.DeleteAllResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/invoices [delete]
func (h *InvoiceHandler) DeleteAll(c *fiber.Ctx) error {
	if !c.QueryBool("confirm") {
		return badRequest(c, "CONFIRMATION_REQUIRED", "agregue ?confirm=true para eliminar todos los documentos")
	}
	n, err := h.invoices.DeleteAll(c.Context(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteAllResponse{Deleted: n})
}

// DownloadPDF godoc
// @Summary      Descargar PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, name, err := h.documents.DownloadInvoicePDF(c.Context(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(pdf)
}

// Send godoc
// @Summary      Enviar PDF por correo
// @Description  Sin "to" se usa el client_email del documento.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true   "ID del documento"
// @Param        body  body  dto.SendInvoiceRequest  false  "Destinatario"
// @Success      200   {object}  dto.SendInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	var in dto.SendInvoiceRequest
	if len(c.Body()) > 0 {
		if err := h.validator.Bind(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.documents.SendInvoice(c.Context(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar a Excel (admin)
// @Tags         invoices
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type         query  string  false  "facture | recu"
// @Param        status       query  string  false  "impayee | partielle | payee"
// @Param        outstanding  query  bool    false  "solo reliquat > 0"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/invoices/export [get]
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	data, name, err := h.export.ExportXLSX(c.Context(), GetSession(c), listQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}

func listQuery(c *fiber.Ctx) dto.InvoiceListQuery {
	return dto.InvoiceListQuery{
		Type:        c.Query("type"),
		Status:      c.Query("status"),
		Outstanding: c.QueryBool("outstanding"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		},
	}
}
