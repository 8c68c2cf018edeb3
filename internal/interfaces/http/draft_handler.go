package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// draftService lo implementa *drafts.DraftUseCase.
type draftService interface {
	Create(ctx context.Context, s entity.Session, in dto.DraftRequest) (*dto.DraftResponse, error)
	Get(ctx context.Context, s entity.Session, id string) (*dto.DraftResponse, error)
	List(ctx context.Context, s entity.Session) ([]dto.DraftResponse, error)
	UpdateHeader(ctx context.Context, s entity.Session, id string, in dto.DraftRequest) (*dto.DraftResponse, error)
	AddItem(ctx context.Context, s entity.Session, id string) (*dto.DraftResponse, error)
	UpdateItem(ctx context.Context, s entity.Session, id string, index int, in dto.LineItemDTO) (*dto.DraftResponse, error)
	RemoveItem(ctx context.Context, s entity.Session, id string, index int) (*dto.DraftResponse, error)
	Delete(ctx context.Context, s entity.Session, id string) error
	Submit(ctx context.Context, s entity.Session, id string, in dto.SubmitDraftRequest) (*dto.InvoiceResponse, error)
}

// DraftHandler edición de borradores (almacén local).
type DraftHandler struct {
	uc        draftService
	validator *BodyValidator
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc draftService, validator *BodyValidator) *DraftHandler {
	return &DraftHandler{uc: uc, validator: validator}
}

// Create godoc
// @Summary      Crear borrador
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DraftRequest  true  "Cabecera"
// @Success      201   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var in dto.DraftRequest
	if err := h.validator.Bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar borradores propios
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DraftResponse
// @Router       /api/drafts [get]
func (h *DraftHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera del borrador
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del borrador"
// @Param        body  body  dto.DraftRequest  true  "Cabecera"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/drafts/{id} [put]
func (h *DraftHandler) Update(c *fiber.Ctx) error {
	var in dto.DraftRequest
	if err := h.validator.Bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateHeader(c.Context(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetSession(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem godoc
// @Summary      Agregar línea con valores por defecto
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/drafts/{id}/items [post]
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	out, err := h.uc.AddItem(c.Context(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Reemplazar una línea
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string           true  "ID del borrador"
// @Param        index  path  int              true  "Posición de la línea (desde 0)"
// @Param        body   body  dto.LineItemDTO  true  "Línea"
// @Success      200    {object}  dto.DraftResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items/{index} [put]
func (h *DraftHandler) UpdateItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "VALIDATION", "index debe ser un entero")
	}
	var in dto.LineItemDTO
	if err := h.validator.Bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateItem(c.Context(), GetSession(c), c.Params("id"), index, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Eliminar una línea
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID del borrador"
// @Param        index  path  int     true  "Posición de la línea (desde 0)"
// @Success      200    {object}  dto.DraftResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/items/{index} [delete]
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "VALIDATION", "index debe ser un entero")
	}
	out, err := h.uc.RemoveItem(c.Context(), GetSession(c), c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar borrador
// @Description  Crea la factura o el recibo y elimina el borrador.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true   "ID del borrador"
// @Param        body  body  dto.SubmitDraftRequest  false  "Acompte"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitDraftRequest
	if len(c.Body()) > 0 {
		if err := h.validator.Bind(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.Submit(c.Context(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
