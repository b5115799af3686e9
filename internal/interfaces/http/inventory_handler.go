package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gruasdelsur/backoffice-api/internal/application/dto"
	"github.com/gruasdelsur/backoffice-api/internal/application/inventory"
	"github.com/gruasdelsur/backoffice-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de movimientos, kardex y lotes (protegido).
type InventoryHandler struct {
	poster  *inventory.MovementPoster
	kardex  *inventory.KardexUseCase
	batches *inventory.BatchUseCase
	voucher *inventory.VoucherUseCase

	// días por defecto para el reporte de lotes por vencer
	expiringSoonDays int
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	poster *inventory.MovementPoster,
	kardex *inventory.KardexUseCase,
	batches *inventory.BatchUseCase,
	voucher *inventory.VoucherUseCase,
	expiringSoonDays int,
) *InventoryHandler {
	return &InventoryHandler{
		poster:           poster,
		kardex:           kardex,
		batches:          batches,
		voucher:          voucher,
		expiringSoonDays: expiringSoonDays,
	}
}

// PostMovement godoc
// @Summary      Postear movimiento de inventario
// @Description  Registra una entrada, salida o ajuste. Una entrada puede crear
//
//	un lote nuevo en la misma operación; si el movimiento falla después de
//	crearse el lote, el lote se compensa (se borra).
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementRequest  true  "item_id, location_id, type, quantity, batch_id o new_batch, reason_code (ajustes)"
// @Success      201   {object}  dto.PostMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) PostMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	movementID, err := h.poster.PostFromRequest(c.Context(), companyID, userID, in)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Message, Field: vErr.Field})
		}
		var cErr *domain.CompensationFailedError
		if errors.As(err, &cErr) {
			// El lote quedó huérfano en el store; el operador debe limpiarlo.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "COMPENSATION_FAILED", Message: "el movimiento falló y el lote creado no pudo revertirse: " + cErr.Error()})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_BATCH", Message: "ya existe un lote con ese número para el ítem", Field: "batch_number"})
		}
		var sErr *domain.StoreError
		if errors.As(err, &sErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORE", Message: sErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PostMovementResponse{MovementID: movementID})
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	mov, err := h.kardex.GetMovement(c.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el movimiento pertenece a otra empresa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MovementResponse{
		ID:            mov.ID,
		ItemID:        mov.ItemID,
		LocationID:    mov.LocationID,
		Type:          mov.Type,
		Quantity:      mov.Quantity,
		BatchID:       mov.BatchID,
		ReferenceType: mov.ReferenceType,
		ReferenceID:   mov.ReferenceID,
		Notes:         mov.Notes,
		CreatedAt:     mov.CreatedAt,
		CreatedBy:     mov.CreatedBy,
	})
}

// Kardex godoc
// @Summary      Kardex de un ítem
// @Description  Libro de movimientos en orden cronológico con saldo acumulado.
//
//	Con location_id se filtra por bodega y se agrega el stock actual derivado.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  true   "ID del ítem"
// @Param        location_id  query  string  false  "Filtrar por bodega"
// @Param        from         query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to           query  string  false  "Hasta (AAAA-MM-DD)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	itemID := c.Query("item_id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido", Field: "item_id"})
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, formato AAAA-MM-DD", Field: "from"})
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, formato AAAA-MM-DD", Field: "to"})
	}
	limit, offset := pageParams(c)

	out, err := h.kardex.ItemKardex(c.Context(), companyID, itemID, c.Query("location_id"), from, to, limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el ítem pertenece a otra empresa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListBatches godoc
// @Summary      Listar lotes de un ítem
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  true  "ID del ítem"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/inventory/batches [get]
func (h *InventoryHandler) ListBatches(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido", Field: "item_id"})
	}
	batches, err := h.batches.ListByItem(c.Context(), itemID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchResponse{
			ID:             b.ID,
			ItemID:         b.ItemID,
			BatchNumber:    b.BatchNumber,
			ExpirationDate: b.ExpirationDate,
			CreatedAt:      b.CreatedAt,
		})
	}
	return c.JSON(out)
}

// ExpiringBatches godoc
// @Summary      Lotes por vencer
// @Description  Lotes de la empresa que vencen dentro de los próximos N días.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Horizonte en días"  default(30)
// @Success      200   {array}  dto.BatchResponse
// @Router       /api/inventory/batches/expiring [get]
func (h *InventoryHandler) ExpiringBatches(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	days := c.QueryInt("days", h.expiringSoonDays)
	if days <= 0 {
		days = h.expiringSoonDays
	}
	batches, err := h.batches.ExpiringSoon(c.Context(), companyID, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchResponse{
			ID:             b.ID,
			ItemID:         b.ItemID,
			BatchNumber:    b.BatchNumber,
			ExpirationDate: b.ExpirationDate,
			CreatedAt:      b.CreatedAt,
		})
	}
	return c.JSON(out)
}

// DeleteBatch godoc
// @Summary      Borrar lote
// @Description  Solo se puede borrar un lote que ningún movimiento referencia.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/batches/{id} [delete]
func (h *InventoryHandler) DeleteBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.batches.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BATCH_IN_USE", Message: "el lote tiene movimientos asociados"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Voucher godoc
// @Summary      Comprobante PDF de un movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/voucher [get]
func (h *InventoryHandler) Voucher(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	pdfBytes, err := h.voucher.GenerateVoucher(c.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el movimiento pertenece a otra empresa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

// parseDateQuery lee un query param de fecha AAAA-MM-DD; nil si no viene.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
