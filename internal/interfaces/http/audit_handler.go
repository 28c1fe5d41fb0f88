package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-core/internal/application/audit"
	"github.com/tu-usuario/stock-core/internal/application/dto"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
)

// AuditHandler consultas de solo lectura del historial de auditoría (admin).
type AuditHandler struct {
	recorder *audit.Recorder
}

// NewAuditHandler construye el handler.
func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// List godoc
// @Summary      Consultar el historial de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        table      query  string  false  "Filtrar por tabla"
// @Param        record_id  query  string  false  "Filtrar por registro"
// @Param        action     query  string  false  "Filtrar por tipo de acción"
// @Param        user_id    query  string  false  "Filtrar por actor"
// @Param        from       query  string  false  "Desde (RFC3339)"
// @Param        to         query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}   dto.AuditEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.AuditListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	in.DefaultPage()

	filter := repository.AuditFilter{
		TableName: in.TableName,
		RecordID:  in.RecordID,
		Action:    in.Action,
		UserID:    in.UserID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.From != "" {
		t, err := time.Parse(time.RFC3339, in.From)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser RFC3339"})
		}
		filter.From = t
	}
	if in.To != "" {
		t, err := time.Parse(time.RFC3339, in.To)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser RFC3339"})
		}
		filter.To = t
	}

	entries, err := h.recorder.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromAuditEntry(e))
	}
	return c.JSON(fiber.Map{"total": len(out), "entries": out})
}
