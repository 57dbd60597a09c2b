package handlers

import (
	"github.com/gin-gonic/gin"

	"varotra/internal/core/apperror"
	"varotra/internal/infrastructure/http/v1/dto"
	"varotra/internal/infrastructure/storage/postgres"
)

// auditedEntities are the entity types that write audit entries.
var auditedEntities = map[string]bool{
	"product":  true,
	"customer": true,
	"sale":     true,
	"invoice":  true,
}

// AuditHandler exposes the audit trail of an entity.
type AuditHandler struct {
	*BaseHandler
	service *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, service *postgres.AuditService) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		service:     service,
	}
}

// History handles GET /audit/:entity/:id - the entity's audit trail,
// newest entries first.
func (h *AuditHandler) History(c *gin.Context) {
	entityType := c.Param("entity")
	if !auditedEntities[entityType] {
		h.Error(c, apperror.NewInvalidInput("unknown entity type").WithDetail("entity", entityType))
		return
	}

	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var query dto.AuditHistoryQuery
	if !h.BindQuery(c, &query) {
		return
	}

	entries, err := h.service.GetEntityHistory(c.Request.Context(), entityType, entityID, query.Limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.AuditHistoryResponse{
		EntityType: entityType,
		EntityID:   entityID.String(),
		Entries:    make([]dto.AuditEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.AuditEntryResponse{
			ID:        e.ID.String(),
			Action:    string(e.Action),
			Changes:   e.Changes,
			CreatedAt: e.CreatedAt,
		})
	}

	h.OK(c, resp)
}
