package recalculate_tenant_usage

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_tenant_usage"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
)

type Handler struct {
	service QuotaService
	logger  Logger
}

func NewHandler(service QuotaService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/tenants/{tenantId}/usage/recalculate
// Пересчитывает счётчик по подтверждённым бронированиям за последние 30 дней.
// Используется для восстановления после потерянных событий.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathInt64(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /internal/tenants/{id}/usage/recalculate - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	status, err := h.service.Recalculate(r.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, quota.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTenantID)

		default:
			h.logger.Error("POST /internal/tenants/{id}/usage/recalculate - Failed to recalculate: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/tenants/{id}/usage/recalculate - Usage recalculated: tenant_id=%d, usage=%d",
		tenantID, status.CurrentUsage)
	handlers.RespondJSON(w, http.StatusOK, get_tenant_usage.FromStatus(status))
}
