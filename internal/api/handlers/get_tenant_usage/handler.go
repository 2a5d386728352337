package get_tenant_usage

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
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

// Handle GET /api/v1/internal/tenants/{tenantId}/usage
// Внутренний endpoint - использование квоты в текущем цикле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathInt64(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /internal/tenants/{id}/usage - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	// Сервис сам сбрасывает истёкший цикл
	status, err := h.service.GetUsage(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, quota.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidTenantID)
			return
		}

		h.logger.Error("GET /internal/tenants/{id}/usage - Failed to get usage: tenant_id=%d, error=%v",
			tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /internal/tenants/{id}/usage - Usage retrieved: tenant_id=%d, plan=%s, usage=%d",
		tenantID, status.Plan.ID, status.CurrentUsage)
	handlers.RespondJSON(w, http.StatusOK, FromStatus(status))
}
