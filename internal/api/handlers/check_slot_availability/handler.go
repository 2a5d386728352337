package check_slot_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	checkSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidStart      = "start обязателен в формате RFC3339"
	msgInvalidDuration   = "duration обязателен и должен быть положительным числом минут"
	msgInvalidBuffer     = "некорректный buffer"
	msgInvalidParams     = "некорректные параметры запроса"
	msgLocationNotFound  = "локация не найдена"
	msgTimezoneMismatch  = "часовой пояс не совпадает с часовым поясом локации"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/resources/{resourceId}/slot-availability
// Query params: start (RFC3339), duration, buffer, tz (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathInt64(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /locations/{id}/resources/{id}/slot-availability - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	resourceID, err := handlers.PathInt64(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /locations/{id}/resources/{id}/slot-availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	rawStart, err := handlers.QueryRequired(r, "start")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}
	start, err := time.Parse(time.RFC3339, rawStart)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/resources/{id}/slot-availability - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	duration, err := handlers.QueryInt(r, "duration", 0)
	if err != nil || duration <= 0 {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	buffer, err := handlers.QueryInt(r, "buffer", domain.DefaultBufferMinutes)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBuffer)
		return
	}

	req := &checkSlot.Request{
		LocationID:      locationID,
		ResourceID:      resourceID,
		Start:           start,
		DurationMinutes: duration,
		BufferMinutes:   buffer,
		Timezone:        r.URL.Query().Get("tz"),
	}
	if tenantID, ok := middleware.GetTenantID(r.Context()); ok {
		req.TenantID = &tenantID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/resources/{id}/slot-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, checkSlot.ErrTimezoneMismatch):
			handlers.RespondBadRequest(w, msgTimezoneMismatch)

		case errors.Is(err, checkSlot.ErrLocationNotFound):
			handlers.RespondNotFound(w, msgLocationNotFound)

		default:
			h.logger.Error("GET /locations/{id}/resources/{id}/slot-availability - Failed to check slot: location_id=%d, resource_id=%d, error=%v",
				locationID, resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/resources/{id}/slot-availability - location_id=%d, resource_id=%d, start=%s, available=%t, reason=%s",
		locationID, resourceID, rawStart, result.Available, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
