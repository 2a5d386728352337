package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingDate       = "дата обязательна"
	msgInvalidDuration   = "duration обязателен и должен быть положительным числом минут"
	msgInvalidBuffer     = "некорректный buffer"
	msgInvalidInterval   = "некорректный interval"
	msgInvalidParams     = "некорректные параметры запроса"
	msgLocationNotFound  = "локация не найдена"
	msgTimezoneMismatch  = "часовой пояс не совпадает с часовым поясом локации"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/resources/{resourceId}/available-slots
// Query params: date (YYYY-MM-DD), duration (минуты), buffer, interval, tz (опционально)
// Публичный endpoint: тенант из X-Tenant-ID, проверяется квота
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathInt64(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /locations/{id}/resources/{id}/available-slots - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	resourceID, err := handlers.PathInt64(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /locations/{id}/resources/{id}/available-slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	date, err := handlers.QueryRequired(r, "date")
	if err != nil {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	params, err := ParseSlotParams(r)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/resources/{id}/available-slots - Invalid params: %v", err)
		handlers.RespondBadRequest(w, ParamsErrorMessage(err))
		return
	}

	req := &getAvailableSlots.Request{
		LocationID:      locationID,
		ResourceID:      resourceID,
		Date:            date,
		DurationMinutes: params.DurationMinutes,
		BufferMinutes:   params.BufferMinutes,
		IntervalMinutes: params.IntervalMinutes,
		Timezone:        params.Timezone,
	}
	if tenantID, ok := middleware.GetTenantID(r.Context()); ok {
		req.TenantID = &tenantID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.respondError(w, err, locationID, resourceID)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /locations/{id}/resources/{id}/available-slots - location_id=%d, resource_id=%d, date=%s, slots_count=%d, closed=%t, quota_limit_reached=%t",
		locationID, resourceID, date, len(result.Slots), result.Closed, result.QuotaLimitReached)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, locationID, resourceID int64) {
	switch {
	case errors.Is(err, getAvailableSlots.ErrInvalidInput):
		h.logger.Warn("GET /locations/{id}/resources/{id}/available-slots - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	case errors.Is(err, getAvailableSlots.ErrTimezoneMismatch):
		handlers.RespondBadRequest(w, msgTimezoneMismatch)

	case errors.Is(err, getAvailableSlots.ErrLocationNotFound):
		h.logger.Warn("GET /locations/{id}/resources/{id}/available-slots - Location not found: location_id=%d", locationID)
		handlers.RespondNotFound(w, msgLocationNotFound)

	default:
		h.logger.Error("GET /locations/{id}/resources/{id}/available-slots - Failed to get slots: location_id=%d, resource_id=%d, error=%v",
			locationID, resourceID, err)
		handlers.RespondInternalError(w)
	}
}
