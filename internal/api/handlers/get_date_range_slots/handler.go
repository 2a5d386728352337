package get_date_range_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	slotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getDateRangeSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_date_range_slots"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingRange      = "from и to обязательны"
	msgInvalidRange      = "некорректный диапазон дат (не более 31 дня)"
)

type Handler struct {
	useCase GetDateRangeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDateRangeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/internal/locations/{locationId}/resources/{resourceId}/available-slots/range
// Query params: from, to (YYYY-MM-DD, включительно), duration, buffer, interval, tz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathInt64(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /internal/locations/{id}/resources/{id}/available-slots/range - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	resourceID, err := handlers.PathInt64(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /internal/locations/{id}/resources/{id}/available-slots/range - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	from, errFrom := handlers.QueryRequired(r, "from")
	to, errTo := handlers.QueryRequired(r, "to")
	if errFrom != nil || errTo != nil {
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	params, err := slotsHandler.ParseSlotParams(r)
	if err != nil {
		handlers.RespondBadRequest(w, slotsHandler.ParamsErrorMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDateRangeSlots.Request{
		LocationID:      locationID,
		ResourceID:      resourceID,
		From:            from,
		To:              to,
		DurationMinutes: params.DurationMinutes,
		BufferMinutes:   params.BufferMinutes,
		IntervalMinutes: params.IntervalMinutes,
		Timezone:        params.Timezone,
		SkipQuotaCheck:  true,
	})
	if err != nil {
		if errors.Is(err, getDateRangeSlots.ErrInvalidInput) {
			h.logger.Warn("GET /internal/locations/{id}/resources/{id}/available-slots/range - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}

		h.logger.Error("GET /internal/locations/{id}/resources/{id}/available-slots/range - Failed: location_id=%d, resource_id=%d, error=%v",
			locationID, resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /internal/locations/{id}/resources/{id}/available-slots/range - location_id=%d, resource_id=%d, from=%s, to=%s, failed=%d",
		locationID, resourceID, from, to, result.Failed())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
