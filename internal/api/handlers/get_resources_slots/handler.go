package get_resources_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	slotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getResourcesSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_resources_slots"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidResources  = "resourceIds обязателен: список id через запятую"
	msgMissingDate       = "дата обязательна"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetResourcesSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetResourcesSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/internal/locations/{locationId}/available-slots
// Query params: resourceIds (a,b,c), date, duration, buffer, interval, tz
// Внутренний endpoint - квота не проверяется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathInt64(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /internal/locations/{id}/available-slots - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	resourceIDs, err := handlers.QueryInt64List(r, "resourceIds")
	if err != nil {
		h.logger.Warn("GET /internal/locations/{id}/available-slots - Invalid resourceIds: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResources)
		return
	}

	date, err := handlers.QueryRequired(r, "date")
	if err != nil {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	params, err := slotsHandler.ParseSlotParams(r)
	if err != nil {
		handlers.RespondBadRequest(w, slotsHandler.ParamsErrorMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getResourcesSlots.Request{
		LocationID:      locationID,
		ResourceIDs:     resourceIDs,
		Date:            date,
		DurationMinutes: params.DurationMinutes,
		BufferMinutes:   params.BufferMinutes,
		IntervalMinutes: params.IntervalMinutes,
		Timezone:        params.Timezone,
		SkipQuotaCheck:  true,
	})
	if err != nil {
		if errors.Is(err, getResourcesSlots.ErrInvalidInput) {
			h.logger.Warn("GET /internal/locations/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /internal/locations/{id}/available-slots - Failed: location_id=%d, error=%v", locationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /internal/locations/{id}/available-slots - location_id=%d, date=%s, resources=%d, failed=%d",
		locationID, date, len(result.Results), result.Failed())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
