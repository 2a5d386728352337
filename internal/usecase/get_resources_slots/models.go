package get_resources_slots

import "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"

// Request модель запроса слотов нескольких ресурсов одной локации на один день
type Request struct {
	TenantID        *int64
	LocationID      int64
	ResourceIDs     []int64
	Date            string
	DurationMinutes int
	BufferMinutes   int
	IntervalMinutes int
	Timezone        string
	SkipQuotaCheck  bool
}

// Response результаты по каждому ресурсу. Ошибка одного ресурса не отменяет остальные.
type Response struct {
	Date       string
	LocationID int64
	Results    map[int64]*ResourceResult
}

// ResourceResult результат для одного ресурса: либо Slots, либо Err
type ResourceResult struct {
	Slots *get_available_slots.Response
	Err   error
}

// Failed количество ресурсов, завершившихся ошибкой
func (r *Response) Failed() int {
	failed := 0
	for _, res := range r.Results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}
