package get_date_range_slots

import "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"

// Request модель запроса слотов ресурса на диапазон дат [From, To] включительно
type Request struct {
	TenantID        *int64
	LocationID      int64
	ResourceID      int64
	From            string
	To              string
	DurationMinutes int
	BufferMinutes   int
	IntervalMinutes int
	Timezone        string
	SkipQuotaCheck  bool
}

// Response результаты по каждой дате (ключ YYYY-MM-DD)
type Response struct {
	LocationID int64
	ResourceID int64
	From       string
	To         string
	Results    map[string]*DateResult
}

// DateResult результат для одной даты: либо Slots, либо Err
type DateResult struct {
	Slots *get_available_slots.Response
	Err   error
}

// Failed количество дат, завершившихся ошибкой
func (r *Response) Failed() int {
	failed := 0
	for _, res := range r.Results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}
