package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение свободных слотов на день
type Request struct {
	TenantID        *int64 // тенант вызывающего; nil - тенант локации
	LocationID      int64
	ResourceID      int64
	Date            string // YYYY-MM-DD в часовом поясе локации
	DurationMinutes int
	BufferMinutes   int
	IntervalMinutes int    // 0 - значение по умолчанию
	Timezone        string // опционально; должен совпадать с часовым поясом локации
	SkipQuotaCheck  bool   // внутренние/админские запросы
}

// Response модель ответа. Закрытый день и исчерпанная квота - успешные ответы с пояснениями.
type Response struct {
	Date              string
	LocationID        int64
	ResourceID        int64
	Timezone          string
	Closed            bool
	ScheduleSource    domain.ScheduleSource
	QuotaLimitReached bool
	Quota             *QuotaInfo
	Slots             []domain.Slot
}

// QuotaInfo данные квоты для предложения сменить план
type QuotaInfo struct {
	PlanID       string
	CurrentUsage int
	Limit        *int
	CycleEnd     time.Time
}
