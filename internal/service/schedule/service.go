package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzclock"
)

// Service определяет рабочие часы ресурса на дату.
//
// Порядок: исключение на дату, затем еженедельное расписание, иначе ресурс закрыт.
// Закрытый день - штатный результат, а не ошибка.
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Resolve возвращает авторитетное расписание на дату (YYYY-MM-DD в часовом поясе локации)
func (s *Service) Resolve(ctx context.Context, resourceID, locationID int64, date string) (domain.Resolution, error) {
	weekday, err := tzclock.WeekdayOfDate(date)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 1. Исключение на конкретную дату
	override, err := s.scheduleRepo.GetOverride(ctx, resourceID, locationID, date)
	switch {
	case err == nil:
		if !override.IsAvailable {
			s.logger.Info("Resolve: resource=%d location=%d date=%s closed by override id=%d",
				resourceID, locationID, date, override.ID)
			return domain.Resolution{Source: domain.SourceClosedByOverride}, nil
		}
		if err := validate(override); err != nil {
			return domain.Resolution{}, err
		}
		return domain.Resolution{Source: domain.SourceOverride, Schedule: override}, nil
	case !errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		s.logger.Error("Resolve: failed to get override: resource=%d location=%d date=%s: %v",
			resourceID, locationID, date, err)
		return domain.Resolution{}, fmt.Errorf("%w: Resolve - get override: %v", ErrInternal, err)
	}

	// 2. Еженедельное расписание
	recurring, err := s.scheduleRepo.GetRecurring(ctx, resourceID, locationID, weekday)
	switch {
	case err == nil:
		if err := validate(recurring); err != nil {
			return domain.Resolution{}, err
		}
		return domain.Resolution{Source: domain.SourceRecurring, Schedule: recurring}, nil
	case !errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		s.logger.Error("Resolve: failed to get recurring schedule: resource=%d location=%d weekday=%d: %v",
			resourceID, locationID, weekday, err)
		return domain.Resolution{}, fmt.Errorf("%w: Resolve - get recurring: %v", ErrInternal, err)
	}

	// 3. Нет расписания - закрыто
	return domain.Resolution{Source: domain.SourceClosed}, nil
}

func validate(s *domain.Schedule) error {
	if _, _, err := s.WorkingMinutes(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return nil
}
