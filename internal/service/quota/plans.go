package quota

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Plans неизменяемая таблица планов. Создаётся один раз из конфигурации и передаётся в Service.
type Plans struct {
	byID      map[string]domain.Plan
	defaultID string
}

// NewPlans проверяет и копирует таблицу планов
func NewPlans(defaultID string, plans []domain.Plan) (Plans, error) {
	byID := make(map[string]domain.Plan, len(plans))
	for _, p := range plans {
		if p.ID == "" {
			return Plans{}, fmt.Errorf("%w: plan without id", ErrInvalidPlans)
		}
		if _, dup := byID[p.ID]; dup {
			return Plans{}, fmt.Errorf("%w: duplicate plan %q", ErrInvalidPlans, p.ID)
		}
		if p.Limit != nil && *p.Limit < 0 {
			return Plans{}, fmt.Errorf("%w: plan %q has negative limit", ErrInvalidPlans, p.ID)
		}

		plan := domain.Plan{ID: p.ID}
		if p.Limit != nil {
			limit := *p.Limit
			plan.Limit = &limit
		}
		byID[p.ID] = plan
	}

	if _, ok := byID[defaultID]; !ok {
		return Plans{}, fmt.Errorf("%w: default plan %q is not defined", ErrInvalidPlans, defaultID)
	}

	return Plans{byID: byID, defaultID: defaultID}, nil
}

// Default план для тенантов без записи использования
func (p Plans) Default() domain.Plan {
	return p.copyOf(p.byID[p.defaultID])
}

// Lookup ищет план по id
func (p Plans) Lookup(id string) (domain.Plan, bool) {
	plan, ok := p.byID[id]
	if !ok {
		return domain.Plan{}, false
	}
	return p.copyOf(plan), true
}

// IDs отсортированный список планов
func (p Plans) IDs() []string {
	ids := make([]string, 0, len(p.byID))
	for id := range p.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p Plans) copyOf(plan domain.Plan) domain.Plan {
	if plan.Limit != nil {
		limit := *plan.Limit
		plan.Limit = &limit
	}
	return plan
}
