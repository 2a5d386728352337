package domain

import "time"

// UsageCycleLength длина скользящего окна учёта использования
const UsageCycleLength = 30 * 24 * time.Hour

// UsageCycle is the rolling usage counter of a tenant
type UsageCycle struct {
	TenantID     int64
	PlanID       string
	CurrentUsage int
	CycleStart   time.Time
	UpdatedAt    time.Time
}

// Expired returns true when the cycle must be reset before use
func (u *UsageCycle) Expired(now time.Time) bool {
	return now.Sub(u.CycleStart) >= UsageCycleLength
}

// CycleEnd returns the moment the current cycle expires
func (u *UsageCycle) CycleEnd() time.Time {
	return u.CycleStart.Add(UsageCycleLength)
}

// Plan is a subscription plan. Nil Limit means unbounded.
type Plan struct {
	ID    string
	Limit *int
}

// Unbounded returns true if the plan has no usage limit
func (p Plan) Unbounded() bool {
	return p.Limit == nil
}

// Allows returns true if one more unit of usage fits the plan
func (p Plan) Allows(usage int) bool {
	return p.Unbounded() || usage < *p.Limit
}
