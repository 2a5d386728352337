package get_tenant_usage

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
)

type QuotaService interface {
	GetUsage(ctx context.Context, tenantID int64) (*quota.Status, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
