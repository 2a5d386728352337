package middleware

import "context"

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyTenantID
)

// GetRequestID возвращает id запроса из контекста
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// GetTenantID возвращает тенанта вызывающего, если заголовок был передан
func GetTenantID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxKeyTenantID).(int64)
	return v, ok
}

// WithTenantID кладёт тенанта в контекст
func WithTenantID(ctx context.Context, tenantID int64) context.Context {
	return context.WithValue(ctx, ctxKeyTenantID, tenantID)
}
