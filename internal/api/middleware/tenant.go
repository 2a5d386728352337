package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

// TenantHeader заголовок тенанта вызывающего
const TenantHeader = "X-Tenant-ID"

const msgInvalidTenantID = "некорректный X-Tenant-ID"

// Tenant разбирает необязательный X-Tenant-ID. Без заголовка тенант берётся из локации.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(TenantHeader))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidTenantID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}
