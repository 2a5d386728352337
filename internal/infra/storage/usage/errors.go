package usage

import "errors"

var (
	// ErrUsageNotFound возвращается, когда у тенанта ещё нет записи использования
	ErrUsageNotFound = errors.New("usage.repository: usage not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("usage.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("usage.repository: failed to execute query")
)
