package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/senyabanana/records-browser/internal/models"

	"go.uber.org/zap"
)

// MaxPageSize - максимальный размер страницы, который можно запросить.
const MaxPageSize = 500

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, logger *zap.Logger, statusCode int, message string) {
	SendJSON(w, logger, statusCode, models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	})
}

// SendJSON отправляет value в формате JSON с кодом statusCode.
func SendJSON(w http.ResponseWriter, logger *zap.Logger, statusCode int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(value); err != nil && logger != nil {
		logger.Warn("failed to write response", zap.Error(err))
	}
}

// ParsePageParams обрабатывает page и page_size. Пустые значения заменяются
// на 1 и defaultPageSize.
func ParsePageParams(pageStr, pageSizeStr string, defaultPageSize int) (int, int, error) {
	page, pageSize := 1, defaultPageSize
	var err error

	if pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page parameter, must be a positive integer")
		}
	}

	if pageSizeStr != "" {
		pageSize, err = strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 || pageSize > MaxPageSize {
			return 0, 0, fmt.Errorf("invalid page_size parameter, must be a positive integer [1:%d]", MaxPageSize)
		}
	}

	return page, pageSize, nil
}

// ParsePageSize разбирает размер страницы из селектора; некорректное
// значение даёт 0, что контроллер трактует как размер по умолчанию.
func ParsePageSize(value string) int {
	size, err := strconv.Atoi(value)
	if err != nil || size < 1 || size > MaxPageSize {
		return 0
	}
	return size
}

// ParsePage разбирает номер страницы из ссылки навигации; некорректное
// значение даёт первую страницу.
func ParsePage(value string) int {
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseFilters читает фильтры из параметров запроса.
func ParseFilters(query url.Values) models.Filters {
	return models.Filters{
		Classification: query.Get("unspsc"),
		Department:     query.Get("department"),
		Buyer:          query.Get("buyer"),
		Description:    query.Get("description"),
	}.Normalize()
}
