package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/records-browser/internal/models"
	"github.com/senyabanana/records-browser/internal/render"
	"github.com/senyabanana/records-browser/internal/services"
	"github.com/senyabanana/records-browser/internal/utils"

	"go.uber.org/zap"
)

// RecordsHandler - структура для обработки HTTP-запросов к записям.
type RecordsHandler struct {
	Service         *services.RecordsService
	Logger          *zap.Logger
	Timeout         time.Duration
	DefaultPageSize int
}

// NewRecordsHandler создаёт новый экземпляр RecordsHandler.
func NewRecordsHandler(service *services.RecordsService, logger *zap.Logger, timeout time.Duration, defaultPageSize int) *RecordsHandler {
	return &RecordsHandler{
		Service:         service,
		Logger:          logger,
		Timeout:         timeout,
		DefaultPageSize: defaultPageSize,
	}
}

// recordsResponse - ответ GET /api/records.
type recordsResponse struct {
	*models.RecordsResult
	Rows         []render.Row `json:"rows"`
	EmptyMessage string       `json:"emptyMessage,omitempty"`
	SummaryText  string       `json:"summaryText"`
	PageInfo     string       `json:"pageInfo"`
}

// GetRecords обрабатывает запросы для получения отфильтрованной страницы записей.
func (h *RecordsHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	page, pageSize, err := utils.ParsePageParams(query.Get("page"), query.Get("page_size"), h.DefaultPageSize)
	if err != nil {
		utils.SendErrorResponse(w, h.Logger, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.FetchRecords(ctx, page, pageSize, utils.ParseFilters(query))
	if err != nil {
		if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
			return
		}
		var errorResponse *models.ErrorResponse
		if errors.As(err, &errorResponse) {
			utils.SendErrorResponse(w, h.Logger, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error("failed to fetch records", zap.Int("page", page), zap.Int("pageSize", pageSize), zap.Error(err))
		utils.SendErrorResponse(w, h.Logger, http.StatusBadGateway, render.FetchFailed)
		return
	}

	rows := render.BuildRows(result.Records)
	resp := recordsResponse{
		RecordsResult: result,
		Rows:          rows,
		SummaryText:   result.Summary.Text(),
		PageInfo:      result.Summary.PageInfo(result.Page),
	}
	if len(rows) == 0 {
		resp.EmptyMessage = render.NoResults
	}
	utils.SendJSON(w, h.Logger, http.StatusOK, resp)
}
