package services

import (
	"context"
	"net/http"

	"github.com/senyabanana/records-browser/internal/models"
	"github.com/senyabanana/records-browser/internal/repository"
)

// RecordsService загружает страницы записей и применяет к ним фильтры.
type RecordsService struct {
	Repo repository.RecordsRepository
}

// NewRecordsService создаёт новый экземпляр RecordsService.
func NewRecordsService(repo repository.RecordsRepository) *RecordsService {
	return &RecordsService{Repo: repo}
}

// FetchRecords загружает страницу page размера pageSize и фильтрует её.
func (s *RecordsService) FetchRecords(ctx context.Context, page, pageSize int, filters models.Filters) (*models.RecordsResult, error) {
	if page < 1 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "page must be a positive integer")
	}
	if pageSize < 1 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "page_size must be a positive integer")
	}

	recordsPage, err := s.Repo.FetchPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(recordsPage.Records, filters.Normalize())
	prevDisabled, nextDisabled := models.NavigationState(page, pageSize, len(recordsPage.Records), recordsPage.TotalPages)

	return &models.RecordsResult{
		Page:     page,
		PageSize: pageSize,
		Records:  filtered,
		Summary: models.Summary{
			FetchedCount:  len(recordsPage.Records),
			FilteredCount: len(filtered),
			TotalRecords:  recordsPage.TotalRecords,
			TotalPages:    recordsPage.TotalPages,
		},
		PrevDisabled: prevDisabled,
		NextDisabled: nextDisabled,
	}, nil
}
