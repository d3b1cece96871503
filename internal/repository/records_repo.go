package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/senyabanana/records-browser/internal/metrics"
	"github.com/senyabanana/records-browser/internal/models"

	"golang.org/x/time/rate"
)

// maxResponseSize ограничивает размер тела ответа API.
const maxResponseSize = 32 << 20

// RecordsRepository - интерфейс для получения страниц записей.
type RecordsRepository interface {
	FetchPage(ctx context.Context, page, pageSize int) (*models.RecordsPage, error)
}

// APIRecordsRepository - реализация RecordsRepository поверх HTTP API.
type APIRecordsRepository struct {
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewAPIRecordsRepository создаёт новый экземпляр APIRecordsRepository.
// Если limiter равен nil, ограничение частоты не применяется.
func NewAPIRecordsRepository(baseURL string, client *http.Client, limiter *rate.Limiter) *APIRecordsRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIRecordsRepository{BaseURL: baseURL, Client: client, Limiter: limiter}
}

// BuildURL собирает адрес запроса страницы: page, page_size и order=desc.
func (r *APIRecordsRepository) BuildURL(page, pageSize int) (string, error) {
	u, err := url.Parse(r.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid records api url: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("order", "desc")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPage запрашивает одну страницу записей.
func (r *APIRecordsRepository) FetchPage(ctx context.Context, page, pageSize int) (*models.RecordsPage, error) {
	started := time.Now()
	recordsPage, err := r.fetch(ctx, page, pageSize)
	metrics.UpstreamDuration.Observe(time.Since(started).Seconds())

	switch {
	case err == nil:
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	case errors.Is(err, context.Canceled):
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeCancelled).Inc()
	default:
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
	}
	return recordsPage, err
}

func (r *APIRecordsRepository) fetch(ctx context.Context, page, pageSize int) (*models.RecordsPage, error) {
	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	requestURL, err := r.BuildURL(page, pageSize)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query records api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error %d querying records api", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read records response: %w", err)
	}

	return models.ParseRecordsPage(body)
}
