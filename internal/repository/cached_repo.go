package repository

import (
	"context"
	"errors"
	"time"

	"github.com/senyabanana/records-browser/internal/metrics"
	"github.com/senyabanana/records-browser/internal/models"

	"go.uber.org/zap"
)

// CachedRecordsRepository отдаёт свежие снимки страниц из хранилища,
// а при их отсутствии обращается к API и сохраняет результат.
// Ошибки хранилища только логируются.
type CachedRecordsRepository struct {
	Source    RecordsRepository
	Snapshots SnapshotRepository
	TTL       time.Duration
	Logger    *zap.Logger
	now       func() time.Time
}

// NewCachedRecordsRepository создаёт новый экземпляр CachedRecordsRepository.
func NewCachedRecordsRepository(source RecordsRepository, snapshots SnapshotRepository, ttl time.Duration, logger *zap.Logger) *CachedRecordsRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRecordsRepository{
		Source:    source,
		Snapshots: snapshots,
		TTL:       ttl,
		Logger:    logger,
		now:       time.Now,
	}
}

// FetchPage возвращает страницу из кэша или из API.
func (r *CachedRecordsRepository) FetchPage(ctx context.Context, page, pageSize int) (*models.RecordsPage, error) {
	notBefore := r.now().Add(-r.TTL)
	cached, err := r.Snapshots.GetPage(ctx, page, pageSize, notBefore)
	switch {
	case err == nil:
		metrics.SnapshotLookups.WithLabelValues("hit").Inc()
		return cached, nil
	case errors.Is(err, ErrSnapshotNotFound):
		metrics.SnapshotLookups.WithLabelValues("miss").Inc()
	default:
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.SnapshotLookups.WithLabelValues("error").Inc()
		r.Logger.Warn("page snapshot lookup failed", zap.Int("page", page), zap.Int("pageSize", pageSize), zap.Error(err))
	}

	fresh, err := r.Source.FetchPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	if err := r.Snapshots.SavePage(ctx, page, pageSize, fresh); err != nil {
		r.Logger.Warn("page snapshot save failed", zap.Int("page", page), zap.Int("pageSize", pageSize), zap.Error(err))
	}
	return fresh, nil
}
