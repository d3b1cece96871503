package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/records-browser/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ErrSnapshotNotFound - свежего снимка страницы нет.
var ErrSnapshotNotFound = errors.New("page snapshot not found")

// SnapshotRepository - интерфейс хранилища снимков страниц API.
type SnapshotRepository interface {
	GetPage(ctx context.Context, page, pageSize int, notBefore time.Time) (*models.RecordsPage, error)
	SavePage(ctx context.Context, page, pageSize int, recordsPage *models.RecordsPage) error
}

// PostgresSnapshotRepository - реализация SnapshotRepository для базы данных.
type PostgresSnapshotRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresSnapshotRepository создаёт новый экземпляр PostgresSnapshotRepository.
func NewPostgresSnapshotRepository(db *pgxpool.Pool) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{DB: db}
}

// GetPage возвращает снимок страницы, сохранённый не раньше notBefore.
func (r *PostgresSnapshotRepository) GetPage(ctx context.Context, page, pageSize int, notBefore time.Time) (*models.RecordsPage, error) {
	var body []byte
	query := `SELECT body FROM records_page_snapshot
	          WHERE page = $1 AND page_size = $2 AND fetched_at >= $3`
	err := r.DB.QueryRow(ctx, query, page, pageSize, notBefore).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read page snapshot: %w", err)
	}

	recordsPage, err := models.ParseRecordsPage(body)
	if err != nil {
		return nil, fmt.Errorf("stored page snapshot is corrupt: %w", err)
	}
	return recordsPage, nil
}

// SavePage сохраняет (или заменяет) снимок страницы.
func (r *PostgresSnapshotRepository) SavePage(ctx context.Context, page, pageSize int, recordsPage *models.RecordsPage) error {
	ocids := make([]string, 0, len(recordsPage.Records))
	for _, record := range recordsPage.Records {
		if id := record.Identifier(); id != "" {
			ocids = append(ocids, id)
		}
	}

	_, err := r.DB.Exec(ctx, `
       INSERT INTO records_page_snapshot (id, page, page_size, body, ocids, fetched_at)
       VALUES ($1, $2, $3, $4, $5, $6)
       ON CONFLICT (page, page_size) DO UPDATE
       SET body = EXCLUDED.body, ocids = EXCLUDED.ocids, fetched_at = EXCLUDED.fetched_at
   `,
		uuid.New().String(),
		page,
		pageSize,
		string(recordsPage.Raw),
		pq.Array(ocids),
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save page snapshot: %w", err)
	}
	return nil
}
