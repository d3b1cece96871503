package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/records-browser/internal/models"
	"github.com/senyabanana/records-browser/internal/repository"
)

type sourceMock struct{ mock.Mock }

func (m *sourceMock) FetchPage(ctx context.Context, page, pageSize int) (*models.RecordsPage, error) {
	args := m.Called(ctx, page, pageSize)
	if p := args.Get(0); p != nil {
		return p.(*models.RecordsPage), args.Error(1)
	}
	return nil, args.Error(1)
}

type snapshotsMock struct{ mock.Mock }

func (m *snapshotsMock) GetPage(ctx context.Context, page, pageSize int, notBefore time.Time) (*models.RecordsPage, error) {
	args := m.Called(ctx, page, pageSize, notBefore)
	if p := args.Get(0); p != nil {
		return p.(*models.RecordsPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *snapshotsMock) SavePage(ctx context.Context, page, pageSize int, recordsPage *models.RecordsPage) error {
	return m.Called(ctx, page, pageSize, recordsPage).Error(0)
}

func TestCachedRecordsRepository_Hit(t *testing.T) {
	ctx := context.Background()
	cached := &models.RecordsPage{Records: []models.Record{{OCID: "cached"}}}

	source := &sourceMock{}
	snapshots := &snapshotsMock{}
	snapshots.On("GetPage", ctx, 1, 50, mock.Anything).Return(cached, nil)

	repo := repository.NewCachedRecordsRepository(source, snapshots, time.Minute, nil)
	page, err := repo.FetchPage(ctx, 1, 50)
	require.NoError(t, err)
	require.Same(t, cached, page)
	source.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedRecordsRepository_MissFetchesAndSaves(t *testing.T) {
	ctx := context.Background()
	fresh := &models.RecordsPage{Records: []models.Record{{OCID: "fresh"}}}

	source := &sourceMock{}
	source.On("FetchPage", ctx, 2, 10).Return(fresh, nil)
	snapshots := &snapshotsMock{}
	snapshots.On("GetPage", ctx, 2, 10, mock.Anything).Return(nil, repository.ErrSnapshotNotFound)
	snapshots.On("SavePage", ctx, 2, 10, fresh).Return(nil)

	repo := repository.NewCachedRecordsRepository(source, snapshots, time.Minute, nil)
	page, err := repo.FetchPage(ctx, 2, 10)
	require.NoError(t, err)
	require.Same(t, fresh, page)
	snapshots.AssertExpectations(t)
}

func TestCachedRecordsRepository_StoreErrorsAreNotFatal(t *testing.T) {
	ctx := context.Background()
	fresh := &models.RecordsPage{Records: []models.Record{}}

	source := &sourceMock{}
	source.On("FetchPage", ctx, 1, 50).Return(fresh, nil)
	snapshots := &snapshotsMock{}
	snapshots.On("GetPage", ctx, 1, 50, mock.Anything).Return(nil, errors.New("connection refused"))
	snapshots.On("SavePage", ctx, 1, 50, fresh).Return(errors.New("connection refused"))

	repo := repository.NewCachedRecordsRepository(source, snapshots, time.Minute, nil)
	page, err := repo.FetchPage(ctx, 1, 50)
	require.NoError(t, err)
	require.Same(t, fresh, page)
}

func TestCachedRecordsRepository_SourceErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	source := &sourceMock{}
	source.On("FetchPage", ctx, 1, 50).Return(nil, errors.New("error 500 querying records api"))
	snapshots := &snapshotsMock{}
	snapshots.On("GetPage", ctx, 1, 50, mock.Anything).Return(nil, repository.ErrSnapshotNotFound)

	repo := repository.NewCachedRecordsRepository(source, snapshots, time.Minute, nil)
	_, err := repo.FetchPage(ctx, 1, 50)
	require.Error(t, err)
	snapshots.AssertNotCalled(t, "SavePage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
