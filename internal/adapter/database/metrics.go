package database

import (
	"context"

	"loginapp/internal/core/domain"
	"loginapp/internal/core/port"
	"loginapp/internal/core/telemetry"
)

const usersTable = "users"

// MetricsRepository counts every call made against the wrapped backend.
type MetricsRepository struct {
	repo    port.UserRepository
	metrics *telemetry.AppMetrics
}

func NewMetricsRepository(repo port.UserRepository, metrics *telemetry.AppMetrics) *MetricsRepository {
	return &MetricsRepository{repo: repo, metrics: metrics}
}

func (m *MetricsRepository) LoadByEmail(ctx context.Context, email string) (domain.UserRecord, bool, error) {
	m.metrics.RecordDatabaseOperation(ctx, "load_by_email", usersTable)
	return m.repo.LoadByEmail(ctx, email)
}

func (m *MetricsRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.metrics.RecordDatabaseOperation(ctx, "get_by_email", usersTable)
	return m.repo.GetByEmail(ctx, email)
}

func (m *MetricsRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	m.metrics.RecordDatabaseOperation(ctx, "create", usersTable)
	return m.repo.Create(ctx, user)
}

func (m *MetricsRepository) UpdateAccessToken(ctx context.Context, userID domain.UserID, token domain.AccessToken) error {
	m.metrics.RecordDatabaseOperation(ctx, "update_access_token", usersTable)
	return m.repo.UpdateAccessToken(ctx, userID, token)
}
