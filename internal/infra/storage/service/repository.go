package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/psqlbuilder"
)

// Repository репозиторий услуг барбершопа
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs возвращает услуги барбершопа с указанными ID (включая неактивные).
// Отсутствующие ID просто не попадают в результат, проверка полноты - на вызывающей стороне.
func (r *Repository) GetByIDs(ctx context.Context, barbershopID uuid.UUID, ids []uuid.UUID) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}
	return r.list(ctx, "GetByIDs", byIDsQuery(barbershopID, ids))
}

// ListByBarbershop возвращает все услуги барбершопа
func (r *Repository) ListByBarbershop(ctx context.Context, barbershopID uuid.UUID) ([]domain.Service, error) {
	return r.list(ctx, "ListByBarbershop", baseQuery(barbershopID))
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := scanService(rows, &s); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return services, nil
}

func baseQuery(barbershopID uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"barbershop_id",
		"name",
		"duration_minutes",
		"buffer_minutes",
		"price_cents",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"barbershop_id": barbershopID.String()}).
		OrderBy("name ASC")
}

func byIDsQuery(barbershopID uuid.UUID, ids []uuid.UUID) squirrel.SelectBuilder {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	return baseQuery(barbershopID).Where(squirrel.Eq{"id": raw})
}

func scanService(rows *sql.Rows, s *domain.Service) error {
	return rows.Scan(
		&s.ID,
		&s.BarbershopID,
		&s.Name,
		&s.DurationMinutes,
		&s.BufferMinutes,
		&s.PriceCents,
		&s.IsActive,
	)
}
