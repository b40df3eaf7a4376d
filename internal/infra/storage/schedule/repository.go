package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/psqlbuilder"
)

// Repository репозиторий расписания: рабочие периоды и блокировки барберов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWorkingPeriods возвращает активные рабочие периоды барбершопа на день недели
// barberID == nil - периоды всех барберов
func (r *Repository) ListWorkingPeriods(ctx context.Context, barbershopID uuid.UUID, barberID *uuid.UUID, weekday time.Weekday) ([]domain.WorkingPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := workingPeriodsQuery(barbershopID, barberID, weekday).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingPeriods - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingPeriods - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make([]domain.WorkingPeriod, 0)
	for rows.Next() {
		var p domain.WorkingPeriod
		err := rows.Scan(
			&p.ID,
			&p.BarberID,
			&p.BarbershopID,
			&p.Weekday,
			&p.StartTime,
			&p.EndTime,
			&p.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWorkingPeriods - scan row: %w", ErrScanRow, err)
		}
		periods = append(periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkingPeriods - rows error: %w", ErrScanRow, err)
	}

	return periods, nil
}

// ListBlockedIntervals возвращает активные блокировки, пересекающие [From, To)
func (r *Repository) ListBlockedIntervals(ctx context.Context, filter domain.BlockedIntervalFilter) ([]domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := blockedIntervalsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.BlockedInterval, 0)
	for rows.Next() {
		var b domain.BlockedInterval
		err := rows.Scan(
			&b.ID,
			&b.BarberID,
			&b.BarbershopID,
			&b.StartsAt,
			&b.EndsAt,
			&b.Reason,
			&b.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBlockedIntervals - scan row: %w", ErrScanRow, err)
		}
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

func workingPeriodsQuery(barbershopID uuid.UUID, barberID *uuid.UUID, weekday time.Weekday) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(
		"id",
		"barber_id",
		"barbershop_id",
		"weekday",
		"start_time",
		"end_time",
		"is_active",
	).
		From("working_periods").
		Where(squirrel.Eq{
			"barbershop_id": barbershopID.String(),
			"weekday":       int(weekday),
			"is_active":     true,
		})

	if barberID != nil {
		builder = builder.Where(squirrel.Eq{"barber_id": barberID.String()})
	}

	return builder.OrderBy("barber_id ASC", "start_time ASC")
}

func blockedIntervalsQuery(filter domain.BlockedIntervalFilter) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(
		"id",
		"barber_id",
		"barbershop_id",
		"starts_at",
		"ends_at",
		"reason",
		"is_active",
	).
		From("blocked_intervals").
		Where(squirrel.Eq{
			"barbershop_id": filter.BarbershopID.String(),
			"is_active":     true,
		}).
		Where(squirrel.Lt{"starts_at": filter.To}).
		Where(squirrel.Gt{"ends_at": filter.From})

	if filter.BarberID != nil {
		builder = builder.Where(squirrel.Eq{"barber_id": filter.BarberID.String()})
	}

	return builder.OrderBy("starts_at ASC")
}
