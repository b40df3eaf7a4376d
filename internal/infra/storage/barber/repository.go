package barber

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/psqlbuilder"
)

// Repository репозиторий барберов вместе с услугами, которые они выполняют
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория барберов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByBarbershop возвращает весь состав барбершопа (включая неактивных)
// Порядок: created_at, id
func (r *Repository) ListByBarbershop(ctx context.Context, barbershopID uuid.UUID) ([]domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := rosterQuery(barbershopID, nil).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarbershop - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarbershop - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]domain.Barber, 0)
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBarbershop - scan row: %w", ErrScanRow, err)
		}
		barbers = append(barbers, *barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBarbershop - rows error: %w", ErrScanRow, err)
	}

	return barbers, nil
}

// GetByID получает барбера барбершопа
func (r *Repository) GetByID(ctx context.Context, barbershopID, barberID uuid.UUID) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := rosterQuery(barbershopID, &barberID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	barber, err := scanBarber(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan barber: %w", ErrScanRow, err)
	}

	return barber, nil
}

// rosterQuery выбирает барберов с агрегированным списком услуг
func rosterQuery(barbershopID uuid.UUID, barberID *uuid.UUID) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(
		"b.id",
		"b.barbershop_id",
		"b.name",
		"b.is_active",
		"b.created_at",
		"COALESCE(array_agg(bs.service_id::text) FILTER (WHERE bs.service_id IS NOT NULL), '{}')",
	).
		From("barbers b").
		LeftJoin("barber_services bs ON bs.barber_id = b.id").
		Where(squirrel.Eq{"b.barbershop_id": barbershopID.String()})

	if barberID != nil {
		builder = builder.Where(squirrel.Eq{"b.id": barberID.String()})
	}

	return builder.
		GroupBy("b.id").
		OrderBy("b.created_at ASC", "b.id ASC")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBarber(row scanner) (*domain.Barber, error) {
	var (
		barber     domain.Barber
		serviceIDs []string
		createdAt  sql.NullTime
	)

	err := row.Scan(
		&barber.ID,
		&barber.BarbershopID,
		&barber.Name,
		&barber.IsActive,
		&createdAt,
		pq.Array(&serviceIDs),
	)
	if err != nil {
		return nil, err
	}

	barber.CreatedAt = createdAt.Time
	barber.ServiceIDs = make([]uuid.UUID, 0, len(serviceIDs))
	for _, raw := range serviceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("service id %q: %v", raw, err)
		}
		barber.ServiceIDs = append(barber.ServiceIDs, id)
	}

	return &barber, nil
}
