package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/psqlbuilder"
)

const table = "barbershop_settings"

var columns = []string{
	"barbershop_id",
	"slot_granularity_minutes",
	"timezone",
	"updated_at",
}

// Repository репозиторий настроек барбершопов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBarbershopID получает настройки барбершопа
// Если в контексте передана активная транзакция, использует её
func (r *Repository) GetByBarbershopID(ctx context.Context, barbershopID uuid.UUID) (*domain.BarbershopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectQuery(barbershopID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarbershopID - build select query: %w", ErrBuildQuery, err)
	}

	settings, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarbershopID - scan settings: %w", ErrScanRow, err)
	}

	return settings, nil
}

// UpsertGranularity сохраняет переопределение гранулярности (nil - сброс на глобальное значение)
// Строка настроек создаётся, если её ещё нет
func (r *Repository) UpsertGranularity(ctx context.Context, barbershopID uuid.UUID, minutes *int) (*domain.BarbershopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertGranularityQuery(barbershopID, minutes).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertGranularity - build upsert query: %w", ErrBuildQuery, err)
	}

	settings, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertGranularity - execute upsert: %w", ErrExecQuery, err)
	}

	return settings, nil
}

func selectQuery(barbershopID uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"barbershop_id": barbershopID.String()})
}

func upsertGranularityQuery(barbershopID uuid.UUID, minutes *int) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns("barbershop_id", "slot_granularity_minutes").
		Values(barbershopID.String(), minutes).
		Suffix("ON CONFLICT (barbershop_id) DO UPDATE SET " +
			"slot_granularity_minutes = EXCLUDED.slot_granularity_minutes, updated_at = now() " +
			"RETURNING barbershop_id, slot_granularity_minutes, timezone, updated_at")
}

func scanSettings(row *sql.Row) (*domain.BarbershopSettings, error) {
	var (
		settings    domain.BarbershopSettings
		granularity sql.NullInt32
		updatedAt   sql.NullTime
	)

	if err := row.Scan(&settings.BarbershopID, &granularity, &settings.Timezone, &updatedAt); err != nil {
		return nil, err
	}

	if granularity.Valid {
		minutes := int(granularity.Int32)
		settings.SlotGranularityMinutes = &minutes
	}
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}
