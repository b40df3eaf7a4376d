package appointment

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

var appointmentColumns = []string{
	"id",
	"barbershop_id",
	"barber_id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"starts_at",
	"ends_at",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись вместе со строками услуг и первой строкой истории статусов.
// Три вставки должны быть атомарны, поэтому метод работает только внутри транзакции из контекста.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment, services []domain.AppointmentService) (*domain.Appointment, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}

	query, args, err := insertAppointmentQuery(appt).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	if len(services) > 0 {
		query, args, err = insertServicesQuery(appt.ID, services).ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build services insert: %w", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - insert services: %w", ErrExecQuery, err)
		}
	}

	query, args, err = insertStatusChangeQuery(domain.AppointmentStatusChange{
		AppointmentID: appt.ID,
		ToStatus:      appt.Status,
		Reason:        "created",
	}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build history insert: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - insert status history: %w", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID получает запись барбершопа по ID
func (r *Repository) GetByID(ctx context.Context, barbershopID, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"id":            id.String(),
			"barbershop_id": barbershopID.String(),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var appt domain.Appointment
	err = scanAppointment(executor.QueryRowContext(ctx, query, args...), &appt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return &appt, nil
}

// List возвращает записи, пересекающие [From, To)
//
// Примеры использования:
//
//  1. Все занятые интервалы барбершопа за день:
//     filter := domain.AppointmentFilter{BarbershopID: shop, From: dayStart, To: dayEnd}
//
//  2. Записи одного барбера с блокировкой строк (внутри транзакции создания записи):
//     filter := domain.AppointmentFilter{BarbershopID: shop, BarberID: &barber, From: dayStart, To: dayEnd, ForUpdate: true}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var appt domain.Appointment
		if err := scanAppointment(rows, &appt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// ListServices возвращает строки услуг записи
func (r *Repository) ListServices(ctx context.Context, appointmentID uuid.UUID) ([]domain.AppointmentService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"appointment_id",
		"service_id",
		"service_name",
		"duration_minutes",
		"buffer_minutes",
		"price_cents",
	).
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID.String()}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.AppointmentService, 0)
	for rows.Next() {
		var line domain.AppointmentService
		err := rows.Scan(
			&line.AppointmentID,
			&line.ServiceID,
			&line.ServiceName,
			&line.DurationMinutes,
			&line.BufferMinutes,
			&line.PriceCents,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %w", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %w", ErrScanRow, err)
	}

	return lines, nil
}

// UpdateStatus переводит запись из статуса from в статус to и пишет строку истории.
// Если запись уже не в статусе from, возвращает ErrAppointmentNotFound.
func (r *Repository) UpdateStatus(ctx context.Context, change domain.AppointmentStatusChange, barbershopID uuid.UUID) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateStatusQuery(change, barbershopID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	query, args, err = insertStatusChangeQuery(change).ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build history insert: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateStatus - insert status history: %w", ErrExecQuery, err)
	}

	return nil
}

func updateStatusQuery(change domain.AppointmentStatusChange, barbershopID uuid.UUID) squirrel.UpdateBuilder {
	builder := psqlbuilder.Update("appointments").
		Set("status", string(change.ToStatus)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":            change.AppointmentID.String(),
			"barbershop_id": barbershopID.String(),
		})

	if change.FromStatus != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*change.FromStatus)})
	}
	return builder
}

func insertAppointmentQuery(appt *domain.Appointment) squirrel.InsertBuilder {
	var barberID interface{}
	if appt.BarberID != nil {
		barberID = appt.BarberID.String()
	}

	return psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"barbershop_id",
			"barber_id",
			"customer_name",
			"customer_phone",
			"customer_email",
			"starts_at",
			"ends_at",
			"status",
		).
		Values(
			appt.ID.String(),
			appt.BarbershopID.String(),
			barberID,
			appt.CustomerName,
			appt.CustomerPhone,
			appt.CustomerEmail,
			appt.StartsAt,
			appt.EndsAt,
			string(appt.Status),
		).
		Suffix("RETURNING created_at, updated_at")
}

func insertServicesQuery(appointmentID uuid.UUID, services []domain.AppointmentService) squirrel.InsertBuilder {
	builder := psqlbuilder.Insert("appointment_services").
		Columns(
			"appointment_id",
			"position",
			"service_id",
			"service_name",
			"duration_minutes",
			"buffer_minutes",
			"price_cents",
		)

	for i, s := range services {
		builder = builder.Values(
			appointmentID.String(),
			i,
			s.ServiceID.String(),
			s.ServiceName,
			s.DurationMinutes,
			s.BufferMinutes,
			s.PriceCents,
		)
	}
	return builder
}

func insertStatusChangeQuery(change domain.AppointmentStatusChange) squirrel.InsertBuilder {
	var from interface{}
	if change.FromStatus != nil {
		from = string(*change.FromStatus)
	}

	return psqlbuilder.Insert("appointment_status_history").
		Columns("appointment_id", "from_status", "to_status", "reason").
		Values(change.AppointmentID.String(), from, string(change.ToStatus), change.Reason)
}

func listQuery(filter domain.AppointmentFilter, inTx bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"barbershop_id": filter.BarbershopID.String()}).
		Where(squirrel.Lt{"starts_at": filter.To}).
		Where(squirrel.Gt{"ends_at": filter.From})

	if filter.BarberID != nil {
		builder = builder.Where(squirrel.Eq{"barber_id": filter.BarberID.String()})
	}

	if !filter.IncludeCanceled {
		builder = builder.Where(squirrel.NotEq{"status": string(domain.StatusCanceled)})
	}

	builder = builder.OrderBy("starts_at ASC", "id ASC")

	// Блокировка имеет смысл только в транзакции
	if filter.ForUpdate && inTx {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row scanner, appt *domain.Appointment) error {
	var (
		barberID             uuid.NullUUID
		email                sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.BarbershopID,
		&barberID,
		&appt.CustomerName,
		&appt.CustomerPhone,
		&email,
		&appt.StartsAt,
		&appt.EndsAt,
		&appt.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	if barberID.Valid {
		id := barberID.UUID
		appt.BarberID = &id
	}
	if email.Valid {
		appt.CustomerEmail = &email.String
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return nil
}
