package appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

var (
	shopID   = uuid.MustParse("5b1f6c1e-8d7a-4f0e-9c1a-1f2e3d4c5b6a")
	barberID = uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000001")
	dayStart = time.Date(2024, 1, 22, 3, 0, 0, 0, time.UTC)
	dayEnd   = dayStart.Add(24 * time.Hour)
)

func TestListQuery_ExcludesCanceledByDefault(t *testing.T) {
	query, args, err := listQuery(domain.AppointmentFilter{
		BarbershopID: shopID,
		From:         dayStart,
		To:           dayEnd,
	}, false).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE barbershop_id = $1 AND starts_at < $2 AND ends_at > $3 AND status <> $4")
	assert.Contains(t, query, "ORDER BY starts_at ASC, id ASC")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{shopID.String(), dayEnd, dayStart, "CANCELED"}, args)
}

func TestListQuery_BarberAndLock(t *testing.T) {
	filter := domain.AppointmentFilter{
		BarbershopID:    shopID,
		BarberID:        &barberID,
		From:            dayStart,
		To:              dayEnd,
		IncludeCanceled: true,
		ForUpdate:       true,
	}

	query, args, err := listQuery(filter, true).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "AND barber_id = $4")
	assert.NotContains(t, query, "status <>")
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE"))
	assert.Len(t, args, 4)

	query, _, err = listQuery(filter, false).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "FOR UPDATE")
}

func TestInsertAppointmentQuery(t *testing.T) {
	appt := &domain.Appointment{
		ID:            uuid.MustParse("99999999-0000-4000-8000-000000000001"),
		BarbershopID:  shopID,
		CustomerName:  "Joao",
		CustomerPhone: "+5511999999999",
		StartsAt:      dayStart.Add(12 * time.Hour),
		EndsAt:        dayStart.Add(12*time.Hour + 30*time.Minute),
		Status:        domain.StatusConfirmed,
	}

	query, args, err := insertAppointmentQuery(appt).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO appointments")
	assert.Contains(t, query, "RETURNING created_at, updated_at")
	require.Len(t, args, 9)
	assert.Equal(t, appt.ID.String(), args[0])
	assert.Nil(t, args[2], "no barber assigned")
	assert.Equal(t, "CONFIRMED", args[8])

	appt.BarberID = &barberID
	_, args, err = insertAppointmentQuery(appt).ToSql()
	require.NoError(t, err)
	assert.Equal(t, barberID.String(), args[2])
}

func TestInsertServicesQuery_KeepsOrder(t *testing.T) {
	apptID := uuid.New()
	first, second := uuid.New(), uuid.New()

	query, args, err := insertServicesQuery(apptID, []domain.AppointmentService{
		{ServiceID: first, ServiceName: "Corte", DurationMinutes: 30},
		{ServiceID: second, ServiceName: "Barba", DurationMinutes: 20, BufferMinutes: 5},
	}).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "VALUES ($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14)")
	assert.Equal(t, 0, args[1])
	assert.Equal(t, first.String(), args[2])
	assert.Equal(t, 1, args[8])
	assert.Equal(t, second.String(), args[9])
}

func TestInsertStatusChangeQuery(t *testing.T) {
	apptID := uuid.New()
	from := domain.StatusConfirmed

	_, args, err := insertStatusChangeQuery(domain.AppointmentStatusChange{
		AppointmentID: apptID,
		ToStatus:      domain.StatusConfirmed,
		Reason:        "created",
	}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{apptID.String(), nil, "CONFIRMED", "created"}, args)

	_, args, err = insertStatusChangeQuery(domain.AppointmentStatusChange{
		AppointmentID: apptID,
		FromStatus:    &from,
		ToStatus:      domain.StatusCanceled,
	}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", args[1])
}

func TestCreate_RequiresTransaction(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.Create(context.Background(), &domain.Appointment{}, nil)

	assert.ErrorIs(t, err, ErrTransactionRequired)
}

func TestUpdateStatusQuery_GuardsCurrentStatus(t *testing.T) {
	apptID := uuid.MustParse("99999999-0000-4000-8000-000000000002")
	from := domain.StatusConfirmed

	query, args, err := updateStatusQuery(domain.AppointmentStatusChange{
		AppointmentID: apptID,
		FromStatus:    &from,
		ToStatus:      domain.StatusCanceled,
	}, shopID).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE appointments SET status = $1, updated_at = NOW() WHERE barbershop_id = $2 AND id = $3 AND status = $4",
		query)
	assert.Equal(t, []interface{}{"CANCELED", shopID.String(), apptID.String(), "CONFIRMED"}, args)
}

func TestUpdateStatus_RequiresTransaction(t *testing.T) {
	repo := NewRepository(nil)

	err := repo.UpdateStatus(context.Background(), domain.AppointmentStatusChange{}, shopID)

	assert.ErrorIs(t, err, ErrTransactionRequired)
}
