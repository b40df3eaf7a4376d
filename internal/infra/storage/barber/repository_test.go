package barber

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shopID   = uuid.MustParse("5b1f6c1e-8d7a-4f0e-9c1a-1f2e3d4c5b6a")
	barberID = uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000001")
)

func TestRosterQuery(t *testing.T) {
	query, args, err := rosterQuery(shopID, nil).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "FROM barbers b LEFT JOIN barber_services bs ON bs.barber_id = b.id")
	assert.Contains(t, query, "WHERE b.barbershop_id = $1")
	assert.Contains(t, query, "GROUP BY b.id ORDER BY b.created_at ASC, b.id ASC")
	assert.Equal(t, []interface{}{shopID.String()}, args)
}

func TestRosterQuery_SingleBarber(t *testing.T) {
	query, args, err := rosterQuery(shopID, &barberID).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE b.barbershop_id = $1 AND b.id = $2")
	assert.Equal(t, []interface{}{shopID.String(), barberID.String()}, args)
}

// rowFunc подставляет значения в Scan так, как это сделал бы database/sql
type rowFunc func(dest ...interface{}) error

func (f rowFunc) Scan(dest ...interface{}) error { return f(dest...) }

func TestScanBarber(t *testing.T) {
	service := uuid.MustParse("00000000-0000-4000-8000-000000000011")
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	row := rowFunc(func(dest ...interface{}) error {
		*dest[0].(*uuid.UUID) = barberID
		*dest[1].(*uuid.UUID) = shopID
		*dest[2].(*string) = "Ana"
		*dest[3].(*bool) = true
		if err := dest[4].(interface{ Scan(interface{}) error }).Scan(created); err != nil {
			return err
		}
		return dest[5].(*pq.StringArray).Scan([]byte("{" + service.String() + "}"))
	})

	barber, err := scanBarber(row)

	require.NoError(t, err)
	assert.Equal(t, barberID, barber.ID)
	assert.Equal(t, "Ana", barber.Name)
	assert.Equal(t, created, barber.CreatedAt)
	assert.Equal(t, []uuid.UUID{service}, barber.ServiceIDs)
}

func TestScanBarber_Error(t *testing.T) {
	boom := errors.New("boom")

	_, err := scanBarber(rowFunc(func(...interface{}) error { return boom }))

	assert.ErrorIs(t, err, boom)
}
