package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shopID = uuid.MustParse("5b1f6c1e-8d7a-4f0e-9c1a-1f2e3d4c5b6a")

func TestByIDsQuery(t *testing.T) {
	first := uuid.MustParse("00000000-0000-4000-8000-000000000011")
	second := uuid.MustParse("00000000-0000-4000-8000-000000000012")

	query, args, err := byIDsQuery(shopID, []uuid.UUID{first, second}).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, barbershop_id, name, duration_minutes, buffer_minutes, price_cents, is_active "+
			"FROM services WHERE barbershop_id = $1 AND id IN ($2,$3) ORDER BY name ASC",
		query)
	assert.Equal(t, []interface{}{shopID.String(), first.String(), second.String()}, args)
}
