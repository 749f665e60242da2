package gametype

import (
	"testing"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGameTypeIdempotentOnName(t *testing.T) {
	svc := &gameTypeService{db: testdb.New(t)}

	first, created, pwt := svc.createGameType("Chess", "u1")
	require.Nil(t, pwt)
	assert.True(t, created)

	second, created, pwt := svc.createGameType("  chess ", "u2")
	require.Nil(t, pwt)
	assert.False(t, created)
	assert.Equal(t, first.Id, second.Id)
}

func TestCreateGameTypeRejectsBlankName(t *testing.T) {
	svc := &gameTypeService{db: testdb.New(t)}

	_, _, pwt := svc.createGameType("   ", "u1")
	require.NotNil(t, pwt)
	assert.Equal(t, "error.generic.validation", pwt.Problem.Code)
}

func TestGetGameTypesSortedByName(t *testing.T) {
	svc := &gameTypeService{db: testdb.New(t)}

	_, _, pwt := svc.createGameType("Pool", "u1")
	require.Nil(t, pwt)
	_, _, pwt = svc.createGameType("Chess", "u1")
	require.Nil(t, pwt)

	gameTypes, pwt := svc.getGameTypes()
	require.Nil(t, pwt)
	require.Len(t, gameTypes, 2)
	assert.Equal(t, "Chess", gameTypes[0].Name)
	assert.Equal(t, "Pool", gameTypes[1].Name)
}
