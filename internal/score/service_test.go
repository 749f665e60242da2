package score

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedChallenge(t *testing.T, db *gorm.DB, participantIds ...string) string {
	t.Helper()
	challengeId := uuid.NewString()
	require.NoError(t, db.Create(&model.Challenge{
		Id:        challengeId,
		Name:      "Ping Pong",
		CreatedBy: participantIds[0],
		Status:    model.ChallengeActive,
		IsPublic:  true,
	}).Error)
	for _, userId := range participantIds {
		require.NoError(t, db.Create(&model.Participant{
			Id:          uuid.NewString(),
			ChallengeId: challengeId,
			UserId:      userId,
			Role:        model.RoleParticipant,
			JoinedAt:    time.Now().UTC(),
		}).Error)
	}
	return challengeId
}

func seedWin(t *testing.T, db *gorm.DB, challengeId string, winnerId string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Game{
		Id:          uuid.NewString(),
		ChallengeId: challengeId,
		WinnerId:    &winnerId,
		PlayedAt:    time.Now().UTC(),
		CreatedBy:   winnerId,
	}).Error)
}

func loadParticipant(t *testing.T, db *gorm.DB, challengeId string, userId string) model.Participant {
	t.Helper()
	var p model.Participant
	require.NoError(t, db.Where("challenge_id = ? AND user_id = ?", challengeId, userId).First(&p).Error)
	return p
}

func intPtr(i int) *int { return &i }

func TestApplyRecordsAudit(t *testing.T) {
	db := testdb.New(t)
	challengeId := seedChallenge(t, db, "u1", "u2")
	seedWin(t, db, challengeId, "u2")
	seedWin(t, db, challengeId, "u2")

	require.Nil(t, Service{}.Apply(db, challengeId, "u1", map[string]*int{"u2": intPtr(7)}))

	p := loadParticipant(t, db, challengeId, "u2")
	require.NotNil(t, p.ScoreOverride)
	assert.Equal(t, 7, *p.ScoreOverride)
	require.NotNil(t, p.ScoreChangedBy)
	assert.Equal(t, "u1", *p.ScoreChangedBy)
	require.NotNil(t, p.ScoreChangedAt)
	require.NotNil(t, p.ScoreChangedFrom)
	assert.Equal(t, 2, *p.ScoreChangedFrom)
}

func TestApplyOverwritesAuditOnSecondChange(t *testing.T) {
	db := testdb.New(t)
	challengeId := seedChallenge(t, db, "u1", "u2")

	require.Nil(t, Service{}.Apply(db, challengeId, "u1", map[string]*int{"u2": intPtr(3)}))
	require.Nil(t, Service{}.Apply(db, challengeId, "u2", map[string]*int{"u2": intPtr(8)}))

	// Single-level audit: only the latest change survives.
	p := loadParticipant(t, db, challengeId, "u2")
	assert.Equal(t, 8, *p.ScoreOverride)
	assert.Equal(t, "u2", *p.ScoreChangedBy)
	assert.Equal(t, 3, *p.ScoreChangedFrom)
}

func TestApplySkipsNoOpWrites(t *testing.T) {
	db := testdb.New(t)
	challengeId := seedChallenge(t, db, "u1", "u2")
	seedWin(t, db, challengeId, "u2")

	// Clearing an override that is not set writes nothing.
	require.Nil(t, Service{}.Apply(db, challengeId, "u1", map[string]*int{"u2": nil}))
	p := loadParticipant(t, db, challengeId, "u2")
	assert.Nil(t, p.ScoreChangedBy)

	// Setting the value the participant already effectively has writes
	// nothing either.
	require.Nil(t, Service{}.Apply(db, challengeId, "u1", map[string]*int{"u2": intPtr(1)}))
	p = loadParticipant(t, db, challengeId, "u2")
	assert.Nil(t, p.ScoreOverride)
	assert.Nil(t, p.ScoreChangedBy)
}

func TestApplyClearRestoresWinCounts(t *testing.T) {
	db := testdb.New(t)
	challengeId := seedChallenge(t, db, "u1", "u2")
	seedWin(t, db, challengeId, "u2")

	require.Nil(t, Service{}.Apply(db, challengeId, "u1", map[string]*int{"u2": intPtr(5)}))
	require.Nil(t, Service{}.Apply(db, challengeId, "u1", map[string]*int{"u2": nil}))

	p := loadParticipant(t, db, challengeId, "u2")
	assert.Nil(t, p.ScoreOverride)
	require.NotNil(t, p.ScoreChangedFrom)
	assert.Equal(t, 5, *p.ScoreChangedFrom)
}

func TestApplyRejectsNonParticipant(t *testing.T) {
	db := testdb.New(t)
	challengeId := seedChallenge(t, db, "u1")

	pwt := Service{}.Apply(db, challengeId, "u1", map[string]*int{"ghost": intPtr(1)})
	require.NotNil(t, pwt)
	assert.Equal(t, "error.generic.validation", pwt.Problem.Code)
}

func TestApplyRejectsNegativeValue(t *testing.T) {
	db := testdb.New(t)
	challengeId := seedChallenge(t, db, "u1", "u2")

	pwt := Service{}.Apply(db, challengeId, "u1", map[string]*int{"u2": intPtr(-1)})
	require.NotNil(t, pwt)
	assert.Equal(t, "error.generic.validation", pwt.Problem.Code)

	p := loadParticipant(t, db, challengeId, "u2")
	assert.Nil(t, p.ScoreOverride)
}
