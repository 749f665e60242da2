package invite

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*inviteService, *gorm.DB) {
	db := testdb.New(t)
	return &inviteService{db: db}, db
}

func seedChallenge(t *testing.T, db *gorm.DB, creatorId string) string {
	t.Helper()
	challengeId := uuid.NewString()
	require.NoError(t, db.Create(&model.Challenge{
		Id:        challengeId,
		Name:      "Ping Pong",
		CreatedBy: creatorId,
		Status:    model.ChallengeActive,
		IsPublic:  true,
	}).Error)
	require.NoError(t, db.Create(&model.Participant{
		Id:          uuid.NewString(),
		ChallengeId: challengeId,
		UserId:      creatorId,
		Role:        model.RoleCreator,
		JoinedAt:    time.Now().UTC(),
	}).Error)
	return challengeId
}

func TestCreateInvitationRequiresParticipant(t *testing.T) {
	svc, db := newTestService(t)
	challengeId := seedChallenge(t, db, "u1")

	_, pwt := svc.createInvitation(challengeId, "outsider")
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusForbidden, pwt.Problem.Status)

	invitation, pwt := svc.createInvitation(challengeId, "u1")
	require.Nil(t, pwt)
	assert.Equal(t, model.InvitationPending, invitation.Status)
	assert.Len(t, invitation.Token, 64)
}

func TestCreateInvitationUnknownChallenge(t *testing.T) {
	svc, _ := newTestService(t)

	_, pwt := svc.createInvitation(uuid.NewString(), "u1")
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusNotFound, pwt.Problem.Status)
}

func TestInspectPreview(t *testing.T) {
	svc, db := newTestService(t)
	challengeId := seedChallenge(t, db, "u1")

	invitation, pwt := svc.createInvitation(challengeId, "u1")
	require.Nil(t, pwt)

	preview, pwt := svc.inspect(invitation.Token)
	require.Nil(t, pwt)
	assert.Equal(t, "Ping Pong", preview.ChallengeName)
	assert.Equal(t, model.ChallengeActive, preview.ChallengeStatus)
	assert.Equal(t, model.InvitationPending, preview.Status)
	assert.Equal(t, int64(1), preview.ParticipantCount)
}

func TestInspectUnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, pwt := svc.inspect("nope")
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusNotFound, pwt.Problem.Status)
}

func TestAcceptJoinsAndConsumesToken(t *testing.T) {
	svc, db := newTestService(t)
	challengeId := seedChallenge(t, db, "u1")

	invitation, pwt := svc.createInvitation(challengeId, "u1")
	require.Nil(t, pwt)

	outcome, pwt := svc.accept(invitation.Token, "u2")
	require.Nil(t, pwt)
	assert.Equal(t, challengeId, outcome.ChallengeId)
	assert.False(t, outcome.AlreadyJoined)

	var participantCount int64
	require.NoError(t, db.Model(&model.Participant{}).
		Where("challenge_id = ? AND user_id = ?", challengeId, "u2").
		Count(&participantCount).Error)
	assert.Equal(t, int64(1), participantCount)

	var stored model.Invitation
	require.NoError(t, db.Where("id = ?", invitation.Id).First(&stored).Error)
	assert.Equal(t, model.InvitationAccepted, stored.Status)

	// The token is single use: a second accept finds nothing pending.
	_, pwt = svc.accept(invitation.Token, "u3")
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusNotFound, pwt.Problem.Status)
}

func TestAcceptByExistingParticipantKeepsTokenPending(t *testing.T) {
	svc, db := newTestService(t)
	challengeId := seedChallenge(t, db, "u1")

	invitation, pwt := svc.createInvitation(challengeId, "u1")
	require.Nil(t, pwt)

	outcome, pwt := svc.accept(invitation.Token, "u1")
	require.Nil(t, pwt)
	assert.True(t, outcome.AlreadyJoined)

	var stored model.Invitation
	require.NoError(t, db.Where("id = ?", invitation.Id).First(&stored).Error)
	assert.Equal(t, model.InvitationPending, stored.Status)

	// Someone else can still use it.
	outcome, pwt = svc.accept(invitation.Token, "u2")
	require.Nil(t, pwt)
	assert.False(t, outcome.AlreadyJoined)
}

func TestRevokeTransitions(t *testing.T) {
	svc, db := newTestService(t)
	challengeId := seedChallenge(t, db, "u1")

	invitation, pwt := svc.createInvitation(challengeId, "u1")
	require.Nil(t, pwt)

	pwt = svc.revoke(challengeId, invitation.Id, "outsider")
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusForbidden, pwt.Problem.Status)

	require.Nil(t, svc.revoke(challengeId, invitation.Id, "u1"))

	var stored model.Invitation
	require.NoError(t, db.Where("id = ?", invitation.Id).First(&stored).Error)
	assert.Equal(t, model.InvitationRevoked, stored.Status)

	// Revoked is terminal.
	pwt = svc.revoke(challengeId, invitation.Id, "u1")
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusConflict, pwt.Problem.Status)

	// And the token can no longer be accepted.
	_, pwt = svc.accept(invitation.Token, "u2")
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusNotFound, pwt.Problem.Status)
}

func TestRevokeUnknownInvitation(t *testing.T) {
	svc, db := newTestService(t)
	challengeId := seedChallenge(t, db, "u1")

	pwt := svc.revoke(challengeId, uuid.NewString(), "u1")
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusNotFound, pwt.Problem.Status)
}
