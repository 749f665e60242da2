package invite

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inviteService struct {
	db *gorm.DB
}

type InvitePreview struct {
	ChallengeName        string                 `json:"challengeName"`
	ChallengeDescription string                 `json:"challengeDescription"`
	ChallengeStatus      model.ChallengeStatus  `json:"challengeStatus"`
	Status               model.InvitationStatus `json:"status"`
	ParticipantCount     int64                  `json:"participantCount"`
}

type AcceptResult struct {
	ChallengeId   string
	AlreadyJoined bool
}

func (is *inviteService) createInvitation(challengeId string, userId string) (*model.Invitation, *reject.ProblemWithTrace) {
	var count int64
	if result := is.db.Model(&model.Challenge{}).Where("id = ?", challengeId).Count(&count); result.Error != nil {
		return nil, unexpected(result.Error)
	}
	if count == 0 {
		return nil, notFound(errors.New("challenge not found"))
	}

	isParticipant, err := is.isParticipant(challengeId, userId)
	if err != nil {
		return nil, unexpected(err)
	}
	if !isParticipant {
		return nil, forbidden("only participants can invite")
	}

	token, err := newInviteToken()
	if err != nil {
		return nil, unexpected(err)
	}

	invitation := &model.Invitation{
		Id:          uuid.NewString(),
		ChallengeId: challengeId,
		Token:       token,
		InvitedBy:   userId,
		Status:      model.InvitationPending,
	}
	if result := is.db.Create(invitation); result.Error != nil {
		return nil, unexpected(result.Error)
	}

	return invitation, nil
}

// inspect renders a join preview. It works without authentication: the
// token itself is the capability.
func (is *inviteService) inspect(token string) (*InvitePreview, *reject.ProblemWithTrace) {
	var preview InvitePreview
	result := is.db.Table("challenge_invitation ci").
		Joins("INNER JOIN challenge c ON c.id = ci.challenge_id").
		Where("ci.token = ?", token).
		Select(`
			c.name AS challenge_name,
			c.description AS challenge_description,
			c.status AS challenge_status,
			ci.status AS status,
			(SELECT COUNT(*) FROM challenge_participant cp WHERE cp.challenge_id = ci.challenge_id) AS participant_count
		`).
		Take(&preview)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound(result.Error)
		}
		return nil, unexpected(result.Error)
	}

	return &preview, nil
}

// accept joins the caller to the invitation's challenge and flips the
// invitation to accepted, atomically. A caller who already participates
// gets a success without any writes, and the (challenge_id, user_id)
// uniqueness constraint absorbs the race between two concurrent accepts.
func (is *inviteService) accept(token string, userId string) (*AcceptResult, *reject.ProblemWithTrace) {
	var outcome AcceptResult
	var pwt *reject.ProblemWithTrace

	err := is.db.Transaction(func(tx *gorm.DB) error {
		var invitation model.Invitation
		result := tx.Where("token = ? AND status = ?", token, model.InvitationPending).First(&invitation)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				pwt = notFound(result.Error)
			} else {
				pwt = unexpected(result.Error)
			}
			return result.Error
		}

		outcome.ChallengeId = invitation.ChallengeId

		participant := &model.Participant{
			Id:          uuid.NewString(),
			ChallengeId: invitation.ChallengeId,
			UserId:      userId,
			Role:        model.RoleParticipant,
			JoinedAt:    time.Now().UTC(),
		}
		result = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "challenge_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(participant)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Already on the roster; leave the invitation pending.
			outcome.AlreadyJoined = true
			return nil
		}

		return tx.Model(&model.Invitation{}).
			Where("id = ? AND status = ?", invitation.Id, model.InvitationPending).
			Update("status", model.InvitationAccepted).Error
	})

	if pwt != nil {
		return nil, pwt
	}
	if err != nil {
		return nil, unexpected(err)
	}

	return &outcome, nil
}

// revoke is the reserved pending -> revoked transition. Terminal states
// reject with a conflict.
func (is *inviteService) revoke(challengeId string, invitationId string, userId string) *reject.ProblemWithTrace {
	isParticipant, err := is.isParticipant(challengeId, userId)
	if err != nil {
		return unexpected(err)
	}
	if !isParticipant {
		return forbidden("only participants can revoke invitations")
	}

	var invitation model.Invitation
	result := is.db.Where("id = ? AND challenge_id = ?", invitationId, challengeId).First(&invitation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return notFound(result.Error)
		}
		return unexpected(result.Error)
	}

	if invitation.Status != model.InvitationPending {
		return &reject.ProblemWithTrace{
			Problem: reject.ConflictProblem("invitation is no longer pending"),
			Cause:   errors.New("revoke on terminal invitation"),
		}
	}

	result = is.db.Model(&model.Invitation{}).
		Where("id = ? AND status = ?", invitationId, model.InvitationPending).
		Update("status", model.InvitationRevoked)
	if result.Error != nil {
		return unexpected(result.Error)
	}

	return nil
}

func (is *inviteService) isParticipant(challengeId string, userId string) (bool, error) {
	var count int64
	result := is.db.Model(&model.Participant{}).
		Where("challenge_id = ? AND user_id = ?", challengeId, userId).
		Count(&count)
	return count > 0, result.Error
}

func unexpected(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.UnexpectedProblem(err),
		Cause:   err,
	}
}

func notFound(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.NotFoundProblem(),
		Cause:   err,
	}
}

func forbidden(detail string) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.ForbiddenProblem(detail),
		Cause:   errors.New(detail),
	}
}
