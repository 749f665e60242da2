package challenge

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
	"github.com/gotimer-app/gotimer-backend/internal/score"
	"github.com/gotimer-app/gotimer-backend/internal/scoring"
	"gorm.io/gorm"
)

// errRolledBack signals the transaction callback that a Problem has already
// been captured and the transaction must abort.
var errRolledBack = errors.New("rolled back")

type challengeService struct {
	db     *gorm.DB
	scores score.Service
}

type ChallengeDetail struct {
	model.Challenge
	Participants []model.Participant `json:"participants"`
	Games        []model.Game        `json:"games"`
	Scores       map[string]int      `json:"scores"`
	Draws        int                 `json:"draws"`
}

type ChallengeSummary struct {
	model.Challenge
	Participants []model.Participant `json:"participants"`
	Scores       map[string]int      `json:"scores"`
	MyWins       int                 `json:"myWins"`
	OpponentWins int                 `json:"opponentWins"`
	Draws        int                 `json:"draws"`
	TotalGames   int                 `json:"totalGames"`
}

type PublicChallengeSummary struct {
	model.Challenge
	Participants []model.Participant `json:"participants"`
	Scores       map[string]int      `json:"scores"`
	TotalGames   int                 `json:"totalGames"`
}

func (cs *challengeService) createChallenge(req CreateChallengeRequest, userId string) (*model.Challenge, *reject.ProblemWithTrace) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return nil, validationProblem("name must be 1-100 characters")
	}
	description := strings.TrimSpace(req.Description)
	if len(description) > 500 {
		return nil, validationProblem("description must be 500 characters or less")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	created := &model.Challenge{
		Id:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedBy:   userId,
		Status:      model.ChallengeActive,
		IsPublic:    isPublic,
		GameTypeId:  req.GameTypeId,
	}

	err := cs.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(created); result.Error != nil {
			return result.Error
		}

		creator := &model.Participant{
			Id:          uuid.NewString(),
			ChallengeId: created.Id,
			UserId:      userId,
			Role:        model.RoleCreator,
			JoinedAt:    time.Now().UTC(),
		}
		return tx.Create(creator).Error
	})

	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return created, nil
}

func (cs *challengeService) getChallenge(challengeId string, userId string) (*ChallengeDetail, *reject.ProblemWithTrace) {
	challenge, pwt := cs.loadChallenge(challengeId)
	if pwt != nil {
		return nil, pwt
	}

	if !challenge.IsPublic {
		isParticipant, err := cs.isParticipant(challengeId, userId)
		if err != nil {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.UnexpectedProblem(err),
				Cause:   err,
			}
		}
		if !isParticipant {
			return nil, forbiddenProblem("not a participant of this challenge")
		}
	}

	return cs.buildDetail(challenge)
}

func (cs *challengeService) getPublicChallenge(challengeId string) (*ChallengeDetail, *reject.ProblemWithTrace) {
	var challenge model.Challenge
	result := cs.db.Where("id = ? AND is_public = ?", challengeId, true).First(&challenge)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFoundProblem(result.Error)
		}
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	return cs.buildDetail(&challenge)
}

func (cs *challengeService) getOwnChallenges(userId string) ([]ChallengeSummary, *reject.ProblemWithTrace) {
	var challenges []model.Challenge
	result := cs.db.
		Joins("INNER JOIN challenge_participant cp ON cp.challenge_id = challenge.id").
		Where("cp.user_id = ?", userId).
		Order("challenge.updated_at DESC").
		Find(&challenges)
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	summaries := make([]ChallengeSummary, 0, len(challenges))
	for i := range challenges {
		detail, pwt := cs.buildDetail(&challenges[i])
		if pwt != nil {
			return nil, pwt
		}
		resolved := scoring.Result{Scores: detail.Scores, Draws: detail.Draws}
		summaries = append(summaries, ChallengeSummary{
			Challenge:    challenges[i],
			Participants: detail.Participants,
			Scores:       detail.Scores,
			MyWins:       detail.Scores[userId],
			OpponentWins: scoring.OpponentScore(resolved, userId),
			Draws:        detail.Draws,
			TotalGames:   len(detail.Games),
		})
	}

	return summaries, nil
}

func (cs *challengeService) getPublicChallenges(page utils.PageRequest) ([]PublicChallengeSummary, int64, *reject.ProblemWithTrace) {
	var total int64
	if result := cs.db.Model(&model.Challenge{}).Where("is_public = ?", true).Count(&total); result.Error != nil {
		return nil, 0, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	var challenges []model.Challenge
	result := cs.db.
		Where("is_public = ?", true).
		Order("updated_at DESC").
		Limit(page.Size).
		Offset(page.Offset).
		Find(&challenges)
	if result.Error != nil {
		return nil, 0, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	summaries := make([]PublicChallengeSummary, 0, len(challenges))
	for i := range challenges {
		detail, pwt := cs.buildDetail(&challenges[i])
		if pwt != nil {
			return nil, 0, pwt
		}
		summaries = append(summaries, PublicChallengeSummary{
			Challenge:    challenges[i],
			Participants: detail.Participants,
			Scores:       detail.Scores,
			TotalGames:   len(detail.Games),
		})
	}

	return summaries, total, nil
}

func (cs *challengeService) updateChallenge(challengeId string, userId string, req UpdateChallengeRequest) (*model.Challenge, *reject.ProblemWithTrace) {
	challenge, pwt := cs.loadChallenge(challengeId)
	if pwt != nil {
		return nil, pwt
	}
	if challenge.CreatedBy != userId {
		return nil, forbiddenProblem("only the creator can edit a challenge")
	}

	updates, pwt := req.validate()
	if pwt != nil {
		return nil, pwt
	}
	if len(updates) == 0 && req.Scores == nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.NoUpdatesProblem(),
			Cause:   errors.New("empty challenge update"),
		}
	}

	err := cs.db.Transaction(func(tx *gorm.DB) error {
		if req.Scores != nil {
			if p := cs.scores.Apply(tx, challengeId, userId, req.Scores); p != nil {
				pwt = p
				return errRolledBack
			}
		}

		updates["updated_at"] = time.Now().UTC()
		return tx.Model(&model.Challenge{}).
			Where("id = ?", challengeId).
			Updates(updates).Error
	})

	if pwt != nil {
		return nil, pwt
	}
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}

	return cs.loadChallenge(challengeId)
}

func (cs *challengeService) deleteChallenge(challengeId string, userId string) *reject.ProblemWithTrace {
	challenge, pwt := cs.loadChallenge(challengeId)
	if pwt != nil {
		return pwt
	}
	if challenge.CreatedBy != userId {
		return forbiddenProblem("only the creator can delete a challenge")
	}

	// Participants, games and invitations go with it via cascade.
	if result := cs.db.Delete(&model.Challenge{}, "id = ?", challengeId); result.Error != nil {
		return &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return nil
}

func (cs *challengeService) loadChallenge(challengeId string) (*model.Challenge, *reject.ProblemWithTrace) {
	var challenge model.Challenge
	result := cs.db.Where("id = ?", challengeId).First(&challenge)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFoundProblem(result.Error)
		}
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return &challenge, nil
}

func (cs *challengeService) isParticipant(challengeId string, userId string) (bool, error) {
	var count int64
	result := cs.db.Model(&model.Participant{}).
		Where("challenge_id = ? AND user_id = ?", challengeId, userId).
		Count(&count)
	return count > 0, result.Error
}

// buildDetail loads the roster and games and resolves scores through the
// shared resolver so every view agrees.
func (cs *challengeService) buildDetail(challenge *model.Challenge) (*ChallengeDetail, *reject.ProblemWithTrace) {
	var participants []model.Participant
	if result := cs.db.Where("challenge_id = ?", challenge.Id).Find(&participants); result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	var games []model.Game
	result := cs.db.
		Where("challenge_id = ?", challenge.Id).
		Order("played_at DESC").
		Find(&games)
	if result.Error != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	resolved := scoring.Resolve(participants, games)

	return &ChallengeDetail{
		Challenge:    *challenge,
		Participants: participants,
		Games:        games,
		Scores:       resolved.Scores,
		Draws:        resolved.Draws,
	}, nil
}

func validationProblem(detail string) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.ValidationProblem(detail),
		Cause:   errors.New(detail),
	}
}

func forbiddenProblem(detail string) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.ForbiddenProblem(detail),
		Cause:   errors.New(detail),
	}
}

func notFoundProblem(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.NotFoundProblem(),
		Cause:   err,
	}
}
