package game

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"gorm.io/gorm"
)

type gameService struct {
	db *gorm.DB
}

func (gs *gameService) getGames(challengeId string, userId string) ([]model.Game, *reject.ProblemWithTrace) {
	if pwt := gs.requireParticipant(challengeId, userId); pwt != nil {
		return nil, pwt
	}

	var games []model.Game
	result := gs.db.
		Where("challenge_id = ?", challengeId).
		Order("played_at DESC").
		Find(&games)
	if result.Error != nil {
		return nil, unexpected(result.Error)
	}

	return games, nil
}

func (gs *gameService) addGame(challengeId string, userId string, req GameRequest) (*model.Game, *reject.ProblemWithTrace) {
	if pwt := gs.requireParticipant(challengeId, userId); pwt != nil {
		return nil, pwt
	}

	// Exactly one of winner / draw describes an outcome.
	isDraw := req.IsDraw != nil && *req.IsDraw
	hasWinner := req.WinnerId != nil && *req.WinnerId != ""
	if isDraw == hasWinner {
		return nil, validation("exactly one of winnerId or isDraw is required")
	}

	fields, pwt := req.validateFields()
	if pwt != nil {
		return nil, pwt
	}

	playedAt := time.Now().UTC()
	if req.PlayedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PlayedAt)
		if err != nil {
			return nil, validation("playedAt must be a valid RFC3339 timestamp")
		}
		playedAt = parsed.UTC()
	}

	created := &model.Game{
		Id:          uuid.NewString(),
		ChallengeId: challengeId,
		IsDraw:      isDraw,
		PlayedAt:    playedAt,
		CreatedBy:   userId,
	}
	if notes, ok := fields["notes"]; ok {
		created.Notes = notes.(string)
	}
	if gifUrl, ok := fields["gif_url"]; ok && gifUrl != nil {
		url := gifUrl.(string)
		created.GifUrl = &url
	}
	if hasWinner {
		if pwt := gs.requireWinnerIsParticipant(challengeId, *req.WinnerId); pwt != nil {
			return nil, pwt
		}
		created.WinnerId = req.WinnerId
	}

	err := gs.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(created); result.Error != nil {
			return result.Error
		}
		return bumpChallenge(tx, challengeId)
	})
	if err != nil {
		return nil, unexpected(err)
	}

	return created, nil
}

func (gs *gameService) updateGame(challengeId string, gameId string, userId string, req GameRequest) (*model.Game, *reject.ProblemWithTrace) {
	existing, pwt := gs.loadAuthoredGame(challengeId, gameId, userId)
	if pwt != nil {
		return nil, pwt
	}

	updates, pwt := req.validateFields()
	if pwt != nil {
		return nil, pwt
	}

	if req.WinnerId != nil {
		if *req.WinnerId != "" {
			if pwt := gs.requireWinnerIsParticipant(challengeId, *req.WinnerId); pwt != nil {
				return nil, pwt
			}
			updates["winner_id"] = *req.WinnerId
		} else {
			updates["winner_id"] = nil
		}
	}
	if req.IsDraw != nil {
		updates["is_draw"] = *req.IsDraw
		if *req.IsDraw {
			// A draw has no winner.
			updates["winner_id"] = nil
		}
	}
	if req.PlayedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PlayedAt)
		if err != nil {
			return nil, validation("playedAt must be a valid RFC3339 timestamp")
		}
		updates["played_at"] = parsed.UTC()
	}

	if len(updates) == 0 {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.NoUpdatesProblem(),
			Cause:   errors.New("empty game update"),
		}
	}

	err := gs.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Game{}).
			Where("id = ? AND challenge_id = ?", gameId, challengeId).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		return bumpChallenge(tx, challengeId)
	})
	if err != nil {
		return nil, unexpected(err)
	}

	var updated model.Game
	if result := gs.db.Where("id = ?", existing.Id).First(&updated); result.Error != nil {
		return nil, unexpected(result.Error)
	}

	return &updated, nil
}

func (gs *gameService) deleteGame(challengeId string, gameId string, userId string) *reject.ProblemWithTrace {
	if _, pwt := gs.loadAuthoredGame(challengeId, gameId, userId); pwt != nil {
		return pwt
	}

	err := gs.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Game{}, "id = ? AND challenge_id = ?", gameId, challengeId)
		if result.Error != nil {
			return result.Error
		}
		return bumpChallenge(tx, challengeId)
	})
	if err != nil {
		return unexpected(err)
	}

	return nil
}

// loadAuthoredGame enforces the two access layers on game mutation: the
// caller must participate in the challenge, and must be the game's author.
func (gs *gameService) loadAuthoredGame(challengeId string, gameId string, userId string) (*model.Game, *reject.ProblemWithTrace) {
	if pwt := gs.requireParticipant(challengeId, userId); pwt != nil {
		return nil, pwt
	}

	var game model.Game
	result := gs.db.Where("id = ? AND challenge_id = ?", gameId, challengeId).First(&game)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &reject.ProblemWithTrace{
				Problem: reject.NotFoundProblem(),
				Cause:   result.Error,
			}
		}
		return nil, unexpected(result.Error)
	}

	if game.CreatedBy != userId {
		return nil, forbidden("only the author can modify a game result")
	}

	return &game, nil
}

func (gs *gameService) requireParticipant(challengeId string, userId string) *reject.ProblemWithTrace {
	var count int64
	result := gs.db.Model(&model.Participant{}).
		Where("challenge_id = ? AND user_id = ?", challengeId, userId).
		Count(&count)
	if result.Error != nil {
		return unexpected(result.Error)
	}
	if count == 0 {
		return forbidden("not a participant of this challenge")
	}
	return nil
}

func (gs *gameService) requireWinnerIsParticipant(challengeId string, winnerId string) *reject.ProblemWithTrace {
	var count int64
	result := gs.db.Model(&model.Participant{}).
		Where("challenge_id = ? AND user_id = ?", challengeId, winnerId).
		Count(&count)
	if result.Error != nil {
		return unexpected(result.Error)
	}
	if count == 0 {
		return validation("winnerId must be a current participant")
	}
	return nil
}

func bumpChallenge(tx *gorm.DB, challengeId string) error {
	return tx.Model(&model.Challenge{}).
		Where("id = ?", challengeId).
		Update("updated_at", time.Now().UTC()).Error
}

func unexpected(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.UnexpectedProblem(err),
		Cause:   err,
	}
}

func validation(detail string) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.ValidationProblem(detail),
		Cause:   errors.New(detail),
	}
}

func forbidden(detail string) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.ForbiddenProblem(detail),
		Cause:   errors.New(detail),
	}
}
