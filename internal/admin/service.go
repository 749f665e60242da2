package admin

import (
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/scoring"
	"gorm.io/gorm"
)

type adminService struct {
	db *gorm.DB
}

type ChallengeOverview struct {
	model.Challenge
	Participants []model.Participant `json:"participants"`
	Scores       map[string]int      `json:"scores"`
	TotalGames   int                 `json:"totalGames"`
}

func (as *adminService) getAllChallenges() ([]ChallengeOverview, *reject.ProblemWithTrace) {
	var challenges []model.Challenge
	if result := as.db.Order("updated_at DESC").Find(&challenges); result.Error != nil {
		return nil, unexpected(result.Error)
	}

	overviews := make([]ChallengeOverview, 0, len(challenges))
	for _, challenge := range challenges {
		var participants []model.Participant
		if result := as.db.Where("challenge_id = ?", challenge.Id).Find(&participants); result.Error != nil {
			return nil, unexpected(result.Error)
		}

		var games []model.Game
		if result := as.db.Where("challenge_id = ?", challenge.Id).Find(&games); result.Error != nil {
			return nil, unexpected(result.Error)
		}

		resolved := scoring.Resolve(participants, games)
		overviews = append(overviews, ChallengeOverview{
			Challenge:    challenge,
			Participants: participants,
			Scores:       resolved.Scores,
			TotalGames:   len(games),
		})
	}

	return overviews, nil
}

func unexpected(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.UnexpectedProblem(err),
		Cause:   err,
	}
}
