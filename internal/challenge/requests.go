package challenge

import (
	"strings"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
)

type CreateChallengeRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
	GameTypeId  *string `json:"gameTypeId"`
}

// UpdateChallengeRequest carries partial-update semantics: nil means
// untouched. An empty GifUrl or GameTypeId string clears the field. Scores
// entries map participant ids to override values, nil value clears.
type UpdateChallengeRequest struct {
	Name                 *string         `json:"name"`
	Description          *string         `json:"description"`
	Status               *string         `json:"status"`
	IsPublic             *bool           `json:"isPublic"`
	GifUrl               *string         `json:"gifUrl"`
	GameTypeId           *string         `json:"gameTypeId"`
	PendingOpponentScore *int            `json:"pendingOpponentScore"`
	Scores               map[string]*int `json:"scores"`
}

func (req UpdateChallengeRequest) validate() (map[string]any, *reject.ProblemWithTrace) {
	updates := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 100 {
			return nil, validationProblem("name must be 1-100 characters")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if len(description) > 500 {
			return nil, validationProblem("description must be 500 characters or less")
		}
		updates["description"] = description
	}
	if req.Status != nil {
		status := model.ChallengeStatus(*req.Status)
		if !status.Valid() {
			return nil, validationProblem("status must be one of active, completed, archived")
		}
		updates["status"] = status
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if req.GifUrl != nil {
		if *req.GifUrl == "" {
			updates["gif_url"] = nil
		} else {
			if !utils.AllowedGifUrl(*req.GifUrl) {
				return nil, validationProblem("gifUrl must point to the allowed GIF provider")
			}
			updates["gif_url"] = *req.GifUrl
		}
	}
	if req.GameTypeId != nil {
		if *req.GameTypeId == "" {
			updates["game_type_id"] = nil
		} else {
			updates["game_type_id"] = *req.GameTypeId
		}
	}
	if req.PendingOpponentScore != nil {
		if *req.PendingOpponentScore < 0 {
			return nil, validationProblem("pendingOpponentScore must be a non-negative integer")
		}
		updates["pending_opponent_score"] = *req.PendingOpponentScore
	}

	return updates, nil
}
