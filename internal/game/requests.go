package game

import (
	"strings"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
)

// GameRequest serves both add and partial update; nil fields are untouched
// on update. An empty WinnerId or GifUrl string clears the field.
type GameRequest struct {
	WinnerId *string `json:"winnerId"`
	IsDraw   *bool   `json:"isDraw"`
	Notes    *string `json:"notes"`
	GifUrl   *string `json:"gifUrl"`
	PlayedAt *string `json:"playedAt"`
}

// validateFields checks the fields shared between add and update and
// returns them as a column update map.
func (req GameRequest) validateFields() (map[string]any, *reject.ProblemWithTrace) {
	updates := map[string]any{}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if len(notes) > 1000 {
			return nil, validation("notes must be 1000 characters or less")
		}
		updates["notes"] = notes
	}
	if req.GifUrl != nil {
		if *req.GifUrl == "" {
			updates["gif_url"] = nil
		} else {
			if !utils.AllowedGifUrl(*req.GifUrl) {
				return nil, validation("gifUrl must point to the allowed GIF provider")
			}
			updates["gif_url"] = *req.GifUrl
		}
	}

	return updates, nil
}
