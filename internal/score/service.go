package score

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/scoring"
	"gorm.io/gorm"
)

// Service writes creator-set score overrides. A nil entry value clears the
// override, restoring win-count scoring. Each write keeps a single-level
// audit: actor, timestamp and the effective score before the change.
type Service struct{}

// Apply runs inside the caller's transaction so the batch lands atomically
// with whatever else the caller is committing.
func (Service) Apply(tx *gorm.DB, challengeId string, actorId string, entries map[string]*int) *reject.ProblemWithTrace {
	var participants []model.Participant
	if result := tx.Where("challenge_id = ?", challengeId).Find(&participants); result.Error != nil {
		return &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	var games []model.Game
	if result := tx.Where("challenge_id = ?", challengeId).Find(&games); result.Error != nil {
		return &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	byUserId := make(map[string]model.Participant, len(participants))
	for _, p := range participants {
		byUserId[p.UserId] = p
	}

	resolved := scoring.Resolve(participants, games)

	userIds := make([]string, 0, len(entries))
	for userId := range entries {
		userIds = append(userIds, userId)
	}
	sort.Strings(userIds)

	now := time.Now().UTC()
	for _, userId := range userIds {
		value := entries[userId]

		participant, ok := byUserId[userId]
		if !ok {
			err := fmt.Errorf("score entry for non-participant %s", userId)
			return &reject.ProblemWithTrace{
				Problem: reject.ValidationProblem("scores: user " + userId + " is not a participant"),
				Cause:   err,
			}
		}
		if value != nil && *value < 0 {
			err := errors.New("negative score override")
			return &reject.ProblemWithTrace{
				Problem: reject.ValidationProblem("scores: value for " + userId + " must be a non-negative integer"),
				Cause:   err,
			}
		}

		effective := resolved.Scores[userId]

		// Skip no-op submissions so the audit trail only records real
		// changes.
		if value == nil && participant.ScoreOverride == nil {
			continue
		}
		if value != nil && *value == effective {
			continue
		}

		result := tx.Model(&model.Participant{}).
			Where("challenge_id = ? AND user_id = ?", challengeId, userId).
			Updates(map[string]any{
				"score_override":     value,
				"score_changed_by":   actorId,
				"score_changed_at":   now,
				"score_changed_from": effective,
			})
		if result.Error != nil {
			return &reject.ProblemWithTrace{
				Problem: reject.UnexpectedProblem(result.Error),
				Cause:   result.Error,
			}
		}
	}

	return nil
}
