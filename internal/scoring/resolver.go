// Package scoring is the single place displayed scores are derived from.
// Every read path (detail, list, public, admin) goes through Resolve so no
// two views can disagree about a score.
package scoring

import (
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
)

type Result struct {
	Scores map[string]int `json:"scores"`
	Draws  int            `json:"draws"`
}

// Resolve computes each participant's effective score: the manual override
// when one is set, otherwise the count of non-draw games they won. Draws
// belong to no participant and are reported challenge-wide.
func Resolve(participants []model.Participant, games []model.Game) Result {
	wins := map[string]int{}
	draws := 0
	for _, g := range games {
		if g.IsDraw {
			draws++
			continue
		}
		if g.WinnerId != nil {
			wins[*g.WinnerId]++
		}
	}

	scores := make(map[string]int, len(participants))
	for _, p := range participants {
		if p.ScoreOverride != nil {
			scores[p.UserId] = *p.ScoreOverride
		} else {
			scores[p.UserId] = wins[p.UserId]
		}
	}

	return Result{Scores: scores, Draws: draws}
}

// OpponentScore sums the effective scores of everyone except selfId. With
// two participants this is the classic head-to-head opponent figure; with
// more it aggregates, and with none it is zero.
func OpponentScore(r Result, selfId string) int {
	total := 0
	for userId, score := range r.Scores {
		if userId != selfId {
			total += score
		}
	}
	return total
}
