package scoring

import (
	"testing"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func participants(userIds ...string) []model.Participant {
	ps := make([]model.Participant, 0, len(userIds))
	for _, id := range userIds {
		ps = append(ps, model.Participant{UserId: id})
	}
	return ps
}

func TestResolveCountsWins(t *testing.T) {
	games := []model.Game{
		{WinnerId: strPtr("u1")},
		{WinnerId: strPtr("u2")},
		{WinnerId: strPtr("u1")},
		{IsDraw: true},
	}

	result := Resolve(participants("u1", "u2"), games)

	assert.Equal(t, map[string]int{"u1": 2, "u2": 1}, result.Scores)
	assert.Equal(t, 1, result.Draws)
}

func TestResolveDrawsNeverCountAsWins(t *testing.T) {
	// A draw row with a stale winner id must not credit anyone.
	games := []model.Game{
		{WinnerId: strPtr("u1"), IsDraw: true},
	}

	result := Resolve(participants("u1", "u2"), games)

	assert.Equal(t, map[string]int{"u1": 0, "u2": 0}, result.Scores)
	assert.Equal(t, 1, result.Draws)
}

func TestResolveOverrideTakesPrecedence(t *testing.T) {
	ps := []model.Participant{
		{UserId: "u1"},
		{UserId: "u2", ScoreOverride: intPtr(5)},
	}
	games := []model.Game{
		{WinnerId: strPtr("u1")},
		{WinnerId: strPtr("u2")},
	}

	result := Resolve(ps, games)

	assert.Equal(t, map[string]int{"u1": 1, "u2": 5}, result.Scores)
}

func TestResolveZeroGames(t *testing.T) {
	result := Resolve(participants("u1", "u2"), nil)

	assert.Equal(t, map[string]int{"u1": 0, "u2": 0}, result.Scores)
	assert.Zero(t, result.Draws)
}

func TestResolveIgnoresNonParticipantWinners(t *testing.T) {
	games := []model.Game{
		{WinnerId: strPtr("ghost")},
	}

	result := Resolve(participants("u1"), games)

	assert.Equal(t, map[string]int{"u1": 0}, result.Scores)
}

func TestOpponentScore(t *testing.T) {
	r := Result{Scores: map[string]int{"u1": 3, "u2": 2, "u3": 4}}

	assert.Equal(t, 6, OpponentScore(r, "u1"))
	assert.Equal(t, 7, OpponentScore(r, "u2"))

	solo := Result{Scores: map[string]int{"u1": 3}}
	assert.Zero(t, OpponentScore(solo, "u1"))
}
