package gametype

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"gorm.io/gorm"
)

type gameTypeService struct {
	db *gorm.DB
}

func (gts *gameTypeService) getGameTypes() ([]model.GameType, *reject.ProblemWithTrace) {
	var gameTypes []model.GameType
	result := gts.db.Order("name ASC").Find(&gameTypes)
	if result.Error != nil {
		return nil, unexpected(result.Error)
	}
	return gameTypes, nil
}

// createGameType is idempotent on name: a case-insensitive match returns
// the existing row instead of creating a duplicate.
func (gts *gameTypeService) createGameType(name string, userId string) (*model.GameType, bool, *reject.ProblemWithTrace) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, false, &reject.ProblemWithTrace{
			Problem: reject.ValidationProblem("name must be 1-100 characters"),
			Cause:   errors.New("invalid game type name"),
		}
	}

	var existing model.GameType
	result := gts.db.Where("LOWER(name) = LOWER(?)", name).First(&existing)
	if result.Error == nil {
		return &existing, false, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, false, unexpected(result.Error)
	}

	created := &model.GameType{
		Id:        uuid.NewString(),
		Name:      name,
		CreatedBy: userId,
	}
	if result := gts.db.Create(created); result.Error != nil {
		return nil, false, unexpected(result.Error)
	}

	return created, true, nil
}

func unexpected(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.UnexpectedProblem(err),
		Cause:   err,
	}
}
