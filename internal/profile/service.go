package profile

import (
	"strings"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/identity"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/model"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxProfileBatch       = 50
	maxPublicProfileBatch = 10
)

type profileService struct {
	db        *gorm.DB
	directory identity.Directory
}

type Preferences struct {
	ShowPublicProfilePic bool `json:"showPublicProfilePic"`
}

// PublicProfile is the privacy-gated shape: first name always, avatar only
// when the user opted in.
type PublicProfile struct {
	UserId            string  `json:"userId"`
	Name              string  `json:"name"`
	ProfilePictureUrl *string `json:"profilePictureUrl"`
}

type ProfileBatch struct {
	Profiles    []identity.User `json:"profiles"`
	NotFoundIds []string        `json:"notFoundIds"`
}

type PublicProfileBatch struct {
	Profiles    []PublicProfile `json:"profiles"`
	NotFoundIds []string        `json:"notFoundIds"`
}

func (ps *profileService) getPreferences(userId string) (*Preferences, *reject.ProblemWithTrace) {
	// Seed the default row so the first read works like any other.
	seed := &model.UserPreference{UserId: userId}
	result := ps.db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed)
	if result.Error != nil {
		return nil, unexpected(result.Error)
	}

	var row model.UserPreference
	if result := ps.db.Where("user_id = ?", userId).First(&row); result.Error != nil {
		return nil, unexpected(result.Error)
	}

	return &Preferences{ShowPublicProfilePic: row.ShowPublicProfilePic}, nil
}

func (ps *profileService) setPreference(userId string, showPublicProfilePic bool) *reject.ProblemWithTrace {
	row := &model.UserPreference{
		UserId:               userId,
		ShowPublicProfilePic: showPublicProfilePic,
	}
	result := ps.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"show_public_profile_pic"}),
	}).Create(row)
	if result.Error != nil {
		return unexpected(result.Error)
	}
	return nil
}

func (ps *profileService) getProfiles(userIds []string) (*ProfileBatch, *reject.ProblemWithTrace) {
	if len(userIds) > maxProfileBatch {
		userIds = userIds[:maxProfileBatch]
	}

	users, notFound, err := ps.directory.GetUsers(userIds)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UpstreamProblem(err),
			Cause:   err,
		}
	}

	return &ProfileBatch{Profiles: users, NotFoundIds: notFound}, nil
}

func (ps *profileService) getPublicProfiles(userIds []string) (*PublicProfileBatch, *reject.ProblemWithTrace) {
	if len(userIds) > maxPublicProfileBatch {
		userIds = userIds[:maxPublicProfileBatch]
	}

	users, notFound, err := ps.directory.GetUsers(userIds)
	if err != nil {
		return nil, &reject.ProblemWithTrace{
			Problem: reject.UpstreamProblem(err),
			Cause:   err,
		}
	}

	var prefs []model.UserPreference
	if result := ps.db.Where("user_id IN ?", userIds).Find(&prefs); result.Error != nil {
		return nil, unexpected(result.Error)
	}
	optedIn := map[string]bool{}
	for _, p := range prefs {
		optedIn[p.UserId] = p.ShowPublicProfilePic
	}

	profiles := make([]PublicProfile, 0, len(users))
	for _, u := range users {
		profile := PublicProfile{
			UserId: u.Id,
			Name:   firstName(u.Name),
		}
		if optedIn[u.Id] && u.ProfilePictureUrl != "" {
			url := u.ProfilePictureUrl
			profile.ProfilePictureUrl = &url
		}
		profiles = append(profiles, profile)
	}

	return &PublicProfileBatch{Profiles: profiles, NotFoundIds: notFound}, nil
}

func firstName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "Player"
	}
	return parts[0]
}

func unexpected(err error) *reject.ProblemWithTrace {
	return &reject.ProblemWithTrace{
		Problem: reject.UnexpectedProblem(err),
		Cause:   err,
	}
}
