package profile

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gotimer-app/gotimer-backend/internal/pkg/identity"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users map[string]identity.User
	err   error
}

func (f fakeDirectory) GetUsers(ids []string) ([]identity.User, []string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	var found []identity.User
	var missing []string
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			found = append(found, user)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

func newTestService(t *testing.T, directory identity.Directory) *profileService {
	return &profileService{db: testdb.New(t), directory: directory}
}

func TestGetPreferencesSeedsDefault(t *testing.T) {
	svc := newTestService(t, fakeDirectory{})

	prefs, pwt := svc.getPreferences("u1")
	require.Nil(t, pwt)
	assert.False(t, prefs.ShowPublicProfilePic)
}

func TestSetPreferenceUpserts(t *testing.T) {
	svc := newTestService(t, fakeDirectory{})

	require.Nil(t, svc.setPreference("u1", true))
	prefs, pwt := svc.getPreferences("u1")
	require.Nil(t, pwt)
	assert.True(t, prefs.ShowPublicProfilePic)

	require.Nil(t, svc.setPreference("u1", false))
	prefs, pwt = svc.getPreferences("u1")
	require.Nil(t, pwt)
	assert.False(t, prefs.ShowPublicProfilePic)
}

func TestGetProfilesReportsMissingIds(t *testing.T) {
	svc := newTestService(t, fakeDirectory{
		users: map[string]identity.User{
			"u1": {Id: "u1", Name: "Ada Lovelace", Email: "ada@example.com"},
		},
	})

	batch, pwt := svc.getProfiles([]string{"u1", "ghost"})
	require.Nil(t, pwt)
	require.Len(t, batch.Profiles, 1)
	assert.Equal(t, "Ada Lovelace", batch.Profiles[0].Name)
	assert.Equal(t, []string{"ghost"}, batch.NotFoundIds)
}

func TestGetProfilesUpstreamFailure(t *testing.T) {
	svc := newTestService(t, fakeDirectory{err: errors.New("directory down")})

	_, pwt := svc.getProfiles([]string{"u1"})
	require.NotNil(t, pwt)
	assert.Equal(t, http.StatusBadGateway, pwt.Problem.Status)
	assert.Equal(t, "error.upstream.unavailable", pwt.Problem.Code)
}

func TestGetPublicProfilesGatesAvatarOnOptIn(t *testing.T) {
	svc := newTestService(t, fakeDirectory{
		users: map[string]identity.User{
			"u1": {Id: "u1", Name: "Ada Lovelace", ProfilePictureUrl: "https://img.example.com/ada.png"},
			"u2": {Id: "u2", Name: "Grace Hopper", ProfilePictureUrl: "https://img.example.com/grace.png"},
		},
	})
	require.Nil(t, svc.setPreference("u1", true))

	batch, pwt := svc.getPublicProfiles([]string{"u1", "u2"})
	require.Nil(t, pwt)
	require.Len(t, batch.Profiles, 2)

	byId := map[string]PublicProfile{}
	for _, p := range batch.Profiles {
		byId[p.UserId] = p
	}

	require.NotNil(t, byId["u1"].ProfilePictureUrl)
	assert.Equal(t, "https://img.example.com/ada.png", *byId["u1"].ProfilePictureUrl)
	assert.Equal(t, "Ada", byId["u1"].Name)

	// No preference row means no avatar exposure.
	assert.Nil(t, byId["u2"].ProfilePictureUrl)
	assert.Equal(t, "Grace", byId["u2"].Name)
}

func TestGetPublicProfilesNameFallback(t *testing.T) {
	svc := newTestService(t, fakeDirectory{
		users: map[string]identity.User{
			"u1": {Id: "u1", Name: ""},
		},
	})

	batch, pwt := svc.getPublicProfiles([]string{"u1"})
	require.Nil(t, pwt)
	require.Len(t, batch.Profiles, 1)
	assert.Equal(t, "Player", batch.Profiles[0].Name)
}
