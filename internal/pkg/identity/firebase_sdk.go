package identity

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog/log"
)

var firebaseAuthClient *auth.Client
var ctx context.Context

func InitFirebaseSdk() {
	ctx = context.Background()
	app, appErr := firebase.NewApp(ctx, nil)
	if appErr != nil {
		log.Fatal().Err(appErr).Msg("error initializing app")
	}
	var clientErr error
	firebaseAuthClient, clientErr = app.Auth(ctx)
	if clientErr != nil {
		log.Fatal().Err(clientErr).Msg("error getting Auth client")
	}
}

func VerifyIdToken(idToken string) (*auth.Token, error) {
	return firebaseAuthClient.VerifyIDToken(ctx, idToken)
}

// FromToken maps a verified ID token onto the identity the services consume.
// Permissions arrive as a custom claim set by the identity collaborator.
func FromToken(token *auth.Token) Identity {
	id := Identity{Id: token.UID}
	if name, ok := token.Claims["name"].(string); ok {
		id.Name = name
	}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if raw, ok := token.Claims["permissions"].([]any); ok {
		for _, p := range raw {
			if s, ok := p.(string); ok {
				id.Permissions = append(id.Permissions, s)
			}
		}
	}
	return id
}

type firebaseDirectory struct{}

func NewDirectory() Directory {
	return firebaseDirectory{}
}

func (firebaseDirectory) GetUsers(ids []string) ([]User, []string, error) {
	identifiers := make([]auth.UserIdentifier, 0, len(ids))
	for _, id := range ids {
		identifiers = append(identifiers, auth.UIDIdentifier{UID: id})
	}

	result, err := firebaseAuthClient.GetUsers(ctx, identifiers)
	if err != nil {
		return nil, nil, err
	}

	users := make([]User, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, User{
			Id:                u.UID,
			Name:              u.DisplayName,
			Email:             u.Email,
			ProfilePictureUrl: u.PhotoURL,
		})
	}

	notFound := make([]string, 0, len(result.NotFound))
	for _, nf := range result.NotFound {
		if uid, ok := nf.(auth.UIDIdentifier); ok {
			notFound = append(notFound, uid.UID)
		}
	}

	return users, notFound, nil
}
