package identity

// Identity is the resolved caller of a request as supplied by the identity
// collaborator. The core trusts it verbatim and never parses credentials.
type Identity struct {
	Id          string
	Name        string
	Email       string
	Permissions []string
}

func (i Identity) HasPermission(permission string) bool {
	for _, p := range i.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// User is a directory entry used to render participant names and avatars.
type User struct {
	Id                string `json:"userId"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	ProfilePictureUrl string `json:"profilePictureUrl"`
}

// Directory resolves user ids to profile data in bulk.
type Directory interface {
	GetUsers(ids []string) ([]User, []string, error)
}
