package auth

import "strings"

// AnonymousName is used when the identity provider has neither a display
// name nor an email for the player.
const AnonymousName = "Anonymous"

// Profile is the resolved identity of the current user, read once at the
// request boundary. The service never authenticates anyone itself.
type Profile struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Resolved reports whether the profile belongs to an authenticated user.
func (p Profile) Resolved() bool {
	return p.ID != ""
}

// DisplayName resolves the name recorded with a score submission: the full
// name, else the local part of the email, else "Anonymous".
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.Email != "" {
		if at := strings.Index(p.Email, "@"); at > 0 {
			return p.Email[:at]
		}
		return p.Email
	}
	return AnonymousName
}
