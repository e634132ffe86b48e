package auth

import (
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/quizdash/quiz-service/internal/config"
)

// Verifier resolves a bearer token into a Profile.
type Verifier interface {
	Verify(token string) (Profile, error)
}

// CasdoorVerifier validates Casdoor-issued JWTs and maps their claims onto
// the Profile shape the rest of the service consumes.
type CasdoorVerifier struct {
	client *casdoorsdk.Client
}

func NewCasdoorVerifier(cfg config.CasdoorConfig) *CasdoorVerifier {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.Organization,
		cfg.Application,
	)
	return &CasdoorVerifier{client: client}
}

func (v *CasdoorVerifier) Verify(token string) (Profile, error) {
	claims, err := v.client.ParseJwtToken(token)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to parse identity token: %w", err)
	}

	return Profile{
		ID:        claims.User.Id,
		FullName:  claims.User.DisplayName,
		Email:     claims.User.Email,
		AvatarURL: claims.User.Avatar,
	}, nil
}
