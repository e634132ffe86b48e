package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const profileContextKey = "auth_profile"

// Middleware resolves the caller's profile from the Authorization header and
// stores it on the request context. When required is true, requests without a
// resolvable identity are rejected with 401; otherwise they proceed with an
// empty profile (the leaderboard reads the viewer id only when present).
func Middleware(verifier Verifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "authentication required",
				})
				return
			}
			c.Next()
			return
		}

		profile, err := verifier.Verify(token)
		if err != nil || !profile.Resolved() {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "invalid identity token",
				})
				return
			}
			c.Next()
			return
		}

		c.Set(profileContextKey, profile)
		c.Next()
	}
}

// ProfileFromContext returns the profile stored by Middleware, if any.
func ProfileFromContext(c *gin.Context) (Profile, bool) {
	value, exists := c.Get(profileContextKey)
	if !exists {
		return Profile{}, false
	}
	profile, ok := value.(Profile)
	return profile, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
