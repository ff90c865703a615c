package auth

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the role claim required on the moderation surface.
const RoleAdmin = "admin"

type Authenticator interface {
	ValidateAccessToken(token string) (*jwt.Token, error)
}
