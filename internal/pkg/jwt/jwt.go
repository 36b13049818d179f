package jwt

import (
	"errors"
	"time"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

var ErrInvalidClaims = errors.New("invalid token claims")

// Service issues and verifies access tokens. Tokens are normally minted by
// the external auth provider with the shared secret; GenerateAccessToken is
// kept for local runs and tests.
type Service interface {
	GenerateAccessToken(id identity.Identity) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(id identity.Identity) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": id.UserID,
		"email":   id.Email,
		"name":    id.Name,
		"role":    string(id.Role),
		"type":    tokenTypeAccess,
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// IdentityFromClaims builds the caller identity from verified access token
// claims. Tokens of another type or with an unknown role are rejected.
func IdentityFromClaims(claims map[string]interface{}) (identity.Identity, error) {
	if t, _ := claims["type"].(string); t != tokenTypeAccess {
		return identity.Identity{}, ErrInvalidClaims
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return identity.Identity{}, ErrInvalidClaims
	}
	role, _ := claims["role"].(string)
	if !identity.Role(role).IsValid() {
		return identity.Identity{}, ErrInvalidClaims
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return identity.Identity{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   identity.Role(role),
	}, nil
}
