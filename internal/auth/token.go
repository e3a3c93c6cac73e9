package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/projectd/dealership-api/internal/model"
)

// AccessToken is a signed HS256 JWT plus its expiry.  The token is the
// sole client-held credential; the client keeps it under a well-known
// local key and presents it as a Bearer header.
type AccessToken struct {
	Token string    // serialized JWT
	Exp   time.Time // UTC expiration time
}

// Claims is what the API trusts about a verified bearer.
type Claims struct {
	UserID   int64
	Username string
	Role     model.Role
}

var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken signs an HS256 JWT for the user with the standard
// sub/exp/iat claims plus username and role.
func NewAccessToken(secret string, u model.User, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"role":     string(u.Role),
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of raw and
// extracts the claims.  Tokens signed with any method other than HMAC
// are rejected.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	var c Claims
	// JWT numbers decode as float64
	if sub, ok := mc["sub"].(float64); ok {
		c.UserID = int64(sub)
	} else {
		return Claims{}, ErrInvalidToken
	}
	if name, ok := mc["username"].(string); ok {
		c.Username = name
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = model.Role(role)
	}
	return c, nil
}
