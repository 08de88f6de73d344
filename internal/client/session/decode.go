package session

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedCredential is returned by Decode for anything that is not a
// three-segment credential whose payload carries "sub" and "exp".
var ErrMalformedCredential = errors.New("malformed credential")

// Decode reads the identity out of the credential payload. The signature is
// never checked here; the API does that on every call.
func Decode(credential string) (*models.Session, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedCredential
	}

	raw, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, ErrMalformedCredential
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil || claims == nil {
		return nil, ErrMalformedCredential
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrMalformedCredential
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrMalformedCredential
	}

	return &models.Session{
		Subject:   sub,
		UserID:    userID(claims["userId"]),
		ExpiresAt: exp.Time,
	}, nil
}

// userID accepts a JSON number or a numeric string; anything else is 0.
func userID(v any) int64 {
	switch id := v.(type) {
	case float64:
		return int64(id)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
