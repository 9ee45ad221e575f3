package jwttoken

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "admingeo/pkg/domain-errors"
)

// Claims are the session token claims. The subject carries the user id;
// nothing else identifies the session (tokens are stateless, valid
// until natural expiry).
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject back into a user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	return id, nil
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	expiry     time.Duration
}

func NewService(signingKey string, expiry time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		expiry:     expiry,
	}
}

// Sign issues an HS256 access token whose subject is the user id.
func (s *Service) Sign(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
