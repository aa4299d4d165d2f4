package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-rail/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	sessionClaim = "sid"
	issuerClaim  = "iss"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongIssuer   = errors.New("token issued by another service")
	ErrMissingClaims = errors.New("token carries no session id")
)

var _ i.Tokenizer = &JwtService{}

// JwtService issues and verifies the bearer tokens that bind a client to its game session.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a signed token for the session that expires after ttl.
func (s *JwtService) Generate(sessionID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		sessionClaim: sessionID.String(),
		issuerClaim:  s.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode validates a token and returns the session it was issued for.
func (s *JwtService) Decode(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return uuid.Nil, ErrWrongIssuer
	}

	raw, ok := claims[sessionClaim].(string)
	if !ok {
		return uuid.Nil, ErrMissingClaims
	}
	return uuid.Parse(raw)
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
