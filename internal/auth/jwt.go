package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTCodec signs the claims with HS256. Tokens carry a token_type
// claim so a refresh token cannot be replayed as an access token.
type JWTCodec struct {
	issuer     string
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTCodec(
	issuer string,
	signingKey []byte,
	accessTTL, refreshTTL time.Duration,
) *JWTCodec {
	return &JWTCodec{
		issuer:     issuer,
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type"`
}

func (c *JWTCodec) Issue(userID, username string, kind Kind) (string, time.Time, error) {
	ttl := c.accessTTL
	switch kind {
	case KindAccess:
	case KindRefresh:
		ttl = c.refreshTTL
		username = ""
	default:
		return "", time.Time{}, ErrTokenInvalid
	}

	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenUUID.String(),
			Issuer:    c.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username:  username,
		TokenType: string(kind),
	})

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (c *JWTCodec) Verify(token string, kind Kind) (*Claims, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwtClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.signingKey, nil
		},
		jwt.WithIssuer(c.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := t.Claims.(*jwtClaims)
	if !ok || claims.TokenType != string(kind) {
		return nil, ErrTokenInvalid
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &Claims{
		UserID:    claims.Subject,
		Username:  claims.Username,
		ExpiresAt: expiresAt,
	}, nil
}
