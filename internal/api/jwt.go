package api

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/valoda-app/valoda-backend/internal/config"
)

// JWTProcessor verifies externally issued HS256 access tokens. This service
// never issues tokens itself.
type JWTProcessor struct {
	issuer   string
	audience []string

	secret []byte
}

func NewJWTProcessor(conf config.JWT) *JWTProcessor {
	return &JWTProcessor{
		issuer:   conf.Issuer,
		audience: conf.Audience,

		secret: []byte(conf.Secret),
	}
}

// ParseAccessToken validates the token and returns the user ID from its subject.
func (p *JWTProcessor) ParseAccessToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	if iss, _ := claims.GetIssuer(); iss != p.issuer {
		return "", fmt.Errorf("invalid issuer")
	}
	if aud, _ := claims.GetAudience(); !containsAll(aud, p.audience) {
		return "", fmt.Errorf("invalid audience")
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("get subject: %w", err)
	}
	if subject == "" {
		return "", fmt.Errorf("empty subject")
	}

	return subject, nil
}

// containsAll returns true if all elements in required are present in actual
func containsAll(actual, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if len(actual) < len(required) {
		return false
	}
	for _, r := range required {
		found := false
		for _, a := range actual {
			if a == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
