package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	secret []byte
}

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

func (j *JWT) Sign(accountID uint64, tenantID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": accountID,
		"tid": tenantID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(j.secret)
}

func (j *JWT) Verify(tokenStr string) (uint64, string, error) {
	t, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || !t.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"]
	if !ok {
		return 0, "", errors.New("missing sub")
	}
	// jwt MapClaims numbers are float64
	idf, ok := sub.(float64)
	if !ok {
		return 0, "", errors.New("invalid sub type")
	}

	tid, ok := claims["tid"].(string)
	if !ok || tid == "" {
		return 0, "", errors.New("missing tenant")
	}

	return uint64(idf), tid, nil
}
