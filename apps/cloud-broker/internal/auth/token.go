// Package auth はデバイスのコアトークン（HS256 JWT）を検証する。
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"k8s.io/utils/clock"
)

// ErrInvalidToken はトークン検証失敗エラー
var ErrInvalidToken = apperr.ErrInvalidToken

// 時刻ずれの許容幅
const leeway = 30 * time.Second

// CoreClaims はコアトークンのクレーム。
type CoreClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID はトークンが表すユーザーIDを返す。emailがなければsubを使う。
func (c *CoreClaims) UserID() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}

// Verifier はコアトークンを検証する。
type Verifier struct {
	secret []byte
	clock  clock.PassiveClock
}

// NewVerifier は新しいVerifierを生成する。
func NewVerifier(secret string, clk clock.PassiveClock) *Verifier {
	return &Verifier{secret: []byte(secret), clock: clk}
}

// Verify はトークンを検証し、ユーザーIDを返す。
func (v *Verifier) Verify(token string) (string, error) {
	claims := &CoreClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(v.clock.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	userID := claims.UserID()
	if userID == "" {
		return "", fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return userID, nil
}

// Issue は指定ユーザーのトークンを署名する。開発用クライアントとテストで使う。
func (v *Verifier) Issue(userID string, ttl time.Duration) (string, error) {
	now := v.clock.Now()
	claims := CoreClaims{
		Email: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// BearerToken はAuthorizationヘッダからトークンを取り出す。
func BearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", errors.New("missing bearer token")
	}
	return strings.TrimSpace(header[len(prefix):]), nil
}
