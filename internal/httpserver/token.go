// internal/httpserver/token.go
//
// Result tokens.
//
// When a round finishes the server issues an HS256 JWT carrying the game id
// and final score. POST /score/new accepts only such a token, so the results
// screen shows the score the server counted.

package httpserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/guesstheword/apps/go-server/internal/game"
)

var errInvalidToken = errors.New("invalid result token")

type resultClaims struct {
	GameID string `json:"gid"`
	Score  int    `json:"score"`
	jwt.RegisteredClaims
}

type tokenSigner struct {
	secret []byte
}

func newTokenSigner(secret string) *tokenSigner {
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	return &tokenSigner{secret: []byte(secret)}
}

// Sign issues a token for a finished round.
func (t *tokenSigner) Sign(r game.Result) (string, error) {
	issued := r.FinishedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, resultClaims{
		GameID: r.GameID,
		Score:  r.Score,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  r.GameID,
			IssuedAt: jwt.NewNumericDate(issued),
		},
	})
	return tok.SignedString(t.secret)
}

// Verify checks the signature and returns the claims.
func (t *tokenSigner) Verify(s string) (*resultClaims, error) {
	claims := &resultClaims{}
	tok, err := jwt.ParseWithClaims(s, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if !tok.Valid || claims.GameID == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}
