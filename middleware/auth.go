// middleware/auth.go
package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// SessionHeader carries the resolved game session id to handlers.
	SessionHeader = "X-Session-ID"
	// CookieName is the gorilla session holding the game id.
	CookieName = "show_do_ingles"

	sessionIDKey = "game_id"
	claimSession = "session_id"
)

// IssueToken signs a bearer token bound to a game session.
func IssueToken(key []byte, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimSession: sessionID,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	})
	return token.SignedString(key)
}

// ParseToken validates a bearer token and returns its session id.
func ParseToken(key []byte, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	id, _ := claims[claimSession].(string)
	if id == "" {
		return "", errors.New("token has no session id")
	}
	return id, nil
}

// Session resolves the game session of a request, from a bearer token when
// present or else from the session cookie, which is created on first visit.
// The id is passed on in the X-Session-ID header; any client supplied value
// is replaced.
func Session(store *sessions.CookieStore, tokenKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(SessionHeader)

			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				tokenParts := strings.Split(authHeader, " ")
				if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
					http.Error(w, "Formato de token inválido", http.StatusUnauthorized)
					return
				}
				id, err := ParseToken(tokenKey, tokenParts[1])
				if err != nil {
					http.Error(w, "Token inválido", http.StatusUnauthorized)
					return
				}
				r.Header.Set(SessionHeader, id)
				next.ServeHTTP(w, r)
				return
			}

			// A cookie that fails to decode yields a fresh session.
			session, _ := store.Get(r, CookieName)
			id, _ := session.Values[sessionIDKey].(string)
			if id == "" {
				id = uuid.NewString()
				session.Values[sessionIDKey] = id
				if err := session.Save(r, w); err != nil {
					log.Printf("session save: %v", err)
					http.Error(w, "Erro de sessão", http.StatusInternalServerError)
					return
				}
			}
			r.Header.Set(SessionHeader, id)
			next.ServeHTTP(w, r)
		})
	}
}
