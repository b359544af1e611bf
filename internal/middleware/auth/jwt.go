package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}

// NewToken issues an HS256 bearer token for a logged-in user.
func NewToken(userName, secret, issuer, audience string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JWT guards a router with bearer-token auth: anything without a valid,
// unexpired token from our issuer gets 401.
func JWT(secret, issuer, audience string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				requireAuth(w)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				requireAuth(w)
				return
			}

			claims := &Claims{}
			_, err := jwt.ParseWithClaims(authHeader[7:], claims,
				func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithIssuer(issuer),
				jwt.WithAudience(audience),
				jwt.WithExpirationRequired(),
			)
			if err != nil {
				requireAuth(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requireAuth(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
