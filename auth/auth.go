package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/auth"
)

// UserCtxKey is the context key the verified token is stored under. It is a
// pointer to a private type so it cannot collide with other packages' keys.
var UserCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// TokenVerifier is implemented by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Middleware verifies a bearer ID token and packs it into the request context.
// Requests without a bearer token pass through anonymously; resolvers decide
// whether they need a user.
func Middleware(client TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token *auth.Token
			t := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(t) == 2 && strings.EqualFold(t[0], "Bearer") {
				var err error
				token, err = client.VerifyIDToken(r.Context(), strings.TrimSpace(t[1]))
				if err != nil {
					log.Printf("rejected ID token: %v", err)
					http.Error(w, "Invalid token", http.StatusForbidden)
					return
				}
			}

			ctx := WithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithToken returns a copy of ctx carrying token.
func WithToken(ctx context.Context, token *auth.Token) context.Context {
	return context.WithValue(ctx, UserCtxKey, token)
}

// ForContext finds the user from the context. REQUIRES Middleware to have run.
func ForContext(ctx context.Context) *auth.Token {
	raw, _ := ctx.Value(UserCtxKey).(*auth.Token)
	return raw
}
