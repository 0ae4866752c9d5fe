package v1

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KirkDiggler/rpg-initiative/internal/errors"
)

type subjectKey struct{}

// SubjectFromContext returns the authenticated token subject, if any
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey{}).(string)
	return sub, ok
}

// authenticator checks HS256 bearer tokens issued by the identity provider.
// A nil secret disables the check.
type authenticator struct {
	secret []byte
}

func newAuthenticator(secret string) *authenticator {
	if secret == "" {
		return &authenticator{}
	}
	return &authenticator{secret: []byte(secret)}
}

func (a *authenticator) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.secret == nil {
			next.ServeHTTP(w, r)
			return
		}

		subject, err := a.verify(bearerToken(r))
		if err != nil {
			slog.WarnContext(r.Context(), "rejected request",
				"path", r.URL.Path,
				"error", err.Error())
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey{}, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *authenticator) verify(raw string) (string, error) {
	if raw == "" {
		return "", errors.Unauthenticated("missing bearer token")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnauthenticated, "invalid bearer token")
	}
	if claims.Subject == "" {
		return "", errors.Unauthenticated("token has no subject")
	}
	return claims.Subject, nil
}

// bearerToken reads the Authorization header, falling back to the
// access_token query parameter browsers use for websockets
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("access_token")
}
