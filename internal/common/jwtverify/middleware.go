package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
	commonhttp "github.com/akarpovich/notes-service/internal/common/http"
	"github.com/akarpovich/notes-service/internal/common/logger"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "token"

// Claims is the identity the gate injects into the request context.
type Claims struct {
	UserID uuid.UUID
}

// SubjectResolver confirms that a token subject still maps to a live user.
// A token for a deleted account must not pass the gate.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, id uuid.UUID) error
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware is the authorization gate for protected routes. The token is
// taken from the session cookie or the Authorization header; a missing,
// malformed or expired token, or a subject that no longer resolves, ends the
// request with 401.
func Middleware(secret string, resolver SubjectResolver, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				log.Warnf("auth gate path=%s: missing token", r.URL.Path)
				commonhttp.HandleError(w, r, commonerrors.ErrMissingToken, log)
				return
			}

			claims, err := ParseToken(tokenString, secretBytes)
			if err != nil {
				log.Warnf("auth gate path=%s: %v", r.URL.Path, err)
				commonhttp.HandleError(w, r, commonerrors.ErrInvalidToken.WithCause(err), log)
				return
			}

			if err := resolver.ResolveSubject(r.Context(), claims.UserID); err != nil {
				log.WithFields(r.Context(), logger.Fields{
					"user_id": claims.UserID.String(),
					"action":  "gate_subject_unresolved",
				}).Warn("auth gate: token subject no longer exists")
				commonhttp.HandleError(w, r, commonerrors.ErrInvalidToken, log)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	raw := r.Header.Get("Authorization")
	if strings.HasPrefix(raw, "Bearer ") {
		return strings.TrimPrefix(raw, "Bearer ")
	}

	return ""
}

// ParseToken verifies the signature and expiry and extracts the subject.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, errors.New("missing sub claim")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, errors.New("sub claim is not a valid uuid")
	}

	return Claims{UserID: userID}, nil
}
