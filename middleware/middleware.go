package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"reisegruppen/globals"
	"reisegruppen/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

const (
	MsgUnauthorized = "Bitte authentifizieren"
	MsgForbidden    = "Zugriff verweigert. Administratorrechte erforderlich."
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
	errNoSubject    = errors.New("token carries no user id")
	errRevoked      = errors.New("token revoked")
)

// JWT claims
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the caller resolved from a verified token. ID is never empty.
type Identity struct {
	ID        string
	Email     string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func (i Identity) IsAdmin() bool { return i.Role == globals.RoleAdmin }

// RevocationChecker reports whether a token id has been revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Authenticator struct {
	secret  []byte
	revoked RevocationChecker
}

// NewAuthenticator verifies HS256 tokens signed with secret. revoked may be nil.
func NewAuthenticator(secret []byte, revoked RevocationChecker) *Authenticator {
	return &Authenticator{secret: secret, revoked: revoked}
}

func SignToken(secret []byte, claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify extracts and checks the bearer token of r.
func (a *Authenticator) Verify(r *http.Request) (Identity, error) {
	tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	tokenString = strings.TrimSpace(tokenString)
	if !ok || tokenString == "" {
		return Identity{}, errMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errInvalidToken
	}
	if claims.UserID == "" {
		return Identity{}, errNoSubject
	}

	if a.revoked != nil && claims.ID != "" {
		revoked, err := a.revoked.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			// revocation store unavailable: signature and expiry still hold
			log.Warn().Err(err).Msg("token revocation check failed")
		} else if revoked {
			return Identity{}, errRevoked
		}
	}

	id := Identity{
		ID:      claims.UserID,
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

func (a *Authenticator) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := a.Verify(r)
		if err != nil {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
			utils.RespondWithMessage(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}
		next(w, r.WithContext(WithIdentity(r.Context(), id)), ps)
	}
}

// AdminOnly authenticates like Authenticate and additionally requires the admin role.
func (a *Authenticator) AdminOnly(next httprouter.Handle) httprouter.Handle {
	return a.Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, _ := IdentityFrom(r.Context())
		if !id.IsAdmin() {
			utils.RespondWithMessage(w, http.StatusForbidden, MsgForbidden)
			return
		}
		next(w, r, ps)
	})
}

// BearerFromQuery lets clients that cannot set headers, such as browser
// websockets, pass the token as ?access_token=.
func BearerFromQuery(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if r.Header.Get("Authorization") == "" {
			if tok := r.URL.Query().Get("access_token"); tok != "" {
				r.Header.Set("Authorization", "Bearer "+tok)
			}
		}
		next(w, r, ps)
	}
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, globals.IdentityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(globals.IdentityKey).(Identity)
	return id, ok && id.ID != ""
}
