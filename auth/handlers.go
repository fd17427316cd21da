package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"reisegruppen/globals"
	"reisegruppen/middleware"
	"reisegruppen/models"
	"reisegruppen/users"
	"reisegruppen/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

const (
	msgMissingFields   = "Bitte alle Pflichtfelder ausfüllen"
	msgShortPassword   = "Passwort muss mindestens 6 Zeichen lang sein"
	msgEmailTaken      = "E-Mail bereits registriert"
	msgBadCredentials  = "Ungültige Anmeldedaten"
	msgLoggedOut       = "Erfolgreich abgemeldet"
	msgUserNotFound    = "Benutzer nicht gefunden"
	msgRegisterFailed  = "Registrierung fehlgeschlagen"
	msgLoginFailed     = "Anmeldung fehlgeschlagen"
	msgLogoutFailed    = "Abmeldung fehlgeschlagen"
	msgUserFetchFailed = "Fehler beim Abrufen der Benutzer"
)

const storeTimeout = 5 * time.Second

// Revoker records logged-out token ids until they would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type Handler struct {
	users       users.Store
	tokens      *TokenIssuer
	revoker     Revoker
	development bool
}

func NewHandler(store users.Store, tokens *TokenIssuer, revoker Revoker, development bool) *Handler {
	return &Handler{users: store, tokens: tokens, revoker: revoker, development: development}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in credentials
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Ungültige Eingabe")
		return
	}
	in.Email = users.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Password == "" || in.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if len(in.Password) < minPasswordLength {
		utils.RespondWithError(w, http.StatusBadRequest, msgShortPassword)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgRegisterFailed, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	u := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         globals.RoleUser,
	}
	if err := h.users.Create(ctx, &u); err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			utils.RespondWithError(w, http.StatusConflict, msgEmailTaken)
			return
		}
		utils.RespondServerError(w, r, h.development, msgRegisterFailed, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, u, msgRegisterFailed)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in credentials
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Ungültige Eingabe")
		return
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	u, err := h.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, users.ErrNotFound) {
		utils.RespondWithError(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgLoginFailed, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	now := time.Now().UTC()
	if err := h.users.TouchLogin(ctx, u.ID.Hex(), now); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID.Hex()).Msg("record last login")
	} else {
		u.LastLogin = &now
	}

	h.respondWithToken(w, r, http.StatusOK, u, msgLoginFailed)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, r *http.Request, code int, u models.User, failMsg string) {
	token, err := h.tokens.Issue(u)
	if err != nil {
		utils.RespondServerError(w, r, h.development, failMsg, err)
		return
	}
	utils.RespondWithJSON(w, code, utils.M{
		"success": true,
		"token":   token,
		"user":    u,
	})
}

// Logout revokes the presented token for the rest of its lifetime.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())
	if id.TokenID != "" && h.revoker != nil {
		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()
		if err := h.revoker.Revoke(ctx, id.TokenID, time.Until(id.ExpiresAt)); err != nil {
			utils.RespondServerError(w, r, h.development, msgLogoutFailed, err)
			return
		}
	}
	log.Info().Str("user_id", id.ID).Msg("user logged out")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": msgLoggedOut})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	u, err := h.users.FindByID(ctx, id.ID)
	if errors.Is(err, users.ErrNotFound) {
		utils.RespondWithMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgUserFetchFailed, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": u})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	list, err := h.users.List(ctx)
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgUserFetchFailed, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"total":   len(list),
		"users":   list,
	})
}
