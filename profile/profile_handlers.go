package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"reisegruppen/middleware"
	"reisegruppen/models"
	"reisegruppen/users"
	"reisegruppen/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	msgNotFound     = "Benutzer nicht gefunden"
	msgUpdated      = "Profil aktualisiert"
	msgFetchFailed  = "Fehler beim Abrufen des Profils"
	msgUpdateFailed = "Fehler beim Aktualisieren des Profils"
)

type Handler struct {
	users       users.Store
	development bool
}

func NewHandler(store users.Store, development bool) *Handler {
	return &Handler{users: store, development: development}
}

type profileInput struct {
	Name      *string `json:"name"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
}

func (in profileInput) validate() error {
	v := &models.ValidationError{}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		v.Add("name", "Name darf nicht leer sein")
	}
	if in.Bio != nil && len([]rune(*in.Bio)) > 500 {
		v.Add("bio", "Bio darf höchstens 500 Zeichen lang sein")
	}
	if in.Avatar != nil && *in.Avatar != "" && !utils.IsHTTPURL(strings.TrimSpace(*in.Avatar)) {
		v.Add("avatar", "Avatar muss eine http(s)-URL sein")
	}
	return v.Err()
}

// GetProfile returns the caller's own user record.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, err := h.users.FindByID(ctx, id.ID)
	if errors.Is(err, users.ErrNotFound) {
		utils.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgFetchFailed, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": u})
}

// EditProfile applies a partial update to the caller's profile.
func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())

	var in profileInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Ungültige Eingabe")
		return
	}
	if err := in.validate(); err != nil {
		var verr *models.ValidationError
		errors.As(err, &verr)
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success": false,
			"message": "Validierungsfehler",
			"errors":  verr.Fields,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, err := h.users.UpdateProfile(ctx, id.ID, users.ProfilePatch{
		Name:      in.Name,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Bio:       in.Bio,
		Avatar:    in.Avatar,
	})
	if errors.Is(err, users.ErrNotFound) {
		utils.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgUpdateFailed, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": msgUpdated, "user": u})
}
