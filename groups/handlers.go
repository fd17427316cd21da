package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"reisegruppen/live"
	"reisegruppen/middleware"
	"reisegruppen/models"
	"reisegruppen/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

const (
	msgNotFound      = "Gruppe nicht gefunden"
	msgCreated       = "Gruppe erstellt"
	msgJoined        = "Gruppe beigetreten"
	msgLeft          = "Gruppe verlassen"
	msgDeleted       = "Gruppe gelöscht"
	msgFull          = "Gruppe ist voll"
	msgAlreadyMember = "Bereits Mitglied dieser Gruppe"
	msgNotMember     = "Kein Mitglied dieser Gruppe"
	msgForbidden     = "Nur der Ersteller oder ein Administrator darf diese Gruppe löschen"
	msgFailed        = "Fehler bei der Gruppenverwaltung"
	msgLiveMembers   = "Live-Updates nur für Mitglieder"
	msgLiveOff       = "Live-Updates nicht verfügbar"
)

type Handler struct {
	store       Store
	hub         *live.Hub
	development bool
}

// NewHandler serves the group endpoints. hub may be nil, which disables live updates.
func NewHandler(store Store, hub *live.Hub, development bool) *Handler {
	return &Handler{store: store, hub: hub, development: development}
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())
	memberID := ""
	if utils.QueryBool(r.URL.Query(), "mine") {
		memberID = id.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.store.List(ctx, memberID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "total": len(list), "groups": list})
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	g, err := h.store.Get(ctx, ps.ByName("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, g)
}

type groupInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Destination string        `json:"destination"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	MaxMembers  models.Number `json:"maxMembers"`
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())

	var in groupInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Ungültige Eingabe")
		return
	}
	g := models.Group{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Destination: strings.TrimSpace(in.Destination),
		StartDate:   strings.TrimSpace(in.StartDate),
		EndDate:     strings.TrimSpace(in.EndDate),
		MaxMembers:  models.DefaultGroupSize,
		CreatedBy:   id.ID,
	}
	if in.MaxMembers != 0 {
		// fractional sizes become 0 and fail validation
		g.MaxMembers, _ = in.MaxMembers.Int()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Create(ctx, &g); err != nil {
		h.fail(w, r, err)
		return
	}
	log.Info().Str("group_id", g.ID.Hex()).Str("actor", id.ID).Msg("group created")
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "message": msgCreated, "group": g})
}

func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	g, err := h.store.Join(ctx, ps.ByName("id"), id.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(live.EventJoined, g, id.ID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": msgJoined, "group": g})
}

func (h *Handler) LeaveGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	g, err := h.store.Leave(ctx, ps.ByName("id"), id.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(live.EventLeft, g, id.ID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": msgLeft, "group": g})
}

// DeleteGroup is allowed for the group's creator and for admins.
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := middleware.IdentityFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	g, err := h.store.Get(ctx, ps.ByName("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if g.CreatedBy != id.ID && !id.IsAdmin() {
		utils.RespondWithMessage(w, http.StatusForbidden, msgForbidden)
		return
	}
	if err := h.store.Delete(ctx, g.ID.Hex()); err != nil {
		h.fail(w, r, err)
		return
	}
	log.Info().Str("group_id", g.ID.Hex()).Str("actor", id.ID).Msg("group deleted")
	g.Members = nil
	h.publish(live.EventDeleted, g, id.ID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": msgDeleted})
}

// Live streams membership changes of one group to its members and to admins.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if h.hub == nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, msgLiveOff)
		return
	}
	id, _ := middleware.IdentityFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	g, err := h.store.Get(ctx, ps.ByName("id"))
	cancel()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !g.HasMember(id.ID) && !id.IsAdmin() {
		utils.RespondWithMessage(w, http.StatusForbidden, msgLiveMembers)
		return
	}
	if err := h.hub.Serve(w, r, g.ID.Hex(), id.ID); err != nil {
		log.Warn().Err(err).Str("group_id", g.ID.Hex()).Msg("live subscription failed")
	}
}

func (h *Handler) publish(eventType string, g models.Group, userID string) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(live.Event{
		Type:        eventType,
		GroupID:     g.ID.Hex(),
		UserID:      userID,
		MemberCount: len(g.Members),
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, ErrFull):
		utils.RespondWithError(w, http.StatusConflict, msgFull)
	case errors.Is(err, ErrAlreadyMember):
		utils.RespondWithError(w, http.StatusConflict, msgAlreadyMember)
	case errors.Is(err, ErrNotMember):
		utils.RespondWithError(w, http.StatusBadRequest, msgNotMember)
	case errors.As(err, &verr):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success": false,
			"message": "Validierungsfehler",
			"errors":  verr.Fields,
		})
	default:
		utils.RespondServerError(w, r, h.development, msgFailed, err)
	}
}
