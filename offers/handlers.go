package offers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"reisegruppen/middleware"
	"reisegruppen/models"
	"reisegruppen/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

const (
	msgCreated     = "Reiseangebot erfolgreich erstellt"
	msgUpdated     = "Reiseangebot aktualisiert"
	msgDeleted     = "Reiseangebot gelöscht"
	msgNotFound    = "Reiseangebot nicht gefunden"
	msgMissing     = "Pflichtfelder fehlen"
	msgValidation  = "Validierungsfehler"
	msgBadInput    = "Ungültige Eingabe"
	msgBadFilter   = "Ungültiger Filterparameter"
	msgListFailed  = "Fehler beim Abrufen der Reiseangebote"
	msgGetFailed   = "Fehler beim Abrufen des Reiseangebots"
	msgSaveFailed  = "Fehler beim Speichern des Reiseangebots"
	msgPurgeFailed = "Fehler beim Löschen des Reiseangebots"
)

const storeTimeout = 5 * time.Second

type Handler struct {
	store       Store
	photos      *http.Client
	development bool
}

// NewHandler serves the travel offer endpoints. development exposes internal
// error messages in 500 responses.
func NewHandler(store Store, development bool) *Handler {
	return &Handler{store: store, photos: &http.Client{Timeout: photoTimeout}, development: development}
}

func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f, err := ParseListFilter(r.URL.Query())
	if err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": msgBadFilter, "error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	offers, err := h.store.List(ctx, f)
	if err != nil {
		log.Error().Err(err).Str("filter", f.Encode()).Msg("list travel offers")
		utils.RespondServerError(w, r, h.development, msgListFailed, err)
		return
	}
	log.Debug().Str("filter", f.Encode()).Int("total", len(offers)).Msg("travel offers listed")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"total":   len(offers),
		"offers":  offers,
	})
}

func (h *Handler) GetOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	o, err := h.store.Get(ctx, ps.ByName("id"))
	if err != nil {
		h.fail(w, r, msgGetFailed, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, o)
}

func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.RespondWithMessage(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var in CreateInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		h.badInput(w, err)
		return
	}
	if missing := in.Missing(); len(missing) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success":  false,
			"message":  msgMissing,
			"required": requiredFields,
			"missing":  missing,
		})
		return
	}

	o, err := in.Offer(actor.ID)
	if err != nil {
		h.fail(w, r, msgSaveFailed, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.store.Create(ctx, &o); err != nil {
		h.fail(w, r, msgSaveFailed, err)
		return
	}
	log.Info().Str("offer_id", o.ID.Hex()).Str("actor", actor.ID).Msg("travel offer created")
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": msgCreated,
		"offer":   o,
	})
}

func (h *Handler) UpdateOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		utils.RespondWithMessage(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var in UpdateInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		h.badInput(w, err)
		return
	}
	p, err := in.Patch(actor.ID)
	if err != nil {
		h.fail(w, r, msgSaveFailed, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	o, err := h.store.Update(ctx, ps.ByName("id"), p)
	if err != nil {
		h.fail(w, r, msgSaveFailed, err)
		return
	}
	log.Info().Str("offer_id", o.ID.Hex()).Str("actor", actor.ID).Msg("travel offer updated")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": msgUpdated,
		"offer":   o,
	})
}

func (h *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	id := ps.ByName("id")
	if err := h.store.Delete(ctx, id); err != nil {
		h.fail(w, r, msgPurgeFailed, err)
		return
	}
	actor, _ := middleware.IdentityFrom(r.Context())
	log.Info().Str("offer_id", id).Str("actor", actor.ID).Msg("travel offer deleted")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": msgDeleted})
}

// Meta lists the vocabularies the admin console builds its forms from.
func (h *Handler) Meta(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tags := make([]utils.M, 0, len(models.Tags))
	for _, t := range models.Tags {
		tags = append(tags, utils.M{"value": t, "label": models.TagLabels[t]})
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":              true,
		"categories":           models.Categories,
		"cancellationPolicies": models.CancellationPolicies,
		"tags":                 tags,
	})
}

func (h *Handler) badInput(w http.ResponseWriter, err error) {
	utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
		"success": false,
		"message": msgBadInput,
		"error":   err.Error(),
	})
}

// fail maps store and validation errors onto responses.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
	case errors.As(err, &verr):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success": false,
			"message": msgValidation,
			"errors":  verr.Fields,
		})
	default:
		utils.RespondServerError(w, r, h.development, msg, err)
	}
}
