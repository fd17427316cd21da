package destinations

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"reisegruppen/models"
	"reisegruppen/observability"
	"reisegruppen/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

const cachePrefix = "destinations:list:"

const (
	storeTimeout = 5 * time.Second
	cacheTimeout = 300 * time.Millisecond
)

const (
	msgNotFound     = "Reiseziel nicht gefunden"
	msgCreated      = "Reiseziel erstellt"
	msgDeleted      = "Reiseziel gelöscht"
	msgListFailed   = "Fehler beim Abrufen der Reiseziele"
	msgGetFailed    = "Fehler beim Abrufen des Reiseziels"
	msgSaveFailed   = "Fehler beim Speichern des Reiseziels"
	msgDeleteFailed = "Fehler beim Löschen des Reiseziels"
)

// Cache stores JSON documents with a TTL. rdx.Client implements it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	DelPrefix(ctx context.Context, prefix string) error
}

type Handler struct {
	store       Store
	cache       Cache
	ttl         time.Duration
	development bool
}

// NewHandler serves destinations. A nil cache disables list caching.
func NewHandler(store Store, cache Cache, ttl time.Duration, development bool) *Handler {
	return &Handler{store: store, cache: cache, ttl: ttl, development: development}
}

func (h *Handler) ListDestinations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f := ParseFilter(r.URL.Query())
	key := cachePrefix + f.Key()

	var list []models.Destination
	if h.cache != nil {
		cctx, ccancel := context.WithTimeout(r.Context(), cacheTimeout)
		hit, err := h.cache.GetJSON(cctx, key, &list)
		ccancel()
		switch {
		case err != nil:
			observability.ObserveCache("destinations", "error")
			log.Warn().Err(err).Str("key", key).Msg("destination cache read failed")
		case hit:
			observability.ObserveCache("destinations", "hit")
			respondList(w, list)
			return
		default:
			observability.ObserveCache("destinations", "miss")
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	list, err := h.store.List(ctx, f)
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgListFailed, err)
		return
	}
	if h.cache != nil {
		cctx, ccancel := context.WithTimeout(r.Context(), cacheTimeout)
		defer ccancel()
		if err := h.cache.SetJSON(cctx, key, list, h.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("destination cache write failed")
		} else {
			observability.ObserveCache("destinations", "set")
		}
	}
	respondList(w, list)
}

func respondList(w http.ResponseWriter, list []models.Destination) {
	if list == nil {
		list = []models.Destination{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"total":        len(list),
		"destinations": list,
	})
}

func (h *Handler) GetDestination(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	d, err := h.store.Get(ctx, ps.ByName("id"))
	if errors.Is(err, ErrNotFound) {
		utils.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgGetFailed, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, d)
}

type destinationInput struct {
	Name              string             `json:"name"`
	Country           string             `json:"country"`
	City              string             `json:"city"`
	Description       string             `json:"description"`
	Images            []string           `json:"images"`
	AvgPricePerPerson models.Number      `json:"avgPricePerPerson"`
	Tags              []string           `json:"tags"`
	Coordinates       models.Coordinates `json:"coordinates"`
}

func (in destinationInput) destination() models.Destination {
	images := []string{}
	for _, u := range in.Images {
		if utils.IsHTTPURL(u) {
			images = append(images, u)
		}
	}
	tags := utils.SplitTags(strings.Join(in.Tags, ","))
	if tags == nil {
		tags = []string{}
	}
	return models.Destination{
		Name:              strings.TrimSpace(in.Name),
		Country:           strings.TrimSpace(in.Country),
		City:              strings.TrimSpace(in.City),
		Description:       strings.TrimSpace(in.Description),
		Images:            images,
		AvgPricePerPerson: in.AvgPricePerPerson.Float(),
		Tags:              tags,
		Coordinates:       in.Coordinates,
	}
}

func (h *Handler) CreateDestination(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in destinationInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Ungültige Eingabe")
		return
	}
	d := in.destination()

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.store.Create(ctx, &d); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"success": false,
				"message": "Validierungsfehler",
				"errors":  verr.Fields,
			})
			return
		}
		utils.RespondServerError(w, r, h.development, msgSaveFailed, err)
		return
	}
	h.invalidate(r.Context())
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "message": msgCreated, "destination": d})
}

func (h *Handler) DeleteDestination(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	err := h.store.Delete(ctx, ps.ByName("id"))
	if errors.Is(err, ErrNotFound) {
		utils.RespondWithMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		utils.RespondServerError(w, r, h.development, msgDeleteFailed, err)
		return
	}
	h.invalidate(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": msgDeleted})
}

func (h *Handler) invalidate(ctx context.Context) {
	if h.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := h.cache.DelPrefix(ctx, cachePrefix); err != nil {
		log.Warn().Err(err).Msg("destination cache invalidation failed")
		return
	}
	observability.ObserveCache("destinations", "del")
}
