package routes

import (
	"net/http"

	"reisegruppen/middleware"
	"reisegruppen/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

func (d *Deps) handle(router *httprouter.Router, method, path string, h httprouter.Handle) {
	router.Handle(method, path, middleware.Instrument(path, h))
}

func AddOfferRoutes(router *httprouter.Router, d *Deps) {
	d.handle(router, http.MethodGet, "/api/travel-offers", d.Auth.Authenticate(d.Offers.ListOffers))
	d.handle(router, http.MethodPost, "/api/travel-offers", d.Auth.AdminOnly(d.Offers.CreateOffer))
	d.handle(router, http.MethodGet, "/api/travel-offers/:id", d.Auth.Authenticate(d.Offers.GetOffer))
	d.handle(router, http.MethodPut, "/api/travel-offers/:id", d.Auth.AdminOnly(d.Offers.UpdateOffer))
	d.handle(router, http.MethodDelete, "/api/travel-offers/:id", d.Auth.AdminOnly(d.Offers.DeleteOffer))
	d.handle(router, http.MethodGet, "/api/travel-offers/:id/brochure", d.Auth.Authenticate(d.Offers.Brochure))
	d.handle(router, http.MethodGet, "/api/meta/travel-offers", d.Auth.Authenticate(d.Offers.Meta))
}

func AddAuthRoutes(router *httprouter.Router, d *Deps) {
	d.handle(router, http.MethodPost, "/api/auth/register", d.Limiter.Limit(d.Users.Register))
	d.handle(router, http.MethodPost, "/api/auth/login", d.Limiter.Limit(d.Users.Login))
	d.handle(router, http.MethodPost, "/api/auth/logout", d.Auth.Authenticate(d.Users.Logout))
	d.handle(router, http.MethodGet, "/api/auth/me", d.Auth.Authenticate(d.Users.Me))
	d.handle(router, http.MethodGet, "/api/users", d.Auth.AdminOnly(d.Users.ListUsers))
}

func AddProfileRoutes(router *httprouter.Router, d *Deps) {
	d.handle(router, http.MethodGet, "/api/profile", d.Auth.Authenticate(d.Profile.GetProfile))
	d.handle(router, http.MethodPut, "/api/profile", d.Auth.Authenticate(d.Profile.EditProfile))
}

func AddDestinationRoutes(router *httprouter.Router, d *Deps) {
	d.handle(router, http.MethodGet, "/api/destinations", d.Auth.Authenticate(d.Destinations.ListDestinations))
	d.handle(router, http.MethodGet, "/api/destinations/:id", d.Auth.Authenticate(d.Destinations.GetDestination))
	d.handle(router, http.MethodPost, "/api/destinations", d.Auth.AdminOnly(d.Destinations.CreateDestination))
	d.handle(router, http.MethodDelete, "/api/destinations/:id", d.Auth.AdminOnly(d.Destinations.DeleteDestination))
}

func AddGroupRoutes(router *httprouter.Router, d *Deps) {
	d.handle(router, http.MethodGet, "/api/groups", d.Auth.Authenticate(d.Groups.ListGroups))
	d.handle(router, http.MethodPost, "/api/groups", d.Auth.Authenticate(d.Groups.CreateGroup))
	d.handle(router, http.MethodGet, "/api/groups/:id", d.Auth.Authenticate(d.Groups.GetGroup))
	d.handle(router, http.MethodPost, "/api/groups/:id/join", d.Auth.Authenticate(d.Groups.JoinGroup))
	d.handle(router, http.MethodPost, "/api/groups/:id/leave", d.Auth.Authenticate(d.Groups.LeaveGroup))
	d.handle(router, http.MethodDelete, "/api/groups/:id", d.Auth.Authenticate(d.Groups.DeleteGroup))
	d.handle(router, http.MethodGet, "/api/groups/:id/live", middleware.BearerFromQuery(d.Auth.Authenticate(d.Groups.Live)))
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "OK"})
}

func AddUtilityRoutes(router *httprouter.Router, d *Deps) {
	router.GET("/health", Index)
	if d.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", d.Metrics)
	}
}

// AddStaticRoutes serves a prebuilt admin console bundle when one is configured.
func AddStaticRoutes(router *httprouter.Router, d *Deps) {
	if d.AdminUIDir == "" {
		return
	}
	router.ServeFiles("/admin/*filepath", http.Dir(d.AdminUIDir))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithMessage(w, http.StatusNotFound, "Route nicht gefunden")
}

func panicHandler(w http.ResponseWriter, r *http.Request, v any) {
	log.Error().Interface("panic", v).Str("request_id", utils.RequestID(r)).Str("path", r.URL.Path).Msg("handler panic")
	utils.RespondWithMessage(w, http.StatusInternalServerError, "Etwas ist schiefgelaufen!")
}
