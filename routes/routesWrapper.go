package routes

import (
	"net/http"

	"reisegruppen/auth"
	"reisegruppen/destinations"
	"reisegruppen/groups"
	"reisegruppen/middleware"
	"reisegruppen/offers"
	"reisegruppen/profile"
	"reisegruppen/ratelim"

	"github.com/julienschmidt/httprouter"
)

// Deps carries the handlers and middleware the routes are built from.
type Deps struct {
	Auth         *middleware.Authenticator
	Limiter      *ratelim.RateLimiter
	Offers       *offers.Handler
	Users        *auth.Handler
	Profile      *profile.Handler
	Destinations *destinations.Handler
	Groups       *groups.Handler
	Metrics      http.Handler
	AdminUIDir   string
}

func RoutesWrapper(router *httprouter.Router, d *Deps) {
	AddOfferRoutes(router, d)
	AddAuthRoutes(router, d)
	AddProfileRoutes(router, d)
	AddDestinationRoutes(router, d)
	AddGroupRoutes(router, d)
	AddUtilityRoutes(router, d)
	AddStaticRoutes(router, d)
}

// New builds the application router.
func New(d *Deps) *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(notFound)
	router.PanicHandler = panicHandler
	RoutesWrapper(router, d)
	return router
}
