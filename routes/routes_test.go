package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reisegruppen/auth"
	"reisegruppen/destinations"
	"reisegruppen/groups"
	"reisegruppen/middleware"
	"reisegruppen/observability"
	"reisegruppen/offers"
	"reisegruppen/profile"
	"reisegruppen/ratelim"
	"reisegruppen/users"

	"github.com/julienschmidt/httprouter"
)

var testSecret = []byte("routes-test-secret")

func testDeps(t *testing.T) *Deps {
	t.Helper()
	store := users.NewMemoryStore()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(\"admin\")"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &Deps{
		Auth:         middleware.NewAuthenticator(testSecret, nil),
		Limiter:      ratelim.NewRateLimiter(2),
		Offers:       offers.NewHandler(nil, false),
		Users:        auth.NewHandler(store, auth.NewTokenIssuer(testSecret, time.Hour), nil, false),
		Profile:      profile.NewHandler(store, false),
		Destinations: destinations.NewHandler(nil, nil, time.Minute, false),
		Groups:       groups.NewHandler(nil, nil, false),
		Metrics:      observability.MetricsHandler(observability.NewRegistry()),
		AdminUIDir:   dir,
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := New(testDeps(t))
	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/travel-offers"},
		{http.MethodPost, "/api/travel-offers"},
		{http.MethodDelete, "/api/travel-offers/abc"},
		{http.MethodGet, "/api/travel-offers/abc/brochure"},
		{http.MethodGet, "/api/meta/travel-offers"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/profile"},
		{http.MethodGet, "/api/destinations"},
		{http.MethodPost, "/api/groups/abc/join"},
		{http.MethodGet, "/api/groups/abc/live"},
	}
	for _, p := range paths {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(p.method, p.path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, rr.Code)
		}
	}
}

func TestUtilityRoutes(t *testing.T) {
	router := New(testDeps(t))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nirgendwo", nil))
	var body map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if rr.Code != http.StatusNotFound || body["message"] != "Route nicht gefunden" {
		t.Fatalf("expected JSON 404, got %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/app.js", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "admin") {
		t.Fatalf("expected admin bundle, got %d", rr.Code)
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/travel-offers", nil))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "reisegruppen_http_requests_total") {
		t.Fatalf("expected request metrics, got %d", rr.Code)
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	router := New(testDeps(t))
	var last int
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.de","password":"x"}`))
		req.RemoteAddr = "203.0.113.9:4711"
		router.ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the third attempt, got %d", last)
	}
}

func TestPanicHandler(t *testing.T) {
	router := New(testDeps(t))
	router.GET("/boom", func(http.ResponseWriter, *http.Request, httprouter.Params) { panic("kaputt") })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rr.Code != http.StatusInternalServerError || !strings.Contains(rr.Body.String(), "Etwas ist schiefgelaufen!") {
		t.Fatalf("expected JSON 500, got %d %s", rr.Code, rr.Body.String())
	}
}
