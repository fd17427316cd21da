package offers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"reisegruppen/middleware"
	"reisegruppen/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testSecret = []byte("offers-test-secret")

// memStore keeps offers in memory and honours the availability and category filters.
type memStore struct {
	mu     sync.Mutex
	offers map[primitive.ObjectID]models.TravelOffer
}

func newMemStore() *memStore {
	return &memStore{offers: map[primitive.ObjectID]models.TravelOffer{}}
}

func (s *memStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.offers)
}

func (s *memStore) put(o models.TravelOffer) models.TravelOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.offers[o.ID] = o
	return o
}

func (s *memStore) List(_ context.Context, f ListFilter) ([]models.TravelOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.TravelOffer{}
	for _, o := range s.offers {
		if !o.Available || (f.Category != "" && o.Category != f.Category) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *memStore) Get(_ context.Context, id string) (models.TravelOffer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.TravelOffer{}, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[oid]
	if !ok {
		return models.TravelOffer{}, ErrNotFound
	}
	return o, nil
}

func (s *memStore) Create(_ context.Context, o *models.TravelOffer) error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	s.put(*o)
	return nil
}

func (s *memStore) Update(ctx context.Context, id string, p Patch) (models.TravelOffer, error) {
	if err := p.Validate(); err != nil {
		return models.TravelOffer{}, err
	}
	o, err := s.Get(ctx, id)
	if err != nil {
		return models.TravelOffer{}, err
	}
	applyPatch(p, &o)
	o.UpdatedAt = time.Now()
	return s.put(o), nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.offers[oid]; !ok {
		return ErrNotFound
	}
	delete(s.offers, oid)
	return nil
}

// applyPatch merges p into o the way the $set document does in MongoDB.
func applyPatch(p Patch, o *models.TravelOffer) {
	o.LastModifiedBy = p.LastModifiedBy
	assign(&o.Title, p.Title)
	assign(&o.Description, p.Description)
	assign(&o.Destination, p.Destination)
	assign(&o.Country, p.Country)
	assign(&o.City, p.City)
	assign(&o.Category, p.Category)
	assign(&o.Images, p.Images)
	assign(&o.PricePerPerson, p.PricePerPerson)
	if p.PricePerNight != nil {
		v := *p.PricePerNight
		o.PricePerNight = &v
	}
	assign(&o.MinPersons, p.MinPersons)
	assign(&o.MaxPersons, p.MaxPersons)
	assign(&o.Stars, p.Stars)
	assign(&o.Amenities, p.Amenities)
	assign(&o.Tags, p.Tags)
	assign(&o.Location, p.Location)
	assign(&o.AvailabilityPeriods, p.AvailabilityPeriods)
	assign(&o.CancellationPolicy, p.CancellationPolicy)
	assign(&o.CheckInTime, p.CheckInTime)
	assign(&o.CheckOutTime, p.CheckOutTime)
	assign(&o.Available, p.Available)
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func newTestRouter(store Store) *httprouter.Router {
	a := middleware.NewAuthenticator(testSecret, nil)
	h := NewHandler(store, false)
	r := httprouter.New()
	r.GET("/api/travel-offers", a.Authenticate(h.ListOffers))
	r.POST("/api/travel-offers", a.AdminOnly(h.CreateOffer))
	r.GET("/api/travel-offers/:id", a.Authenticate(h.GetOffer))
	r.PUT("/api/travel-offers/:id", a.AdminOnly(h.UpdateOffer))
	r.DELETE("/api/travel-offers/:id", a.AdminOnly(h.DeleteOffer))
	r.GET("/api/travel-offers/:id/brochure", a.Authenticate(h.Brochure))
	r.GET("/api/meta/travel-offers", a.Authenticate(h.Meta))
	return r
}

func tokenFor(t *testing.T, id, role string) string {
	t.Helper()
	tok, err := middleware.SignToken(testSecret, middleware.Claims{
		UserID: id,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func do(t *testing.T, r http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var out map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return rr, out
}

const validOffer = `{
	"title": "  Strandhotel Mallorca ",
	"description": "Direkt am Meer",
	"destination": "Mallorca",
	"country": "Spanien",
	"category": "Hotel",
	"pricePerPerson": "499.5",
	"tags": ["beach", "family"]
}`

func TestCreateOfferAppliesDefaults(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)

	rr, body := do(t, r, http.MethodPost, "/api/travel-offers", tokenFor(t, "admin-1", "admin"), validOffer)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if body["message"] != msgCreated {
		t.Errorf("unexpected message %v", body["message"])
	}
	offer := body["offer"].(map[string]any)
	checks := map[string]any{
		"title":              "Strandhotel Mallorca",
		"pricePerPerson":     499.5,
		"minPersons":         float64(1),
		"maxPersons":         float64(10),
		"stars":              float64(3),
		"cancellationPolicy": "moderate",
		"checkInTime":        "15:00",
		"checkOutTime":       "11:00",
		"available":          true,
		"bookingCount":       float64(0),
		"createdBy":          "admin-1",
	}
	for k, want := range checks {
		if offer[k] != want {
			t.Errorf("%s: expected %v, got %v", k, want, offer[k])
		}
	}
	if store.size() != 1 {
		t.Fatalf("expected one stored offer, got %d", store.size())
	}
}

func TestCreateOfferSanitizesImages(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	payload := strings.Replace(validOffer, `"tags"`, `"images": ["https://cdn.example.com/a.jpg", "javascript:alert(1)", 42, "ftp://files.example.com/b.jpg", "nicht-url", "http://cdn.example.com/c.png"], "tags"`, 1)

	rr, body := do(t, r, http.MethodPost, "/api/travel-offers", tokenFor(t, "admin-1", "admin"), payload)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	images := body["offer"].(map[string]any)["images"].([]any)
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %v", images)
	}
	first, second := images[0].(map[string]any), images[1].(map[string]any)
	if first["url"] != "https://cdn.example.com/a.jpg" || first["title"] != "Bild 1" || first["isMain"] != true {
		t.Errorf("unexpected first image %v", first)
	}
	if second["url"] != "http://cdn.example.com/c.png" || second["title"] != "Bild 2" || second["isMain"] != false {
		t.Errorf("unexpected second image %v", second)
	}
}

func TestCreateOfferMissingFields(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store)
	payload := strings.Replace(validOffer, `"pricePerPerson": "499.5",`, "", 1)

	rr, body := do(t, r, http.MethodPost, "/api/travel-offers", tokenFor(t, "admin-1", "admin"), payload)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body["message"] != msgMissing {
		t.Errorf("unexpected message %v", body["message"])
	}
	missing := body["missing"].([]any)
	if len(missing) != 1 || missing[0] != "pricePerPerson" {
		t.Errorf("unexpected missing list %v", missing)
	}
	if len(body["required"].([]any)) != len(requiredFields) {
		t.Errorf("expected the full required list, got %v", body["required"])
	}
	if store.size() != 0 {
		t.Fatalf("nothing must be stored, got %d", store.size())
	}
}

func TestCreateOfferValidation(t *testing.T) {
	r := newTestRouter(newMemStore())
	payload := strings.Replace(validOffer, `"category": "Hotel"`, `"category": "Zelt", "stars": 9`, 1)

	rr, body := do(t, r, http.MethodPost, "/api/travel-offers", tokenFor(t, "admin-1", "admin"), payload)
	if rr.Code != http.StatusBadRequest || body["message"] != msgValidation {
		t.Fatalf("expected validation 400, got %d %v", rr.Code, body)
	}
	if len(body["errors"].([]any)) != 2 {
		t.Errorf("expected two field errors, got %v", body["errors"])
	}
}

func TestCreateOfferZeroCounts(t *testing.T) {
	admin := tokenFor(t, "admin-1", "admin")
	cases := []struct {
		name  string
		extra string
		want  int
	}{
		{"NumericZeroDefaults", `"minPersons": 0, "maxPersons": 0, "stars": 0`, http.StatusCreated},
		{"EmptyStringDefaults", `"minPersons": "", "stars": ""`, http.StatusCreated},
		{"StringZeroMinPersons", `"minPersons": "0"`, http.StatusBadRequest},
		{"StringZeroStars", `"stars": "0"`, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := newMemStore()
			payload := strings.Replace(validOffer, `"category": "Hotel"`, `"category": "Hotel", `+c.extra, 1)
			rr, body := do(t, newTestRouter(store), http.MethodPost, "/api/travel-offers", admin, payload)
			if rr.Code != c.want {
				t.Fatalf("expected %d, got %d %v", c.want, rr.Code, body)
			}
			if c.want == http.StatusBadRequest {
				if body["message"] != msgValidation || store.size() != 0 {
					t.Fatalf("expected validation error without insert, got %v (size %d)", body, store.size())
				}
				return
			}
			offer := body["offer"].(map[string]any)
			if offer["minPersons"] != float64(models.DefaultMinPersons) || offer["stars"] != float64(models.DefaultStars) {
				t.Fatalf("expected defaults, got %v", offer)
			}
		})
	}
}

func TestMutationsRequireAdmin(t *testing.T) {
	store := newMemStore()
	existing := store.put(models.TravelOffer{Title: "A", Available: true})
	r := newTestRouter(store)
	path := "/api/travel-offers/" + existing.ID.Hex()

	cases := []struct {
		name, method, path, token string
		want                      int
	}{
		{"CreateNoToken", http.MethodPost, "/api/travel-offers", "", http.StatusUnauthorized},
		{"CreateUser", http.MethodPost, "/api/travel-offers", tokenFor(t, "u1", "user"), http.StatusForbidden},
		{"UpdateUser", http.MethodPut, path, tokenFor(t, "u1", "user"), http.StatusForbidden},
		{"DeleteNoToken", http.MethodDelete, path, "", http.StatusUnauthorized},
		{"DeleteUser", http.MethodDelete, path, tokenFor(t, "u1", "user"), http.StatusForbidden},
		{"ListNoToken", http.MethodGet, "/api/travel-offers", "", http.StatusUnauthorized},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr, _ := do(t, r, c.method, c.path, c.token, `{"title":"Hacked","stars":1}`)
			if rr.Code != c.want {
				t.Fatalf("expected %d, got %d", c.want, rr.Code)
			}
		})
	}

	got, _ := store.Get(context.Background(), existing.ID.Hex())
	if store.size() != 1 || got.Title != "A" {
		t.Fatalf("store must be unchanged, got %d offers, title %q", store.size(), got.Title)
	}
}

func TestUpdateOfferOnlyStars(t *testing.T) {
	store := newMemStore()
	existing := store.put(models.TravelOffer{
		Title: "Alpenhof", Description: "Berge", Destination: "Tirol", Country: "Österreich",
		Category: "Hotel", PricePerPerson: 320, Stars: 3, Tags: []string{"mountains"}, Available: true,
		CreatedBy: "admin-0",
	})
	r := newTestRouter(store)

	rr, body := do(t, r, http.MethodPut, "/api/travel-offers/"+existing.ID.Hex(), tokenFor(t, "admin-2", "admin"), `{"stars": "5"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if body["message"] != msgUpdated {
		t.Errorf("unexpected message %v", body["message"])
	}

	got, _ := store.Get(context.Background(), existing.ID.Hex())
	if got.Stars != 5 || got.Title != "Alpenhof" || got.PricePerPerson != 320 || len(got.Tags) != 1 {
		t.Fatalf("unexpected offer after update: %+v", got)
	}
	if got.LastModifiedBy != "admin-2" || got.CreatedBy != "admin-0" {
		t.Fatalf("unexpected actors: created %q modified %q", got.CreatedBy, got.LastModifiedBy)
	}
}

func TestUpdateOfferRejectsBadInput(t *testing.T) {
	store := newMemStore()
	existing := store.put(models.TravelOffer{Title: "A", Stars: 3, Available: true})
	r := newTestRouter(store)
	path := "/api/travel-offers/" + existing.ID.Hex()
	admin := tokenFor(t, "admin-1", "admin")

	if rr, body := do(t, r, http.MethodPut, path, admin, `{"stars": "viele"}`); rr.Code != http.StatusBadRequest || body["message"] != msgBadInput {
		t.Fatalf("expected bad input 400, got %d %v", rr.Code, body)
	}
	if rr, body := do(t, r, http.MethodPut, path, admin, `{"stars": 4.5}`); rr.Code != http.StatusBadRequest || body["message"] != msgValidation {
		t.Fatalf("expected validation 400, got %d %v", rr.Code, body)
	}
	if rr, _ := do(t, r, http.MethodPut, "/api/travel-offers/"+primitive.NewObjectID().Hex(), admin, `{"stars": 4}`); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	got, _ := store.Get(context.Background(), existing.ID.Hex())
	if got.Stars != 3 {
		t.Fatalf("stars must be unchanged, got %d", got.Stars)
	}
}

func TestDeleteOffer(t *testing.T) {
	store := newMemStore()
	existing := store.put(models.TravelOffer{Title: "A", Available: true})
	r := newTestRouter(store)
	admin := tokenFor(t, "admin-1", "admin")

	for _, id := range []string{primitive.NewObjectID().Hex(), "kein-objectid"} {
		rr, body := do(t, r, http.MethodDelete, "/api/travel-offers/"+id, admin, "")
		if rr.Code != http.StatusNotFound || body["message"] != msgNotFound {
			t.Fatalf("expected 404 for %s, got %d %v", id, rr.Code, body)
		}
	}
	if store.size() != 1 {
		t.Fatalf("size must be unchanged, got %d", store.size())
	}

	rr, body := do(t, r, http.MethodDelete, "/api/travel-offers/"+existing.ID.Hex(), admin, "")
	if rr.Code != http.StatusOK || body["message"] != msgDeleted {
		t.Fatalf("expected 200, got %d %v", rr.Code, body)
	}
	if store.size() != 0 {
		t.Fatalf("expected empty store, got %d", store.size())
	}
}

func TestListOffersHidesUnavailable(t *testing.T) {
	store := newMemStore()
	visible := store.put(models.TravelOffer{Title: "Sichtbar", Category: "Hotel", Available: true})
	store.put(models.TravelOffer{Title: "Versteckt", Category: "Hotel", Available: false})
	r := newTestRouter(store)

	rr, body := do(t, r, http.MethodGet, "/api/travel-offers?category=Hotel", tokenFor(t, "u1", "user"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	offers := body["offers"].([]any)
	if body["total"] != float64(1) || len(offers) != 1 {
		t.Fatalf("expected exactly one offer, got %v", body)
	}
	if offers[0].(map[string]any)["_id"] != visible.ID.Hex() {
		t.Errorf("unexpected offer %v", offers[0])
	}

	if rr, _ := do(t, r, http.MethodGet, "/api/travel-offers?minPrice=billig", tokenFor(t, "u1", "user"), ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric minPrice, got %d", rr.Code)
	}
}

func TestGetOfferAndMeta(t *testing.T) {
	store := newMemStore()
	existing := store.put(models.TravelOffer{Title: "A", Available: true})
	r := newTestRouter(store)
	user := tokenFor(t, "u1", "user")

	if rr, body := do(t, r, http.MethodGet, "/api/travel-offers/"+existing.ID.Hex(), user, ""); rr.Code != http.StatusOK || body["title"] != "A" {
		t.Fatalf("expected offer, got %d %v", rr.Code, body)
	}
	if rr, _ := do(t, r, http.MethodGet, "/api/travel-offers/zzz", user, ""); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rr.Code)
	}

	rr, body := do(t, r, http.MethodGet, "/api/meta/travel-offers", user, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(body["categories"].([]any)) != len(models.Categories) || len(body["tags"].([]any)) != len(models.Tags) {
		t.Errorf("unexpected meta %v", body)
	}
}
