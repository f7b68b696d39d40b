package guests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"

	"campreserv/pkg/client"
	"campreserv/pkg/config"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
)

type guestBackend struct {
	mu       sync.Mutex
	guests   []*model.Guest
	created  []*model.Guest
	failList bool

	server *httptest.Server
}

func newGuestBackend(t *testing.T) *guestBackend {
	t.Helper()
	b := &guestBackend{
		guests: []*model.Guest{
			{ID: "g-1", FirstName: "Riley", LastName: "Marsh"},
			{ID: "g-2", FirstName: "Jo", LastName: "Bell"},
			{ID: "g-3", FirstName: "Ada", LastName: "Quinn"},
			{ID: "g-4", FirstName: "Sam", LastName: "Frost"},
			{ID: "g-5", FirstName: "Max", LastName: "Hale"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/guests", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			if b.failList {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]any{"error": "guest store offline"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": b.guests})
		case http.MethodPost:
			var guest model.Guest
			_ = json.NewDecoder(r.Body).Decode(&guest)
			guest.ID = "g-new"
			b.created = append(b.created, &guest)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": guest})
		}
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func newGuestRouter(b *guestBackend) *httprouter.Router {
	cfg := &config.Config{Log: logger.Discard()}
	handler := NewHandler(NewService(client.NewGuestClient(b.server.URL), cfg), cfg.Log)

	router := httprouter.New()
	handler.RegisterRoutes(router)
	return router
}

func TestSearchPaginatesResults(t *testing.T) {
	backend := newGuestBackend(t)
	router := newGuestRouter(backend)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests?campground_id=cg-1&limit=2&offset=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data       []*model.Guest `json:"data"`
		TotalCount int64          `json:"total_count"`
		Limit      int            `json:"limit"`
		Offset     int            `json:"offset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TotalCount != 5 {
		t.Errorf("total = %d, want 5", resp.TotalCount)
	}
	if len(resp.Data) != 2 || resp.Data[0].ID != "g-3" || resp.Data[1].ID != "g-4" {
		t.Errorf("page = %+v, want guests 3 and 4", resp.Data)
	}
	if resp.Limit != 2 || resp.Offset != 2 {
		t.Errorf("limit/offset = %d/%d, want 2/2", resp.Limit, resp.Offset)
	}
}

func TestSearchOffsetPastEnd(t *testing.T) {
	backend := newGuestBackend(t)
	router := newGuestRouter(backend)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests?campground_id=cg-1&offset=20", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("offset past the end should return an empty page: %s", rec.Body.String())
	}
}

func TestSearchRequiresCampground(t *testing.T) {
	backend := newGuestBackend(t)
	router := newGuestRouter(backend)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchBackendFailure(t *testing.T) {
	backend := newGuestBackend(t)
	backend.failList = true
	router := newGuestRouter(backend)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests?campground_id=cg-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "guest store offline") {
		t.Errorf("upstream message should surface verbatim: %s", rec.Body.String())
	}
}

func TestCreateNormalizesContactFields(t *testing.T) {
	backend := newGuestBackend(t)
	router := newGuestRouter(backend)

	body := `{"first_name":"  jo   ann ","last_name":" Marsh ","email":" Jo.Ann@Example.COM ","phone":"+1 (541) 555-0100"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/guests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(backend.created) != 1 {
		t.Fatalf("expected one create, got %d", len(backend.created))
	}

	created := backend.created[0]
	if created.FirstName != "jo ann" || created.LastName != "Marsh" {
		t.Errorf("names = %q/%q, want whitespace-normalized", created.FirstName, created.LastName)
	}
	if created.Email != "jo.ann@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", created.Email)
	}
	if created.Phone != "+15415550100" {
		t.Errorf("phone = %q, want E.164", created.Phone)
	}
}

func TestCreateRejectsUndialablePhone(t *testing.T) {
	backend := newGuestBackend(t)
	router := newGuestRouter(backend)

	body := `{"first_name":"Jo","last_name":"Bell","phone":"555-0100"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/guests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if len(backend.created) != 0 {
		t.Errorf("undialable phone must not reach the guest store")
	}
}

func TestCreateRequiresName(t *testing.T) {
	backend := newGuestBackend(t)
	router := newGuestRouter(backend)

	body := `{"first_name":"Jo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/guests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "LastName") {
		t.Errorf("details should flag the missing last name: %s", rec.Body.String())
	}
}
