package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"campreserv/internal/drafts/validator"
	"campreserv/pkg/config"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
)

type fakeDraftService struct {
	saved    []*model.BookingDraft
	savedNow []*model.BookingDraft
	cleared  []string
	stored   map[string]*model.BookingDraft
}

func newFakeDraftService() *fakeDraftService {
	return &fakeDraftService{stored: map[string]*model.BookingDraft{}}
}

func (f *fakeDraftService) Save(draft *model.BookingDraft) {
	f.saved = append(f.saved, draft)
}

func (f *fakeDraftService) SaveNow(_ context.Context, draft *model.BookingDraft) error {
	f.savedNow = append(f.savedNow, draft)
	return nil
}

func (f *fakeDraftService) Load(_ context.Context, key string) (*model.BookingDraft, error) {
	draft, ok := f.stored[key]
	if !ok {
		return nil, apperrors.NotFoundWithID("Draft", key)
	}
	return draft, nil
}

func (f *fakeDraftService) Restore(_ context.Context, local *model.BookingDraft) (*model.BookingDraft, bool, error) {
	saved, ok := f.stored[local.Key]
	if !ok || !local.IsPristine() {
		return local, false, nil
	}
	return saved, true, nil
}

func (f *fakeDraftService) Clear(_ context.Context, key string) error {
	f.cleared = append(f.cleared, key)
	return nil
}

func (f *fakeDraftService) Stop() {}

func newTestHandler(svc *fakeDraftService) *DraftHandler {
	cfg := &config.Config{
		Log:               logger.Discard(),
		DefaultStayNights: 2,
	}
	return NewDraftHandler(svc, validator.NewDraftValidator(cfg.Log), cfg)
}

func serve(h *DraftHandler, method, path string, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	h.RegisterRoutes(router)

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSaveSchedulesDebouncedPersist(t *testing.T) {
	svc := newFakeDraftService()
	h := newTestHandler(svc)

	rec := serve(h, http.MethodPut, "/api/v1/drafts/d-1",
		`{"campground_id":"cg-1","guest_id":"g-1","arrival_date":"2025-06-01"}`)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}
	if len(svc.saved) != 1 {
		t.Fatalf("saved %d drafts, want 1", len(svc.saved))
	}
	if svc.saved[0].Key != "d-1" {
		t.Errorf("draft key = %q, want key from URL", svc.saved[0].Key)
	}

	// Date normalization applies before the echo: a missing departure date
	// defaults to arrival plus the configured stay length.
	var resp struct {
		Data model.BookingDraft `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.DepartureDate != "2025-06-03" {
		t.Errorf("departure = %q, want arrival + 2 nights", resp.Data.DepartureDate)
	}
}

func TestSaveRejectsMalformedBody(t *testing.T) {
	svc := newFakeDraftService()
	h := newTestHandler(svc)

	rec := serve(h, http.MethodPut, "/api/v1/drafts/d-1", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(svc.saved) != 0 {
		t.Errorf("malformed body must not reach the service")
	}
}

func TestSaveRejectsInvalidFields(t *testing.T) {
	svc := newFakeDraftService()
	h := newTestHandler(svc)

	rec := serve(h, http.MethodPut, "/api/v1/drafts/d-1",
		`{"campground_id":"cg-1","arrival_date":"06/01/2025","payment_method":"barter"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422: %s", rec.Code, rec.Body.String())
	}
	if len(svc.saved) != 0 {
		t.Errorf("invalid draft must not be scheduled for persist")
	}
}

func TestCommitPersistsImmediately(t *testing.T) {
	svc := newFakeDraftService()
	h := newTestHandler(svc)

	rec := serve(h, http.MethodPost, "/api/v1/drafts/d-1/commit",
		`{"campground_id":"cg-1","guest_id":"g-1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(svc.savedNow) != 1 || len(svc.saved) != 0 {
		t.Errorf("commit must bypass the debounce (savedNow=%d saved=%d)", len(svc.savedNow), len(svc.saved))
	}
}

func TestGetReturnsStoredDraft(t *testing.T) {
	svc := newFakeDraftService()
	svc.stored["d-1"] = &model.BookingDraft{Key: "d-1", CampgroundID: "cg-1", GuestID: "g-1"}
	h := newTestHandler(svc)

	rec := serve(h, http.MethodGet, "/api/v1/drafts/d-1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"guest_id":"g-1"`) {
		t.Errorf("response missing stored draft fields: %s", rec.Body.String())
	}
}

func TestGetUnknownDraft(t *testing.T) {
	svc := newFakeDraftService()
	h := newTestHandler(svc)

	rec := serve(h, http.MethodGet, "/api/v1/drafts/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRestoreMergesSavedDraft(t *testing.T) {
	svc := newFakeDraftService()
	svc.stored["d-1"] = &model.BookingDraft{Key: "d-1", CampgroundID: "cg-1", GuestID: "g-1"}
	h := newTestHandler(svc)

	rec := serve(h, http.MethodPost, "/api/v1/drafts/d-1/restore", `{"campground_id":"cg-1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data restoreResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Data.Restored {
		t.Errorf("pristine draft with a saved copy should report restored")
	}
	if resp.Data.Draft == nil || resp.Data.Draft.GuestID != "g-1" {
		t.Errorf("restored draft = %+v, want the saved guest", resp.Data.Draft)
	}
}

func TestValidateReportsIncompleteSections(t *testing.T) {
	svc := newFakeDraftService()
	h := newTestHandler(svc)

	rec := serve(h, http.MethodPost, "/api/v1/drafts/d-1/validate", `{"campground_id":"cg-1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (validation reporting is not an error): %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data validator.Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.IsValid {
		t.Errorf("empty draft must not validate")
	}
	if _, ok := resp.Data.Errors[validator.GroupGuest]; !ok {
		t.Errorf("expected a guest section error, got %v", resp.Data.Errors)
	}
}

func TestDeleteClearsDraft(t *testing.T) {
	svc := newFakeDraftService()
	h := newTestHandler(svc)

	rec := serve(h, http.MethodDelete, "/api/v1/drafts/d-1", "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(svc.cleared) != 1 || svc.cleared[0] != "d-1" {
		t.Errorf("cleared = %v, want [d-1]", svc.cleared)
	}
}
