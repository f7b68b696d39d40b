package service

import (
	"context"
	"sync"
	"testing"
	"time"

	draftserrors "campreserv/internal/drafts/errors"
	"campreserv/pkg/config"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
)

type fakeRepo struct {
	mu     sync.Mutex
	drafts map[string]*model.BookingDraft
	err    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{drafts: make(map[string]*model.BookingDraft)}
}

func (r *fakeRepo) Upsert(_ context.Context, draft *model.BookingDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	stored := *draft
	r.drafts[draft.Key] = &stored
	return nil
}

func (r *fakeRepo) FindByKey(_ context.Context, key string) (*model.BookingDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	draft, ok := r.drafts[key]
	if !ok {
		return nil, draftserrors.ErrNotFound
	}
	found := *draft
	return &found, nil
}

func (r *fakeRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.drafts[key]; !ok {
		return draftserrors.ErrNotFound
	}
	delete(r.drafts, key)
	return nil
}

func (r *fakeRepo) get(key string) *model.BookingDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drafts[key]
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultStayNights: 2,
		DraftDebounce:     10 * time.Millisecond,
		WriteTimeout:      time.Second,
		Log:               logger.Discard(),
	}
}

func TestNormalizeDates(t *testing.T) {
	tests := []struct {
		name          string
		arrival       string
		departure     string
		wantDeparture string
	}{
		{"missing departure defaulted", "2025-06-01", "", "2025-06-03"},
		{"departure equal to arrival adjusted", "2025-06-01", "2025-06-01", "2025-06-03"},
		{"departure before arrival adjusted", "2025-06-05", "2025-06-02", "2025-06-07"},
		{"valid range kept", "2025-06-01", "2025-06-04", "2025-06-04"},
		{"unparseable departure defaulted", "2025-06-01", "soon", "2025-06-03"},
		{"no arrival leaves departure alone", "", "2025-06-04", "2025-06-04"},
		{"unparseable arrival leaves departure alone", "tomorrow", "2025-06-04", "2025-06-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := &model.BookingDraft{ArrivalDate: tt.arrival, DepartureDate: tt.departure}
			NormalizeDates(draft, 2)
			if draft.DepartureDate != tt.wantDeparture {
				t.Errorf("departure = %q, want %q", draft.DepartureDate, tt.wantDeparture)
			}
		})
	}
}

func TestMergeSavedLocalWins(t *testing.T) {
	local := &model.BookingDraft{
		Key:          "fd-1",
		CampgroundID: "cg-1",
		ArrivalDate:  "2025-07-01",
		Notes:        "local notes",
	}
	saved := &model.BookingDraft{
		Key:           "fd-1",
		CampgroundID:  "cg-1",
		GuestID:       "g-9",
		ArrivalDate:   "2025-06-10",
		DepartureDate: "2025-06-12",
		Notes:         "saved notes",
		SiteLocked:    true,
		GuestAddress:  model.Address{City: "Bend"},
	}

	merged := MergeSaved(local, saved)

	if merged.ArrivalDate != "2025-07-01" {
		t.Errorf("local arrival should win, got %q", merged.ArrivalDate)
	}
	if merged.Notes != "local notes" {
		t.Errorf("local notes should win, got %q", merged.Notes)
	}
	if merged.GuestID != "g-9" {
		t.Errorf("empty local guest should take saved value, got %q", merged.GuestID)
	}
	if merged.DepartureDate != "2025-06-12" {
		t.Errorf("empty local departure should take saved value, got %q", merged.DepartureDate)
	}
	if !merged.SiteLocked {
		t.Errorf("saved site lock should carry over")
	}
	if merged.GuestAddress.City != "Bend" {
		t.Errorf("empty local address should take saved value")
	}
	if merged.SchemaVersion != model.DraftSchemaVersion {
		t.Errorf("merged draft should be stamped with the current schema version")
	}
}

func TestMergeSavedKeepsLocalAddress(t *testing.T) {
	local := &model.BookingDraft{Key: "fd-1", GuestAddress: model.Address{Line1: "12 Pine St"}}
	saved := &model.BookingDraft{Key: "fd-1", GuestAddress: model.Address{Line1: "99 Oak Ave", City: "Bend"}}

	merged := MergeSaved(local, saved)
	if merged.GuestAddress.Line1 != "12 Pine St" {
		t.Errorf("locally edited address should win, got %q", merged.GuestAddress.Line1)
	}
}

func TestSyncPaymentAmount(t *testing.T) {
	total := func(v int64) *int64 { return &v }

	t.Run("fills untouched amount", func(t *testing.T) {
		draft := &model.BookingDraft{CollectPayment: true}
		SyncPaymentAmount(draft, total(12000))
		if draft.PaymentAmountCents != 12000 || draft.SyncedAmountCents != 12000 {
			t.Errorf("amount = %d, synced = %d, want 12000/12000", draft.PaymentAmountCents, draft.SyncedAmountCents)
		}
	})

	t.Run("re-syncs when total changes and amount untouched", func(t *testing.T) {
		draft := &model.BookingDraft{CollectPayment: true, PaymentAmountCents: 12000, SyncedAmountCents: 12000}
		SyncPaymentAmount(draft, total(15000))
		if draft.PaymentAmountCents != 15000 {
			t.Errorf("amount = %d, want 15000", draft.PaymentAmountCents)
		}
	})

	t.Run("never clobbers an operator edit", func(t *testing.T) {
		draft := &model.BookingDraft{CollectPayment: true, PaymentAmountCents: 5000, SyncedAmountCents: 12000}
		SyncPaymentAmount(draft, total(15000))
		if draft.PaymentAmountCents != 5000 {
			t.Errorf("amount = %d, operator edit should survive", draft.PaymentAmountCents)
		}
	})

	t.Run("at most once per distinct total", func(t *testing.T) {
		draft := &model.BookingDraft{CollectPayment: true, PaymentAmountCents: 12000, SyncedAmountCents: 12000}
		SyncPaymentAmount(draft, total(12000))
		if draft.PaymentAmountCents != 12000 {
			t.Errorf("same total should be a no-op")
		}
	})

	t.Run("no-op when not collecting payment", func(t *testing.T) {
		draft := &model.BookingDraft{}
		SyncPaymentAmount(draft, total(12000))
		if draft.PaymentAmountCents != 0 {
			t.Errorf("amount = %d, want 0", draft.PaymentAmountCents)
		}
	})

	t.Run("no-op without a total", func(t *testing.T) {
		draft := &model.BookingDraft{CollectPayment: true, PaymentAmountCents: 500}
		SyncPaymentAmount(draft, nil)
		if draft.PaymentAmountCents != 500 {
			t.Errorf("amount = %d, want 500", draft.PaymentAmountCents)
		}
	})
}

func TestSaveDebounces(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	draft := &model.BookingDraft{Key: "fd-1", CampgroundID: "cg-1", GuestID: "g-1"}
	svc.Save(draft)

	if repo.get("fd-1") != nil {
		t.Fatalf("draft should not be written before the debounce window elapses")
	}

	waitFor(t, func() bool { return repo.get("fd-1") != nil })
}

func TestSaveSkipsEmptyDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	svc.Save(&model.BookingDraft{Key: "fd-1", CampgroundID: "cg-1"})

	time.Sleep(30 * time.Millisecond)
	if repo.get("fd-1") != nil {
		t.Errorf("draft with no meaningful input should never be persisted")
	}
}

func TestSaveNowSanitizesAndNormalizes(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	draft := &model.BookingDraft{
		Key:            "fd-1",
		CampgroundID:   "cg-1",
		GuestID:        "g-1",
		ArrivalDate:    "2025-06-01",
		Notes:          "  late   arrival  ",
		ReferralSource: "  Word of  Mouth ",
	}
	if err := svc.SaveNow(context.Background(), draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.Notes != "late arrival" {
		t.Errorf("notes = %q, want sanitized", draft.Notes)
	}
	if draft.ReferralSource != "word of mouth" {
		t.Errorf("referral source = %q, want a lowercased label", draft.ReferralSource)
	}
	if draft.DepartureDate != "2025-06-03" {
		t.Errorf("departure = %q, want defaulted to 2025-06-03", draft.DepartureDate)
	}

	stored := repo.get("fd-1")
	if stored == nil {
		t.Fatalf("draft should be persisted immediately")
	}
	if stored.Notes != "late arrival" {
		t.Errorf("stored notes = %q, want sanitized", stored.Notes)
	}
}

func TestRestoreMergesIntoPristineDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	repo.drafts["fd-1"] = &model.BookingDraft{
		Key:         "fd-1",
		GuestID:     "g-7",
		SiteID:      "s-3",
		ArrivalDate: "2025-06-10",
	}

	local := &model.BookingDraft{Key: "fd-1", CampgroundID: "cg-1", ArrivalDate: "2025-07-01"}
	merged, restored, err := svc.Restore(context.Background(), local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !restored {
		t.Fatalf("pristine draft with saved state should restore")
	}
	if merged.GuestID != "g-7" || merged.SiteID != "s-3" {
		t.Errorf("saved selections should be merged in, got guest %q site %q", merged.GuestID, merged.SiteID)
	}
	if merged.ArrivalDate != "2025-07-01" {
		t.Errorf("local arrival should win, got %q", merged.ArrivalDate)
	}
}

func TestRestoreSkipsNonPristineDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	repo.drafts["fd-1"] = &model.BookingDraft{Key: "fd-1", GuestID: "g-7", SiteID: "s-3"}

	local := &model.BookingDraft{Key: "fd-1", GuestID: "g-1"}
	merged, restored, err := svc.Restore(context.Background(), local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored {
		t.Errorf("draft with a guest already chosen must not be overwritten")
	}
	if merged.GuestID != "g-1" {
		t.Errorf("local draft should come back untouched, got guest %q", merged.GuestID)
	}
}

func TestRestoreWithoutSavedDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	local := &model.BookingDraft{Key: "fd-1"}
	merged, restored, err := svc.Restore(context.Background(), local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored || merged != local {
		t.Errorf("missing saved draft should leave the local draft untouched")
	}
}

func TestClearTolerantOfMissingDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	if err := svc.Clear(context.Background(), "never-saved"); err != nil {
		t.Errorf("clearing an absent draft should succeed, got %v", err)
	}
}

func TestClearCancelsPendingSave(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	svc.Save(&model.BookingDraft{Key: "fd-1", CampgroundID: "cg-1", GuestID: "g-1"})
	if err := svc.Clear(context.Background(), "fd-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if repo.get("fd-1") != nil {
		t.Errorf("pending save should be cancelled by Clear")
	}
}

func TestLoadNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())
	defer svc.Stop()

	_, err := svc.Load(context.Background(), "missing")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestStopFlushesPendingSaves(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDraftService(repo, testConfig())

	svc.Save(&model.BookingDraft{Key: "fd-1", CampgroundID: "cg-1", GuestID: "g-1"})
	svc.Stop()

	if repo.get("fd-1") == nil {
		t.Errorf("Stop should flush pending saves")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}
