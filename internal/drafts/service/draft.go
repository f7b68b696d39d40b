package service

import (
	"context"
	"errors"
	"sync"
	"time"

	draftserrors "campreserv/internal/drafts/errors"
	"campreserv/internal/drafts/repository"
	"campreserv/pkg/config"
	"campreserv/pkg/dates"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/model"
	"campreserv/pkg/sanitizer"
)

// DraftService owns the lifecycle of booking drafts: debounced persistence
// while a draft is being edited, restore-with-merge when a session comes
// back, and clearing after a successful submission.
type DraftService interface {
	// Save schedules a debounced persist of the draft. Drafts with no
	// meaningful input are never written. Persistence failures are logged
	// and dropped; draft saving is a convenience, not a durability
	// guarantee.
	Save(draft *model.BookingDraft)

	// SaveNow persists immediately, bypassing the debounce. Used by the
	// explicit "save and leave" action.
	SaveNow(ctx context.Context, draft *model.BookingDraft) error

	Load(ctx context.Context, key string) (*model.BookingDraft, error)

	// Restore merges a previously saved draft into the given in-memory
	// draft. The merge only happens when the local draft is still pristine
	// (no guest and no site chosen); otherwise the local draft is returned
	// untouched. The second result reports whether a merge happened.
	Restore(ctx context.Context, local *model.BookingDraft) (*model.BookingDraft, bool, error)

	Clear(ctx context.Context, key string) error

	// Stop flushes pending debounced saves and releases timers.
	Stop()
}

type draftService struct {
	repo repository.DraftRepository
	cfg  *config.Config

	mu      sync.Mutex
	pending map[string]*pendingSave
	stopped bool
}

type pendingSave struct {
	timer *time.Timer
	draft *model.BookingDraft
}

func NewDraftService(repo repository.DraftRepository, cfg *config.Config) DraftService {
	return &draftService{
		repo:    repo,
		cfg:     cfg,
		pending: make(map[string]*pendingSave),
	}
}

func (s *draftService) Save(draft *model.BookingDraft) {
	if draft == nil || draft.Key == "" || !draft.HasMeaningfulInput() {
		return
	}

	prepared := prepare(draft, s.cfg.DefaultStayNights)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	// One timer per key: a newer edit replaces the queued snapshot and
	// restarts the debounce window.
	if p, ok := s.pending[draft.Key]; ok {
		p.draft = prepared
		p.timer.Reset(s.cfg.DraftDebounce)
		return
	}

	p := &pendingSave{draft: prepared}
	p.timer = time.AfterFunc(s.cfg.DraftDebounce, func() {
		s.flush(draft.Key)
	})
	s.pending[draft.Key] = p
}

func (s *draftService) flush(key string) {
	s.mu.Lock()
	p, ok := s.pending[key]
	if ok {
		delete(s.pending, key)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.repo.Upsert(ctx, p.draft); err != nil {
		s.cfg.Log.Warn("Dropped draft save", "key", key, "error", err)
	}
}

func (s *draftService) SaveNow(ctx context.Context, draft *model.BookingDraft) error {
	if draft == nil || draft.Key == "" {
		return apperrors.InvalidInput("Draft key cannot be empty")
	}

	if !draft.HasMeaningfulInput() {
		return nil
	}

	s.cancelPending(draft.Key)

	prepared := prepare(draft, s.cfg.DefaultStayNights)
	if err := s.repo.Upsert(ctx, prepared); err != nil {
		return apperrors.Internal("Failed to save draft", err)
	}

	*draft = *prepared
	return nil
}

func (s *draftService) Load(ctx context.Context, key string) (*model.BookingDraft, error) {
	if key == "" {
		return nil, apperrors.InvalidInput("Draft key cannot be empty")
	}

	draft, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, draftserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Draft", key)
		}
		return nil, apperrors.Internal("Failed to load draft", err)
	}

	return draft, nil
}

func (s *draftService) Restore(ctx context.Context, local *model.BookingDraft) (*model.BookingDraft, bool, error) {
	if local == nil || local.Key == "" {
		return local, false, apperrors.InvalidInput("Draft key cannot be empty")
	}

	if !local.IsPristine() {
		return local, false, nil
	}

	saved, err := s.repo.FindByKey(ctx, local.Key)
	if err != nil {
		if errors.Is(err, draftserrors.ErrNotFound) {
			return local, false, nil
		}
		return local, false, apperrors.Internal("Failed to load saved draft", err)
	}

	if !saved.HasMeaningfulInput() {
		return local, false, nil
	}

	merged := MergeSaved(local, saved)
	return merged, true, nil
}

func (s *draftService) Clear(ctx context.Context, key string) error {
	if key == "" {
		return apperrors.InvalidInput("Draft key cannot be empty")
	}

	s.cancelPending(key)

	err := s.repo.Delete(ctx, key)
	if err != nil && !errors.Is(err, draftserrors.ErrNotFound) {
		return apperrors.Internal("Failed to clear draft", err)
	}

	return nil
}

func (s *draftService) cancelPending(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
}

func (s *draftService) Stop() {
	s.mu.Lock()
	s.stopped = true
	keys := make([]string, 0, len(s.pending))
	for key, p := range s.pending {
		p.timer.Stop()
		keys = append(keys, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.flush(key)
	}
}

// prepare returns a sanitized, date-normalized copy of the draft, leaving
// the caller's copy untouched until the save is committed.
func prepare(draft *model.BookingDraft, defaultStayNights int) *model.BookingDraft {
	prepared := *draft

	prepared.Notes = sanitizer.NormalizeNotes(prepared.Notes)
	prepared.PaymentNotes = sanitizer.NormalizeNotes(prepared.PaymentNotes)
	prepared.ReferralSource = sanitizer.NormalizeLabel(prepared.ReferralSource)
	prepared.StayReason = sanitizer.NormalizeLabel(prepared.StayReason)
	prepared.GuestSearch = sanitizer.TrimAndNormalize(prepared.GuestSearch)

	NormalizeDates(&prepared, defaultStayNights)

	return &prepared
}

// NormalizeDates enforces the date invariant on a draft: when an arrival
// date is set and the departure date is missing, unparseable, or not after
// the arrival, the departure is advanced to arrival + defaultStayNights
// days. Runs after every date edit.
func NormalizeDates(draft *model.BookingDraft, defaultStayNights int) {
	if draft.ArrivalDate == "" {
		return
	}

	if _, err := dates.Parse(draft.ArrivalDate); err != nil {
		return
	}

	if draft.DepartureDate != "" && dates.RangeValid(draft.ArrivalDate, draft.DepartureDate) {
		return
	}

	adjusted, err := dates.AddDays(draft.ArrivalDate, defaultStayNights)
	if err != nil {
		return
	}
	draft.DepartureDate = adjusted
}

// MergeSaved merges a saved draft into a pristine local draft. A field from
// the saved draft only lands where the local draft is empty; anything the
// operator has already set locally wins over the stale saved value.
func MergeSaved(local, saved *model.BookingDraft) *model.BookingDraft {
	merged := *local
	merged.SchemaVersion = model.DraftSchemaVersion

	mergeStr := func(dst *string, savedVal string) {
		if *dst == "" {
			*dst = savedVal
		}
	}
	mergeInt := func(dst *int, savedVal int) {
		if *dst == 0 {
			*dst = savedVal
		}
	}
	mergeInt64 := func(dst *int64, savedVal int64) {
		if *dst == 0 {
			*dst = savedVal
		}
	}

	mergeStr(&merged.CampgroundID, saved.CampgroundID)
	mergeStr(&merged.GuestID, saved.GuestID)
	mergeStr(&merged.ArrivalDate, saved.ArrivalDate)
	mergeStr(&merged.DepartureDate, saved.DepartureDate)
	mergeInt(&merged.Adults, saved.Adults)
	mergeInt(&merged.Children, saved.Children)
	mergeInt(&merged.Pets, saved.Pets)
	mergeStr(&merged.RigType, saved.RigType)
	mergeInt(&merged.RigLengthFt, saved.RigLengthFt)
	mergeStr(&merged.SiteID, saved.SiteID)
	mergeStr(&merged.SiteClassID, saved.SiteClassID)
	mergeStr(&merged.Notes, saved.Notes)
	mergeStr(&merged.ReferralSource, saved.ReferralSource)
	mergeStr(&merged.StayReason, saved.StayReason)
	mergeStr(&merged.PaymentMethod, saved.PaymentMethod)
	mergeInt64(&merged.PaymentAmountCents, saved.PaymentAmountCents)
	mergeInt64(&merged.CashReceivedCents, saved.CashReceivedCents)
	mergeStr(&merged.PaymentNotes, saved.PaymentNotes)
	mergeInt64(&merged.SyncedAmountCents, saved.SyncedAmountCents)
	mergeStr(&merged.GuestSearch, saved.GuestSearch)
	mergeStr(&merged.FilterSiteType, saved.FilterSiteType)
	mergeStr(&merged.FilterSiteClassID, saved.FilterSiteClassID)

	// Flags have no "empty" marker; a locally set flag wins, otherwise the
	// saved value carries over.
	merged.SiteLocked = merged.SiteLocked || saved.SiteLocked
	merged.CollectPayment = merged.CollectPayment || saved.CollectPayment
	merged.FilterAvailableOnly = merged.FilterAvailableOnly || saved.FilterAvailableOnly

	if merged.GuestAddress.IsEmpty() {
		merged.GuestAddress = saved.GuestAddress
	}

	return &merged
}

// SyncPaymentAmount fills the draft's payment amount from a freshly
// computed total. The sync happens at most once per distinct total: it
// applies when the current amount is untouched (zero or still equal to the
// last synced value) and never clobbers an operator-edited amount.
func SyncPaymentAmount(draft *model.BookingDraft, totalCents *int64) {
	if !draft.CollectPayment || totalCents == nil {
		return
	}

	if draft.SyncedAmountCents == *totalCents {
		return
	}

	if draft.PaymentAmountCents != 0 && draft.PaymentAmountCents != draft.SyncedAmountCents {
		return
	}

	draft.PaymentAmountCents = *totalCents
	draft.SyncedAmountCents = *totalCents
}
