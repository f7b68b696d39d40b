package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campreserv/pkg/client"
	"campreserv/pkg/config"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
)

type pricingBackend struct {
	site       *model.Site
	classes    []*model.SiteClass
	quote      *model.Quote
	quoteError bool
	siteError  bool

	server *httptest.Server
}

func newPricingBackend(t *testing.T) *pricingBackend {
	t.Helper()
	b := &pricingBackend{
		site: &model.Site{ID: "s-1", Name: "Riverside 12", SiteClassID: "c-1"},
		classes: []*model.SiteClass{
			{ID: "c-1", Name: "Riverside RV", DefaultRateCents: rate(6000)},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/sites/", func(w http.ResponseWriter, r *http.Request) {
		if b.siteError {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "site not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": b.site})
	})
	mux.HandleFunc("/api/v1/site-classes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": b.classes})
	})
	mux.HandleFunc("/api/v1/quotes", func(w http.ResponseWriter, r *http.Request) {
		if b.quoteError || b.quote == nil {
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "rate engine offline"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": b.quote})
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func rate(v int64) *int64 { return &v }

func newPricingService(b *pricingBackend) Service {
	cfg := &config.Config{
		Log:            logger.Discard(),
		LockFeeCents:   2500,
		DepositPolicy:  DepositPolicyPercentage,
		DepositPercent: 25,
	}
	return NewService(
		client.NewSiteClient(b.server.URL),
		client.NewQuoteClient(b.server.URL),
		cfg,
	)
}

func TestEstimateUsesQuoteWhenAvailable(t *testing.T) {
	backend := newPricingBackend(t)
	backend.quote = &model.Quote{BaseSubtotalCents: 12000, RulesDeltaCents: 1000, TotalCents: 13000}
	svc := newPricingService(backend)

	result, err := svc.Estimate(context.Background(), "cg-1", "s-1", "2025-06-01", "2025-06-03", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Breakdown.IsEstimate {
		t.Errorf("quote-backed result must not be an estimate")
	}
	if result.Breakdown.TotalCents == nil || *result.Breakdown.TotalCents != 13000 {
		t.Errorf("total = %v, want 13000", result.Breakdown.TotalCents)
	}
	if result.Nights != 2 {
		t.Errorf("nights = %d, want 2", result.Nights)
	}
	if result.DepositCents != 3250 {
		t.Errorf("deposit = %d, want 25%% of 13000", result.DepositCents)
	}
	if result.Site == nil || result.Site.Name != "Riverside 12" {
		t.Errorf("result should carry the priced site, got %+v", result.Site)
	}
}

func TestEstimateFallsBackWhenQuoteFails(t *testing.T) {
	backend := newPricingBackend(t)
	backend.quoteError = true
	svc := newPricingService(backend)

	result, err := svc.Estimate(context.Background(), "cg-1", "s-1", "2025-06-01", "2025-06-03", false)
	if err != nil {
		t.Fatalf("quote failure should degrade, not error: %v", err)
	}

	if !result.Breakdown.IsEstimate {
		t.Errorf("fallback result must be flagged as estimate")
	}
	if result.Breakdown.TotalCents == nil || *result.Breakdown.TotalCents != 12000 {
		t.Errorf("total = %v, want class rate * nights (12000)", result.Breakdown.TotalCents)
	}
}

func TestEstimateAddsLockFee(t *testing.T) {
	backend := newPricingBackend(t)
	backend.quote = &model.Quote{BaseSubtotalCents: 12000, TotalCents: 12000}
	svc := newPricingService(backend)

	result, err := svc.Estimate(context.Background(), "cg-1", "s-1", "2025-06-01", "2025-06-03", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Breakdown.LockFeeCents != 2500 {
		t.Errorf("lock fee = %d, want 2500", result.Breakdown.LockFeeCents)
	}
	if *result.Breakdown.TotalCents != 14500 {
		t.Errorf("total = %d, want quote plus lock fee", *result.Breakdown.TotalCents)
	}
}

func TestEstimateMissingSiteIsFatal(t *testing.T) {
	backend := newPricingBackend(t)
	backend.siteError = true
	svc := newPricingService(backend)

	_, err := svc.Estimate(context.Background(), "cg-1", "s-1", "2025-06-01", "2025-06-03", false)
	if !apperrors.IsCode(err, apperrors.CodeUpstream) {
		t.Errorf("missing site should be an upstream error, got %v", err)
	}
}

func TestDepositAppliesConfiguredPolicy(t *testing.T) {
	backend := newPricingBackend(t)
	svc := newPricingService(backend)

	if got := svc.Deposit(13000, 2); got != 3250 {
		t.Errorf("deposit = %d, want 25%% of 13000", got)
	}
	if got := svc.Deposit(0, 2); got != 0 {
		t.Errorf("deposit on zero total = %d, want 0", got)
	}
}

func TestEstimateRejectsBadInput(t *testing.T) {
	backend := newPricingBackend(t)
	svc := newPricingService(backend)

	if _, err := svc.Estimate(context.Background(), "", "s-1", "2025-06-01", "2025-06-03", false); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("missing campground id should be rejected, got %v", err)
	}
	if _, err := svc.Estimate(context.Background(), "cg-1", "s-1", "2025-06-03", "2025-06-01", false); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("inverted range should be rejected, got %v", err)
	}
}
