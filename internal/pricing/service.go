package pricing

import (
	"context"

	"campreserv/pkg/client"
	"campreserv/pkg/config"
	"campreserv/pkg/dates"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/model"
)

// EstimateResult pairs a price breakdown with the deposit the stay would
// require under the campground's policy. The priced site rides along so
// callers can show its name without refetching.
type EstimateResult struct {
	Breakdown    model.PriceBreakdown `json:"breakdown"`
	DepositCents int64                `json:"deposit_cents"`
	Nights       int                  `json:"nights"`
	Site         *model.Site          `json:"site,omitempty"`
}

type Service interface {
	Estimate(ctx context.Context, campgroundID, siteID, arrivalDate, departureDate string, siteLocked bool) (*EstimateResult, error)

	// Deposit applies the campground's deposit policy to an already known
	// total.
	Deposit(totalCents int64, nights int) int64
}

type pricingService struct {
	sites  *client.SiteClient
	quotes *client.QuoteClient
	cfg    *config.Config
}

func NewService(sites *client.SiteClient, quotes *client.QuoteClient, cfg *config.Config) Service {
	return &pricingService{
		sites:  sites,
		quotes: quotes,
		cfg:    cfg,
	}
}

// Estimate prices a stay. A failed or missing quote degrades to a local
// rate-times-nights estimate instead of erroring; only a missing site is
// fatal, since nothing can be priced without one.
func (s *pricingService) Estimate(ctx context.Context, campgroundID, siteID, arrivalDate, departureDate string, siteLocked bool) (*EstimateResult, error) {
	if campgroundID == "" || siteID == "" {
		return nil, apperrors.InvalidInput("Campground ID and site ID are required")
	}

	nights := dates.Nights(arrivalDate, departureDate)
	if nights <= 0 {
		return nil, apperrors.InvalidInput("A valid date range is required")
	}

	site, err := s.fetchSite(siteID)
	if err != nil {
		return nil, err
	}

	classes := s.fetchClasses(campgroundID)
	quote := s.fetchQuote(campgroundID, siteID, arrivalDate, departureDate)

	var lockFee int64
	if siteLocked {
		lockFee = s.cfg.LockFeeCents
	}

	breakdown := Estimate(site, classes, nights, quote, lockFee)

	var deposit int64
	if breakdown.TotalCents != nil {
		deposit = s.Deposit(*breakdown.TotalCents, nights)
	}

	return &EstimateResult{
		Breakdown:    breakdown,
		DepositCents: deposit,
		Nights:       nights,
		Site:         site,
	}, nil
}

func (s *pricingService) Deposit(totalCents int64, nights int) int64 {
	return ComputeDeposit(DepositPolicy{
		Policy:     s.cfg.DepositPolicy,
		Percent:    s.cfg.DepositPercent,
		FixedCents: s.cfg.DepositFixedCents,
		MinCents:   s.cfg.DepositMinCents,
		MaxCents:   s.cfg.DepositMaxCents,
	}, totalCents, nights)
}

func (s *pricingService) fetchSite(siteID string) (*model.Site, error) {
	resp, err := s.sites.GetByID(siteID)
	if err != nil {
		return nil, apperrors.Unavailable("sites service")
	}
	if !resp.OK() {
		return nil, apperrors.Upstream("sites", client.GetErrorMessage(resp))
	}

	site, err := s.sites.DecodeSite(resp)
	if err != nil {
		return nil, apperrors.Decode("site", err)
	}

	return site, nil
}

func (s *pricingService) fetchClasses(campgroundID string) []*model.SiteClass {
	resp, err := s.sites.ListClasses(campgroundID)
	if err != nil || !resp.OK() {
		s.cfg.Log.Warn("Site class fetch failed, rate fallback limited to site rates",
			"campground_id", campgroundID,
			"error", err,
		)
		return nil
	}

	classes, err := s.sites.DecodeSiteClasses(resp)
	if err != nil {
		s.cfg.Log.Warn("Site class decode failed", "campground_id", campgroundID, "error", err)
		return nil
	}

	return classes
}

// fetchQuote returns nil on any failure; the caller falls back to a local
// estimate.
func (s *pricingService) fetchQuote(campgroundID, siteID, arrivalDate, departureDate string) *model.Quote {
	resp, err := s.quotes.Get(campgroundID, siteID, arrivalDate, departureDate)
	if err != nil || !resp.OK() {
		s.cfg.Log.Warn("Quote fetch failed, falling back to estimate",
			"campground_id", campgroundID,
			"site_id", siteID,
			"error", err,
		)
		return nil
	}

	quote, err := s.quotes.DecodeQuote(resp)
	if err != nil {
		s.cfg.Log.Warn("Quote decode failed, falling back to estimate",
			"site_id", siteID,
			"error", err,
		)
		return nil
	}

	return quote
}
