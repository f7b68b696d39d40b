package availability

import (
	"context"

	"campreserv/pkg/client"
	"campreserv/pkg/config"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/model"
)

// Service resolves eligible sites for a date range by combining the
// backend's site-status list with the staff-selected filters.
type Service interface {
	Resolve(ctx context.Context, campgroundID, arrivalDate, departureDate string, filters model.SiteFilters) ([]*model.Site, error)
	SiteClasses(ctx context.Context, campgroundID string) ([]*model.SiteClass, error)
	Suggestions(ctx context.Context, campgroundID, guestID string) ([]*model.SiteSuggestion, error)
}

type availabilityService struct {
	sites *client.SiteClient
	cfg   *config.Config
}

func NewService(sites *client.SiteClient, cfg *config.Config) Service {
	return &availabilityService{
		sites: sites,
		cfg:   cfg,
	}
}

func (s *availabilityService) Resolve(ctx context.Context, campgroundID, arrivalDate, departureDate string, filters model.SiteFilters) ([]*model.Site, error) {
	if campgroundID == "" {
		return nil, apperrors.InvalidInput("Campground ID cannot be empty")
	}
	if arrivalDate == "" || departureDate == "" {
		return nil, apperrors.InvalidInput("Arrival and departure dates are required")
	}

	resp, err := s.sites.ListWithStatus(campgroundID, arrivalDate, departureDate)
	if err != nil {
		return nil, apperrors.Unavailable("sites service")
	}
	if !resp.OK() {
		return nil, apperrors.Upstream("sites", client.GetErrorMessage(resp))
	}

	sites, err := s.sites.DecodeSites(resp)
	if err != nil {
		return nil, apperrors.Decode("site list", err)
	}

	// Class rig ceilings are only needed when a length filter can apply.
	var classes []*model.SiteClass
	if filters.RigLengthFt > 0 {
		classes, err = s.SiteClasses(ctx, campgroundID)
		if err != nil {
			s.cfg.Log.Warn("Falling back to site-level rig ceilings only",
				"campground_id", campgroundID,
				"error", err,
			)
			classes = nil
		}
	}

	return Resolve(sites, filters, classes), nil
}

func (s *availabilityService) SiteClasses(ctx context.Context, campgroundID string) ([]*model.SiteClass, error) {
	if campgroundID == "" {
		return nil, apperrors.InvalidInput("Campground ID cannot be empty")
	}

	resp, err := s.sites.ListClasses(campgroundID)
	if err != nil {
		return nil, apperrors.Unavailable("sites service")
	}
	if !resp.OK() {
		return nil, apperrors.Upstream("sites", client.GetErrorMessage(resp))
	}

	classes, err := s.sites.DecodeSiteClasses(resp)
	if err != nil {
		return nil, apperrors.Decode("site class list", err)
	}

	return classes, nil
}

func (s *availabilityService) Suggestions(ctx context.Context, campgroundID, guestID string) ([]*model.SiteSuggestion, error) {
	if campgroundID == "" || guestID == "" {
		return nil, apperrors.InvalidInput("Campground ID and guest ID are required")
	}

	resp, err := s.sites.Matched(campgroundID, guestID)
	if err != nil {
		return nil, apperrors.Unavailable("sites service")
	}
	if !resp.OK() {
		return nil, apperrors.Upstream("sites", client.GetErrorMessage(resp))
	}

	suggestions, err := s.sites.DecodeSuggestions(resp)
	if err != nil {
		return nil, apperrors.Decode("site suggestion list", err)
	}

	return suggestions, nil
}
