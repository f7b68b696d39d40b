package model

import "time"

// Hold is a temporary reservation of a site for a bounded window while the
// booking is being completed.
type Hold struct {
	ID            string    `json:"id"`
	CampgroundID  string    `json:"campground_id"`
	SiteID        string    `json:"site_id"`
	ArrivalDate   string    `json:"arrival_date"`
	DepartureDate string    `json:"departure_date"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// HoldCreate requests a hold on a site for the given date range.
type HoldCreate struct {
	CampgroundID  string `json:"campground_id" validate:"required"`
	SiteID        string `json:"site_id" validate:"required"`
	ArrivalDate   string `json:"arrival_date" validate:"required,datetime=2006-01-02"`
	DepartureDate string `json:"departure_date" validate:"required,datetime=2006-01-02"`
	HoldMinutes   int    `json:"hold_minutes" validate:"min=1,max=120"`
}
