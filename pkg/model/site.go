package model

// Site statuses reported by the sites-with-status endpoint for a date range.
const (
	SiteStatusAvailable   = "available"
	SiteStatusBooked      = "booked"
	SiteStatusHeld        = "held"
	SiteStatusMaintenance = "maintenance"
)

// Site types the platform knows about.
const (
	SiteTypeRV       = "rv"
	SiteTypeTent     = "tent"
	SiteTypeCabin    = "cabin"
	SiteTypeGlamping = "glamping"
	SiteTypeGroup    = "group"
)

// FilterAll is the sentinel meaning "no restriction" for enum filters.
const FilterAll = "all"

// Site is a read-only availability record for one site over the selected
// date range. It is re-fetched whenever the range changes and never mutated
// by this subsystem.
type Site struct {
	ID               string `json:"id" bson:"id"`
	Name             string `json:"name" bson:"name"`
	Number           string `json:"number" bson:"number"`
	SiteType         string `json:"site_type" bson:"site_type"`
	SiteClassID      string `json:"site_class_id" bson:"site_class_id"`
	SiteClassName    string `json:"site_class_name" bson:"site_class_name"`
	Status           string `json:"status" bson:"status"`
	DefaultRateCents *int64 `json:"default_rate_cents,omitempty" bson:"default_rate_cents,omitempty"`
	RigMaxLengthFt   *int   `json:"rig_max_length_ft,omitempty" bson:"rig_max_length_ft,omitempty"`
}

// SiteClass groups sites sharing a rate and rig ceiling. Class defaults are
// the fallback when a site carries no value of its own.
type SiteClass struct {
	ID               string `json:"id" bson:"id"`
	Name             string `json:"name" bson:"name"`
	DefaultRateCents *int64 `json:"default_rate_cents,omitempty" bson:"default_rate_cents,omitempty"`
	RigMaxLengthFt   *int   `json:"rig_max_length_ft,omitempty" bson:"rig_max_length_ft,omitempty"`
}

// SiteFilters are the user-selected availability filters. Zero values mean
// no restriction except AvailableOnly, which must be requested explicitly.
type SiteFilters struct {
	AvailableOnly bool   `json:"available_only"`
	SiteType      string `json:"site_type,omitempty"`
	SiteClassID   string `json:"site_class_id,omitempty"`
	RigType       string `json:"rig_type,omitempty"`
	RigLengthFt   int    `json:"rig_length_ft,omitempty"`
}

// SiteSuggestion is one entry of the advisory AI match list. The ranking is
// computed by an external collaborator; selecting a suggestion only sets the
// draft's site reference.
type SiteSuggestion struct {
	Site    Site     `json:"site"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}
