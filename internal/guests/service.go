package guests

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"campreserv/pkg/client"
	"campreserv/pkg/config"
	apperrors "campreserv/pkg/errors"
	"campreserv/pkg/model"
	"campreserv/pkg/sanitizer"
)

// namePipeline cleans guest name fields before they reach the platform.
var namePipeline = sanitizer.Pipeline{sanitizer.NormalizeName}

// Service proxies guest search and creation to the platform's guest store,
// normalizing contact fields on the way in.
type Service interface {
	Search(ctx context.Context, campgroundID, search string) ([]*model.Guest, error)
	Create(ctx context.Context, guest *model.Guest) (*model.Guest, error)
}

type guestService struct {
	guests   *client.GuestClient
	cfg      *config.Config
	validate *validator.Validate
}

func NewService(guests *client.GuestClient, cfg *config.Config) Service {
	return &guestService{
		guests:   guests,
		cfg:      cfg,
		validate: validator.New(),
	}
}

func (s *guestService) Search(ctx context.Context, campgroundID, search string) ([]*model.Guest, error) {
	if campgroundID == "" {
		return nil, apperrors.InvalidInput("Campground ID is required")
	}
	search = sanitizer.TrimAndNormalize(search)

	resp, err := s.guests.List(campgroundID, search)
	if err != nil {
		return nil, apperrors.Unavailable("guests service")
	}
	if !resp.OK() {
		return nil, apperrors.Upstream("guests", client.GetErrorMessage(resp))
	}

	guests, err := s.guests.DecodeGuests(resp)
	if err != nil {
		return nil, apperrors.Decode("guest list", err)
	}

	return guests, nil
}

// Create sanitizes the guest's name and contact fields, validates the
// result, and forwards it to the guest store. A phone that cannot be
// normalized to E.164 is rejected rather than stored dirty.
func (s *guestService) Create(ctx context.Context, guest *model.Guest) (*model.Guest, error) {
	guest.FirstName = namePipeline.Apply(guest.FirstName)
	guest.LastName = namePipeline.Apply(guest.LastName)
	guest.Email = sanitizer.NormalizeEmail(guest.Email)

	if guest.Phone != "" {
		phone := sanitizer.NormalizePhone(guest.Phone)
		if phone == "" {
			return nil, apperrors.InvalidInput("Phone must be a dialable number")
		}
		guest.Phone = phone
	}

	if err := s.validateGuest(guest); err != nil {
		return nil, err
	}

	resp, err := s.guests.Create(guest)
	if err != nil {
		return nil, apperrors.Unavailable("guests service")
	}
	if !resp.OK() {
		return nil, apperrors.Upstream("guests", client.GetErrorMessage(resp))
	}

	created, err := s.guests.DecodeGuest(resp)
	if err != nil {
		return nil, apperrors.Decode("guest", err)
	}

	return created, nil
}

func (s *guestService) validateGuest(guest *model.Guest) error {
	err := s.validate.Struct(guest)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]any, len(validationErrs))
		for _, fe := range validationErrs {
			switch fe.Tag() {
			case "required":
				details[fe.Field()] = fmt.Sprintf("%s is required", fe.Field())
			case "email":
				details[fe.Field()] = "Email must be a valid address"
			case "e164":
				details[fe.Field()] = "Phone must be in international form"
			default:
				details[fe.Field()] = fe.Error()
			}
		}
		return apperrors.Validation("Guest has invalid fields", details)
	}
	return err
}
