package wizard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dix-marketplace/backend/internal/catalog"
	"github.com/dix-marketplace/backend/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateLocation checks the location step input against the city
// catalog and derives the postcode from the area label when none was
// supplied. An area without a recognizable district yields an empty
// postcode, which is not an error.
func ValidateLocation(loc models.LocationData) (models.LocationData, map[string]string) {
	errs := map[string]string{}

	if loc.City == "" {
		errs["city"] = "City is required"
	} else if !catalog.IsKnownCity(loc.City) {
		errs["city"] = fmt.Sprintf("Unknown city %q", loc.City)
	}
	if loc.Region == "" {
		errs["region"] = "Region is required"
	}
	if loc.Area == "" {
		errs["area"] = "Area is required"
	}
	if len(errs) == 0 && !catalog.IsKnownArea(loc.City, loc.Region, loc.Area) {
		errs["area"] = fmt.Sprintf("Unknown area %q in %s", loc.Area, loc.City)
	}
	if len(errs) > 0 {
		return loc, errs
	}

	if loc.Postcode == "" {
		loc.Postcode = catalog.ExtractPostcode(loc.Area)
	}
	return loc, nil
}

func ValidateDetails(d models.DetailsData) map[string]string {
	errs := map[string]string{}

	if len(strings.TrimSpace(d.WorkingName)) < 2 {
		errs["working_name"] = "Working name must be at least 2 characters"
	}
	if d.Age < 18 {
		errs["age"] = "Must be at least 18 years old"
	} else if d.Age > 99 {
		errs["age"] = "Invalid age"
	}
	if d.Nationality == "" {
		errs["nationality"] = "Nationality is required"
	} else if !catalog.IsValidNationality(d.Nationality) {
		errs["nationality"] = fmt.Sprintf("Unknown nationality %q", d.Nationality)
	}
	if d.Eyes == "" {
		errs["eyes"] = "Eye color is required"
	} else if !catalog.IsValidEyeColor(d.Eyes) {
		errs["eyes"] = fmt.Sprintf("Unknown eye color %q", d.Eyes)
	}
	if d.Hair == "" {
		errs["hair"] = "Hair color is required"
	} else if !catalog.IsValidHairColor(d.Hair) {
		errs["hair"] = fmt.Sprintf("Unknown hair color %q", d.Hair)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateMedia gates the media step: at least one gallery image and a
// complete verification set (all three roles present exactly once).
func ValidateMedia(m models.MediaData) map[string]string {
	errs := map[string]string{}

	if len(m.Images) == 0 {
		errs["images"] = "At least one gallery image is required"
	}

	roles := map[string]int{}
	for _, img := range m.VerificationImages {
		roles[img.VerificationRole]++
	}
	for _, role := range models.VerificationRoles {
		if roles[role] != 1 {
			errs["verification_images"] = "ID document, selfie and verification note are all required"
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePackage checks tier and duration against the price table and
// resolves the base price. An unrecognized promo code is dropped, not
// rejected.
func ValidatePackage(p models.PackageData) (models.PackageData, map[string]string) {
	errs := map[string]string{}

	price, ok := catalog.BasePrice(p.Tier, p.Duration)
	if !ok {
		switch {
		case p.Tier == "":
			errs["tier"] = "Package tier is required"
		case p.Duration == 0:
			errs["duration"] = "Package duration is required"
		case !catalog.ValidTier(p.Tier):
			errs["tier"] = fmt.Sprintf("Unknown package tier %s", p.Tier)
		default:
			errs["duration"] = fmt.Sprintf("No %d-day option for the %s package", p.Duration, p.Tier)
		}
		return p, errs
	}

	p.Price = price
	if !catalog.IsPromoCodeValid(p.PromoCode) {
		p.PromoCode = ""
	}
	return p, nil
}

// ValidatePayment checks the account fields and, when the computed order
// total is positive, the card fields.
func ValidatePayment(p models.PaymentData, total float64) map[string]string {
	errs := map[string]string{}

	if !emailPattern.MatchString(p.Email) {
		errs["email"] = "Valid email is required"
	}
	if p.Email != p.ConfirmEmail {
		errs["confirm_email"] = "Emails don't match"
	}
	if len(p.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}
	if p.Password != p.ConfirmPassword {
		errs["confirm_password"] = "Passwords don't match"
	}
	if len(p.Phone) < 10 {
		errs["phone"] = "Valid phone number is required"
	}
	if p.Phone != p.ConfirmPhone {
		errs["confirm_phone"] = "Phone numbers don't match"
	}
	if !p.TermsAccepted {
		errs["terms_accepted"] = "You must accept the terms and conditions"
	}

	if total > 0 {
		if p.CardNumber == "" {
			errs["card_number"] = "Card number is required"
		}
		if p.ExpiryDate == "" {
			errs["expiry_date"] = "Expiry date is required"
		}
		if p.CVV == "" {
			errs["cvv"] = "CVV is required"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateBooking validates the booking step. When bookings are enabled
// the location sub-record is required; when disabled the location
// sub-step is skipped entirely and the step completes on settings alone.
func ValidateBooking(b models.BookingData) map[string]string {
	if !b.Settings.Enabled {
		return nil
	}

	errs := map[string]string{}
	if b.Location == nil {
		errs["location"] = "Booking location is required when bookings are enabled"
		return errs
	}
	if strings.TrimSpace(b.Location.Address) == "" {
		errs["location.address"] = "Address is required"
	}
	if strings.TrimSpace(b.Location.City) == "" {
		errs["location.city"] = "City is required"
	}
	if strings.TrimSpace(b.Location.Postcode) == "" {
		errs["location.postcode"] = "Postcode is required"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
