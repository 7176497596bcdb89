package dto

import "github.com/dix-marketplace/backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmitStepRequest carries the payload for one wizard step. Only the
// field matching the step number is read.
type SubmitStepRequest struct {
	Location *models.LocationData `json:"location,omitempty"`
	Details  *models.DetailsData  `json:"details,omitempty"`
	Booking  *models.BookingData  `json:"booking,omitempty"`
	Package  *models.PackageData  `json:"package,omitempty"`
	Payment  *models.PaymentData  `json:"payment,omitempty"`
}
