package models

// Draft is the accumulating record for one advertisement-in-progress. It
// is owned exclusively by one wizard session; each step's sub-record is
// merged only after that step's input passes validation.
type Draft struct {
	Location *LocationData `json:"location,omitempty"`
	Details  *DetailsData  `json:"details,omitempty"`
	Media    *MediaData    `json:"media,omitempty"`
	Booking  *BookingData  `json:"booking,omitempty"`
	Package  *PackageData  `json:"package,omitempty"`
	Payment  *PaymentData  `json:"payment,omitempty"`
}

type LocationData struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Area     string `json:"area"`
	Postcode string `json:"postcode,omitempty"`
}

type DetailsData struct {
	WorkingName string `json:"working_name"`
	Age         int    `json:"age"`
	Nationality string `json:"nationality"`
	Eyes        string `json:"eyes"`
	Hair        string `json:"hair"`
}

type MediaData struct {
	Images             []AdImage `json:"images"`
	VerificationImages []AdImage `json:"verification_images"`
}

type PackageData struct {
	Tier      string  `json:"tier"`
	Duration  int     `json:"duration"` // days
	Price     float64 `json:"price"`
	PromoCode string  `json:"promo_code,omitempty"`
}

type PaymentData struct {
	Email           string `json:"email"`
	ConfirmEmail    string `json:"confirm_email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	ConfirmPhone    string `json:"confirm_phone"`
	CardNumber      string `json:"card_number,omitempty"`
	ExpiryDate      string `json:"expiry_date,omitempty"`
	CVV             string `json:"cvv,omitempty"`
	TermsAccepted   bool   `json:"terms_accepted"`
}
