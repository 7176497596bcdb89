package models

// BookingData is the booking step sub-record. Location is only present
// when bookings are enabled; the location sub-step is skipped otherwise.
type BookingData struct {
	Settings BookingSettings  `json:"settings"`
	Location *BookingLocation `json:"location,omitempty"`
}

type BookingSettings struct {
	Enabled        bool            `json:"enabled"`
	InstantBooking bool            `json:"instant_booking"`
	Deposit        DepositSettings `json:"deposit"`
	Schedule       []DaySchedule   `json:"schedule"`
}

type DepositSettings struct {
	Required bool           `json:"required"`
	Amount   DepositAmounts `json:"amount"`
}

type DepositAmounts struct {
	Incall  float64 `json:"incall"`
	Outcall float64 `json:"outcall"`
}

type DaySchedule struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

type TimeSlot struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	IsAvailable bool   `json:"is_available"`
}

type BookingLocation struct {
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
	City     string `json:"city"`
}
