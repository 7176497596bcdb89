package wizard

// Wizard steps, in order. Positions are contiguous starting at 1.
const (
	StepLocation = 1
	StepDetails  = 2
	StepMedia    = 3
	StepBooking  = 4
	StepPackage  = 5
	StepPayment  = 6

	StepCount = 6
)

var StepLabels = map[int]string{
	StepLocation: "Location",
	StepDetails:  "Details",
	StepMedia:    "Media",
	StepBooking:  "Bookings",
	StepPackage:  "Package",
	StepPayment:  "Payment",
}
