package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/dix-marketplace/backend/internal/catalog"
	"github.com/dix-marketplace/backend/internal/models"
	"github.com/google/uuid"
)

// Submitter is the draft submission boundary. It is called exactly once
// per successful wizard completion with the fully merged draft.
type Submitter interface {
	Submit(ctx context.Context, userID uuid.UUID, draft *models.Draft) (string, error)
}

// StepInput carries the payload for one SubmitStep call. Exactly the
// field owned by the submitted step is read; the rest are ignored.
type StepInput struct {
	Location *models.LocationData
	Details  *models.DetailsData
	Media    *models.MediaData
	Booking  *models.BookingData
	Package  *models.PackageData
	Payment  *models.PaymentData
}

// Controller owns the current step and the accumulating draft for one
// editing session. States are Step(1)..Step(6) plus the Completed
// terminal state; transitions are driven only by SubmitStep,
// PreviousStep and GoToStep.
type Controller struct {
	mu sync.Mutex

	userID    uuid.UUID
	submitter Submitter

	current   int
	reached   int
	completed map[int]bool
	draft     models.Draft

	done bool
	adID string
}

func NewController(userID uuid.UUID, submitter Submitter) *Controller {
	return &Controller{
		userID:    userID,
		submitter: submitter,
		current:   StepLocation,
		reached:   StepLocation,
		completed: make(map[int]bool),
	}
}

func (c *Controller) UserID() uuid.UUID { return c.userID }

func (c *Controller) CurrentStep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Completed reports whether the wizard reached its terminal state.
func (c *Controller) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// AdID returns the identifier assigned on successful submission.
func (c *Controller) AdID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adID
}

// Draft returns a copy of the accumulated draft.
func (c *Controller) Draft() models.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// StepComplete reports whether the given step has been submitted
// successfully at least once.
func (c *Controller) StepComplete(step int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed[step]
}

// SubmitStep validates the input for the given step, merges it into the
// draft and advances. On validation failure a *ValidationError is
// returned and neither merge nor advance happens. Submitting the final
// step hands the draft to the Submitter; failure there keeps the wizard
// on the payment step with the draft intact.
func (c *Controller) SubmitStep(ctx context.Context, step int, input StepInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return ErrWizardCompleted
	}
	if step < StepLocation || step > StepPayment {
		return fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}
	if step > c.reached {
		return fmt.Errorf("%w: %d", ErrStepNotReached, step)
	}

	switch step {
	case StepLocation:
		if input.Location == nil {
			return &ValidationError{Fields: map[string]string{"location": "Location data is required"}}
		}
		loc, errs := ValidateLocation(*input.Location)
		if errs != nil {
			return &ValidationError{Fields: errs}
		}
		c.draft.Location = &loc

	case StepDetails:
		if input.Details == nil {
			return &ValidationError{Fields: map[string]string{"details": "Details data is required"}}
		}
		if errs := ValidateDetails(*input.Details); errs != nil {
			return &ValidationError{Fields: errs}
		}
		d := *input.Details
		c.draft.Details = &d

	case StepMedia:
		if input.Media == nil {
			return &ValidationError{Fields: map[string]string{"media": "Media data is required"}}
		}
		if errs := ValidateMedia(*input.Media); errs != nil {
			return &ValidationError{Fields: errs}
		}
		m := *input.Media
		c.draft.Media = &m

	case StepBooking:
		if input.Booking == nil {
			return &ValidationError{Fields: map[string]string{"booking": "Booking data is required"}}
		}
		if errs := ValidateBooking(*input.Booking); errs != nil {
			return &ValidationError{Fields: errs}
		}
		b := *input.Booking
		c.draft.Booking = &b

	case StepPackage:
		if input.Package == nil {
			return &ValidationError{Fields: map[string]string{"package": "Package data is required"}}
		}
		pkg, errs := ValidatePackage(*input.Package)
		if errs != nil {
			return &ValidationError{Fields: errs}
		}
		c.draft.Package = &pkg

	case StepPayment:
		if input.Payment == nil {
			return &ValidationError{Fields: map[string]string{"payment": "Payment data is required"}}
		}
		if errs := ValidatePayment(*input.Payment, c.totalLocked()); errs != nil {
			return &ValidationError{Fields: errs}
		}
		p := *input.Payment
		c.draft.Payment = &p
	}

	c.completed[step] = true

	if step == StepPayment {
		adID, err := c.submitter.Submit(ctx, c.userID, &c.draft)
		if err != nil {
			// Stay on the payment step; the draft is preserved for retry.
			return &SubmissionError{Err: err}
		}
		c.adID = adID
		c.done = true
		return nil
	}

	c.current = step + 1
	if c.current > c.reached {
		c.reached = c.current
	}
	return nil
}

// GoToStep moves to any step the wizard has already reached. Anything
// beyond that is ignored: no state change, no error.
func (c *Controller) GoToStep(target int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done || target < StepLocation || target > StepPayment {
		return false
	}
	if target > c.reached {
		return false
	}
	c.current = target
	return true
}

// PreviousStep moves one step back, floored at the first step. Data
// entered for the step being left is kept.
func (c *Controller) PreviousStep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return c.current
	}
	if c.current > StepLocation {
		c.current--
	}
	return c.current
}

// Total computes the order total from the accumulated draft: package
// price, plus the booking feature when enabled, zeroed by a valid promo
// code.
func (c *Controller) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Controller) totalLocked() float64 {
	var price float64
	var promo string
	if c.draft.Package != nil {
		price = c.draft.Package.Price
		promo = c.draft.Package.PromoCode
	}
	bookingEnabled := c.draft.Booking != nil && c.draft.Booking.Settings.Enabled
	return catalog.ComputeTotal(price, bookingEnabled, promo)
}
