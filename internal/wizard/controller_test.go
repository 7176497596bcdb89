package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/dix-marketplace/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	calls int
	err   error
	adID  string
	draft *models.Draft
}

func (f *fakeSubmitter) Submit(_ context.Context, _ uuid.UUID, draft *models.Draft) (string, error) {
	f.calls++
	f.draft = draft
	if f.err != nil {
		return "", f.err
	}
	if f.adID == "" {
		f.adID = uuid.New().String()
	}
	return f.adID, nil
}

func validLocation() *models.LocationData {
	return &models.LocationData{City: "London", Region: "Central London", Area: "Soho - W1"}
}

func validDetails() *models.DetailsData {
	return &models.DetailsData{WorkingName: "Jane", Age: 25, Nationality: "british", Eyes: "blue", Hair: "brown"}
}

func validMedia() *models.MediaData {
	return &models.MediaData{
		Images: []models.AdImage{{ID: "g1", Role: models.ImageRoleGallery, IsPrimary: true}},
		VerificationImages: []models.AdImage{
			{ID: "v1", Role: models.ImageRoleVerification, VerificationRole: "id"},
			{ID: "v2", Role: models.ImageRoleVerification, VerificationRole: "selfie"},
			{ID: "v3", Role: models.ImageRoleVerification, VerificationRole: "note"},
		},
	}
}

func validPayment() *models.PaymentData {
	return &models.PaymentData{
		Email: "jane@example.com", ConfirmEmail: "jane@example.com",
		Password: "hunter2hunter2", ConfirmPassword: "hunter2hunter2",
		Phone: "07700900123", ConfirmPhone: "07700900123",
		CardNumber: "4242424242424242", ExpiryDate: "12/30", CVV: "123",
		TermsAccepted: true,
	}
}

// advance runs the first five steps with valid data, leaving the wizard
// on the payment step.
func advance(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.SubmitStep(ctx, StepLocation, StepInput{Location: validLocation()}))
	require.NoError(t, c.SubmitStep(ctx, StepDetails, StepInput{Details: validDetails()}))
	require.NoError(t, c.SubmitStep(ctx, StepMedia, StepInput{Media: validMedia()}))
	require.NoError(t, c.SubmitStep(ctx, StepBooking, StepInput{Booking: &models.BookingData{}}))
	require.NoError(t, c.SubmitStep(ctx, StepPackage, StepInput{Package: &models.PackageData{Tier: "PRIME", Duration: 15}}))
	require.Equal(t, StepPayment, c.CurrentStep())
}

func TestControllerFullRun(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewController(uuid.New(), sub)

	advance(t, c)
	assert.Equal(t, 35.99, c.Total())

	err := c.SubmitStep(context.Background(), StepPayment, StepInput{Payment: validPayment()})
	require.NoError(t, err)

	assert.True(t, c.Completed())
	assert.Equal(t, sub.adID, c.AdID())
	assert.Equal(t, 1, sub.calls)

	// Draft handed to the submitter carries every sub-record.
	require.NotNil(t, sub.draft)
	assert.Equal(t, "W1", sub.draft.Location.Postcode)
	assert.Equal(t, 35.99, sub.draft.Package.Price)

	// The terminal state rejects further submissions.
	err = c.SubmitStep(context.Background(), StepLocation, StepInput{Location: validLocation()})
	assert.ErrorIs(t, err, ErrWizardCompleted)
}

func TestControllerValidationFailureKeepsState(t *testing.T) {
	c := NewController(uuid.New(), &fakeSubmitter{})

	err := c.SubmitStep(context.Background(), StepLocation, StepInput{Location: &models.LocationData{}})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "city")

	assert.Equal(t, StepLocation, c.CurrentStep())
	assert.Nil(t, c.Draft().Location)
}

func TestControllerStepNotReached(t *testing.T) {
	c := NewController(uuid.New(), &fakeSubmitter{})

	err := c.SubmitStep(context.Background(), StepPackage, StepInput{Package: &models.PackageData{Tier: "TOP", Duration: 7}})
	assert.ErrorIs(t, err, ErrStepNotReached)

	err = c.SubmitStep(context.Background(), 0, StepInput{})
	assert.ErrorIs(t, err, ErrUnknownStep)
	err = c.SubmitStep(context.Background(), 7, StepInput{})
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestControllerSubmissionFailureKeepsDraft(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("storage down")}
	c := NewController(uuid.New(), sub)
	advance(t, c)

	err := c.SubmitStep(context.Background(), StepPayment, StepInput{Payment: validPayment()})
	var sErr *SubmissionError
	require.ErrorAs(t, err, &sErr)

	assert.False(t, c.Completed())
	assert.Equal(t, StepPayment, c.CurrentStep())
	assert.NotNil(t, c.Draft().Payment)

	// Retry succeeds once the collaborator recovers.
	sub.err = nil
	require.NoError(t, c.SubmitStep(context.Background(), StepPayment, StepInput{Payment: validPayment()}))
	assert.True(t, c.Completed())
	assert.Equal(t, 2, sub.calls)
}

func TestGoToStep(t *testing.T) {
	c := NewController(uuid.New(), &fakeSubmitter{})
	ctx := context.Background()
	require.NoError(t, c.SubmitStep(ctx, StepLocation, StepInput{Location: validLocation()}))
	require.NoError(t, c.SubmitStep(ctx, StepDetails, StepInput{Details: validDetails()}))
	require.Equal(t, StepMedia, c.CurrentStep())

	// Back to a visited step.
	assert.True(t, c.GoToStep(StepLocation))
	assert.Equal(t, StepLocation, c.CurrentStep())

	// Forward to any previously reached step.
	assert.True(t, c.GoToStep(StepMedia))
	assert.Equal(t, StepMedia, c.CurrentStep())

	// Unreached steps are a silent no-op.
	assert.False(t, c.GoToStep(StepPayment))
	assert.Equal(t, StepMedia, c.CurrentStep())

	// Out-of-range targets too.
	assert.False(t, c.GoToStep(0))
	assert.False(t, c.GoToStep(99))
	assert.Equal(t, StepMedia, c.CurrentStep())
}

func TestPreviousStepFloorsAtFirst(t *testing.T) {
	c := NewController(uuid.New(), &fakeSubmitter{})
	assert.Equal(t, StepLocation, c.PreviousStep())

	require.NoError(t, c.SubmitStep(context.Background(), StepLocation, StepInput{Location: validLocation()}))
	assert.Equal(t, StepLocation, c.PreviousStep())

	// Data entered for the abandoned step stays merged.
	assert.NotNil(t, c.Draft().Location)
}

func TestBookingFeatureAddsToTotal(t *testing.T) {
	c := NewController(uuid.New(), &fakeSubmitter{})
	ctx := context.Background()
	require.NoError(t, c.SubmitStep(ctx, StepLocation, StepInput{Location: validLocation()}))
	require.NoError(t, c.SubmitStep(ctx, StepDetails, StepInput{Details: validDetails()}))
	require.NoError(t, c.SubmitStep(ctx, StepMedia, StepInput{Media: validMedia()}))
	require.NoError(t, c.SubmitStep(ctx, StepBooking, StepInput{Booking: &models.BookingData{
		Settings: models.BookingSettings{Enabled: true},
		Location: &models.BookingLocation{Address: "1 Example Street", City: "London", Postcode: "E1"},
	}}))
	require.NoError(t, c.SubmitStep(ctx, StepPackage, StepInput{Package: &models.PackageData{Tier: "PRIME", Duration: 15}}))

	assert.Equal(t, 80.99, c.Total())
}

func TestPromoCodeZeroesTotalAndWaivesCard(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewController(uuid.New(), sub)
	ctx := context.Background()
	require.NoError(t, c.SubmitStep(ctx, StepLocation, StepInput{Location: validLocation()}))
	require.NoError(t, c.SubmitStep(ctx, StepDetails, StepInput{Details: validDetails()}))
	require.NoError(t, c.SubmitStep(ctx, StepMedia, StepInput{Media: validMedia()}))
	require.NoError(t, c.SubmitStep(ctx, StepBooking, StepInput{Booking: &models.BookingData{}}))
	require.NoError(t, c.SubmitStep(ctx, StepPackage, StepInput{Package: &models.PackageData{Tier: "TOP", Duration: 30, PromoCode: "DixLaunch"}}))

	assert.Equal(t, 0.0, c.Total())

	payment := validPayment()
	payment.CardNumber, payment.ExpiryDate, payment.CVV = "", "", ""
	require.NoError(t, c.SubmitStep(ctx, StepPayment, StepInput{Payment: payment}))
	assert.True(t, c.Completed())
}
