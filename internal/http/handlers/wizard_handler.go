package handlers

import (
	"errors"

	"github.com/dix-marketplace/backend/internal/http/dto"
	"github.com/dix-marketplace/backend/internal/middleware"
	"github.com/dix-marketplace/backend/internal/services"
	"github.com/dix-marketplace/backend/internal/wizard"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WizardHandler struct {
	sessions *services.SessionService
	log      *zap.Logger
}

func NewWizardHandler(sessions *services.SessionService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{sessions: sessions, log: log}
}

func (h *WizardHandler) OpenSession(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
	}

	session, err := h.sessions.Open(userID)
	if err != nil {
		h.log.Error("failed to open wizard session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: wizardState(session)})
}

func (h *WizardHandler) GetSession(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: wizardState(session)})
}

func (h *WizardHandler) CloseSession(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
	}
	if !h.sessions.Close(sessionID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "session not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// SubmitStep validates and applies one step payload. The media step has
// no body payload: its data is the session's current media state.
func (h *WizardHandler) SubmitStep(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}

	step, err := c.ParamsInt("step")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid step number"})
	}

	var input wizard.StepInput
	if step == wizard.StepMedia {
		snapshot := session.Media.Snapshot()
		input.Media = &snapshot
	} else {
		var req dto.SubmitStepRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
		}
		input.Location = req.Location
		input.Details = req.Details
		input.Booking = req.Booking
		input.Package = req.Package
		input.Payment = req.Payment
	}

	if err := session.Wizard.SubmitStep(c.Context(), step, input); err != nil {
		return h.stepError(c, session, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: wizardState(session)})
}

func (h *WizardHandler) PreviousStep(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}
	session.Wizard.PreviousStep()
	return c.JSON(dto.SuccessResponse{OK: true, Data: wizardState(session)})
}

func (h *WizardHandler) GoToStep(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}

	step, err := c.ParamsInt("step")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid step number"})
	}

	// An unreachable target is a silent no-op; the returned state shows
	// where the wizard actually is.
	session.Wizard.GoToStep(step)
	return c.JSON(dto.SuccessResponse{OK: true, Data: wizardState(session)})
}

func (h *WizardHandler) stepError(c *fiber.Ctx, session *services.Session, err error) error {
	var vErr *wizard.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error:  "validation failed",
			Fields: vErr.Fields,
		})
	}

	var sErr *wizard.SubmissionError
	if errors.As(err, &sErr) {
		h.log.Error("draft submission failed",
			zap.String("session_id", session.ID.String()), zap.Error(sErr.Err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "submission failed, please retry"})
	}

	switch {
	case errors.Is(err, wizard.ErrWizardCompleted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "wizard already completed"})
	case errors.Is(err, wizard.ErrStepNotReached):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "step not reached yet"})
	case errors.Is(err, wizard.ErrUnknownStep):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown step"})
	}

	h.log.Error("step submission failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
}

// resolveSession loads the session addressed by the route and checks
// ownership. On failure the error response is already written and ok is
// false.
func resolveSession(c *fiber.Ctx, sessions *services.SessionService) (*services.Session, bool) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
		return nil, false
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid session id"})
		return nil, false
	}
	session, ok := sessions.Get(sessionID, userID)
	if !ok {
		_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "session not found"})
		return nil, false
	}
	return session, true
}

func wizardState(session *services.Session) dto.WizardStateResponse {
	current := session.Wizard.CurrentStep()
	draft := session.Wizard.Draft()

	// Credentials and card data never go back over the wire.
	if draft.Payment != nil {
		p := *draft.Payment
		p.Password, p.ConfirmPassword = "", ""
		p.CardNumber, p.CVV = "", ""
		draft.Payment = &p
	}

	return dto.WizardStateResponse{
		SessionID:   session.ID.String(),
		CurrentStep: current,
		StepLabel:   wizard.StepLabels[current],
		Completed:   session.Wizard.Completed(),
		AdID:        session.Wizard.AdID(),
		Total:       session.Wizard.Total(),
		Draft:       draft,
	}
}
