package dto

import "github.com/dix-marketplace/backend/internal/models"

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// WizardStateResponse mirrors the session for the client after every
// wizard mutation.
type WizardStateResponse struct {
	SessionID   string       `json:"session_id"`
	CurrentStep int          `json:"current_step"`
	StepLabel   string       `json:"step_label"`
	Completed   bool         `json:"completed"`
	AdID        string       `json:"ad_id,omitempty"`
	Total       float64      `json:"total"`
	Draft       models.Draft `json:"draft"`
}

type UploadResponse struct {
	Added    []models.AdImage `json:"added"`
	Rejected []UploadFailure  `json:"rejected,omitempty"`
}

type UploadFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type MediaStateResponse struct {
	Gallery              []models.AdImage `json:"gallery"`
	VerificationImages   []models.AdImage `json:"verification_images"`
	VerificationComplete bool             `json:"verification_complete"`
}
