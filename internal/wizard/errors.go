package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrWizardCompleted = errors.New("wizard already completed")
	ErrStepNotReached  = errors.New("step not reached yet")
	ErrUnknownStep     = errors.New("unknown step")
)

// ValidationError carries a field-keyed map of human-readable messages.
// It is returned, never thrown past the controller boundary; the draft
// is not mutated when validation fails.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// SubmissionError wraps a persistence collaborator failure at the final
// step. The wizard stays on the payment step and the draft is preserved
// so the user loses nothing.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
