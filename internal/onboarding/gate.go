package onboarding

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationFailed is returned when a required choice is missing.
	ErrValidationFailed = errors.New("validation failed")
	// ErrRoutingUnresolved is returned when the routing table has no next
	// step for a non-terminal step. It points at a table defect.
	ErrRoutingUnresolved = errors.New("routing unresolved")
)

// User-facing gate messages.
const (
	MsgSelectUseCase     = "please select at least one option before proceeding"
	MsgChoosePersonalize = "please choose a personalization option"
	MsgChoosePreference  = "please choose a preference option"
	MsgValidateSelection = "please validate selection"
)

// GateError describes why forward navigation was blocked.
type GateError struct {
	Step    StepID
	Kind    error // ErrValidationFailed or ErrRoutingUnresolved
	Message string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s at step %s: %s", e.Kind, e.Step, e.Message)
}

func (e *GateError) Unwrap() error {
	return e.Kind
}

// Validate applies the per-step requirement for leaving step forward.
func Validate(step StepID, s Selection) error {
	switch step {
	case StepSelection:
		if s.Empty() {
			return &GateError{Step: step, Kind: ErrValidationFailed, Message: MsgSelectUseCase}
		}
	case StepPersonalize:
		if s.Personalization == PersonalizationUnset {
			return &GateError{Step: step, Kind: ErrValidationFailed, Message: MsgChoosePersonalize}
		}
	case StepDevOrNonDev:
		if s.DevPreference == DevPreferenceUnset {
			return &GateError{Step: step, Kind: ErrValidationFailed, Message: MsgChoosePreference}
		}
	}
	return nil
}

// Check runs the gate for forward navigation from step and returns the
// destination. For the terminal step it returns StepNone with a nil error.
func Check(r *Registry, step StepID, s Selection) (StepID, error) {
	if err := Validate(step, s); err != nil {
		return StepNone, err
	}
	next := r.Next(step, s)
	if next == StepNone && !r.Terminal(step) {
		return StepNone, &GateError{Step: step, Kind: ErrRoutingUnresolved, Message: MsgValidateSelection}
	}
	return next, nil
}

// GateMessage extracts the user-facing message from a gate error.
func GateMessage(err error) string {
	var ge *GateError
	if errors.As(err, &ge) {
		return ge.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
