// Package onboarding implements the first-run wizard navigation engine:
// a routing table over a fixed set of steps, the validation gate that guards
// forward navigation, the fade transition sequencer and the controller that
// ties them together for a render layer.
package onboarding

import (
	"fmt"
	"strings"
)

// StepID identifies one wizard screen.
type StepID string

const (
	StepNone                 StepID = "" // No step: blocked, complete, or no previous step
	StepIntro                StepID = "intro"
	StepStatus               StepID = "status"
	StepSelection            StepID = "selection"
	StepPersonalize          StepID = "personalize"
	StepAPISetup             StepID = "apiSetup"
	StepDevOrNonDev          StepID = "devOrNonDev"
	StepDevConfig            StepID = "devConfig"
	StepPipes                StepID = "pipes"
	StepInstructions         StepID = "instructions"
	StepExperimentalFeatures StepID = "experimentalFeatures"
)

// stepOrder is the declaration order of the step set.
var stepOrder = []StepID{
	StepIntro,
	StepStatus,
	StepSelection,
	StepPersonalize,
	StepAPISetup,
	StepDevOrNonDev,
	StepDevConfig,
	StepPipes,
	StepInstructions,
	StepExperimentalFeatures,
}

var stepTitles = map[StepID]string{
	StepIntro:                "Welcome",
	StepStatus:               "Status",
	StepSelection:            "What will you use it for?",
	StepPersonalize:          "Personalize",
	StepAPISetup:             "AI Provider Setup",
	StepDevOrNonDev:          "Developer or not?",
	StepDevConfig:            "Developer Configuration",
	StepPipes:                "Pipes",
	StepInstructions:         "How to use it",
	StepExperimentalFeatures: "Experimental Features",
}

// Steps returns every step in declaration order.
func Steps() []StepID {
	out := make([]StepID, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// Valid reports whether s belongs to the step set.
func (s StepID) Valid() bool {
	_, ok := stepTitles[s]
	return ok
}

// Title returns the human readable heading for a step.
func (s StepID) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return string(s)
}

func (s StepID) String() string {
	if s == StepNone {
		return "none"
	}
	return string(s)
}

// Index returns the position of s in declaration order, or -1.
func (s StepID) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// ParseStep parses a step identifier. Matching is case-insensitive.
func ParseStep(s string) (StepID, error) {
	for _, step := range stepOrder {
		if strings.EqualFold(string(step), s) {
			return step, nil
		}
	}
	return StepNone, fmt.Errorf("invalid step %q", s)
}
