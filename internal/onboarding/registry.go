package onboarding

import (
	"fmt"
	"strings"
)

// Route is the navigation record for one step. Both functions are pure and
// return StepNone when there is nowhere to go.
//
// Prev does not consult any history: it recomputes which forward branch led
// to the step from the same selection, so no navigation stack is kept.
type Route struct {
	Next func(Selection) StepID
	Prev func(Selection) StepID
}

// InstructionsBackRule chooses how the development/other clause of the
// instructions back route is grouped.
type InstructionsBackRule string

const (
	// BackRuleDevelopmentFirst reads the clause as
	// developmentUse || (otherUse && withAI).
	BackRuleDevelopmentFirst InstructionsBackRule = "development-first"
	// BackRuleGrouped reads the clause as
	// (developmentUse || otherUse) && withAI.
	BackRuleGrouped InstructionsBackRule = "grouped"
)

// ParseInstructionsBackRule parses a back rule name. The empty string selects the default.
func ParseInstructionsBackRule(s string) (InstructionsBackRule, error) {
	switch InstructionsBackRule(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackRuleDevelopmentFirst:
		return BackRuleDevelopmentFirst, nil
	case BackRuleGrouped:
		return BackRuleGrouped, nil
	default:
		return "", fmt.Errorf("invalid instructions back rule %q: must be one of: development-first, grouped", s)
	}
}

// Registry is the routing table over the full step set.
type Registry struct {
	routes   map[StepID]Route
	backRule InstructionsBackRule
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithInstructionsBackRule selects the grouping of the instructions back route.
func WithInstructionsBackRule(rule InstructionsBackRule) RegistryOption {
	return func(r *Registry) {
		r.backRule = rule
	}
}

// NewRegistry builds the routing table.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{backRule: BackRuleDevelopmentFirst}
	for _, opt := range opts {
		opt(r)
	}
	r.routes = r.buildRoutes()
	return r
}

// BackRule returns the active instructions back rule.
func (r *Registry) BackRule() InstructionsBackRule {
	return r.backRule
}

func to(step StepID) func(Selection) StepID {
	return func(Selection) StepID { return step }
}

func (r *Registry) buildRoutes() map[StepID]Route {
	return map[StepID]Route{
		StepIntro: {
			Next: to(StepStatus),
			Prev: to(StepNone),
		},
		StepStatus: {
			Next: to(StepSelection),
			Prev: to(StepIntro),
		},
		StepSelection: {
			Next: selectionNext,
			Prev: to(StepStatus),
		},
		StepPersonalize: {
			Next: func(s Selection) StepID {
				if s.Personalization == PersonalizationWithAI {
					return StepAPISetup
				}
				return StepInstructions
			},
			Prev: to(StepSelection),
		},
		StepAPISetup: {
			Next: to(StepInstructions),
			Prev: func(s Selection) StepID {
				if s.Only(UseCaseProfessional) {
					return StepSelection
				}
				return StepPersonalize
			},
		},
		StepDevOrNonDev: {
			Next: func(s Selection) StepID {
				if s.DevPreference == DevPreferenceDev {
					return StepDevConfig
				}
				return StepPersonalize
			},
			Prev: to(StepSelection),
		},
		StepDevConfig: {
			Next: to(StepPipes),
			Prev: to(StepDevOrNonDev),
		},
		StepPipes: {
			Next: to(StepInstructions),
			Prev: to(StepDevConfig),
		},
		StepInstructions: {
			Next: to(StepExperimentalFeatures),
			Prev: r.instructionsPrev,
		},
		StepExperimentalFeatures: {
			Next: to(StepNone),
			Prev: to(StepInstructions),
		},
	}
}

// selectionNext fans out by use case with personal > professional > development/other.
func selectionNext(s Selection) StepID {
	switch {
	case s.Empty():
		return StepNone
	case s.Has(UseCasePersonal):
		return StepPersonalize
	case s.Has(UseCaseProfessional):
		return StepAPISetup
	case s.Has(UseCaseDevelopment), s.Has(UseCaseOther):
		return StepDevOrNonDev
	default:
		return StepInstructions
	}
}

func (r *Registry) instructionsPrev(s Selection) StepID {
	withAI := s.Personalization == PersonalizationWithAI
	dev := s.Has(UseCaseDevelopment)
	other := s.Has(UseCaseOther)

	switch {
	case s.DevPreference == DevPreferenceDev:
		return StepPipes
	case s.Has(UseCasePersonal):
		return StepPersonalize
	case s.Has(UseCaseProfessional):
		return StepAPISetup
	case dev && s.DevPreference == DevPreferenceNoDev && s.Personalization == PersonalizationWithoutAI:
		return StepPersonalize
	}

	var viaAPISetup bool
	if r.backRule == BackRuleGrouped {
		viaAPISetup = (dev || other) && withAI
	} else {
		viaAPISetup = dev || (other && withAI)
	}
	if viaAPISetup {
		return StepAPISetup
	}
	return StepDevOrNonDev
}

// Route returns the navigation record for step.
func (r *Registry) Route(step StepID) (Route, error) {
	route, ok := r.routes[step]
	if !ok {
		return Route{}, fmt.Errorf("no route for step %q", step)
	}
	return route, nil
}

// Next returns the step after step for the given selection, or StepNone.
func (r *Registry) Next(step StepID, s Selection) StepID {
	route, ok := r.routes[step]
	if !ok {
		return StepNone
	}
	return route.Next(s)
}

// Prev returns the step before step for the given selection, or StepNone.
func (r *Registry) Prev(step StepID, s Selection) StepID {
	route, ok := r.routes[step]
	if !ok {
		return StepNone
	}
	return route.Prev(s)
}

// Terminal reports whether forward navigation from step completes the wizard.
func (r *Registry) Terminal(step StepID) bool {
	return step == StepExperimentalFeatures
}

// First returns the step the wizard opens on.
func (r *Registry) First() StepID {
	return StepIntro
}
