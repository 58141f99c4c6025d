package onboarding

import (
	"fmt"
	"sort"
	"strings"
)

// UseCase is a use-case tag chosen on the selection step.
type UseCase string

const (
	UseCasePersonal     UseCase = "personalUse"
	UseCaseProfessional UseCase = "professionalUse"
	UseCaseDevelopment  UseCase = "developmentUse"
	UseCaseOther        UseCase = "otherUse"
)

// legacyDevelopmentTag is the spelling older clients persisted and sent.
const legacyDevelopmentTag = "developmentlUse"

// KnownUseCases lists the tags offered on the selection step, in display order.
func KnownUseCases() []UseCase {
	return []UseCase{UseCasePersonal, UseCaseProfessional, UseCaseDevelopment, UseCaseOther}
}

// NormalizeUseCase maps a raw tag to its canonical form.
// Unknown tags are returned trimmed but otherwise untouched.
func NormalizeUseCase(tag string) UseCase {
	tag = strings.TrimSpace(tag)
	if tag == legacyDevelopmentTag {
		return UseCaseDevelopment
	}
	for _, uc := range KnownUseCases() {
		if strings.EqualFold(tag, string(uc)) {
			return uc
		}
	}
	return UseCase(tag)
}

// Personalization is the AI / no-AI choice on the personalize step.
type Personalization string

const (
	PersonalizationUnset     Personalization = ""
	PersonalizationWithAI    Personalization = "withAI"
	PersonalizationWithoutAI Personalization = "withoutAI"
)

// ParsePersonalization parses a personalization value. The empty string is unset.
func ParsePersonalization(s string) (Personalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PersonalizationUnset, nil
	case "withai":
		return PersonalizationWithAI, nil
	case "withoutai":
		return PersonalizationWithoutAI, nil
	default:
		return PersonalizationUnset, fmt.Errorf("invalid personalization %q: must be one of: withAI, withoutAI", s)
	}
}

// DevPreference is the developer / non-developer choice.
type DevPreference string

const (
	DevPreferenceUnset DevPreference = ""
	DevPreferenceDev   DevPreference = "devMode"
	DevPreferenceNoDev DevPreference = "nonDevMode"
)

// ParseDevPreference parses a dev preference value. The empty string is unset.
func ParseDevPreference(s string) (DevPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DevPreferenceUnset, nil
	case "devmode":
		return DevPreferenceDev, nil
	case "nondevmode":
		return DevPreferenceNoDev, nil
	default:
		return DevPreferenceUnset, fmt.Errorf("invalid dev preference %q: must be one of: devMode, nonDevMode", s)
	}
}

// Selection is the accumulated user input that drives routing.
// The zero value is an empty selection ready for use.
type Selection struct {
	useCases        map[UseCase]struct{}
	Personalization Personalization
	DevPreference   DevPreference
}

// NewSelection builds a selection from raw use-case tags.
func NewSelection(tags ...string) Selection {
	var s Selection
	for _, tag := range tags {
		uc := NormalizeUseCase(tag)
		if uc == "" || s.Has(uc) {
			continue
		}
		s.Toggle(uc)
	}
	return s
}

// Toggle adds uc when absent and removes it when present.
// Returns true if uc is in the set afterwards.
func (s *Selection) Toggle(uc UseCase) bool {
	if s.useCases == nil {
		s.useCases = make(map[UseCase]struct{})
	}
	if _, ok := s.useCases[uc]; ok {
		delete(s.useCases, uc)
		return false
	}
	s.useCases[uc] = struct{}{}
	return true
}

// Has reports whether uc is selected.
func (s Selection) Has(uc UseCase) bool {
	_, ok := s.useCases[uc]
	return ok
}

// Len returns the number of selected use cases.
func (s Selection) Len() int {
	return len(s.useCases)
}

// Empty reports whether no use case is selected.
func (s Selection) Empty() bool {
	return len(s.useCases) == 0
}

// Only reports whether uc is the single selected use case.
func (s Selection) Only(uc UseCase) bool {
	return len(s.useCases) == 1 && s.Has(uc)
}

// UseCases returns the selected tags sorted for stable output.
func (s Selection) UseCases() []UseCase {
	out := make([]UseCase, 0, len(s.useCases))
	for uc := range s.useCases {
		out = append(out, uc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a deep copy so callers can't mutate the controller's set.
func (s Selection) Clone() Selection {
	c := Selection{
		Personalization: s.Personalization,
		DevPreference:   s.DevPreference,
	}
	if len(s.useCases) > 0 {
		c.useCases = make(map[UseCase]struct{}, len(s.useCases))
		for uc := range s.useCases {
			c.useCases[uc] = struct{}{}
		}
	}
	return c
}

func (s Selection) String() string {
	tags := make([]string, 0, s.Len())
	for _, uc := range s.UseCases() {
		tags = append(tags, string(uc))
	}
	return fmt.Sprintf("useCases=[%s] personalization=%q devPreference=%q",
		strings.Join(tags, ","), s.Personalization, s.DevPreference)
}
