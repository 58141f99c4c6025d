package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allSelections enumerates every combination of known use cases and choices.
func allSelections() []Selection {
	personalizations := []Personalization{PersonalizationUnset, PersonalizationWithAI, PersonalizationWithoutAI}
	preferences := []DevPreference{DevPreferenceUnset, DevPreferenceDev, DevPreferenceNoDev}
	known := KnownUseCases()

	var out []Selection
	for mask := 0; mask < 1<<len(known); mask++ {
		for _, p := range personalizations {
			for _, d := range preferences {
				var s Selection
				for i, uc := range known {
					if mask&(1<<i) != 0 {
						s.Toggle(uc)
					}
				}
				s.Personalization = p
				s.DevPreference = d
				out = append(out, s)
			}
		}
	}
	return out
}

func TestRegistry_EveryStepHasRoute(t *testing.T) {
	r := NewRegistry()
	for _, step := range Steps() {
		route, err := r.Route(step)
		require.NoError(t, err, step)
		assert.NotNil(t, route.Next, step)
		assert.NotNil(t, route.Prev, step)
	}

	_, err := r.Route("nowhere")
	assert.Error(t, err)
	assert.Equal(t, StepNone, r.Next("nowhere", Selection{}))
	assert.Equal(t, StepNone, r.Prev("nowhere", Selection{}))
}

func TestRegistry_SelectionNext(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want StepID
	}{
		{"empty blocks", nil, StepNone},
		{"personal", []string{"personalUse"}, StepPersonalize},
		{"professional", []string{"professionalUse"}, StepAPISetup},
		{"development", []string{"developmentUse"}, StepDevOrNonDev},
		{"legacy development spelling", []string{"developmentlUse"}, StepDevOrNonDev},
		{"other", []string{"otherUse"}, StepDevOrNonDev},
		{"personal beats professional", []string{"professionalUse", "personalUse"}, StepPersonalize},
		{"professional beats development", []string{"developmentUse", "professionalUse"}, StepAPISetup},
		{"unknown tag falls through", []string{"gamingUse"}, StepInstructions},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Next(StepSelection, NewSelection(tt.tags...)))
		})
	}
}

func TestRegistry_ChoiceBranches(t *testing.T) {
	r := NewRegistry()

	withAI := Selection{Personalization: PersonalizationWithAI}
	withoutAI := Selection{Personalization: PersonalizationWithoutAI}
	assert.Equal(t, StepAPISetup, r.Next(StepPersonalize, withAI))
	assert.Equal(t, StepInstructions, r.Next(StepPersonalize, withoutAI))
	assert.Equal(t, StepInstructions, r.Next(StepPersonalize, Selection{}))

	dev := Selection{DevPreference: DevPreferenceDev}
	noDev := Selection{DevPreference: DevPreferenceNoDev}
	assert.Equal(t, StepDevConfig, r.Next(StepDevOrNonDev, dev))
	assert.Equal(t, StepPersonalize, r.Next(StepDevOrNonDev, noDev))

	assert.Equal(t, StepSelection, r.Prev(StepAPISetup, NewSelection("professionalUse")))
	assert.Equal(t, StepPersonalize, r.Prev(StepAPISetup, NewSelection("professionalUse", "otherUse")))
	assert.Equal(t, StepPersonalize, r.Prev(StepAPISetup, NewSelection("personalUse")))
}

func TestRegistry_InstructionsPrev(t *testing.T) {
	type sel struct {
		tags []string
		p    Personalization
		d    DevPreference
	}
	tests := []struct {
		name     string
		sel      sel
		devFirst StepID
		grouped  StepID
	}{
		{"dev mode came through pipes", sel{[]string{"developmentUse"}, "", DevPreferenceDev}, StepPipes, StepPipes},
		{"personal", sel{[]string{"personalUse"}, PersonalizationWithoutAI, ""}, StepPersonalize, StepPersonalize},
		{"professional", sel{[]string{"professionalUse"}, "", ""}, StepAPISetup, StepAPISetup},
		{"development non-dev without AI", sel{[]string{"developmentUse"}, PersonalizationWithoutAI, DevPreferenceNoDev}, StepPersonalize, StepPersonalize},
		{"development non-dev with AI", sel{[]string{"developmentUse"}, PersonalizationWithAI, DevPreferenceNoDev}, StepAPISetup, StepAPISetup},
		{"development without personalization", sel{[]string{"developmentUse"}, "", DevPreferenceNoDev}, StepAPISetup, StepDevOrNonDev},
		{"other with AI", sel{[]string{"otherUse"}, PersonalizationWithAI, DevPreferenceNoDev}, StepAPISetup, StepAPISetup},
		{"other without AI", sel{[]string{"otherUse"}, PersonalizationWithoutAI, DevPreferenceNoDev}, StepDevOrNonDev, StepDevOrNonDev},
		{"unknown tag", sel{[]string{"gamingUse"}, "", ""}, StepDevOrNonDev, StepDevOrNonDev},
	}

	devFirst := NewRegistry()
	grouped := NewRegistry(WithInstructionsBackRule(BackRuleGrouped))
	require.Equal(t, BackRuleDevelopmentFirst, devFirst.BackRule())
	require.Equal(t, BackRuleGrouped, grouped.BackRule())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(tt.sel.tags...)
			s.Personalization = tt.sel.p
			s.DevPreference = tt.sel.d
			assert.Equal(t, tt.devFirst, devFirst.Prev(StepInstructions, s), "development-first")
			assert.Equal(t, tt.grouped, grouped.Prev(StepInstructions, s), "grouped")
		})
	}
}

func TestRegistry_EveryStepReachable(t *testing.T) {
	r := NewRegistry()
	visited := map[StepID]bool{}
	hasNext := map[StepID]bool{}

	for _, s := range allSelections() {
		step := r.First()
		for hops := 0; step != StepNone; hops++ {
			require.Less(t, hops, len(Steps()), "routing loop for %s", s)
			visited[step] = true
			nxt := r.Next(step, s)
			if nxt != StepNone {
				hasNext[step] = true
			}
			step = nxt
		}
	}

	for _, step := range Steps() {
		assert.True(t, visited[step], "%s unreachable from intro", step)
		if !r.Terminal(step) {
			assert.True(t, hasNext[step], "%s never has a next step", step)
		}
	}
}

func TestRegistry_PrevNeverLeavesStepSet(t *testing.T) {
	for _, rule := range []InstructionsBackRule{BackRuleDevelopmentFirst, BackRuleGrouped} {
		r := NewRegistry(WithInstructionsBackRule(rule))
		for _, s := range allSelections() {
			for _, step := range Steps() {
				p := r.Prev(step, s)
				if step == StepIntro {
					assert.Equal(t, StepNone, p)
					continue
				}
				assert.True(t, p.Valid(), "%s prev %q invalid for %s", step, p, s)
			}
		}
	}
}

func TestRegistry_Terminal(t *testing.T) {
	r := NewRegistry()
	for _, step := range Steps() {
		assert.Equal(t, step == StepExperimentalFeatures, r.Terminal(step), step)
	}
	assert.Equal(t, StepNone, r.Next(StepExperimentalFeatures, NewSelection("personalUse")))
}

func TestParseInstructionsBackRule(t *testing.T) {
	rule, err := ParseInstructionsBackRule("")
	require.NoError(t, err)
	assert.Equal(t, BackRuleDevelopmentFirst, rule)

	rule, err = ParseInstructionsBackRule("Grouped")
	require.NoError(t, err)
	assert.Equal(t, BackRuleGrouped, rule)

	_, err = ParseInstructionsBackRule("sideways")
	assert.Error(t, err)
}
