package onboarding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_ToggleSemantics(t *testing.T) {
	var s Selection
	assert.True(t, s.Empty())

	assert.True(t, s.Toggle(UseCasePersonal))
	assert.True(t, s.Has(UseCasePersonal))
	assert.Equal(t, 1, s.Len())

	assert.False(t, s.Toggle(UseCasePersonal))
	assert.False(t, s.Has(UseCasePersonal))
	assert.True(t, s.Empty())
}

func TestNewSelection_Dedupes(t *testing.T) {
	s := NewSelection("otherUse", "otherUse", "developmentlUse", "developmentUse", "  ")
	assert.Equal(t, []UseCase{UseCaseDevelopment, UseCaseOther}, s.UseCases())
}

func TestSelection_Only(t *testing.T) {
	assert.True(t, NewSelection("professionalUse").Only(UseCaseProfessional))
	assert.False(t, NewSelection("professionalUse", "otherUse").Only(UseCaseProfessional))
	assert.False(t, NewSelection().Only(UseCaseProfessional))
}

func TestNormalizeUseCase(t *testing.T) {
	assert.Equal(t, UseCaseDevelopment, NormalizeUseCase("developmentlUse"))
	assert.Equal(t, UseCasePersonal, NormalizeUseCase("PersonalUse"))
	assert.Equal(t, UseCase("kioskUse"), NormalizeUseCase(" kioskUse "))
}

func TestParseChoices(t *testing.T) {
	p, err := ParsePersonalization("withAI")
	require.NoError(t, err)
	assert.Equal(t, PersonalizationWithAI, p)
	p, err = ParsePersonalization("")
	require.NoError(t, err)
	assert.Equal(t, PersonalizationUnset, p)
	_, err = ParsePersonalization("maybeAI")
	assert.Error(t, err)

	d, err := ParseDevPreference("NONDEVMODE")
	require.NoError(t, err)
	assert.Equal(t, DevPreferenceNoDev, d)
	_, err = ParseDevPreference("godMode")
	assert.Error(t, err)
}

func TestSelection_String(t *testing.T) {
	s := NewSelection("professionalUse")
	s.Personalization = PersonalizationWithAI
	assert.Equal(t, `useCases=[professionalUse] personalization="withAI" devPreference=""`, s.String())
}

func TestStepID(t *testing.T) {
	assert.Len(t, Steps(), 10)
	for i, step := range Steps() {
		assert.True(t, step.Valid())
		assert.Equal(t, i, step.Index())
		assert.NotEmpty(t, step.Title())
	}
	assert.False(t, StepNone.Valid())
	assert.Equal(t, "none", StepNone.String())
	assert.Equal(t, -1, StepID("bogus").Index())

	step, err := ParseStep("APISETUP")
	require.NoError(t, err)
	assert.Equal(t, StepAPISetup, step)
	_, err = ParseStep("outro")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	r := NewRegistry()

	_, err := Check(r, StepSelection, Selection{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, MsgSelectUseCase, GateMessage(err))

	_, err = Check(r, StepPersonalize, NewSelection("personalUse"))
	assert.Equal(t, MsgChoosePersonalize, GateMessage(err))

	_, err = Check(r, StepDevOrNonDev, NewSelection("otherUse"))
	assert.Equal(t, MsgChoosePreference, GateMessage(err))

	next, err := Check(r, StepIntro, Selection{})
	require.NoError(t, err)
	assert.Equal(t, StepStatus, next)

	next, err = Check(r, StepExperimentalFeatures, Selection{})
	require.NoError(t, err)
	assert.Equal(t, StepNone, next)

	_, err = Check(r, StepID("orphan"), Selection{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoutingUnresolved))
	assert.Equal(t, MsgValidateSelection, GateMessage(err))

	assert.Empty(t, GateMessage(nil))
	assert.Equal(t, "boom", GateMessage(errors.New("boom")))
}
