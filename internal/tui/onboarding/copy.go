package onboarding

import (
	"github.com/mark3labs/onboardr/internal/onboarding"
)

// stepCopy is the markdown body of each step.
var stepCopy = map[onboarding.StepID]string{
	onboarding.StepIntro: `# Welcome to screenpipe

screenpipe records your screen and audio locally and turns it into a
searchable, AI-ready history. This short setup takes about a minute.`,

	onboarding.StepStatus: `## Check recording status

Make sure screen and audio capture are running. You can change devices
later from the settings.`,

	onboarding.StepSelection: `## How will you use screenpipe?

Pick every option that applies. Your answers decide which steps come next.`,

	onboarding.StepPersonalize: `## Personalize your setup

Do you want AI features, such as summaries and search over your history?`,

	onboarding.StepAPISetup: `## Connect an AI provider

Add an API key for your preferred provider or point screenpipe at a local
model. Keys are stored on this machine only.`,

	onboarding.StepDevOrNonDev: `## How technical are you?

Developers get the CLI, the API and pipes. Everyone else gets a guided
experience.`,

	onboarding.StepDevConfig: `## Developer configuration

The recorder exposes a local API on port **3030**. Start it with:

` + "```sh\nscreenpipe --port 3030\n```",

	onboarding.StepPipes: `## Pipes

Pipes are small programs that run on a schedule against your history.
Use ` + "`onboardr pipes schedule <name> --interval 5m`" + ` to set one up.`,

	onboarding.StepInstructions: `## Getting started

Search your history, ask questions about what you saw, and let pipes
automate the rest.`,

	onboarding.StepExperimentalFeatures: `## Experimental features

A few features are still in preview. Enable them from settings whenever
you like. Press **Finish** to start using screenpipe.`,
}

// option is one selectable choice on a step.
type option struct {
	label string
	help  string
	value string
}

var (
	useCaseOptions = []option{
		{"Personal use", "keep a private memory of your day", string(onboarding.UseCasePersonal)},
		{"Professional use", "meetings, notes and work context", string(onboarding.UseCaseProfessional)},
		{"Development", "build on the API and pipes", string(onboarding.UseCaseDevelopment)},
		{"Something else", "", string(onboarding.UseCaseOther)},
	}
	personalizeOptions = []option{
		{"With AI", "summaries, chat and semantic search", string(onboarding.PersonalizationWithAI)},
		{"Without AI", "recording and keyword search only", string(onboarding.PersonalizationWithoutAI)},
	}
	preferenceOptions = []option{
		{"Developer mode", "CLI, API and pipes", string(onboarding.DevPreferenceDev)},
		{"Standard mode", "guided setup", string(onboarding.DevPreferenceNoDev)},
	}
)

// optionsFor returns the choices of step, or nil when it has none.
func optionsFor(step onboarding.StepID) []option {
	switch step {
	case onboarding.StepSelection:
		return useCaseOptions
	case onboarding.StepPersonalize:
		return personalizeOptions
	case onboarding.StepDevOrNonDev:
		return preferenceOptions
	}
	return nil
}

// chosen reports whether o is currently selected on step.
func chosen(step onboarding.StepID, p onboarding.Props, o option) bool {
	switch step {
	case onboarding.StepSelection:
		for _, uc := range p.UseCases {
			if string(uc) == o.value {
				return true
			}
		}
	case onboarding.StepPersonalize:
		return string(p.Personalization) == o.value
	case onboarding.StepDevOrNonDev:
		return string(p.DevPreference) == o.value
	}
	return false
}

// multiSelect reports whether step allows more than one choice.
func multiSelect(step onboarding.StepID) bool {
	return step == onboarding.StepSelection
}
