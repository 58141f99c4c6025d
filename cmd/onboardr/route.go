package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mark3labs/onboardr/internal/flagstore"
	"github.com/mark3labs/onboardr/internal/onboarding"
	"github.com/spf13/cobra"
)

var routeFlags struct {
	useCases        []string
	personalization string
	devPreference   string
	back            bool
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Print the steps the wizard visits for a set of answers",
	Long: `Walk the wizard headlessly with the given answers and print every step
visited, from the introduction to the last step. Nothing is persisted.

With --back the walk continues backwards from the last step to the
introduction, showing where the back button leads.`,
	Example: `  onboardr route --use-case developmentUse --dev-preference devMode
  onboardr route --use-case personalUse --personalization withAI --back`,
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringSliceVarP(&routeFlags.useCases, "use-case", "u", nil, "Use case tags (personalUse, professionalUse, developmentUse, otherUse)")
	routeCmd.Flags().StringVarP(&routeFlags.personalization, "personalization", "p", "", "withAI or withoutAI")
	routeCmd.Flags().StringVarP(&routeFlags.devPreference, "dev-preference", "d", "", "devMode or nonDevMode")
	routeCmd.Flags().BoolVar(&routeFlags.back, "back", false, "Also walk back to the introduction")
}

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	personalization, err := onboarding.ParsePersonalization(routeFlags.personalization)
	if err != nil {
		return err
	}
	devPreference, err := onboarding.ParseDevPreference(routeFlags.devPreference)
	if err != nil {
		return err
	}

	cfg.FadeDuration = "0s"
	ctrl, err := newController(cfg, flagstore.NewMemoryStore(), nil)
	if err != nil {
		return err
	}
	d := onboarding.NewDriver(ctrl)
	if _, err := d.Open(context.Background()); err != nil {
		return err
	}

	answers := routeAnswers{
		useCases:        routeFlags.useCases,
		personalization: personalization,
		devPreference:   devPreference,
	}
	return walkRoute(cmd.OutOrStdout(), d, answers, routeFlags.back)
}

type routeAnswers struct {
	useCases        []string
	personalization onboarding.Personalization
	devPreference   onboarding.DevPreference
}

// walkRoute prints each step reached walking forward to the last step,
// answering choice steps from a, then optionally walks back.
func walkRoute(w io.Writer, d *onboarding.Driver, a routeAnswers, back bool) error {
	p := d.Snapshot()
	printStep(w, p)

	for !p.Terminal {
		switch p.Step {
		case onboarding.StepSelection:
			for _, tag := range a.useCases {
				d.Toggle(tag)
			}
		case onboarding.StepPersonalize:
			d.SetPersonalization(a.personalization)
		case onboarding.StepDevOrNonDev:
			d.SetDevPreference(a.devPreference)
		}

		next, err := d.Next()
		if err != nil {
			return err
		}
		if next.Step == p.Step {
			return fmt.Errorf("blocked at %s: %s", p.Step, next.Error)
		}
		p = next
		printStep(w, p)
	}

	if !back {
		return nil
	}

	fmt.Fprintln(w, "--- back ---")
	for hops := 0; p.CanGoBack && hops < len(onboarding.Steps()); hops++ {
		p = d.Prev()
		printStep(w, p)
	}
	return nil
}

func printStep(w io.Writer, p onboarding.Props) {
	fmt.Fprintf(w, "%2d. %-22s %s\n", p.Index+1, p.Step, p.Title)
}
