package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelar-dev/itinero"
	"github.com/avelar-dev/itinero/internal/presentation/tui"
	"github.com/avelar-dev/itinero/pkg/domain"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip and render the itinerary",
	Long: `Runs the full planning pipeline for the given preferences. When the
weather at the destination looks poor, alternates are suggested and the
command asks which one to take (or to keep the original destination).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}

		var extra []itinero.Option
		if auto, _ := cmd.Flags().GetBool("auto-alternate"); auto {
			extra = append(extra, itinero.WithAutoAlternate())
		}
		if extras, _ := cmd.Flags().GetBool("extras"); extras {
			extra = append(extra, itinero.WithExtras())
		}

		p, err := buildPlanner(cmd, extra...)
		if err != nil {
			return err
		}

		tui.PrintBanner()

		st, err := p.Plan(cmd.Context(), req)
		if err != nil && !errors.Is(err, domain.ErrNoMatches) {
			if st == nil {
				return err
			}
		}

		for st.Status == domain.StatusAwaitingAlternate {
			choice, promptErr := promptAlternate(st)
			if promptErr != nil {
				return promptErr
			}
			st, err = p.ChooseAlternate(cmd.Context(), st.ID, choice)
			if err != nil && !errors.Is(err, domain.ErrNoMatches) {
				return err
			}
		}

		return render(st)
	},
}

func init() {
	planCmd.Flags().String("to", "", "Destination city (required)")
	planCmd.Flags().String("from", "", "Departure city (required)")
	planCmd.Flags().String("start", "", "Start date, YYYY-MM-DD (required)")
	planCmd.Flags().String("end", "", "End date, YYYY-MM-DD (required)")
	planCmd.Flags().Int("travelers", 2, "Number of travelers")
	planCmd.Flags().String("tier", "budget", "Budget tier: backpacker, budget, mid-range or luxury")
	planCmd.Flags().String("holiday", "", "Holiday type, e.g. Beach, Adventure, Skiing")
	planCmd.Flags().Bool("auto-alternate", false, "Pick the best alternate automatically on poor weather")
	planCmd.Flags().Bool("extras", false, "Generate activity suggestions and a packing list")
	_ = planCmd.MarkFlagRequired("to")
	_ = planCmd.MarkFlagRequired("from")
	_ = planCmd.MarkFlagRequired("start")
	_ = planCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(planCmd)
}

func requestFromFlags(cmd *cobra.Command) (itinero.TripRequest, error) {
	to, _ := cmd.Flags().GetString("to")
	from, _ := cmd.Flags().GetString("from")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	travelers, _ := cmd.Flags().GetInt("travelers")
	tierName, _ := cmd.Flags().GetString("tier")
	holiday, _ := cmd.Flags().GetString("holiday")

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return itinero.TripRequest{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return itinero.TripRequest{}, fmt.Errorf("invalid --end: %w", err)
	}
	tier, err := domain.ParseTier(tierName)
	if err != nil {
		return itinero.TripRequest{}, err
	}

	return itinero.TripRequest{
		Destination:   to,
		DepartureCity: from,
		Dates:         domain.DateRange{Start: start, End: end},
		Travelers:     travelers,
		BudgetTier:    tier,
		HolidayType:   holiday,
	}, nil
}

// promptAlternate lists the suggestions and reads a choice from stdin. An
// empty answer keeps the original destination.
func promptAlternate(st *domain.TripState) (string, error) {
	fmt.Printf("\nThe weather in %s looks poor (score %d). Alternates:\n\n",
		st.Destination, st.WeatherScore)
	for i, alt := range st.Alternates {
		dist := ""
		if alt.DistanceKm > 0 {
			dist = fmt.Sprintf(", %.0f km away", alt.DistanceKm)
		}
		fmt.Printf("  %d. %s (weather score %d%s)\n", i+1, alt.Name, alt.WeatherScore, dist)
	}
	fmt.Printf("\nPick a number, type a name, or press Enter to keep %s: ", st.Destination)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		// No interactive input available; keep the original destination.
		return "", nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	for i, alt := range st.Alternates {
		if line == fmt.Sprintf("%d", i+1) || strings.EqualFold(line, alt.Name) {
			return alt.Name, nil
		}
	}
	return "", fmt.Errorf("%q is not one of the suggestions", line)
}

func render(st *domain.TripState) error {
	renderMarkdown := tui.NewRenderer()
	out, err := renderMarkdown(tui.Markdown(st))
	if err != nil {
		fmt.Println(tui.Markdown(st))
		return nil
	}
	fmt.Print(out)
	if st.Status == domain.StatusFailed {
		return fmt.Errorf("planning failed, see session history")
	}
	return nil
}
