package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelar-dev/itinero/pkg/domain"
)

func parseDateFlags(startStr, endStr string) (domain.DateRange, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid --end: %w", err)
	}
	return domain.DateRange{Start: start, End: end}, nil
}

var getCmd = &cobra.Command{
	Use:   "get <session-id>",
	Short: "Show the current state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlanner(cmd)
		if err != nil {
			return err
		}
		st, err := p.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(st)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlanner(cmd)
		if err != nil {
			return err
		}
		ids, err := p.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("no sessions")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Discard a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlanner(cmd)
		if err != nil {
			return err
		}
		if err := p.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("session %s deleted\n", args[0])
		return nil
	},
}

var alternateCmd = &cobra.Command{
	Use:   "alternate <session-id> [name]",
	Short: "Resolve a paused alternate-destination choice",
	Long: `Resumes a session that paused on poor weather. Pass the name of one
of the suggested alternates, or omit it to keep the original destination and
accept the weather risk.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlanner(cmd)
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 2 {
			name = args[1]
		}
		st, err := p.ChooseAlternate(cmd.Context(), args[0], name)
		if err != nil {
			return err
		}
		return render(st)
	},
}

var replanCmd = &cobra.Command{
	Use:   "replan <session-id> <kind>",
	Short: "Apply a replan directive to a finished session",
	Long: `Kinds: accept, change_hotel, change_dates (with --start/--end) and
change_destination (with --to). Accept closes the session.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlanner(cmd)
		if err != nil {
			return err
		}

		directive := domain.ReplanDirective{Kind: domain.DirectiveKind(args[1])}
		if !directive.Kind.Valid() {
			return fmt.Errorf("unknown directive kind %q", args[1])
		}

		if to, _ := cmd.Flags().GetString("to"); to != "" {
			directive.NewDestination = to
		}
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		if startStr != "" || endStr != "" {
			dates, err := parseDateFlags(startStr, endStr)
			if err != nil {
				return err
			}
			directive.NewDates = &dates
		}
		if reason, _ := cmd.Flags().GetString("reason"); reason != "" {
			directive.Reason = reason
		}

		st, err := p.Replan(cmd.Context(), args[0], directive)
		if err != nil {
			return err
		}
		return render(st)
	},
}

func init() {
	replanCmd.Flags().String("to", "", "New destination for change_destination")
	replanCmd.Flags().String("start", "", "New start date for change_dates, YYYY-MM-DD")
	replanCmd.Flags().String("end", "", "New end date for change_dates, YYYY-MM-DD")
	replanCmd.Flags().String("reason", "", "Free-form note recorded in history")

	rootCmd.AddCommand(getCmd, listCmd, deleteCmd, alternateCmd, replanCmd)
}
