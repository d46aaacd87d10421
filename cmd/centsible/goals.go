package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	centcli "github.com/mwhite/centsible/internal/cli"
	"github.com/mwhite/centsible/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
	}

	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsContributeCmd())
	cmd.AddCommand(goalsDeleteCmd())

	return cmd
}

func goalsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <target>",
		Short: "Create a savings goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			target, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid target amount %q", args[1])
			}

			goal := model.Goal{
				Name:         args[0],
				TargetAmount: target,
			}
			if date, _ := cmd.Flags().GetString("by"); date != "" {
				goal.TargetDate, err = parseDate(date)
				if err != nil {
					return err
				}
			}
			goal.Icon, _ = cmd.Flags().GetString("icon")
			goal.Notes, _ = cmd.Flags().GetString("notes")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			created, err := store.CreateGoal(ctx, &goal)
			if err != nil {
				return err
			}

			fmt.Println(centcli.FormatSuccess(fmt.Sprintf(
				"Goal %q created (id %d, target %.2f)", created.Name, created.ID, created.TargetAmount)))
			return nil
		},
	}

	cmd.Flags().String("by", "", "target date (YYYY-MM-DD)")
	cmd.Flags().String("icon", centcli.TargetIcon, "icon shown next to the goal")
	cmd.Flags().String("notes", "", "free-form notes")

	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show savings goals and their progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			goals, err := store.ListGoals(ctx)
			if err != nil {
				return err
			}

			if len(goals) == 0 {
				fmt.Println(centcli.FormatInfo("No goals yet. Create one with: centsible goals add <name> <target>"))
				return nil
			}

			for _, goal := range goals {
				bar := progressGauge(goal.Progress(), 20)
				line := fmt.Sprintf("%-4d %s %-24s %s %6.1f%%  %.2f / %.2f",
					goal.ID, goal.Icon, goal.Name, bar,
					goal.Progress()*100, goal.CurrentAmount, goal.TargetAmount)
				if goal.Reached() {
					line += "  " + centcli.StyleSuccess(centcli.CheckIcon+" reached")
				} else if !goal.TargetDate.IsZero() {
					line += "  " + centcli.SubtleStyle.Render("by "+goal.TargetDate.Format("2006-01-02"))
				}
				fmt.Println(line)
			}

			return nil
		},
	}
}

func goalsContributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <id> <amount>",
		Short: "Add money to a goal (negative amounts withdraw)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid goal id %q", args[0])
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			updated, err := store.AddGoalProgress(ctx, id, amount)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("%q is now at %.2f of %.2f (%.1f%%)",
				updated.Name, updated.CurrentAmount, updated.TargetAmount, updated.Progress()*100)
			if updated.Reached() {
				fmt.Println(centcli.FormatSuccess(msg + " — goal reached!"))
			} else {
				fmt.Println(centcli.FormatSuccess(msg))
			}
			return nil
		},
	}
}

func goalsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid goal id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			deleted, err := store.DeleteGoal(ctx, id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Println(centcli.FormatWarning(fmt.Sprintf("Goal %d not found", id)))
				return nil
			}

			fmt.Println(centcli.FormatSuccess(fmt.Sprintf("Deleted goal %d", id)))
			return nil
		},
	}
}

// progressGauge renders a fixed-width text gauge for a fraction in [0, 1].
func progressGauge(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
