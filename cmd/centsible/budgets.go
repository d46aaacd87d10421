package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	centcli "github.com/mwhite/centsible/internal/cli"
	"github.com/mwhite/centsible/internal/model"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage category spending budgets",
	}

	cmd.AddCommand(budgetsSetCmd())
	cmd.AddCommand(budgetsListCmd())
	cmd.AddCommand(budgetsDeleteCmd())

	return cmd
}

func budgetsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Create or update the budget for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			category, err := model.ParseCategory(args[0])
			if err != nil {
				return err
			}
			limit, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid limit %q", args[1])
			}

			period, _ := cmd.Flags().GetString("period")
			description, _ := cmd.Flags().GetString("description")

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			saved, err := store.SaveBudget(ctx, &model.Budget{
				Category:    category,
				Period:      model.BudgetPeriod(period),
				Limit:       limit,
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Println(centcli.FormatSuccess(fmt.Sprintf(
				"Budget for %s set to %.2f per %s", saved.Category, saved.Limit, saved.Period)))
			return nil
		},
	}

	cmd.Flags().String("period", string(model.PeriodMonthly), "budget period (weekly, monthly, yearly)")
	cmd.Flags().String("description", "", "free-form note on the budget")

	return cmd
}

func budgetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show budgets with current spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			// Bring spent up to date before showing anything.
			if err := store.RecalculateSpent(ctx, time.Now()); err != nil {
				return err
			}

			budgets, err := store.ListBudgets(ctx)
			if err != nil {
				return err
			}

			if len(budgets) == 0 {
				fmt.Println(centcli.FormatInfo("No budgets yet. Create one with: centsible budgets set <category> <limit>"))
				return nil
			}

			header := fmt.Sprintf("%-20s %-8s %10s %10s %10s", "CATEGORY", "PERIOD", "LIMIT", "SPENT", "LEFT")
			fmt.Println(centcli.TableHeaderStyle.Render(header))

			for _, budget := range budgets {
				line := fmt.Sprintf("%s %-8s %10.2f %10.2f %10.2f",
					renderCategory(budget.Category, 20), budget.Period,
					budget.Limit, budget.Spent, budget.Remaining())
				if budget.Exceeded() {
					line += "  " + centcli.StyleError(centcli.WarningIcon+" over budget")
				}
				fmt.Println(line)
			}

			return nil
		},
	}
}

func budgetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category>",
		Short: "Remove the budget for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			category, err := model.ParseCategory(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			deleted, err := store.DeleteBudget(ctx, category)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Println(centcli.FormatWarning(fmt.Sprintf("No budget set for %s", category)))
				return nil
			}

			fmt.Println(centcli.FormatSuccess(fmt.Sprintf("Deleted budget for %s", category)))
			return nil
		},
	}
}
