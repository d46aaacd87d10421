package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	centcli "github.com/mwhite/centsible/internal/cli"
	"github.com/mwhite/centsible/internal/model"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show spending summaries and cash flow",
		Long: `Summarize transactions for a date range: totals per category, income
against expenses, and which budgets are over their limits. Defaults to the
current month.`,
		RunE: runReport,
	}

	cmd.Flags().String("from", "", "start date (YYYY-MM-DD, default: first of the month)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD, default: end of the month)")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	start, end := monthWindow(time.Now())
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		date, err := parseDate(from)
		if err != nil {
			return err
		}
		start = date
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		date, err := parseDate(to)
		if err != nil {
			return err
		}
		end = date.AddDate(0, 0, 1).Add(-time.Second)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	flow, err := store.CashFlow(ctx, start, end)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s Cash flow %s to %s",
		centcli.ChartIcon, start.Format("2006-01-02"), end.Format("2006-01-02"))

	var body strings.Builder
	fmt.Fprintf(&body, "Income    %s\n", centcli.StyleSuccess(fmt.Sprintf("%12.2f", flow.TotalIncome)))
	fmt.Fprintf(&body, "Expenses  %s\n", centcli.StyleError(fmt.Sprintf("%12.2f", flow.TotalExpenses)))
	net := fmt.Sprintf("%12.2f", flow.NetCashFlow)
	if flow.NetCashFlow >= 0 {
		net = centcli.StyleSuccess(net)
	} else {
		net = centcli.StyleError(net)
	}
	fmt.Fprintf(&body, "Net       %s", net)
	fmt.Println(centcli.RenderBox(title, body.String()))

	if len(flow.ExpensesByCategory) > 0 {
		// Largest categories first.
		categories := make([]model.Category, 0, len(flow.ExpensesByCategory))
		for category := range flow.ExpensesByCategory {
			categories = append(categories, category)
		}
		sort.Slice(categories, func(i, j int) bool {
			return flow.ExpensesByCategory[categories[i]].Amount > flow.ExpensesByCategory[categories[j]].Amount
		})

		header := fmt.Sprintf("%-22s %6s %12s %7s", "CATEGORY", "COUNT", "AMOUNT", "SHARE")
		fmt.Println(centcli.TableHeaderStyle.Render(header))
		for _, category := range categories {
			entry := flow.ExpensesByCategory[category]
			share := 0.0
			if flow.TotalExpenses > 0 {
				share = entry.Amount / flow.TotalExpenses * 100
			}
			fmt.Printf("%s %6d %12.2f %6.1f%%\n",
				renderCategory(category, 22), entry.Count, entry.Amount, share)
		}
	}

	// Budget check over the same window's spending.
	if err := store.RecalculateSpent(ctx, end); err != nil {
		return err
	}
	budgets, err := store.ListBudgets(ctx)
	if err != nil {
		return err
	}
	for _, budget := range budgets {
		if budget.Exceeded() {
			fmt.Println(centcli.FormatWarning(fmt.Sprintf(
				"%s is over budget: %.2f spent of %.2f", budget.Category, budget.Spent, budget.Limit)))
		}
	}

	return nil
}
