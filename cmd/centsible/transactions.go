package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	centcli "github.com/mwhite/centsible/internal/cli"
	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txn", "tx"},
		Short:   "List and manage transactions",
	}

	cmd.AddCommand(transactionsListCmd())
	cmd.AddCommand(transactionsRecategorizeCmd())
	cmd.AddCommand(transactionsDeleteCmd())

	return cmd
}

func transactionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE:  runTransactionsList,
	}

	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().String("category", "", "filter by category")
	cmd.Flags().String("type", "", "filter by type (income, expense)")
	cmd.Flags().String("source", "", "filter by import source")
	cmd.Flags().Bool("imported", false, "only show imported transactions")
	cmd.Flags().Int("limit", 50, "maximum rows to show (0 for all)")
	cmd.Flags().Int("offset", 0, "rows to skip")

	return cmd
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var filter service.TransactionFilter

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		date, err := parseDate(from)
		if err != nil {
			return err
		}
		filter.StartDate = &date
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		date, err := parseDate(to)
		if err != nil {
			return err
		}
		filter.EndDate = &date
	}
	if category, _ := cmd.Flags().GetString("category"); category != "" {
		parsed, err := model.ParseCategory(category)
		if err != nil {
			return err
		}
		filter.Category = parsed
	}
	if txnType, _ := cmd.Flags().GetString("type"); txnType != "" {
		switch model.TransactionType(txnType) {
		case model.TypeIncome, model.TypeExpense:
			filter.Type = model.TransactionType(txnType)
		default:
			return fmt.Errorf("invalid type %q, expected income or expense", txnType)
		}
	}
	filter.SourceID, _ = cmd.Flags().GetString("source")
	filter.ImportedOnly, _ = cmd.Flags().GetBool("imported")
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	filter.Offset, _ = cmd.Flags().GetInt("offset")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.ListTransactions(ctx, filter)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Println(centcli.FormatInfo("No transactions found"))
		return nil
	}

	header := fmt.Sprintf("%-6s %-12s %-32s %-18s %10s  %s",
		"ID", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT", "TYPE")
	fmt.Println(centcli.TableHeaderStyle.Render(header))

	for _, txn := range transactions {
		amount := fmt.Sprintf("%10.2f", txn.Amount)
		if txn.Type == model.TypeIncome {
			amount = centcli.StyleSuccess("+" + strings.TrimSpace(amount))
		}
		fmt.Printf("%-6d %-12s %-32s %s %s  %s\n",
			txn.ID,
			txn.Date.Format("2006-01-02"),
			truncate(txn.Description, 32),
			renderCategory(txn.Category, 18),
			amount,
			centcli.SubtleStyle.Render(string(txn.Type)))
	}

	return nil
}

func transactionsRecategorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recategorize <id> <category>",
		Short: "Move a transaction to a different category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}
			category, err := model.ParseCategory(args[1])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			updated, err := store.UpdateTransaction(ctx, id, service.TransactionPatch{
				Category: &category,
			})
			if err != nil {
				return err
			}

			fmt.Println(centcli.FormatSuccess(fmt.Sprintf(
				"Moved %q to %s", updated.Description, updated.Category)))
			return nil
		},
	}
}

func transactionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			deleted, err := store.DeleteTransaction(ctx, id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Println(centcli.FormatWarning(fmt.Sprintf("Transaction %d not found", id)))
				return nil
			}

			fmt.Println(centcli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
