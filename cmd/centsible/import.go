package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwhite/centsible/internal/bank"
	centcli "github.com/mwhite/centsible/internal/cli"
	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/importer"
	"github.com/mwhite/centsible/internal/service"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Connect to your bank and import transactions",
		Long: `Connect to a supported bank, authenticate, and pull the latest
transactions into the local database. Each transaction is categorized as it
lands.

Bank connectivity is simulated; tune the latency and failure rate through
config (import.auth_latency, import.fetch_latency, import.failure_rate) to
rehearse flaky connections.`,
		RunE: runImport,
	}

	cmd.Flags().String("bank", "", "bank source ID (prompted when omitted)")
	cmd.Flags().String("username", "", "bank username (prompted when omitted)")
	cmd.Flags().String("password", "", "bank password (prompted when omitted)")
	cmd.Flags().String("account", "", "account number (optional, narrows the import to one account)")
	cmd.Flags().Bool("retry", true, "retry automatically when the bank is temporarily unavailable")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	interrupt := centcli.NewInterruptHandler(os.Stdout)
	ctx = interrupt.HandleInterrupts(ctx, true)

	sourceID, _ := cmd.Flags().GetString("bank")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	account, _ := cmd.Flags().GetString("account")
	autoRetry, _ := cmd.Flags().GetBool("retry")

	prompter := centcli.NewPrompter(os.Stdin, os.Stdout)

	if sourceID == "" {
		var err error
		sourceID, err = prompter.SelectInstitution(ctx)
		if err != nil {
			return err
		}
	}

	creds := service.Credentials{
		Username:      username,
		Password:      password,
		AccountNumber: account,
	}
	if creds.Username == "" || creds.Password == "" {
		var err error
		creds, err = prompter.ReadCredentials(ctx)
		if err != nil {
			return err
		}
		if account != "" {
			creds.AccountNumber = account
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	auth := bank.NewAuthenticator(bank.AuthConfig{
		Latency:     viper.GetDuration("import.auth_latency"),
		FailureRate: viper.GetFloat64("import.failure_rate"),
	})
	fetcher := bank.NewFetcher(bank.FetchConfig{
		Latency: viper.GetDuration("import.fetch_latency"),
	})

	var bar *progressbar.ProgressBar
	session := importer.NewSession(auth, fetcher, store,
		importer.WithProgress(func(_, total int) {
			if bar == nil {
				bar = centcli.NewImportProgressBar(total, os.Stdout)
			}
			_ = bar.Add(1)
		}),
	)
	defer session.Close()

	inst, _ := bank.LookupInstitution(sourceID)
	fmt.Println(centcli.FormatTitle("Connecting to " + inst.Name))

	var conn *importer.ConnectionResult
	connect := func() error {
		result, connectErr := session.Connect(ctx, sourceID, creds)
		if connectErr != nil {
			return connectErr
		}
		conn = result
		return nil
	}

	if autoRetry {
		err = common.WithRetry(ctx, connect, service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
		})
	} else {
		err = connect()
	}
	if err != nil {
		var authErr *importer.AuthError
		if errors.As(err, &authErr) {
			fmt.Println(centcli.FormatError(authErr.Err.Error()))
		}
		return err
	}

	fmt.Println(centcli.FormatSuccess(fmt.Sprintf(
		"Connected to %s (%d accounts found)", inst.Name, conn.AccountsFound)))

	summary, err := session.ImportTransactions(ctx)
	if err != nil {
		var importErr *importer.ImportError
		if errors.As(err, &importErr) && importErr.Created > 0 {
			fmt.Println(centcli.FormatWarning(fmt.Sprintf(
				"Import stopped after %d transactions; the rest were not attempted", importErr.Created)))
		}
		return err
	}

	slog.Info("Import finished", "source", sourceID, "count", summary.Count)

	var lines string
	for _, txn := range summary.Records {
		lines += fmt.Sprintf("%s  %-30s %10.2f  %s\n",
			txn.Date.Format("2006-01-02"), txn.Description, txn.Amount, txn.Category)
	}
	fmt.Println(centcli.RenderBox(
		fmt.Sprintf("%s Imported %d transactions", centcli.CheckIcon, summary.Count),
		lines))

	return nil
}
