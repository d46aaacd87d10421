package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mwhite/centsible/internal/bank"
	"github.com/mwhite/centsible/internal/service"
)

// Prompter collects interactive input for the import workflow.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given streams. Nil streams default
// to stdin/stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		reader: NewNonBlockingReader(in),
		writer: out,
	}
}

// SelectInstitution shows the supported banks and reads the user's choice,
// accepting either the list number or the source ID.
func (p *Prompter) SelectInstitution(ctx context.Context) (string, error) {
	institutions := bank.SupportedInstitutions()

	var list strings.Builder
	for i, inst := range institutions {
		fmt.Fprintf(&list, "%d. %s (%s)\n", i+1, inst.Name, inst.ID)
	}
	fmt.Fprintln(p.writer, RenderBox(BankIcon+" Select your bank", strings.TrimRight(list.String(), "\n")))
	fmt.Fprint(p.writer, FormatPrompt("Bank"))

	choice, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	choice = strings.TrimSpace(choice)

	for i, inst := range institutions {
		if choice == fmt.Sprintf("%d", i+1) || strings.EqualFold(choice, inst.ID) {
			return inst.ID, nil
		}
	}
	return "", fmt.Errorf("unknown bank selection %q", choice)
}

// ReadCredentials prompts for the username and password of the selected
// source. The account number is optional.
func (p *Prompter) ReadCredentials(ctx context.Context) (service.Credentials, error) {
	var creds service.Credentials

	fmt.Fprint(p.writer, FormatPrompt("Username"))
	username, err := p.reader.ReadLine(ctx)
	if err != nil {
		return creds, err
	}

	fmt.Fprint(p.writer, FormatPrompt("Password"))
	password, err := p.reader.ReadLine(ctx)
	if err != nil {
		return creds, err
	}

	fmt.Fprint(p.writer, FormatPrompt("Account number (optional)"))
	account, err := p.reader.ReadLine(ctx)
	if err != nil {
		return creds, err
	}

	creds.Username = strings.TrimSpace(username)
	creds.Password = strings.TrimSpace(password)
	creds.AccountNumber = strings.TrimSpace(account)
	return creds, nil
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprint(p.writer, FormatPrompt(question+" [y/N]"))

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
