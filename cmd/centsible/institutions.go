package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhite/centsible/internal/bank"
	centcli "github.com/mwhite/centsible/internal/cli"
)

func institutionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "institutions",
		Aliases: []string{"banks"},
		Short:   "List the banks available for import",
		Run: func(_ *cobra.Command, _ []string) {
			var list strings.Builder
			for _, inst := range bank.SupportedInstitutions() {
				fmt.Fprintf(&list, "%-12s %s\n", inst.ID, inst.Name)
			}
			fmt.Println(centcli.RenderBox(
				centcli.BankIcon+" Supported banks",
				strings.TrimRight(list.String(), "\n")))
		},
	}
}
