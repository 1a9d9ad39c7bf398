package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var errDomainSearchEmpty = errors.New("pass --name and/or --domain to search")

// NewDomainsCommand creates the domains command group.
func NewDomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"domain"},
		Short:   "Look up Canvas account domains",
	}

	cmd.AddCommand(newDomainsSearchCommand())

	return cmd
}

func newDomainsSearchCommand() *cobra.Command {
	var (
		name   string
		domain string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search account domains",
		Long:  "Search Canvas installations by institution name or domain fragment (returns at most 5 matches)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && domain == "" {
				return errDomainSearchEmpty
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			domains, err := client.AccountDomains().Search(context.Background(), name, domain)
			if err != nil {
				return fmt.Errorf("searching account domains: %w", err)
			}

			if done, err := renderStructured(domains); done {
				return err
			}

			if len(domains) == 0 {
				fmt.Println("No matching domains found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Domain", "Auth Provider")

			for _, entry := range domains {
				provider := ""
				if entry.AuthenticationProvider != nil {
					provider = *entry.AuthenticationProvider
				}

				_ = table.Append(entry.Name, entry.Domain, provider)
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "institution name fragment")
	cmd.Flags().StringVar(&domain, "domain", "", "domain fragment")

	return cmd
}
