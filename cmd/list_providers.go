package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bacalhau-project/azops/pkg/providers/azure"
	"github.com/bacalhau-project/azops/pkg/table"
)

func getListProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-providers",
		Short: "Show the registration state of the required resource providers",
		Args:  cobra.NoArgs,
		RunE:  runListProviders,
	}
}

func runListProviders(cmd *cobra.Command, _ []string) error {
	client, err := newAzureClient(cmd)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	t := table.NewProviderTable(cmd.OutOrStdout())
	for _, ns := range azure.RequiredNamespaces {
		state, err := client.RegistrationState(ctx, ns)
		if err != nil {
			return err
		}
		t.AddProvider(ns, state)
	}
	t.Render()
	return nil
}
