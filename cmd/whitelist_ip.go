package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bacalhau-project/azops/pkg/whitelist"
)

func getWhitelistIPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whitelist-ip",
		Short: "Allow your current public IP through a PostgreSQL server firewall",
		Long: `Detects your public IP, asks for a resource group and PostgreSQL server name,
and creates a firewall rule named Allow_<ip> covering exactly that address.`,
		Args: cobra.NoArgs,
		RunE: runWhitelistIP,
	}
}

func runWhitelistIP(cmd *cobra.Command, _ []string) error {
	client, err := newAzureClient(cmd)
	if err != nil {
		return err
	}
	w := whitelist.New(NewFetcherFunc(), NewAskerFunc(cmd), client, cmd.OutOrStdout())
	return w.Run(commandContext(cmd))
}
