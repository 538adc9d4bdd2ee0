package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bacalhau-project/azops/pkg/registrar"
)

func getRegisterProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register-providers",
		Short: "Register the Azure resource providers the application needs",
		Long: `Checks each required resource provider namespace and registers the ones that
are not already Registered. Registration is started but not awaited.`,
		Args: cobra.NoArgs,
		RunE: runRegisterProviders,
	}
}

func runRegisterProviders(cmd *cobra.Command, _ []string) error {
	client, err := newAzureClient(cmd)
	if err != nil {
		return err
	}
	return registrar.New(client, cmd.OutOrStdout()).Run(commandContext(cmd))
}
