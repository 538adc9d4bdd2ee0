package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bacalhau-project/azops/pkg/azcli"
	"github.com/bacalhau-project/azops/pkg/prompt"
	"github.com/bacalhau-project/azops/pkg/providers/azure"
	"github.com/bacalhau-project/azops/pkg/publicip"
)

// Replaced in tests.
var (
	NewRunnerFunc = func(cmd *cobra.Command) (azcli.Runner, error) {
		return azcli.NewExecRunner(viper.GetString("azure.cli_command"), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	NewFetcherFunc = func() publicip.Fetcher {
		return publicip.NewRestyFetcher(viper.GetString("network.ip_echo_url"), "azops/"+Version, nil)
	}

	NewAskerFunc = func(cmd *cobra.Command) prompt.Asker {
		return prompt.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	ListSubscriptionsFunc = azure.ListSubscriptions
)

func getSubscriptionID() string {
	subID := viper.GetString("azure.subscription_id")
	if subID == "" {
		subID = viper.GetString("AZURE_SUBSCRIPTION_ID")
	}
	return subID
}

// newAzureClient builds the backend selected by azure.backend.
func newAzureClient(cmd *cobra.Command) (azure.Client, error) {
	backend := viper.GetString("azure.backend")

	var runner azcli.Runner
	if backend == "" || backend == azure.BackendCLI {
		r, err := NewRunnerFunc(cmd)
		if err != nil {
			return nil, err
		}
		runner = r
	}
	return azure.NewClient(backend, getSubscriptionID(), runner)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
