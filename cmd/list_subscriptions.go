package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/subscription/armsubscription"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bacalhau-project/azops/pkg/logger"
	"github.com/bacalhau-project/azops/pkg/prompt"
	"github.com/bacalhau-project/azops/pkg/table"
)

func getListSubscriptionsCmd() *cobra.Command {
	var setSubscription bool
	cmd := &cobra.Command{
		Use:   "list-subscriptions",
		Short: "List Azure subscriptions",
		Long: `List all subscriptions and optionally select one for the sdk backend.
The selection is written to azure.subscription_id in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListSubscriptions(cmd, setSubscription)
		},
	}
	cmd.Flags().BoolVar(&setSubscription, "set",
		false, "Set the selected subscription in the config file")
	return cmd
}

func runListSubscriptions(cmd *cobra.Command, setSubscription bool) error {
	l := logger.Get()
	out := cmd.OutOrStdout()

	subscriptions, err := ListSubscriptionsFunc(commandContext(cmd))
	if err != nil {
		return err
	}
	if len(subscriptions) == 0 {
		return fmt.Errorf("no subscriptions found for this account")
	}

	t := table.NewSubscriptionTable(out)
	for _, sub := range subscriptions {
		t.AddSubscription(deref(sub.DisplayName), deref(sub.ID))
	}
	t.Render()

	if !setSubscription {
		fmt.Fprintln(out, "\nTo set a subscription, run this command with the --set flag:")
		fmt.Fprintln(out, "azops list-subscriptions --set")
		return nil
	}

	chosenIndex, err := getUserChoice(NewAskerFunc(cmd), cmd, len(subscriptions))
	if err != nil {
		return err
	}
	chosen := subscriptions[chosenIndex]

	if err := writeSubscriptionToConfig(chosen); err != nil {
		return fmt.Errorf("failed to write subscription to config: %w", err)
	}
	l.Debugf("Subscription '%s' has been set in the config file.", deref(chosen.DisplayName))
	fmt.Fprintf(out, "Using subscription %s\n", deref(chosen.DisplayName))
	return nil
}

func getUserChoice(asker prompt.Asker, cmd *cobra.Command, max int) (int, error) {
	for {
		input, err := asker.Ask("Enter the number of the subscription you want to use: ")
		if err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		choice, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || choice < 1 || choice > max {
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid input. Please enter a number between 1 and %d.\n", max)
			continue
		}
		return choice - 1, nil
	}
}

func writeSubscriptionToConfig(sub *armsubscription.Subscription) error {
	target, err := configFileTarget()
	if err != nil {
		return err
	}
	subID := deref(sub.SubscriptionID)
	if subID == "" {
		subID = table.ExtractSubscriptionUUID(deref(sub.ID))
	}
	viper.Set("azure.subscription_id", subID)
	return viper.WriteConfigAs(target)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
