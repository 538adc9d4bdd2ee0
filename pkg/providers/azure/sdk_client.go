package azure

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/postgresql/armpostgresql"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/subscription/armsubscription"

	"github.com/bacalhau-project/azops/pkg/logger"
)

type providersAPI interface {
	Get(
		ctx context.Context,
		resourceProviderNamespace string,
		options *armresources.ProvidersClientGetOptions,
	) (armresources.ProvidersClientGetResponse, error)
	Register(
		ctx context.Context,
		resourceProviderNamespace string,
		options *armresources.ProvidersClientRegisterOptions,
	) (armresources.ProvidersClientRegisterResponse, error)
}

type firewallRulesAPI interface {
	BeginCreateOrUpdate(
		ctx context.Context,
		resourceGroupName string,
		serverName string,
		firewallRuleName string,
		parameters armpostgresql.FirewallRule,
		options *armpostgresql.FirewallRulesClientBeginCreateOrUpdateOptions,
	) (*runtime.Poller[armpostgresql.FirewallRulesClientCreateOrUpdateResponse], error)
}

// SDKClient is the Azure SDK for Go counterpart of CLIClient.
type SDKClient struct {
	providers     providersAPI
	firewallRules firewallRulesAPI
	progress      Progress
}

var NewSDKClientFunc = NewSDKClient

// NewSDKClient authenticates with DefaultAzureCredential, which picks up an
// existing `az login` session among other sources.
func NewSDKClient(subscriptionID string) (*SDKClient, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("azure.subscription_id is required for the sdk backend")
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain a credential: %w", err)
	}
	return newSDKClientWithCredential(subscriptionID, cred)
}

func newSDKClientWithCredential(subscriptionID string, cred azcore.TokenCredential) (*SDKClient, error) {
	providersClient, err := armresources.NewProvidersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create providers client: %w", err)
	}
	firewallRulesClient, err := armpostgresql.NewFirewallRulesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create firewall rules client: %w", err)
	}
	return &SDKClient{
		providers:     providersClient,
		firewallRules: firewallRulesClient,
		progress:      NewSpinnerProgress(os.Stderr),
	}, nil
}

func (c *SDKClient) RegistrationState(ctx context.Context, namespace string) (string, error) {
	resp, err := c.providers.Get(ctx, namespace, nil)
	if err != nil {
		return "", err
	}
	if resp.RegistrationState == nil {
		return "", nil
	}
	return *resp.RegistrationState, nil
}

// Register does not wait for the provider to reach Registered.
func (c *SDKClient) Register(ctx context.Context, namespace string) error {
	_, err := c.providers.Register(ctx, namespace, nil)
	return err
}

func (c *SDKClient) CreateFirewallRule(ctx context.Context, rule FirewallRule) error {
	l := logger.FromContext(ctx)

	poller, err := c.firewallRules.BeginCreateOrUpdate(
		ctx,
		rule.ResourceGroup,
		rule.ServerName,
		rule.Name,
		armpostgresql.FirewallRule{
			Properties: &armpostgresql.FirewallRuleProperties{
				StartIPAddress: to.Ptr(rule.StartIP),
				EndIPAddress:   to.Ptr(rule.EndIP),
			},
		},
		nil,
	)
	if err != nil {
		return err
	}

	progress := c.progress
	if progress == nil {
		progress = nopProgress{}
	}

	l.Debugf("Waiting for firewall rule %s on %s", rule.Name, rule.ServerName)
	progress.Start(fmt.Sprintf("Creating firewall rule %s on %s...", rule.Name, rule.ServerName))
	_, err = poller.PollUntilDone(ctx, nil)
	progress.Stop()
	return err
}

// ListSubscriptions returns every subscription visible to the default credential.
func ListSubscriptions(ctx context.Context) ([]*armsubscription.Subscription, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain a credential: %w", err)
	}
	client, err := armsubscription.NewSubscriptionsClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	subscriptions := make([]*armsubscription.Subscription, 0)
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to advance page: %w", err)
		}
		subscriptions = append(subscriptions, page.Value...)
	}
	return subscriptions, nil
}

var _ ProviderRegistry = (*SDKClient)(nil)
var _ FirewallRuleCreator = (*SDKClient)(nil)
