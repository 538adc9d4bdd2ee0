package azure

import (
	"fmt"
	"strings"

	"github.com/bacalhau-project/azops/pkg/azcli"
)

const (
	BackendCLI = "cli"
	BackendSDK = "sdk"
)

// Client covers everything azops needs from Azure.
type Client interface {
	ProviderRegistry
	FirewallRuleCreator
}

// NewClient picks the implementation named by backend. The cli backend
// needs a runner; the sdk backend needs a subscription ID.
func NewClient(backend, subscriptionID string, runner azcli.Runner) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendCLI:
		if runner == nil {
			return nil, fmt.Errorf("cli backend requires a command runner")
		}
		return NewCLIClient(runner), nil
	case BackendSDK:
		client, err := NewSDKClientFunc(subscriptionID)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown azure backend %q (want %q or %q)", backend, BackendCLI, BackendSDK)
	}
}
