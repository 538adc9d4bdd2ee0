package azure

import (
	"context"
	"strings"
)

// RegisteredState is the only registration state that means "nothing to do".
const RegisteredState = "Registered"

// RequiredNamespaces are the resource providers azops makes sure are
// registered, in the order they are checked.
var RequiredNamespaces = []string{
	"Microsoft.Web",
	"Microsoft.DBforPostgreSQL",
	"Microsoft.Storage",
	"Microsoft.KeyVault",
	"Microsoft.Insights",
	"Microsoft.OperationalInsights",
	"Microsoft.ContainerService",
	"Microsoft.Resources",
}

// ProviderRegistry reads and changes resource provider registration.
type ProviderRegistry interface {
	RegistrationState(ctx context.Context, namespace string) (string, error)
	Register(ctx context.Context, namespace string) error
}

// FirewallRule is a single allow entry on a PostgreSQL server.
type FirewallRule struct {
	ResourceGroup string
	ServerName    string
	Name          string
	StartIP       string
	EndIP         string
}

// FirewallRuleCreator opens firewall rules on database servers.
type FirewallRuleCreator interface {
	CreateFirewallRule(ctx context.Context, rule FirewallRule) error
}

// RuleNameForIP names the single-address rule for ip, e.g. Allow_10_0_0_1.
func RuleNameForIP(ip string) string {
	return "Allow_" + strings.ReplaceAll(ip, ".", "_")
}

// SingleAddressRule builds a rule allowing exactly ip.
func SingleAddressRule(resourceGroup, serverName, ip string) FirewallRule {
	return FirewallRule{
		ResourceGroup: resourceGroup,
		ServerName:    serverName,
		Name:          RuleNameForIP(ip),
		StartIP:       ip,
		EndIP:         ip,
	}
}
