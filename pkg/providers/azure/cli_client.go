package azure

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bacalhau-project/azops/pkg/azcli"
	"github.com/bacalhau-project/azops/pkg/logger"
)

// CLIClient talks to Azure through the az command-line tool.
type CLIClient struct {
	runner azcli.Runner
}

func NewCLIClient(runner azcli.Runner) *CLIClient {
	return &CLIClient{runner: runner}
}

func providerShowArgs(namespace string) []string {
	return []string{
		"provider", "show",
		"--namespace", namespace,
		"--query", "registrationState",
		"-o", "tsv",
	}
}

func providerRegisterArgs(namespace string) []string {
	return []string{"provider", "register", "--namespace", namespace}
}

func firewallRuleCreateArgs(rule FirewallRule) []string {
	return []string{
		"postgres", "server", "firewall-rule", "create",
		"--resource-group", rule.ResourceGroup,
		"--server-name", rule.ServerName,
		"--name", rule.Name,
		"--start-ip-address", rule.StartIP,
		"--end-ip-address", rule.EndIP,
	}
}

// RegistrationState returns whatever az printed on stdout, trimmed. A failed
// show yields its (usually empty) stdout rather than an error.
func (c *CLIClient) RegistrationState(ctx context.Context, namespace string) (string, error) {
	res, err := c.runner.Run(ctx, azcli.Command{Args: providerShowArgs(namespace)})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		logger.FromContext(ctx).Debugf(
			"az provider show for %s exited with status %d: %s",
			namespace, res.ExitCode, strings.TrimSpace(res.Stderr),
		)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Register asks Azure to register namespace and returns without waiting.
func (c *CLIClient) Register(ctx context.Context, namespace string) error {
	res, err := c.runner.Run(ctx, azcli.Command{Args: providerRegisterArgs(namespace), Stream: true})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		logger.FromContext(ctx).WarnWithFields("az provider register failed",
			zap.String("namespace", namespace),
			zap.Int("exit_code", res.ExitCode),
		)
	}
	return nil
}

func (c *CLIClient) CreateFirewallRule(ctx context.Context, rule FirewallRule) error {
	args := firewallRuleCreateArgs(rule)
	res, err := c.runner.Run(ctx, azcli.Command{Args: args, Stream: true})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		logger.FromContext(ctx).ErrorWithFields("az firewall-rule create failed",
			zap.String("rule", rule.Name),
			zap.String("server", rule.ServerName),
			zap.Int("exit_code", res.ExitCode),
		)
		return &azcli.ExitError{Args: args, Code: res.ExitCode}
	}
	return nil
}

var _ ProviderRegistry = (*CLIClient)(nil)
var _ FirewallRuleCreator = (*CLIClient)(nil)
