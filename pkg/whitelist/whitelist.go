// Package whitelist opens a PostgreSQL firewall rule for the operator's
// current public IP.
package whitelist

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/bacalhau-project/azops/pkg/logger"
	"github.com/bacalhau-project/azops/pkg/prompt"
	"github.com/bacalhau-project/azops/pkg/providers/azure"
	"github.com/bacalhau-project/azops/pkg/publicip"
)

const (
	ResourceGroupPrompt = "Enter resource group: "
	ServerNamePrompt    = "Enter PostgreSQL server name: "
)

type Whitelister struct {
	fetcher  publicip.Fetcher
	asker    prompt.Asker
	firewall azure.FirewallRuleCreator
	out      io.Writer
}

func New(
	fetcher publicip.Fetcher,
	asker prompt.Asker,
	firewall azure.FirewallRuleCreator,
	out io.Writer,
) *Whitelister {
	return &Whitelister{
		fetcher:  fetcher,
		asker:    asker,
		firewall: firewall,
		out:      out,
	}
}

// Run detects the IP, asks for the target server and creates the rule. The
// answers are used as typed; az reports anything that does not exist.
func (w *Whitelister) Run(ctx context.Context) error {
	l := logger.FromContext(ctx)

	ip, err := w.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w.out, "Detected IP: %s\n", ip)

	group, err := w.asker.Ask(ResourceGroupPrompt)
	if err != nil {
		return err
	}
	server, err := w.asker.Ask(ServerNamePrompt)
	if err != nil {
		return err
	}

	rule := azure.SingleAddressRule(group, server, ip)
	l.InfoWithFields("creating firewall rule",
		zap.String("resource_group", rule.ResourceGroup),
		zap.String("server", rule.ServerName),
		zap.String("rule", rule.Name),
		zap.String("ip", ip),
	)
	return w.firewall.CreateFirewallRule(ctx, rule)
}
