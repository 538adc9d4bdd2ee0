// Package registrar makes sure the resource providers azops depends on are
// registered on the current subscription.
package registrar

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/bacalhau-project/azops/pkg/logger"
	"github.com/bacalhau-project/azops/pkg/providers/azure"
)

type Registrar struct {
	registry   azure.ProviderRegistry
	out        io.Writer
	namespaces []string
}

// New returns a Registrar over azure.RequiredNamespaces.
func New(registry azure.ProviderRegistry, out io.Writer) *Registrar {
	return &Registrar{
		registry:   registry,
		out:        out,
		namespaces: azure.RequiredNamespaces,
	}
}

// Run checks each namespace in order and registers the ones that are not
// Registered. Registration is not awaited. It writes one status line per
// namespace.
func (r *Registrar) Run(ctx context.Context) error {
	l := logger.FromContext(ctx)
	l.Info("Registering required Azure namespaces...")

	for _, ns := range r.namespaces {
		nsLog := l.With(zap.String("namespace", ns))
		state, err := r.registry.RegistrationState(ctx, ns)
		if err != nil {
			return err
		}
		nsLog.DebugWithFields("registration state", zap.String("state", state))

		if state == azure.RegisteredState {
			fmt.Fprintf(r.out, "✅ %s is already registered.\n", ns)
			continue
		}

		fmt.Fprintf(r.out, "🔄 Registering %s...\n", ns)
		nsLog.Debug("registration requested")
		if err := r.registry.Register(ctx, ns); err != nil {
			return err
		}
	}
	return nil
}
