package azure

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) RegistrationState(ctx context.Context, namespace string) (string, error) {
	args := m.Called(ctx, namespace)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Register(ctx context.Context, namespace string) error {
	args := m.Called(ctx, namespace)
	return args.Error(0)
}

func (m *MockClient) CreateFirewallRule(ctx context.Context, rule FirewallRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

var _ Client = (*MockClient)(nil)
