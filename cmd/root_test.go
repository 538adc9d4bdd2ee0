package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/subscription/armsubscription"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"github.com/bacalhau-project/azops/internal/testutil"
	"github.com/bacalhau-project/azops/pkg/azcli"
	"github.com/bacalhau-project/azops/pkg/logger"
	"github.com/bacalhau-project/azops/pkg/providers/azure"
	"github.com/bacalhau-project/azops/pkg/publicip"
)

func ExecuteCommand(root *cobra.Command, stdin string, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred: %v", r)
		}
	}()

	_, err = root.ExecuteC()
	_ = logger.Get().Sync()

	return buf.String(), err
}

type fakeFetcher struct {
	ip    string
	calls int
}

func (f *fakeFetcher) Fetch(context.Context) (string, error) {
	f.calls++
	return f.ip, nil
}

type CmdTestSuite struct {
	suite.Suite
	recorder   *azcli.Recorder
	fetcher    *fakeFetcher
	configPath string

	origRunner   func(*cobra.Command) (azcli.Runner, error)
	origFetcher  func() publicip.Fetcher
	origListSubs func(context.Context) ([]*armsubscription.Subscription, error)
}

func (s *CmdTestSuite) SetupSuite() {
	s.origRunner = NewRunnerFunc
	s.origFetcher = NewFetcherFunc
	s.origListSubs = ListSubscriptionsFunc
}

func (s *CmdTestSuite) TearDownSuite() {
	NewRunnerFunc = s.origRunner
	NewFetcherFunc = s.origFetcher
	ListSubscriptionsFunc = s.origListSubs
	logger.SetGlobalLogger(nil)
	viper.Reset()
}

func (s *CmdTestSuite) SetupTest() {
	viper.Reset()
	s.recorder = azcli.NewRecorder()
	s.fetcher = &fakeFetcher{ip: "10.0.0.1"}
	s.configPath = testutil.WriteTestConfig(s.T(), "")

	NewRunnerFunc = func(*cobra.Command) (azcli.Runner, error) { return s.recorder, nil }
	NewFetcherFunc = func() publicip.Fetcher { return s.fetcher }
}

func (s *CmdTestSuite) TestRegisterProviders() {
	s.recorder.Default = azcli.Result{Stdout: "Registered\n"}
	s.recorder.Respond(azcli.Result{Stdout: "NotRegistered\n"},
		"provider", "show", "--namespace", "Microsoft.KeyVault", "--query", "registrationState", "-o", "tsv")

	out, err := ExecuteCommand(NewRootCmd(), "", "register-providers", "--config", s.configPath)
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	s.Len(lines, len(azure.RequiredNamespaces))
	s.Contains(out, "🔄 Registering Microsoft.KeyVault...")
	s.Contains(out, "✅ Microsoft.Web is already registered.")

	registered := s.recorder.Calls("provider", "register")
	s.Require().Len(registered, 1)
	s.Equal([]string{"provider", "register", "--namespace", "Microsoft.KeyVault"}, registered[0].Args)
}

func (s *CmdTestSuite) TestWhitelistIP() {
	out, err := ExecuteCommand(NewRootCmd(), "rg1\npgserver1\n", "whitelist-ip", "--config", s.configPath)
	s.Require().NoError(err)

	s.Equal(1, s.fetcher.calls)
	s.Contains(out, "Detected IP: 10.0.0.1\n")
	s.Contains(out, "Enter resource group: ")
	s.Contains(out, "Enter PostgreSQL server name: ")

	creates := s.recorder.Calls("postgres", "server", "firewall-rule", "create")
	s.Require().Len(creates, 1)
	s.Equal([]string{
		"postgres", "server", "firewall-rule", "create",
		"--resource-group", "rg1",
		"--server-name", "pgserver1",
		"--name", "Allow_10_0_0_1",
		"--start-ip-address", "10.0.0.1",
		"--end-ip-address", "10.0.0.1",
	}, creates[0].Args)
}

func (s *CmdTestSuite) TestWhitelistIPPropagatesExitCode() {
	s.recorder.Default = azcli.Result{ExitCode: 3}

	_, err := ExecuteCommand(NewRootCmd(), "rg1\npgserver1\n", "whitelist-ip", "--config", s.configPath)

	var exitErr *azcli.ExitError
	s.Require().ErrorAs(err, &exitErr)
	s.Equal(3, exitErr.Code)
}

func (s *CmdTestSuite) TestListProviders() {
	s.recorder.Default = azcli.Result{Stdout: "Registered\n"}

	out, err := ExecuteCommand(NewRootCmd(), "", "list-providers", "--config", s.configPath)
	s.Require().NoError(err)

	s.Contains(out, "Microsoft.ContainerService")
	s.Empty(s.recorder.Calls("provider", "register"))
	s.Len(s.recorder.Calls("provider", "show"), len(azure.RequiredNamespaces))
}

func (s *CmdTestSuite) TestUnknownBackend() {
	configPath := testutil.WriteTestConfig(s.T(), "azure:\n  backend: pulumi\n")

	_, err := ExecuteCommand(NewRootCmd(), "", "register-providers", "--config", configPath)
	s.ErrorContains(err, "unknown azure backend")
	s.Empty(s.recorder.Commands)
}

func (s *CmdTestSuite) TestMissingExplicitConfigFails() {
	_, err := ExecuteCommand(NewRootCmd(), "", "register-providers", "--config", s.T().TempDir()+"/nope.yaml")
	s.ErrorContains(err, "failed to read config file")
}

func (s *CmdTestSuite) TestListSubscriptionsSet() {
	ListSubscriptionsFunc = func(context.Context) ([]*armsubscription.Subscription, error) {
		return []*armsubscription.Subscription{
			{
				DisplayName:    to.Ptr("Dev"),
				ID:             to.Ptr("/subscriptions/11111111-1111-1111-1111-111111111111"),
				SubscriptionID: to.Ptr("11111111-1111-1111-1111-111111111111"),
			},
			{
				DisplayName:    to.Ptr("Prod"),
				ID:             to.Ptr("/subscriptions/22222222-2222-2222-2222-222222222222"),
				SubscriptionID: to.Ptr("22222222-2222-2222-2222-222222222222"),
			},
		}, nil
	}

	out, err := ExecuteCommand(NewRootCmd(), "7\n2\n", "list-subscriptions", "--set", "--config", s.configPath)
	s.Require().NoError(err)
	s.Contains(out, "Invalid input. Please enter a number between 1 and 2.")
	s.Contains(out, "Using subscription Prod")

	data, err := os.ReadFile(s.configPath)
	s.Require().NoError(err)
	s.Contains(string(data), "22222222-2222-2222-2222-222222222222")
}

func (s *CmdTestSuite) TestVersion() {
	out, err := ExecuteCommand(NewRootCmd(), "", "version", "--config", s.configPath)
	s.Require().NoError(err)
	s.Equal("azops dev\n", out)
}

func TestCmdSuite(t *testing.T) {
	suite.Run(t, new(CmdTestSuite))
}

// Runs the real exec runner with `echo` standing in for az.
func TestListProvidersWithConfiguredCLICommand(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	configPath, cleanup, err := testutil.WriteStringToTempFile(fmt.Sprintf(`general:
  log_path: %s/azops.log
azure:
  cli_command: echo
`, t.TempDir()))
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	defer cleanup()

	out, err := ExecuteCommand(NewRootCmd(), "", "list-providers", "--config", configPath)
	if err != nil {
		t.Fatalf("list-providers failed: %v", err)
	}
	if !strings.Contains(out, "provider show") {
		t.Errorf("expected echoed az arguments in output, got:\n%s", out)
	}
}
