package whitelist

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bacalhau-project/azops/pkg/azcli"
	"github.com/bacalhau-project/azops/pkg/prompt"
	"github.com/bacalhau-project/azops/pkg/providers/azure"
	"github.com/bacalhau-project/azops/pkg/publicip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	ip    string
	err   error
	calls int
}

func (f *stubFetcher) Fetch(context.Context) (string, error) {
	f.calls++
	return f.ip, f.err
}

func echoServer(t *testing.T, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(hits, 1)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWhitelistEndToEnd(t *testing.T) {
	var hits int32
	srv := echoServer(t, "10.0.0.1", &hits)

	rec := azcli.NewRecorder()
	var out bytes.Buffer
	w := New(
		publicip.NewRestyFetcher(srv.URL, "", nil),
		prompt.NewLinePrompter(strings.NewReader("rg1\npgserver1\n"), &out),
		azure.NewCLIClient(rec),
		&out,
	)

	require.NoError(t, w.Run(context.Background()))

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	require.Len(t, rec.Commands, 1)
	assert.Equal(t, []string{
		"postgres", "server", "firewall-rule", "create",
		"--resource-group", "rg1",
		"--server-name", "pgserver1",
		"--name", "Allow_10_0_0_1",
		"--start-ip-address", "10.0.0.1",
		"--end-ip-address", "10.0.0.1",
	}, rec.Commands[0].Args)
	assert.Equal(t,
		"Detected IP: 10.0.0.1\nEnter resource group: Enter PostgreSQL server name: ",
		out.String(),
	)
}

func TestWhitelistEmptyInputsStillCreateOnce(t *testing.T) {
	fetcher := &stubFetcher{ip: "203.0.113.5"}
	firewall := new(azure.MockClient)
	firewall.On("CreateFirewallRule", mock.Anything, azure.FirewallRule{
		Name:    "Allow_203_0_113_5",
		StartIP: "203.0.113.5",
		EndIP:   "203.0.113.5",
	}).Return(nil).Once()

	w := New(fetcher, prompt.NewLinePrompter(strings.NewReader("\n\n"), io.Discard), firewall, io.Discard)

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, 1, fetcher.calls)
	firewall.AssertExpectations(t)
}

func TestWhitelistFetchErrorPropagates(t *testing.T) {
	boom := errors.New("dial tcp: lookup api.ipify.org: no such host")
	fetcher := &stubFetcher{err: boom}
	firewall := new(azure.MockClient)
	var out bytes.Buffer

	w := New(fetcher, prompt.NewLinePrompter(strings.NewReader("rg1\npg\n"), &out), firewall, &out)

	assert.ErrorIs(t, w.Run(context.Background()), boom)
	assert.Empty(t, out.String())
	firewall.AssertNotCalled(t, "CreateFirewallRule", mock.Anything, mock.Anything)
}

func TestWhitelistInputEOF(t *testing.T) {
	firewall := new(azure.MockClient)
	w := New(&stubFetcher{ip: "10.0.0.1"}, prompt.NewLinePrompter(strings.NewReader("rg1\n"), io.Discard), firewall, io.Discard)

	assert.ErrorIs(t, w.Run(context.Background()), io.EOF)
	firewall.AssertNotCalled(t, "CreateFirewallRule", mock.Anything, mock.Anything)
}

func TestWhitelistAzExitCodeSurfaces(t *testing.T) {
	rec := azcli.NewRecorder()
	rec.Default = azcli.Result{ExitCode: 3}

	w := New(
		&stubFetcher{ip: "10.0.0.1"},
		prompt.NewLinePrompter(strings.NewReader("missing-rg\npg\n"), io.Discard),
		azure.NewCLIClient(rec),
		io.Discard,
	)

	var exitErr *azcli.ExitError
	require.ErrorAs(t, w.Run(context.Background()), &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Len(t, rec.Commands, 1)
}
