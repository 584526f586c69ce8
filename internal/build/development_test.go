package build

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactor-labs/reactor/internal/bundler"
	"github.com/reactor-labs/reactor/internal/target"
)

func newDevelopment(f *fixture, srv *fakeServer, host *fakeHost) *Development {
	return &Development{
		Layout:    f.layout,
		Settings:  f.settings,
		Validator: &fakeValidator{m: f.manifest},
		Server:    srv,
		Host:      host,
		Reporter:  f.reporter,
		Extra:     []string{"--inspect"},
	}
}

func TestDevelopmentSession(t *testing.T) {
	f := newFixture(t)
	f.installTool(t)
	srv := &fakeServer{session: &bundler.Session{
		URL:     "http://localhost:3000",
		Initial: &bundler.Result{Errors: []string{"type error"}},
	}}
	host := &fakeHost{}

	d := newDevelopment(f, srv, host)
	p := d.Pipeline()
	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, []State{StateValidating, StateLaunching, StateDone}, p.History())

	require.Len(t, srv.calls, 1)
	assert.Equal(t, target.Development, srv.calls[0].Mode)
	assert.Equal(t, target.UIProcess, srv.calls[0].Kind)
	assert.Equal(t, 3000, srv.port)

	assert.Equal(t, target.NewHostProcess(f.layout, target.Development).Output(), host.entry)
	assert.Equal(t, "development", host.env["NODE_ENV"])
	assert.Equal(t, "http://localhost:3000", host.env["REACTOR_DEV_SERVER_URL"])
	assert.Equal(t, []string{"--inspect"}, host.extra)

	assert.Contains(t, f.errOut.String(), "✖ type error", "initial errors are shown")
}

func TestDevelopmentHostBundleMissing(t *testing.T) {
	f := newFixture(t)
	host := &fakeHost{}
	d := newDevelopment(f, &fakeServer{session: &bundler.Session{URL: "http://localhost:3000"}}, host)

	err := d.Run(context.Background())
	assert.ErrorIs(t, err, ErrEntryBundleMissing)
	assert.Empty(t, host.entry)
}

func TestDevelopmentServerFailure(t *testing.T) {
	f := newFixture(t)
	f.installTool(t)
	host := &fakeHost{}
	d := newDevelopment(f, &fakeServer{err: errors.New("address in use")}, host)

	err := d.Run(context.Background())
	assert.ErrorIs(t, err, ErrCompilationInvocationFailed)
	assert.Contains(t, err.Error(), "address in use")
	assert.Empty(t, host.entry)
}

func TestDevelopmentCancelledBeforeStart(t *testing.T) {
	f := newFixture(t)
	f.installTool(t)
	srv := &fakeServer{session: &bundler.Session{URL: "x"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newDevelopment(f, srv, &fakeHost{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, srv.calls)
}
