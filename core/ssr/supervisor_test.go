package ssr_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochronus/hello-inertia/core/config"
	"github.com/ochronus/hello-inertia/core/ssr"
)

type fakeProcess struct {
	terminations atomic.Int32
	err          error

	// terminating is closed when Terminate is entered; Terminate then
	// waits for release to be closed.
	terminating chan struct{}
	release     chan struct{}
}

func (p *fakeProcess) Pid() int { return 4242 }

func (p *fakeProcess) Terminate(time.Duration) error {
	p.terminations.Add(1)
	if p.terminating != nil {
		close(p.terminating)
		<-p.release
	}
	return p.err
}

type fakeLauncher struct {
	mu       sync.Mutex
	launches []ssr.Command
	proc     *fakeProcess
	err      error
}

func (l *fakeLauncher) Launch(_ context.Context, cmd ssr.Command) (ssr.Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launches = append(l.launches, cmd)
	if l.err != nil {
		return nil, l.err
	}
	return l.proc, nil
}

func (l *fakeLauncher) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.launches)
}

func newSupervisor(t *testing.T, l *fakeLauncher, opts ...ssr.Option) (*ssr.Supervisor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]ssr.Option{ssr.WithLauncher(l), ssr.WithLogger(log)}, opts...)
	return ssr.New(ssr.Config{Artifact: artifact(t)}, opts...), &buf
}

func prodGate() ssr.Gate {
	return ssr.Gate{Mode: config.ModeProd, Switch: config.SSRAuto}
}

func TestSupervisor_StartsInProd(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{proc: &fakeProcess{}}
	sup, _ := newSupervisor(t, l)
	assert.Equal(t, ssr.StateNotStarted, sup.State())

	require.NoError(t, sup.Start(context.Background(), prodGate()))
	assert.Equal(t, ssr.StateRunning, sup.State())
	assert.True(t, sup.Enabled())
	assert.Equal(t, "http://127.0.0.1:5174", sup.URL())

	require.Equal(t, 1, l.count())
	cmd := l.launches[0]
	assert.Equal(t, ssr.DefaultNode, cmd.Name)
	require.Len(t, cmd.Args, 3)
	assert.Equal(t, []string{"--port", "5174"}, cmd.Args[1:])

	require.NoError(t, sup.Stop())
	assert.Equal(t, ssr.StateTerminated, sup.State())
	assert.False(t, sup.Enabled())
	assert.Equal(t, int32(1), l.proc.terminations.Load())
}

func TestSupervisor_NeverStarted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gate ssr.Gate
		cfg  ssr.Config
	}{
		{name: "dev mode", gate: ssr.Gate{Mode: config.ModeDev, Switch: config.SSRAuto}},
		{name: "dev server active", gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSRAuto, DevServerActive: true}},
		{name: "disabled by override", gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSROff}},
		{
			name: "forced on with missing artifact",
			gate: ssr.Gate{Mode: config.ModeProd, Switch: config.SSROn},
			cfg:  ssr.Config{Artifact: "does/not/exist.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &fakeLauncher{proc: &fakeProcess{}}
			cfg := tt.cfg
			if cfg.Artifact == "" {
				cfg.Artifact = artifact(t)
			}
			var buf bytes.Buffer
			sup := ssr.New(cfg,
				ssr.WithLauncher(l),
				ssr.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
			)

			require.NoError(t, sup.Start(context.Background(), tt.gate))
			assert.Equal(t, ssr.StateNeverStarted, sup.State())
			assert.Zero(t, l.count())
			assert.Contains(t, buf.String(), "ssr renderer not started")

			require.NoError(t, sup.Stop())
			assert.Equal(t, ssr.StateNeverStarted, sup.State())
		})
	}
}

func TestSupervisor_LaunchFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{err: errors.New("exec: node: not found")}
	sup, buf := newSupervisor(t, l)

	require.NoError(t, sup.Start(context.Background(), prodGate()))
	assert.Equal(t, ssr.StateNeverStarted, sup.State())
	assert.Contains(t, buf.String(), "launch failed")
	assert.NoError(t, sup.Stop())
}

func TestSupervisor_StartOnlyOnce(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{proc: &fakeProcess{}}
	sup, _ := newSupervisor(t, l)

	require.NoError(t, sup.Start(context.Background(), prodGate()))
	assert.ErrorIs(t, sup.Start(context.Background(), prodGate()), ssr.ErrAlreadyStarted)

	require.NoError(t, sup.Stop())
	assert.ErrorIs(t, sup.Start(context.Background(), prodGate()), ssr.ErrAlreadyStarted)
	assert.Equal(t, 1, l.count())
}

func TestSupervisor_StopBeforeStartSeals(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{proc: &fakeProcess{}}
	sup, _ := newSupervisor(t, l)

	require.NoError(t, sup.Stop())
	assert.Equal(t, ssr.StateNeverStarted, sup.State())
	assert.ErrorIs(t, sup.Start(context.Background(), prodGate()), ssr.ErrAlreadyStarted)
	assert.Zero(t, l.count())
}

func TestSupervisor_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{proc: &fakeProcess{}}
	sup, _ := newSupervisor(t, l)
	require.NoError(t, sup.Start(context.Background(), prodGate()))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sup.Stop()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), l.proc.terminations.Load())
	assert.Equal(t, ssr.StateTerminated, sup.State())
}

func TestSupervisor_TerminatesOnPanic(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{proc: &fakeProcess{}}
	sup, _ := newSupervisor(t, l)

	run := func() {
		defer func() { _ = sup.Stop() }()
		require.NoError(t, sup.Start(context.Background(), prodGate()))
		panic("handler exploded")
	}
	assert.Panics(t, run)

	assert.Equal(t, ssr.StateTerminated, sup.State())
	assert.Equal(t, int32(1), l.proc.terminations.Load())

	_ = sup.Stop()
	assert.Equal(t, int32(1), l.proc.terminations.Load())
}

func TestSupervisor_TerminationFailure(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{proc: &fakeProcess{err: errors.New("permission denied")}}
	sup, buf := newSupervisor(t, l)
	require.NoError(t, sup.Start(context.Background(), prodGate()))

	err := sup.Stop()
	require.ErrorIs(t, err, ssr.ErrTerminate)
	assert.Equal(t, ssr.StateTerminated, sup.State())
	assert.Contains(t, buf.String(), "termination failed")

	assert.ErrorIs(t, sup.Stop(), ssr.ErrTerminate)
	assert.Equal(t, int32(1), l.proc.terminations.Load())
}

func TestSupervisor_StateReadableDuringTermination(t *testing.T) {
	t.Parallel()

	proc := &fakeProcess{terminating: make(chan struct{}), release: make(chan struct{})}
	l := &fakeLauncher{proc: proc}
	sup, _ := newSupervisor(t, l)
	require.NoError(t, sup.Start(context.Background(), prodGate()))

	stopped := make(chan error, 1)
	go func() { stopped <- sup.Stop() }()
	<-proc.terminating

	read := make(chan ssr.State, 1)
	go func() { read <- sup.State() }()
	select {
	case st := <-read:
		assert.Equal(t, ssr.StateTerminated, st)
	case <-time.After(time.Second):
		t.Fatal("State blocked while the renderer was terminating")
	}
	assert.False(t, sup.Enabled())

	close(proc.release)
	require.NoError(t, <-stopped)
	assert.Equal(t, int32(1), proc.terminations.Load())
}

func TestSupervisor_StateHook(t *testing.T) {
	t.Parallel()

	var states []ssr.State
	l := &fakeLauncher{proc: &fakeProcess{}}
	sup, _ := newSupervisor(t, l, ssr.WithStateHook(func(s ssr.State) {
		states = append(states, s)
	}))

	require.NoError(t, sup.Start(context.Background(), prodGate()))
	require.NoError(t, sup.Stop())
	assert.Equal(t, []ssr.State{ssr.StateRunning, ssr.StateTerminated}, states)
}

func TestSupervisor_CustomConfig(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{proc: &fakeProcess{}}
	sup := ssr.New(ssr.Config{Artifact: artifact(t), Node: "bun", Host: "::1", Port: 6000}, ssr.WithLauncher(l))

	assert.Equal(t, "http://[::1]:6000", sup.URL())
	require.NoError(t, sup.Start(context.Background(), ssr.Gate{Switch: config.SSROn}))
	assert.Equal(t, "bun", l.launches[0].Name)
	assert.Equal(t, "6000", l.launches[0].Args[2])
	require.NoError(t, sup.Stop())
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not_started", ssr.StateNotStarted.String())
	assert.Equal(t, "running", ssr.StateRunning.String())
	assert.Equal(t, "terminated", ssr.StateTerminated.String())
	assert.Equal(t, "never_started", ssr.StateNeverStarted.String())
	assert.Equal(t, "unknown", ssr.State(99).String())
}
