package ssr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/ochronus/hello-inertia/core/logger"
)

const (
	// DefaultPort is the port the renderer listens on. The rendering bridge
	// reaches it at the same well-known port.
	DefaultPort uint16 = 5174

	DefaultArtifact = "dist/ssr/ssr.js"
	DefaultNode     = "node"
	DefaultHost     = "127.0.0.1"

	// DefaultGracePeriod is how long the renderer may take to exit after SIGTERM.
	DefaultGracePeriod = 5 * time.Second
)

// State is the supervisor lifecycle state.
type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StateTerminated
	StateNeverStarted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	case StateNeverStarted:
		return "never_started"
	}
	return "unknown"
}

// Config describes how the renderer is launched. Zero fields take defaults.
type Config struct {
	Artifact string
	Node     string
	Host     string
	Port     uint16
	// Dir is the working directory of the renderer. Empty means the current one.
	Dir string
}

func (c Config) withDefaults() Config {
	if c.Artifact == "" {
		c.Artifact = DefaultArtifact
	}
	if c.Node == "" {
		c.Node = DefaultNode
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	return c
}

// Command is a process launch request.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a launched renderer.
type Process interface {
	Pid() int
	// Terminate asks the process to exit, waits up to grace, then kills it.
	Terminate(grace time.Duration) error
}

// Launcher starts processes.
type Launcher interface {
	Launch(ctx context.Context, cmd Command) (Process, error)
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context, cmd Command) (Process, error)

func (f LauncherFunc) Launch(ctx context.Context, cmd Command) (Process, error) {
	return f(ctx, cmd)
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLauncher replaces the OS process launcher.
func WithLauncher(l Launcher) Option {
	return func(s *Supervisor) {
		if l != nil {
			s.launcher = l
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Supervisor) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGracePeriod sets how long Stop waits after SIGTERM before killing.
func WithGracePeriod(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.grace = d
		}
	}
}

// WithStateHook registers fn to observe every state transition.
func WithStateHook(fn func(State)) Option {
	return func(s *Supervisor) {
		s.onState = fn
	}
}

// Supervisor owns at most one renderer process for the lifetime of a server.
type Supervisor struct {
	cfg      Config
	launcher Launcher
	logger   *slog.Logger
	grace    time.Duration
	onState  func(State)

	mu    sync.Mutex
	state State
	proc  Process

	stopOnce sync.Once
	stopErr  error
}

// New creates a supervisor in StateNotStarted.
func New(cfg Config, opts ...Option) *Supervisor {
	s := &Supervisor{
		cfg:      cfg.withDefaults(),
		launcher: execLauncher{},
		logger:   slog.Default(),
		grace:    DefaultGracePeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("ssr"))
	return s
}

// Start evaluates the gate and launches the renderer when it passes. A rejected
// gate or a failed launch leaves the supervisor in StateNeverStarted and
// returns nil. Any call after the first returns ErrAlreadyStarted.
func (s *Supervisor) Start(ctx context.Context, g Gate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}

	if g.Artifact == "" {
		g.Artifact = s.cfg.Artifact
	}
	d := Evaluate(g)
	if !d.Enabled {
		s.logger.InfoContext(ctx, "ssr renderer not started", slog.String("reason", d.Reason))
		s.setState(StateNeverStarted)
		return nil
	}

	proc, err := s.launcher.Launch(ctx, Command{
		Name:   s.cfg.Node,
		Args:   []string{g.Artifact, "--port", strconv.Itoa(int(s.cfg.Port))},
		Dir:    s.cfg.Dir,
		Env:    os.Environ(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "ssr renderer launch failed",
			logger.Error(fmt.Errorf("%w: %w", ErrLaunch, err)),
			slog.String("artifact", g.Artifact),
		)
		s.setState(StateNeverStarted)
		return nil
	}

	s.proc = proc
	s.setState(StateRunning)
	s.logger.InfoContext(ctx, "ssr renderer started",
		slog.String("reason", d.Reason),
		slog.Int("pid", proc.Pid()),
		slog.String("url", s.URL()),
	)
	return nil
}

// Stop terminates the renderer if it is running. Only the first call has an
// effect; later calls return the first call's result. Calling Stop before Start
// seals the supervisor in StateNeverStarted.
func (s *Supervisor) Stop() error {
	s.stopOnce.Do(func() {
		proc := s.release()
		if proc == nil {
			return
		}

		start := time.Now()
		pid := proc.Pid()
		if err := proc.Terminate(s.grace); err != nil {
			s.stopErr = fmt.Errorf("%w: %w", ErrTerminate, err)
			s.logger.Warn("ssr renderer termination failed", slog.Int("pid", pid), logger.Error(s.stopErr))
			return
		}
		s.logger.Info("ssr renderer stopped", slog.Int("pid", pid), logger.Elapsed(start))
	})
	return s.stopErr
}

// release moves the supervisor to its final state and hands back the running
// process, if any. Terminate runs outside mu so State and Enabled never wait on it.
func (s *Supervisor) release() Process {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateNotStarted:
		s.setState(StateNeverStarted)
		return nil
	case StateRunning:
		proc := s.proc
		s.proc = nil
		s.setState(StateTerminated)
		return proc
	default:
		return nil
	}
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Enabled reports whether the renderer is running and should receive render requests.
func (s *Supervisor) Enabled() bool {
	return s.State() == StateRunning
}

// URL is the base URL of the renderer.
func (s *Supervisor) URL() string {
	return "http://" + net.JoinHostPort(s.cfg.Host, strconv.Itoa(int(s.cfg.Port)))
}

// setState must be called with mu held.
func (s *Supervisor) setState(st State) {
	s.state = st
	if s.onState != nil {
		s.onState(st)
	}
}
