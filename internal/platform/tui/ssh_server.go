package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/controls"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// TouchEnv is the client environment variable that forces the virtual pad,
// e.g. ssh -o SetEnv=ARCADE_TOUCH=1.
const TouchEnv = "ARCADE_TOUCH"

type portalKey struct{}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
	// MaxTimeout caps a connection's lifetime. Zero means no cap.
	MaxTimeout time.Duration

	// Portal is the template for every connection's portal. Store,
	// Env and Route are filled in per connection.
	Portal Options
}

// SSHServerConfigFrom builds the server config from the portal settings.
func SSHServerConfigFrom(cfg config.PortalConfig) SSHServerConfig {
	return SSHServerConfig{
		Address:     cfg.SSH.Addr,
		HostKeyPath: cfg.SSH.HostKeyPath,
		IdleTimeout: cfg.SSH.IdleTimeout,
		MaxTimeout:  cfg.SSH.MaxTimeout,
		Portal: Options{
			Catalog: catalog.Default(),
			Config: core.RuntimeConfig{
				TickRate:   cfg.TickRate,
				Difficulty: cfg.Difficulty,
				ConfigDir:  cfg.GameConfigDir,
			},
			CompactWidth:  cfg.CompactWidth,
			Dark:          cfg.Dark,
			ScreenshotDir: cfg.ScreenshotDir,
		},
	}
}

// SSHServer serves the portal over SSH via Wish. Every connection gets
// its own portal; scores and prefs are shared through one backend.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  storage.Backend
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// The server owns store and closes it on shutdown.
func NewSSHServer(cfg SSHServerConfig, store storage.Backend, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	hostKeyPath, err := storage.ExpandPath(hostKeyPath)
	if err != nil {
		return nil, err
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.MaxTimeout > 0 {
		opts = append(opts, wish.WithMaxTimeout(cfg.MaxTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a portal for each SSH session. The client version
// string stands in for a user agent, and the SSH command, if any, is the
// initial route: ssh -t host snake.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := s.config.Portal
	opts.Store = s.store
	opts.Config.ScreenW = pty.Window.Width
	opts.Config.ScreenH = pty.Window.Height
	opts.Config.Seed = time.Now().UnixNano()
	opts.Env = sessionEnv(sshSession, pty.Window.Width, pty.Window.Height)
	opts.Route = strings.Join(sshSession.Command(), " ")
	opts.Logger = s.logger.With("user", sshSession.User(), "conn", uuid.NewString()[:8])

	model := NewPortalModel(opts)
	sshSession.Context().SetValue(portalKey{}, model)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionEnv describes an SSH client for compact detection.
func sessionEnv(sshSession ssh.Session, width, height int) controls.Env {
	env := controls.Env{
		Width:     width,
		Height:    height,
		UserAgent: sshSession.Context().ClientVersion(),
	}
	for _, kv := range sshSession.Environ() {
		if v, ok := strings.CutPrefix(kv, TouchEnv+"="); ok {
			env.Touch = v != "" && v != "0"
		}
	}
	return env
}

// loggingMiddleware logs SSH session events and tears down the
// connection's portal once the program has exited.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"client", sshSession.Context().ClientVersion(),
		)
		next(sshSession)
		if m, ok := sshSession.Context().Value(portalKey{}).(*PortalModel); ok {
			m.Close()
		}
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		s.closeStore()
		return err
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("could not close store", "error", err)
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
