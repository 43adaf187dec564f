package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/core"
	"github.com/vovakirdan/tui-drag/internal/drag"
	"github.com/vovakirdan/tui-drag/internal/registry"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tuidrag/host_key.
	HostKeyPath string

	// DBPath is the path to the gesture journal.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// SceneID is served when the client does not name a scene and Menu
	// is off.
	SceneID string

	// Menu shows the scene picker to clients that do not name a scene.
	Menu bool

	// Drag is the base configuration every session starts from.
	Drag config.DragConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.tuidrag/journal.db",
		IdleTimeout: 30 * time.Minute,
		SceneID:     core.DefaultConfig().SceneID,
		Menu:        true,
		Drag:        config.DefaultDragConfig(),
	}
}

// SSHServer serves one drag playground per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tuidrag-ssh",
		})
	}
	if !registry.Exists(cfg.SceneID) {
		return nil, fmt.Errorf("unknown scene %q", cfg.SceneID)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open gesture journal", "error", err)
		// Continue without storage
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
		hostKeyPath = filepath.Join(home, ".tuidrag", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.teardownMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionScene returns the scene named by the first command argument.
// ok is false when the client named none, or an unknown one.
func sessionScene(args []string) (string, bool) {
	if len(args) > 0 && registry.Exists(args[0]) {
		return args[0], true
	}
	return "", false
}

// teaHandler creates a model for each SSH session: the named scene's
// playground, or the scene menu when the client named none.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	rt := core.RuntimeConfig{
		ScreenW:   pty.Window.Width,
		ScreenH:   pty.Window.Height,
		SceneID:   s.config.SceneID,
		SessionID: uuid.NewString(),
	}
	logger := s.logger.With("user", sshSession.User())
	tracked := sessionDirectivesOf(sshSession)

	sceneID, named := sessionScene(sshSession.Command())
	// The server's clipboard is not the client's.
	if !named && s.config.Menu {
		session := NewSessionModel(s.store, s.config.Drag, rt, logger)
		session.copy = nil
		session.track = tracked.track
		return session, opts
	}
	if named {
		rt.SceneID = sceneID
	}

	scene, err := registry.Create(rt.SceneID)
	if err != nil {
		s.logger.Error("cannot create scene", "scene", rt.SceneID, "error", err)
		return nil, nil
	}

	logger = logger.With("session", rt.SessionID)
	model, err := NewModel(scene, s.config.Drag, s.store, rt, logger)
	if err != nil {
		s.logger.Error("cannot create playground", "scene", rt.SceneID, "error", err)
		return nil, nil
	}
	model.copy = nil
	tracked.track(model.directive)
	logger.Info("playground ready", "scene", rt.SceneID)

	return model, opts
}

// sessionDirectives collects the directives attached during one SSH
// session so they can be detached when the connection ends.
type sessionDirectives struct {
	mu   sync.Mutex
	list []*drag.Directive
}

type sessionDirectivesKey struct{}

// sessionDirectivesOf returns the collector installed by teardownMiddleware,
// or nil. A nil collector ignores track.
func sessionDirectivesOf(sshSession ssh.Session) *sessionDirectives {
	t, _ := sshSession.Context().Value(sessionDirectivesKey{}).(*sessionDirectives)
	return t
}

func (t *sessionDirectives) track(d *drag.Directive) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.list = append(t.list, d)
	t.mu.Unlock()
}

// detachAll detaches every tracked directive. A gesture cut off by the
// disconnect ends without a drag-end notification.
func (t *sessionDirectives) detachAll() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, d := range t.list {
		if d.Attached() {
			d.Detach()
			n++
		}
	}
	t.list = nil
	return n
}

// teardownMiddleware detaches the session's directives once the program
// serving it has exited, the way the local runners do.
func (s *SSHServer) teardownMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		tracked := &sessionDirectives{}
		sshSession.Context().SetValue(sessionDirectivesKey{}, tracked)
		next(sshSession)
		if n := tracked.detachAll(); n > 0 {
			s.logger.Debug("detached on disconnect", "user", sshSession.User(), "directives", n)
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "scene", s.config.SceneID)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Sessions still draining may journal their last gestures.
	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
