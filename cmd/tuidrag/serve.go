package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeScene  string
	flagServeMenu   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the playground SSH server",
	Long: `Start an SSH server that gives every connection its own playground.

The scene can be chosen per connection by passing it as the SSH command;
otherwise the client gets a scene menu, or --scene with --menu=false.
All sessions share one gesture journal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tuidrag/host_key

Examples:
  tuidrag serve                           # Listen on :23235 with auto-generated key
  tuidrag serve --ssh :2222               # Listen on port 2222
  tuidrag serve --menu=false --scene free # Serve the free scene directly
  tuidrag serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235
  ssh localhost -p 23235 -t classic`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeScene, "scene", "boxed", "Scene served when the client names none and --menu is off")
	serveCmd.Flags().BoolVar(&flagServeMenu, "menu", true, "Show a scene menu to clients that name no scene")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closer, err := newLogger(os.Stderr, "tuidrag-ssh")
	if err != nil {
		exitErr("%v", err)
	}
	defer closer.Close()

	drag, err := config.LoadDrag(flagConfig)
	if err != nil {
		exitErr("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		SceneID:     flagServeScene,
		Menu:        flagServeMenu,
		Drag:        drag,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		exitErr("creating server: %v", err)
	}

	fmt.Printf("Starting tuidrag SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitErr("server: %v", err)
	}
}

// port extracts the port from a host:port address for the connect hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
