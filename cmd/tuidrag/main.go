// tuidrag is a terminal playground for a pointer-drag directive: drag a box
// with the mouse, optionally confined to a frame.
//
// Usage:
//
//	tuidrag list               - List available scenes
//	tuidrag play [scene]       - Open a playground locally
//	tuidrag menu               - Pick scenes interactively
//	tuidrag serve              - Serve playgrounds over SSH
//	tuidrag history <scene>    - Show recently journaled gestures
//	tuidrag config             - Print the default configuration
//
// Global flags:
//
//	--db <path>         - Gesture journal (default: ~/.tuidrag/journal.db)
//	--config <path>     - Custom drag config YAML
//	--log-level <level> - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-drag/internal/scenes"
)

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tuidrag",
	Short: "TUI Drag - drag things around your terminal",
	Long: `TUI Drag is a terminal playground for a pointer-drag directive.
Press on the box, move the mouse and release; the box follows and, when a
frame is shown, stays inside it.

Available commands:
  list     - Show all available scenes
  play     - Open a playground in this terminal
  menu     - Interactive scene picker
  serve    - Start SSH server for remote playgrounds
  history  - View journaled gestures
  config   - Print the default configuration

Examples:
  tuidrag list
  tuidrag play boxed
  tuidrag menu
  tuidrag play free --log-file drag.log --log-level debug
  tuidrag serve --ssh :2222
  tuidrag history boxed`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tuidrag/journal.db", "Path to gesture journal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom drag config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger selected by the global flags. fallback is
// used when no --log-file is given. The returned closer is never nil.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w := fallback
	var closer io.Closer = io.NopCloser(nil)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// exitErr prints err and exits.
func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
