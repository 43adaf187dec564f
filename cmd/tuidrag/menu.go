package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/core"
	"github.com/vovakirdan/tui-drag/internal/platform/tui"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenes from an interactive menu",
	Long: `Start with a scene picker. Esc in a playground returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Open scene
  Esc          - Back to menu (from a scene)
  Q            - Quit

Examples:
  tuidrag menu
  tuidrag menu --db ./journal.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	logger, closer, err := newLogger(io.Discard, "tuidrag")
	if err != nil {
		exitErr("%v", err)
	}
	defer closer.Close()

	cfg, err := config.LoadDrag(flagConfig)
	if err != nil {
		exitErr("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open gesture journal: %v\n", err)
		store = nil
	}

	runErr := tui.RunSession(tui.NewSessionModel(store, cfg, rt, logger))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closer.Close()
		exitErr("%v", runErr)
	}
}
