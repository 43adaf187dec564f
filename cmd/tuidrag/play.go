package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/core"
	"github.com/vovakirdan/tui-drag/internal/platform/tui"
	"github.com/vovakirdan/tui-drag/internal/registry"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Open a playground",
	Long: `Open the drag playground in this terminal.

Controls:
  Mouse      - Press on the box, move, release
  B          - Toggle the frame (boundary)
  C          - Toggle boundary clamping
  O          - Toggle offset correction
  Y          - Copy the box's transform to the clipboard
  Esc        - Close the playground
  Q/Ctrl+C   - Quit

Option changes apply from the next gesture on. Every completed gesture is
appended to the journal (see 'tuidrag history').

Examples:
  tuidrag play
  tuidrag play free
  tuidrag play classic --config ./my-drag.yaml
  tuidrag play --log-file drag.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	rt := core.DefaultConfig()
	if len(args) > 0 {
		rt.SceneID = args[0]
	}

	if !registry.Exists(rt.SceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", rt.SceneID)
		fmt.Fprintln(os.Stderr, "Run 'tuidrag list' to see available scenes.")
		os.Exit(1)
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.SessionID = uuid.NewString()

	// Logs would corrupt the alt screen, so they go nowhere unless a file is given.
	logger, closer, err := newLogger(io.Discard, "tuidrag")
	if err != nil {
		exitErr("%v", err)
	}
	defer closer.Close()

	cfg, err := config.LoadDrag(flagConfig)
	if err != nil {
		exitErr("%v", err)
	}

	scene, err := registry.Create(rt.SceneID)
	if err != nil {
		exitErr("creating scene: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open gesture journal: %v\n", err)
		// Continue without storage - the playground still works
		store = nil
	}

	model, err := tui.NewModel(scene, cfg, store, rt, logger)
	if err == nil {
		logger.Info("playground started", "scene", rt.SceneID, "session", rt.SessionID)
		err = tui.Run(model)
	}

	if store != nil {
		store.Close()
	}

	if err != nil {
		closer.Close()
		exitErr("running playground: %v", err)
	}
}
