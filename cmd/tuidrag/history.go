package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-drag/internal/platform/tui"
	"github.com/vovakirdan/tui-drag/internal/registry"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

var (
	flagHistoryLimit       int
	flagHistoryClear       bool
	flagHistoryInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history <scene>",
	Short: "Show journaled gestures for a scene",
	Long: `Display the most recent completed gestures of a scene, newest first,
followed by per-scene totals.

Examples:
  tuidrag history boxed
  tuidrag history free --limit 50
  tuidrag history classic --clear
  tuidrag history boxed -i             # Browse all scenes interactively`,
	Args: cobra.ExactArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of gestures to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the scene's journal instead of showing it")
	historyCmd.Flags().BoolVarP(&flagHistoryInteractive, "interactive", "i", false, "Browse the journal in a full-screen view")
}

func runHistory(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'tuidrag list' to see available scenes.")
		os.Exit(1)
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		exitErr("creating scene: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening gesture journal: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearGestures(sceneID); err != nil {
			store.Close()
			exitErr("clearing journal: %v", err)
		}
		fmt.Printf("Cleared journal for %s.\n", scene.Title())
		return
	}

	if flagHistoryInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunJournal(store, sceneID, width, height); err != nil {
			store.Close()
			exitErr("%v", err)
		}
		return
	}

	gestures, err := store.RecentGestures(sceneID, flagHistoryLimit)
	if err != nil {
		store.Close()
		exitErr("retrieving gestures: %v", err)
	}

	fmt.Printf("Gesture journal - %s\n", scene.Title())
	fmt.Println()

	if len(gestures) == 0 {
		fmt.Println("No gestures recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'tuidrag play %s' and drag the box around!\n", sceneID)
		return
	}

	fmt.Println(historyTable(gestures).View())

	stats, err := store.SceneStats(sceneID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Total: %d gestures in %d sessions, %d clamped, last at %s\n",
			stats.Gestures, stats.Sessions, stats.ClampedCount,
			stats.LastDragged.Local().Format("2006-01-02 15:04"))
	}
}

// historyTable renders gestures as a static, unfocused table.
func historyTable(gestures []storage.Gesture) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Released at", Width: 12},
		{Title: "Translation", Width: 16},
		{Title: "Clamped", Width: 7},
		{Title: "Keys", Width: 14},
		{Title: "When", Width: 16},
	}

	rows := make([]table.Row, 0, len(gestures))
	for _, g := range gestures {
		rows = append(rows, table.Row{
			strconv.FormatInt(g.ID, 10),
			fmt.Sprintf("%g, %g", g.EndX, g.EndY),
			fmt.Sprintf("%g, %g", g.TranslateX, g.TranslateY),
			yesNo(g.Clamped),
			keys(g),
			g.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
		table.WithStyles(styles),
	)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// keys lists the modifiers held when the gesture ended.
func keys(g storage.Gesture) string {
	s := ""
	for _, k := range []struct {
		on   bool
		name string
	}{{g.Ctrl, "ctrl"}, {g.Alt, "alt"}, {g.Shift, "shift"}} {
		if !k.on {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += k.name
	}
	if s == "" {
		return "-"
	}
	return s
}
