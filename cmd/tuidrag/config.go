package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-drag/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the drag configuration",
	Long: `Print the embedded default configuration, ready to be saved and edited.

Config files are searched in this order:
  1. --config <path>
  2. ~/.tuidrag/configs/drag.yaml
  3. ./configs/drag.yaml
  4. built-in defaults

Examples:
  tuidrag config > ~/.tuidrag/configs/drag.yaml
  tuidrag config --effective
  tuidrag config --effective --config ./my-drag.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the configuration after loading files")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagEffective {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadDrag(flagConfig)
	if err != nil {
		exitErr("%v", err)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		exitErr("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
