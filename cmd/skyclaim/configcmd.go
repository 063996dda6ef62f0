package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclaim/internal/config"
)

var (
	flagCheckConfig string
	flagWhere       bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config or check a custom one",
	Long: `Without flags, prints the built-in configuration as YAML. Save it to
~/.skyclaim/configs/skyclaim.yaml or ./configs/skyclaim.yaml to customize.

With --check, loads the given file and reports every problem found.
With --where, prints which file the game would load.

Examples:
  skyclaim config > skyclaim.yaml
  skyclaim config --check ./skyclaim.yaml
  skyclaim config --where`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCheckConfig, "check", "", "Validate this config file")
	configCmd.Flags().BoolVar(&flagWhere, "where", false, "Print the config source in use")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagWhere {
		src, err := config.Locate(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(src)
		return
	}

	if flagCheckConfig == "" {
		os.Stdout.Write(config.GetDefaultYAML("skyclaim"))
		return
	}

	if _, err := config.LoadSkyclaim(flagCheckConfig); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", flagCheckConfig, err)
		os.Exit(1)
	}
	fmt.Printf("%s: ok\n", flagCheckConfig)
}
