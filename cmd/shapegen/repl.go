package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shapegen/internal/config"
	"shapegen/internal/driver"
	"shapegen/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Expand items typed on stdin",
	Long: `Read items from stdin and print the Go they expand to. file_words!
paths resolve against the current directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Discover(".")
		if err != nil {
			return err
		}
		if cfg.Package == "" {
			cfg.Package = "main"
		}
		if isTerminal(os.Stdin) {
			fmt.Fprintln(cmd.OutOrStdout(), "shapegen", version, "- end an item with } or ; to expand it")
		}
		d := driver.New(cfg, driver.Options{Version: version})
		return repl.Start(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), d)
	},
}
