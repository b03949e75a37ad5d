package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"shapegen/internal/macro"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the shapegen version and the registered macros",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "shapegen %s\n", version)
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintf(out, "go:      %s\n", info.GoVersion)
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					fmt.Fprintf(out, "commit:  %s\n", s.Value)
				}
			}
		}

		x := macro.New(macro.Config{})
		fmt.Fprintf(out, "derives: %s\n", strings.Join(x.Derives(), ", "))
		fmt.Fprintf(out, "macros:  %s\n", strings.Join(x.Macros(), "!, ")+"!")
		return nil
	},
}
