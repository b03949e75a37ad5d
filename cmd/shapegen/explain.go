package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shapegen/internal/errors"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code]...",
	Short: "Describe diagnostic codes",
	Long: `Describe the given diagnostic codes, such as E0102. Without arguments
every code is listed.`,
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	codes := args
	if len(codes) == 0 {
		codes = errors.Codes()
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold).SprintFunc()
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if !slices.Contains(errors.Codes(), code) {
			return fmt.Errorf("unknown diagnostic code %q", code)
		}
		fmt.Fprintf(out, "%s [%s] %s\n", bold(code), errors.GetErrorCategory(code), errors.GetErrorDescription(code))
	}
	return nil
}
