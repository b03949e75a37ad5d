package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shapegen/internal/config"
	"shapegen/internal/driver"
	"shapegen/internal/parser"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <glob>...",
	Short: "Expand .shape files into Go files",
	Long: `Expand every .shape file matching the given globs. Each input.shape is
written to input.shape.go unless --stdout or -o is given. Globs support **.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpand,
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] <glob>...",
	Short: "Report diagnostics without writing any files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	for _, cmd := range []*cobra.Command{expandCmd, checkCmd} {
		cmd.Flags().String("config", "", "path to shapegen.toml (default: looked up from the first input)")
		cmd.Flags().String("package", "", "package clause of generated files")
		cmd.Flags().Int("jobs", 0, "max parallel workers (0=config or GOMAXPROCS)")
		cmd.Flags().String("cache-dir", "", "expansion cache directory")
		cmd.Flags().Bool("no-cache", false, "disable the expansion cache")
	}
	checkCmd.Flags().Bool("print", false, "print the parsed items of every input")
	expandCmd.Flags().Bool("emit-errors", false, "write failing files with diagnostics rendered as Go")
	expandCmd.Flags().Bool("stdout", false, "print generated code instead of writing files")
	expandCmd.Flags().StringP("output", "o", "", "directory for generated files")
}

func runExpand(cmd *cobra.Command, args []string) error {
	emitErrors, err := cmd.Flags().GetBool("emit-errors")
	if err != nil {
		return fmt.Errorf("failed to get emit-errors flag: %w", err)
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	start := time.Now()
	results, _, err := run(cmd, args, emitErrors)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if err := driver.Report(os.Stderr, res); err != nil {
			return err
		}
		if res.Failed() {
			failed++
		}
		if res.Code == nil {
			continue
		}
		if toStdout {
			if _, err := cmd.OutOrStdout().Write(res.Code); err != nil {
				return err
			}
			continue
		}
		if outDir != "" {
			res.Output = filepath.Join(outDir, filepath.Base(res.Output))
		}
		if err := driver.Write(res); err != nil {
			return err
		}
	}

	return summarize(results, failed, time.Since(start))
}

func runCheck(cmd *cobra.Command, args []string) error {
	showItems, err := cmd.Flags().GetBool("print")
	if err != nil {
		return fmt.Errorf("failed to get print flag: %w", err)
	}

	start := time.Now()
	results, cfg, err := run(cmd, args, false)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if err := driver.Report(os.Stderr, res); err != nil {
			return err
		}
		if res.Failed() {
			failed++
		}
		if showItems {
			printItems(cmd.OutOrStdout(), res, cfg.HygienePrefix)
		}
	}
	return summarize(results, failed, time.Since(start))
}

// printItems writes the items of res in their normalized form.
func printItems(w io.Writer, res *driver.FileResult, prefix string) {
	parsed := parser.ParseSource(res.Path, res.Source, parser.Options{HygienePrefix: prefix})
	fmt.Fprintf(w, "// %s\n", res.Path)
	for _, item := range parsed.Items {
		fmt.Fprintln(w, item)
	}
}

func summarize(results []*driver.FileResult, failed int, elapsed time.Duration) error {
	if failed > 0 {
		color.New(color.FgRed).Fprintf(os.Stderr, "%d of %d files failed after %s\n", failed, len(results), formatDuration(elapsed))
		return fmt.Errorf("%d files failed", failed)
	}
	cached := 0
	for _, res := range results {
		if res.Cached {
			cached++
		}
	}
	color.New(color.FgGreen).Fprintf(os.Stderr, "processed %d files (%d cached) in %s\n", len(results), cached, formatDuration(elapsed))
	return nil
}

// run resolves the inputs and the configuration shared by expand and check.
func run(cmd *cobra.Command, args []string, emitErrors bool) ([]*driver.FileResult, config.Config, error) {
	paths, err := expandGlobs(args)
	if err != nil {
		return nil, config.Config{}, err
	}

	cfg, err := loadConfig(cmd, filepath.Dir(paths[0]))
	if err != nil {
		return nil, config.Config{}, err
	}

	opts := driver.Options{EmitErrors: emitErrors, Version: version}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if !noCache {
		cache, err := driver.OpenCache(cfg.CacheDir)
		if err != nil {
			// expansion still works, only slower
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	results, err := driver.New(cfg, opts).Run(cmd.Context(), paths)
	return results, cfg, err
}

// loadConfig reads shapegen.toml and applies the flag overrides.
func loadConfig(cmd *cobra.Command, startDir string) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(startDir)
	}
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("package") {
		if cfg.Package, err = cmd.Flags().GetString("package"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get package flag: %w", err)
		}
	}
	if cmd.Flags().Changed("jobs") {
		if cfg.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if cfg.Jobs == 0 {
			cfg.Jobs = config.Default().Jobs
		}
	}
	if cmd.Flags().Changed("cache-dir") {
		if cfg.CacheDir, err = cmd.Flags().GetString("cache-dir"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get cache-dir flag: %w", err)
		}
	}
	return cfg, cfg.Validate()
}

// expandGlobs matches every pattern. A pattern without matches is kept
// as-is so that a missing file is reported by name.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid glob %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths, nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
