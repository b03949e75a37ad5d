// Package corpora runs table-driven tests whose table lives in the file
// system: every input file is a case and its expected outputs sit next to
// it as <input>.<ext>.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

type Corpus struct {
	// Root is the test data directory, relative to the file that calls Run.
	Root string

	// Refresh names an environment variable holding a glob. Cases whose
	// name matches are rewritten instead of compared.
	Refresh string

	// Extension of the input files, without the dot.
	Extension string

	// Outputs of every case. A missing output file means the output is
	// expected to be empty.
	Outputs []Output

	// Test runs one case and returns one string per element of Outputs.
	// path is relative to the calling test's directory.
	Test func(t *testing.T, path, text string) []string
}

type Output struct {
	// Extension is appended to the input name: "go" turns a.shape into
	// a.shape.go.
	Extension string
	// Compare defaults to byte equality with a unified diff.
	Compare Compare
}

// Compare returns "" when got matches want, otherwise a description of the
// mismatch.
type Compare func(got, want string) string

func (c Corpus) Run(t *testing.T) {
	t.Helper()
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var tests []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(filepath.Ext(p), ".") == c.Extension {
			tests = append(tests, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("corpora: walking %s: %v", root, err)
	}
	sort.Strings(tests)
	if len(tests) == 0 {
		t.Fatalf("corpora: no .%s files under %s", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: %s=%q is not a valid glob", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// a refreshed run never passes, so it is not mistaken for a green one
		t.Logf("corpora: refreshing outputs matching %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, path := range tests {
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: reading %s: %v", path, err)
			}
			results := c.Test(t, name, string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			rewrite := false
			if refresh != "" {
				rewrite, _ = doublestar.Match(refresh, name)
			}
			for i, output := range c.Outputs {
				outPath := path + "." + output.Extension
				if rewrite {
					if err := writeOutput(outPath, results[i]); err != nil {
						t.Errorf("corpora: %v", err)
					}
					continue
				}

				want, err := os.ReadFile(outPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: reading %s: %v", outPath, err)
					continue
				}
				cmp := output.Compare
				if cmp == nil {
					cmp = defaultCompare
				}
				if diff := cmp(results[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %s:\n%s", outPath, diff)
				}
			}
		})
	}
}

func writeOutput(path, content string) error {
	if content == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("deleting %s: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	added := color.New(color.FgHiGreen, color.Bold).SprintFunc()
	removed := color.New(color.FgHiRed, color.Bold).SprintFunc()
	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		switch {
		case strings.HasPrefix(s, "+"):
			lines[i] = added(s)
		case strings.HasPrefix(s, "-"):
			lines[i] = removed(s)
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine the test file's directory")
	}
	return filepath.Dir(file)
}
