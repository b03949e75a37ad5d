package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.shape"), "")
	writeFile(t, filepath.Join(dir, "nested", "b.shape"), "")
	writeFile(t, filepath.Join(dir, "nested", "c.txt"), "")

	paths, err := expandGlobs([]string{filepath.Join(dir, "**", "*.shape"), filepath.Join(dir, "a.shape")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.shape"),
		filepath.Join(dir, "nested", "b.shape"),
	}, paths)

	// unmatched patterns stay so the read error names them
	paths, err = expandGlobs([]string{filepath.Join(dir, "missing.shape")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "missing.shape")}, paths)

	_, err = expandGlobs([]string{"[a"})
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.0ms", formatDuration(2*time.Millisecond))
	assert.Equal(t, "10ns", formatDuration(10))
}

func TestExpandCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "models.shape")
	writeFile(t, input, "#[derive(Describe)]\nstruct User { name: String }\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"expand", "--color", "off", "--no-cache", "--package", "models", "--stdout", input})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "package models")
	assert.Contains(t, out.String(), "func (User) FieldCount() int { return 1 }")
	assert.NoFileExists(t, input+".go")
}

func TestCheckPrintUsesConfiguredPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shapegen.toml"), "package = \"models\"\nhygiene_prefix = \"_zz\"\n")
	writeFile(t, filepath.Join(dir, "w.txt"), "one two")
	input := filepath.Join(dir, "words.shape")
	writeFile(t, input, "const _sgWords = file_words!(\"w.txt\");\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", "--color", "off", "--no-cache", "--print", input})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `const _sgWords = file_words!("w.txt");`)
}

func TestExplainCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"explain", "--color", "off", "e0102"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "E0102 [Input] Two enum variants resolve to the same discriminant\n", out.String())

	out.Reset()
	rootCmd.SetArgs([]string{"explain", "--color", "off"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 6, strings.Count(out.String(), "\n"))

	rootCmd.SetArgs([]string{"explain", "--color", "off", "E4242"})
	assert.Error(t, rootCmd.Execute())
}
