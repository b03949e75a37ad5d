package driver

import (
	"bytes"
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegen/internal/config"
	"shapegen/internal/errors"
)

func init() {
	color.NoColor = true
}

const models = `// models used by the tests
#[derive(Describe)]
struct User {
    user_name: String,
    tags: Vec<String>,
}

#[derive(Describe, Ranges)]
enum Level { Low, Mid = 10, High }

enum_ranges! {
    #[derive(Describe)]
    LogTen { Zero: 0, Ones: 1..10, Tens: 10..100 }
}

const WORDS = file_words!("words.txt");
`

func testConfig(t *testing.T, dir string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Package = "models"
	cfg.Root = dir
	return cfg
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestExpandSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "words.txt"), "alpha beta\ngamma\n")

	d := New(testConfig(t, dir), Options{})
	res, err := d.ExpandSource(context.Background(), filepath.Join(dir, "models.shape"), models)
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, filepath.Join(dir, "models.shape.go"), res.Output)

	_, perr := parser.ParseFile(token.NewFileSet(), res.Output, res.Code, 0)
	require.NoError(t, perr, string(res.Code))

	text := string(res.Code)
	assert.True(t, strings.HasPrefix(text, "// Code generated by shapegen. DO NOT EDIT.\n\npackage models\n"))
	assert.Contains(t, text, `import _sgshape "shapegen/shape"`)
	assert.Contains(t, text, `var WORDS = [3]string{"alpha", "beta", "gamma"}`)
	assert.Less(t, strings.Index(text, "type User struct"), strings.Index(text, "type Level int64"))
	assert.Less(t, strings.Index(text, "type Level int64"), strings.Index(text, "type LogTen uint64"))
	require.Len(t, res.Resources, 1)
}

func TestExpandSourceDiagnostics(t *testing.T) {
	src := `struct A { x: u8 }
enum B { X = 1, Y = 1 }
struct C { a: u8, u16 }
#[derive(Debug)]
struct D;
const W = file_words!("missing.txt");
`
	dir := t.TempDir()
	d := New(testConfig(t, dir), Options{})
	res, err := d.ExpandSource(context.Background(), "bad.shape", src)
	require.NoError(t, err)
	assert.Nil(t, res.Code)
	assert.Empty(t, res.Resources)

	var codes []string
	for _, diag := range res.Diagnostics {
		codes = append(codes, diag.Code)
	}
	assert.Equal(t, []string{
		errors.ErrorDuplicateDiscriminant,
		errors.ErrorMalformedInput,
		errors.ErrorUnknownMacro,
		errors.ErrorMissingResource,
	}, codes)

	var out bytes.Buffer
	require.NoError(t, Report(&out, res))
	assert.Contains(t, out.String(), "error[E0102]: discriminant value `1` assigned more than once")
	assert.Contains(t, out.String(), "--> bad.shape:2:17")
}

func TestEmitErrors(t *testing.T) {
	d := New(testConfig(t, t.TempDir()), Options{EmitErrors: true})
	res, err := d.ExpandSource(context.Background(), "bad.shape", "struct A { x: u8 }\nenum B { X = 1, Y = 1 }\n")
	require.NoError(t, err)
	require.True(t, res.Failed())
	require.NotNil(t, res.Code)

	text := string(res.Code)
	assert.Contains(t, text, "type A struct")
	assert.Contains(t, text, "const _ int = /*line bad.shape:2:17*/ \"error[E0102]: discriminant value `1` assigned more than once\"")
	_, perr := parser.ParseFile(token.NewFileSet(), "bad.shape.go", res.Code, parser.ParseComments)
	assert.NoError(t, perr)
}

func TestDeterministicAcrossJobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "words.txt"), "a b c")

	var outputs [][]byte
	for _, jobs := range []int{1, 2, 8} {
		cfg := testConfig(t, dir)
		cfg.Jobs = jobs
		res, err := New(cfg, Options{}).ExpandSource(context.Background(), "models.shape", models)
		require.NoError(t, err)
		outputs = append(outputs, res.Code)
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	writeFile(t, words, "one two")

	cache, err := OpenCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	d := New(testConfig(t, dir), Options{Cache: cache, Version: "test"})
	ctx := context.Background()

	first, err := d.ExpandSource(ctx, "models.shape", models)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := d.ExpandSource(ctx, "models.shape", models)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Code, second.Code)

	writeFile(t, words, "one two three")
	third, err := d.ExpandSource(ctx, "models.shape", models)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Contains(t, string(third.Code), `[3]string{"one", "two", "three"}`)

	other := New(testConfig(t, dir), Options{Cache: cache, Version: "other"})
	res, err := other.ExpandSource(ctx, "models.shape", models)
	require.NoError(t, err)
	assert.False(t, res.Cached)
}

func TestCacheSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	d := New(testConfig(t, dir), Options{Cache: cache, EmitErrors: true})

	for range 2 {
		res, err := d.ExpandSource(context.Background(), "bad.shape", "struct A { a: u8, u8 }")
		require.NoError(t, err)
		assert.False(t, res.Cached)
	}
}

func TestRunAndWrite(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.shape")
	b := filepath.Join(dir, "b.shape")
	writeFile(t, a, "#[derive(Describe)]\nstruct A;\n")
	writeFile(t, b, "enum B { X }\n")

	d := New(testConfig(t, dir), Options{})
	results, err := d.Run(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, a, results[0].Path)
	assert.Equal(t, b, results[1].Path)

	for _, res := range results {
		require.NoError(t, Write(res))
	}
	data, err := os.ReadFile(a + ".go")
	require.NoError(t, err)
	assert.Contains(t, string(data), "func (A) FieldCount() int { return 0 }")

	_, err = d.Run(context.Background(), []string{filepath.Join(dir, "missing.shape")})
	assert.Error(t, err)
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := New(testConfig(t, t.TempDir()), Options{})
	_, err := d.ExpandSource(ctx, "models.shape", "struct A;")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNonGoIdentifierDiagnosed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.shape")
	b := filepath.Join(dir, "b.shape")
	writeFile(t, a, "#[derive(Describe)]\nstruct क्ष;\n")
	writeFile(t, b, "struct B;\n")

	d := New(testConfig(t, dir), Options{})
	results, err := d.Run(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Len(t, results[0].Diagnostics, 1)
	diag := results[0].Diagnostics[0]
	assert.Equal(t, errors.ErrorMalformedInput, diag.Code)
	assert.Equal(t, "`क्ष` is not a valid Go identifier", diag.Message)
	assert.Equal(t, 2, diag.Span.Start.Line)
	assert.Equal(t, 8, diag.Span.Start.Column)
	assert.Nil(t, results[0].Code)

	assert.False(t, results[1].Failed())
	assert.Contains(t, string(results[1].Code), "type B struct")
}

func TestInvalidOutputDiagnosed(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Types = map[string]string{"Blob": "[]byte("}
	d := New(cfg, Options{})

	res, err := d.ExpandSource(context.Background(), "blob.shape", "struct B { data: Blob }\n")
	require.NoError(t, err)
	assert.Nil(t, res.Code)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.ErrorInternal, res.Diagnostics[0].Code)
	assert.Equal(t, "generated code is not valid Go", res.Diagnostics[0].Message)
	assert.Equal(t, "blob.shape:1:1", res.Diagnostics[0].Span.String())
}
