// Package driver expands .shape files into Go files.
package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"shapegen/internal/config"
	"shapegen/internal/emit"
	"shapegen/internal/errors"
	"shapegen/internal/facts"
	"shapegen/internal/lower"
	"shapegen/internal/macro"
	"shapegen/internal/parser"
)

var log = commonlog.GetLogger("shapegen.driver")

var cacheLog = commonlog.GetLogger("shapegen.cache")

type Options struct {
	// EmitErrors writes failing files with diagnostics rendered as Go.
	EmitErrors bool
	// Version is mixed into cache keys.
	Version string
	Cache   *Cache
	// ReadFile reads resources; nil means os.ReadFile.
	ReadFile facts.ReadFunc
}

type Driver struct {
	cfg      config.Config
	opts     Options
	emitter  *emit.Emitter
	expander *macro.Expander
}

func New(cfg config.Config, opts Options) *Driver {
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
	if cfg.HygienePrefix == "" {
		cfg.HygienePrefix = parser.DefaultHygienePrefix
	}
	emitter := emit.New(emit.Options{Prefix: cfg.HygienePrefix, RuntimePath: cfg.RuntimePath})
	return &Driver{
		cfg:     cfg,
		opts:    opts,
		emitter: emitter,
		expander: macro.New(macro.Config{
			Parse:    parser.Options{HygienePrefix: cfg.HygienePrefix},
			Emit:     emitter,
			Types:    lower.NewTypeMapper(cfg.Types),
			ReadFile: opts.ReadFile,
		}),
	}
}

// Expander returns the macro registry used for every file.
func (d *Driver) Expander() *macro.Expander {
	return d.expander
}

// FileResult is the expansion of one input file.
type FileResult struct {
	Path string
	// Output is where Code is written.
	Output string
	Source string
	// Code is the formatted Go file. It is nil when the file has
	// diagnostics and errors are not emitted.
	Code        []byte
	Diagnostics []*errors.CompilerError
	Resources   []facts.Resource
	Cached      bool
}

func (r *FileResult) Failed() bool {
	return len(r.Diagnostics) > 0
}

// OutputPath returns the generated file name for input.
func OutputPath(input string) string {
	return input + ".go"
}

// ExpandFile reads and expands one file.
func (d *Driver) ExpandFile(ctx context.Context, path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return d.ExpandSource(ctx, path, string(data))
}

// ExpandSource expands source as if it were the contents of path.
func (d *Driver) ExpandSource(ctx context.Context, path, source string) (*FileResult, error) {
	res := &FileResult{Path: path, Output: OutputPath(path), Source: source}
	pkg := d.cfg.PackageFor(path)
	root := d.cfg.RootFor(path)

	key := d.cacheKey(path, pkg, root, source)
	if code, resources, ok := d.lookup(key); ok {
		log.Debugf("%s: cache hit", path)
		res.Code, res.Resources, res.Cached = code, resources, true
		return res, nil
	}

	parsed := parser.ParseSource(path, source, parser.Options{HygienePrefix: d.cfg.HygienePrefix})
	res.Diagnostics = append(res.Diagnostics, parsed.Errors...)

	outputs, err := d.expandItems(ctx, d.expander.WithRoot(root), parsed)
	if err != nil {
		return nil, err
	}

	var fragments []emit.Fragment
	for _, outs := range outputs {
		for _, out := range outs {
			if out.Err != nil {
				res.Diagnostics = append(res.Diagnostics, out.Err)
				continue
			}
			fragments = append(fragments, out.Code...)
			res.Resources = append(res.Resources, out.Resources...)
		}
	}
	sortDiagnostics(res.Diagnostics)
	log.Debugf("%s: %d items, %d diagnostics", path, len(parsed.Items), len(res.Diagnostics))

	if res.Failed() && !d.opts.EmitErrors {
		res.Resources = nil
		return res, nil
	}

	var diags []*errors.CompilerError
	if d.opts.EmitErrors {
		diags = res.Diagnostics
	}
	res.Code, err = d.emitter.File(pkg, fragments, diags)
	if err != nil {
		log.Errorf("%s: %s", path, err)
		res.Code, res.Resources = nil, nil
		res.Diagnostics = append(res.Diagnostics, errors.InvalidOutput(path, err))
		return res, nil
	}

	if !res.Failed() {
		d.store(key, res)
	}
	return res, nil
}

// expandItems runs the items of a file concurrently. Results are stored
// by index, so the output order is the source order.
func (d *Driver) expandItems(ctx context.Context, x *macro.Expander, parsed *parser.ParseResult) ([][]macro.Output, error) {
	outputs := make([][]macro.Output, len(parsed.Items))
	if len(parsed.Items) == 0 {
		return outputs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(d.cfg.Jobs, len(parsed.Items)))
	for i, item := range parsed.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i] = x.ExpandItem(gctx, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// Run expands every path concurrently. Results keep the order of paths.
func (d *Driver) Run(ctx context.Context, paths []string) ([]*FileResult, error) {
	results := make([]*FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(d.cfg.Jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			res, err := d.ExpandFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Write stores the generated code of res at res.Output.
func Write(res *FileResult) error {
	if res.Code == nil {
		return nil
	}
	if err := os.WriteFile(res.Output, res.Code, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", res.Output, err)
	}
	return nil
}

// Report writes every diagnostic of res to w in the terminal format.
func Report(w io.Writer, res *FileResult) error {
	if len(res.Diagnostics) == 0 {
		return nil
	}
	reporter := errors.NewErrorReporter(res.Path, res.Source)
	for _, diag := range res.Diagnostics {
		if _, err := io.WriteString(w, reporter.FormatError(diag)); err != nil {
			return err
		}
	}
	return nil
}

func sortDiagnostics(diags []*errors.CompilerError) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Start.Offset < diags[j].Span.Start.Offset
	})
}

func (d *Driver) cacheKey(path, pkg, root, source string) string {
	h := sha256.New()
	field := func(s string) {
		fmt.Fprintf(h, "%d:%s;", len(s), s)
	}
	field(d.opts.Version)
	field(path)
	field(pkg)
	field(root)
	field(d.cfg.HygienePrefix)
	field(d.cfg.RuntimePath)
	field(fmt.Sprint(d.opts.EmitErrors))
	names := make([]string, 0, len(d.cfg.Types))
	for name := range d.cfg.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		field(name + "=" + d.cfg.Types[name])
	}
	field(source)
	return hex.EncodeToString(h.Sum(nil))
}

func (d *Driver) lookup(key string) ([]byte, []facts.Resource, bool) {
	if d.opts.Cache == nil {
		return nil, nil, false
	}
	var entry CacheEntry
	ok, err := d.opts.Cache.Get(key, &entry)
	if err != nil {
		cacheLog.Warningf("read %s: %s", key, err)
		return nil, nil, false
	}
	if !ok {
		return nil, nil, false
	}
	if !entry.Fresh(d.opts.ReadFile) {
		cacheLog.Debugf("%s: resources changed", entry.Path)
		return nil, nil, false
	}
	return entry.Code, entry.Resources, true
}

func (d *Driver) store(key string, res *FileResult) {
	if d.opts.Cache == nil {
		return
	}
	entry := &CacheEntry{Path: res.Path, Code: res.Code, Resources: res.Resources}
	if err := d.opts.Cache.Put(key, entry); err != nil {
		cacheLog.Warningf("write %s: %s", res.Path, strings.TrimSpace(err.Error()))
	}
}
