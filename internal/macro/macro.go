// Package macro runs invocations through the parse, extract and emit
// stages. Each invocation either yields code or exactly one diagnostic.
package macro

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"shapegen/internal/ast"
	"shapegen/internal/emit"
	"shapegen/internal/errors"
	"shapegen/internal/facts"
	"shapegen/internal/lower"
	"shapegen/internal/parser"
	"shapegen/token"
)

// Invocation is one unit of expansion.
type Invocation struct {
	Kind Kind
	// Name is the derive or macro name. Unset for Declare.
	Name ast.Ident
	// Input holds the declaration tokens for Declare and Derive.
	Input token.Stream
	// Group holds the delimited arguments of a macro.
	Group token.Token
	// Binding names the variable an ExprMacro result is bound to.
	Binding ast.Ident
	// Repeats is the earlier listing of a Derive named twice on one
	// declaration.
	Repeats *ast.Ident
}

// Span is where a failure of the invocation as a whole is reported.
func (inv Invocation) Span() token.Span {
	switch inv.Kind {
	case Declare:
		return inv.Input.Span()
	default:
		return inv.Name.Span
	}
}

// Output is the result of one invocation. Exactly one of Code and Err is
// meaningful.
type Output struct {
	Code      []emit.Fragment
	Resources []facts.Resource
	Err       *errors.CompilerError
	Stages    []Stage
}

type (
	DeriveFunc func(c *Context, shape ast.Shape, name ast.Ident) ([]emit.Fragment, *errors.CompilerError)
	ItemFunc   func(c *Context, group token.Token) ([]emit.Fragment, *errors.CompilerError)
	ExprFunc   func(c *Context, group token.Token) (string, *errors.CompilerError)
)

type Config struct {
	Parse parser.Options
	Emit  *emit.Emitter
	Types *lower.TypeMapper
	// Root resolves relative resource paths.
	Root     string
	ReadFile facts.ReadFunc
}

// Expander holds the macros available to a set of invocations. It is not
// shared process-wide; each caller builds its own.
type Expander struct {
	cfg     Config
	derives map[string]DeriveFunc
	items   map[string]ItemFunc
	exprs   map[string]ExprFunc
}

// New returns an Expander with the built-in macros registered.
func New(cfg Config) *Expander {
	if cfg.Parse.HygienePrefix == "" {
		cfg.Parse.HygienePrefix = parser.DefaultHygienePrefix
	}
	if cfg.Emit == nil {
		cfg.Emit = emit.New(emit.Options{Prefix: cfg.Parse.HygienePrefix})
	}
	if cfg.Types == nil {
		cfg.Types = lower.NewTypeMapper(nil)
	}
	x := &Expander{
		cfg:     cfg,
		derives: make(map[string]DeriveFunc),
		items:   make(map[string]ItemFunc),
		exprs:   make(map[string]ExprFunc),
	}
	x.RegisterDerive("Describe", deriveDescribe)
	x.RegisterDerive("Ranges", deriveRanges)
	x.RegisterItem("enum_ranges", enumRanges)
	x.RegisterExpr("file_words", fileWords)
	return x
}

func (x *Expander) RegisterDerive(name string, fn DeriveFunc) { x.derives[name] = fn }
func (x *Expander) RegisterItem(name string, fn ItemFunc)     { x.items[name] = fn }
func (x *Expander) RegisterExpr(name string, fn ExprFunc)     { x.exprs[name] = fn }

// WithRoot returns a copy of x resolving resources against root. The
// registry is shared with x.
func (x *Expander) WithRoot(root string) *Expander {
	c := *x
	c.cfg.Root = root
	return &c
}

// Derives returns the registered derive names, sorted.
func (x *Expander) Derives() []string {
	return sortedKeys(x.derives)
}

// Macros returns the registered macro names, sorted.
func (x *Expander) Macros() []string {
	names := append(sortedKeys(x.items), sortedKeys(x.exprs)...)
	sort.Strings(names)
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Context is handed to macro implementations.
type Context struct {
	context.Context
	x         *Expander
	stages    []Stage
	resources []facts.Resource
}

func (c *Context) enter(s Stage) {
	c.stages = append(c.stages, s)
}

// Parsing, Extracting and Emitting record stage transitions. Nested
// expansions do not repeat a stage already entered.
func (c *Context) Parsing()    { c.advance(Parsing) }
func (c *Context) Extracting() { c.advance(Extracting) }
func (c *Context) Emitting()   { c.advance(Emitting) }

func (c *Context) advance(s Stage) {
	if c.stages[len(c.stages)-1] < s {
		c.enter(s)
	}
}

func (c *Context) Emitter() *emit.Emitter       { return c.x.cfg.Emit }
func (c *Context) Types() *lower.TypeMapper     { return c.x.cfg.Types }
func (c *Context) ParseOptions() parser.Options { return c.x.cfg.Parse }

// Words reads the files of a path list and records them as resources.
func (c *Context) Words(list *ast.PathList) (*facts.WordsFacts, *errors.CompilerError) {
	words, err := facts.Words(c, c.x.cfg.Root, list, c.x.cfg.ReadFile)
	if err != nil {
		return nil, err
	}
	c.resources = append(c.resources, words.Sources...)
	return words, nil
}

// Derive runs the derive named by name on shape. enum_ranges! uses it to
// chain inner derive attributes.
func (c *Context) Derive(shape ast.Shape, name ast.Ident) ([]emit.Fragment, *errors.CompilerError) {
	fn, ok := c.x.derives[name.Value]
	if !ok {
		return nil, errors.UnknownMacro("derive macro", name.Value, name.Span, c.x.Derives())
	}
	return fn(c, shape, name)
}

// Expand runs one invocation. It never panics: a panic inside a macro is
// converted into an internal diagnostic.
func (x *Expander) Expand(ctx context.Context, inv Invocation) (out Output) {
	c := &Context{Context: ctx, x: x, stages: []Stage{Reading}}
	defer func() {
		if r := recover(); r != nil {
			out = Output{Err: errors.Internal(inv.Span(), r)}
		}
		if out.Err != nil {
			out.Code, out.Resources = nil, nil
			c.enter(Failed)
		} else {
			out.Resources = c.resources
		}
		c.enter(Done)
		out.Stages = c.stages
	}()

	if err := ctx.Err(); err != nil {
		return Output{Err: errors.NewError(errors.ErrorInternal, "expansion canceled", inv.Span()).
			WithNote(err.Error()).Build()}
	}

	code, err := x.run(c, inv)
	return Output{Code: code, Err: err}
}

func (x *Expander) run(c *Context, inv Invocation) ([]emit.Fragment, *errors.CompilerError) {
	switch inv.Kind {
	case Declare:
		return declare(c, inv.Input)

	case Derive:
		if inv.Repeats != nil {
			return nil, repeatedDerive(inv.Name, *inv.Repeats)
		}
		fn, ok := x.derives[inv.Name.Value]
		if !ok {
			return nil, errors.UnknownMacro("derive macro", inv.Name.Value, inv.Name.Span, x.Derives())
		}
		c.Parsing()
		shape, err := parser.ParseShape(inv.Input, x.cfg.Parse)
		if err != nil {
			return nil, err
		}
		return fn(c, shape, inv.Name)

	case ItemMacro:
		fn, ok := x.items[inv.Name.Value]
		if !ok {
			_, elsewhere := x.exprs[inv.Name.Value]
			return nil, x.unknownMacro(inv.Name, elsewhere,
				fmt.Sprintf("an expression: `const NAME = %s!(...);`", inv.Name.Value))
		}
		return fn(c, inv.Group)

	case ExprMacro:
		fn, ok := x.exprs[inv.Name.Value]
		if !ok {
			_, elsewhere := x.items[inv.Name.Value]
			return nil, x.unknownMacro(inv.Name, elsewhere,
				fmt.Sprintf("an item: `%s! { ... }`", inv.Name.Value))
		}
		expr, err := fn(c, inv.Group)
		if err != nil {
			return nil, err
		}
		frag, ferr := c.Emitter().Var(inv.Binding.Value, expr)
		if ferr != nil {
			return nil, errors.Internal(inv.Span(), ferr)
		}
		return []emit.Fragment{frag}, nil
	}
	return nil, errors.Internal(inv.Span(), fmt.Sprintf("unknown invocation kind %v", inv.Kind))
}

// unknownMacro reports a macro missing from the registry of its call
// position. elsewhere is set when the name is registered for the other
// position.
func repeatedDerive(name, first ast.Ident) *errors.CompilerError {
	return errors.NewError(errors.ErrorMalformedInput,
		fmt.Sprintf("derive `%s` is listed more than once", name.Value), name.Span).
		WithNote(fmt.Sprintf("first listed at %s", first.Span)).
		WithHelp("remove the repeated derive").
		Build()
}

func (x *Expander) unknownMacro(name ast.Ident, elsewhere bool, usage string) *errors.CompilerError {
	if elsewhere {
		return errors.NewError(errors.ErrorUnknownMacro,
			fmt.Sprintf("macro `%s!` cannot be used here", name.Value), name.Span).
			WithHelp(fmt.Sprintf("`%s!` is used as %s", name.Value, usage)).
			Build()
	}
	return errors.UnknownMacro("macro", name.Value, name.Span, x.Macros())
}
