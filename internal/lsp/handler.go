package lsp

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sasha-s/go-deadlock"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"shapegen/internal/config"
	"shapegen/internal/driver"
)

var log = commonlog.GetLogger("shapegen.lsp")

// ShapeHandler implements the LSP server handlers for .shape files.
type ShapeHandler struct {
	mu      deadlock.RWMutex
	content map[string]string
	drivers map[string]*driver.Driver // by config file, "" for defaults
	opts    driver.Options
}

// NewShapeHandler creates a handler. Documents are expanded in memory;
// nothing is written and the expansion cache is not used.
func NewShapeHandler(version string) *ShapeHandler {
	return &ShapeHandler{
		content: make(map[string]string),
		drivers: make(map[string]*driver.Driver),
		opts:    driver.Options{Version: version},
	}
}

// Initialize advertises the server's capabilities.
func (h *ShapeHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider:   ptrBool(false),
				TriggerCharacters: []string{"(", ","},
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *ShapeHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *ShapeHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *ShapeHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen stores the document and publishes its diagnostics.
func (h *ShapeHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *ShapeHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.content, path)
	h.mu.Unlock()

	// clear stale markers
	publishDiagnostics(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentDidChange replaces the document with the last full-content
// change and republishes diagnostics.
func (h *ShapeHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	text, ok := "", false
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			// ranged edits are not expected with full sync
			if c.Range == nil {
				text, ok = c.Text, true
			}
		}
	}
	if !ok {
		return nil
	}
	return h.update(ctx, params.TextDocument.URI, text)
}

// TextDocumentCompletion offers derive names inside #[derive(...)] and
// macro names everywhere else.
func (h *ShapeHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	text, err := h.text(path)
	if err != nil {
		return nil, err
	}
	x := h.driverFor(path).Expander()

	var items []protocol.CompletionItem
	if inDerive(text, newLineIndex(text), params.Position) {
		for _, name := range x.Derives() {
			items = append(items, protocol.CompletionItem{
				Label:  name,
				Kind:   ptrCompletionKind(protocol.CompletionItemKindInterface),
				Detail: ptrString("derive"),
			})
		}
	} else {
		for _, name := range x.Macros() {
			items = append(items, protocol.CompletionItem{
				Label:      name + "!",
				Kind:       ptrCompletionKind(protocol.CompletionItemKindFunction),
				Detail:     ptrString("macro"),
				InsertText: ptrString(name + "!"),
			})
		}
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull classifies the whole document.
func (h *ShapeHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	text, err := h.text(path)
	if err != nil {
		return nil, err
	}

	tokens, errs := collectSemanticTokens(path, text)
	if len(errs) > 0 {
		log.Debugf("%s: %d token errors", path, len(errs))
	}
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

func (h *ShapeHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.content[path] = text
	h.mu.Unlock()

	diagnostics, err := h.diagnose(path, text)
	if err != nil {
		return err
	}
	publishDiagnostics(ctx, uri, diagnostics)
	return nil
}

// diagnose expands text in memory and converts its diagnostics.
func (h *ShapeHandler) diagnose(path, text string) ([]protocol.Diagnostic, error) {
	res, err := h.driverFor(path).ExpandSource(context.Background(), path, text)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	return ConvertDiagnostics(text, res.Diagnostics), nil
}

// text returns the open document, falling back to the file on disk.
func (h *ShapeHandler) text(path string) (string, error) {
	h.mu.RLock()
	text, ok := h.content[path]
	h.mu.RUnlock()
	if ok {
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

// driverFor returns the driver configured by the shapegen.toml governing
// path. Drivers are shared between documents with the same config.
func (h *ShapeHandler) driverFor(path string) *driver.Driver {
	cfgPath, found, err := config.Find(filepath.Dir(path))
	if err != nil || !found {
		cfgPath = ""
	}

	h.mu.RLock()
	d, ok := h.drivers[cfgPath]
	h.mu.RUnlock()
	if ok {
		return d
	}

	cfg := config.Default()
	if cfgPath != "" {
		if cfg, err = config.Load(cfgPath); err != nil {
			log.Warningf("%s: %s", cfgPath, err)
			cfg = config.Default()
		}
	}
	d = driver.New(cfg, h.opts)

	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.drivers[cfgPath]; ok {
		return existing
	}
	h.drivers[cfgPath] = d
	return d
}

// inDerive reports whether pos is inside the parentheses of a derive
// attribute.
func inDerive(text string, lines *lineIndex, pos protocol.Position) bool {
	offset := lines.offset(pos)
	before := text[:offset]
	open := strings.LastIndex(before, "derive(")
	if open < 0 {
		return false
	}
	return !strings.ContainsAny(before[open:], ")]")
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// /C:/... -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("%s: publishing %d diagnostics", uri, len(diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
