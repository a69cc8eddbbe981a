// Package pypage is a text-templating preprocessor: it scans a document for
// embedded script blocks, evaluates them once in document order as a single
// shared program, and splices each block's printed output back into the
// surrounding text.
//
// Basic Usage:
//
//	output, err := pypage.RenderFile("index.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(output)
//
// Tag Syntax:
//
// Block tags occupy whole lines; the opening tag's column sets the
// indentation stripped from the enclosed code and re-applied to its output:
//
//	<ul>
//	    <python>
//	    for i in range(3):
//	        write("<li>%d</li>\n" % i)
//	    </python>
//	</ul>
//
// Inline tags live inside a single line:
//
//	Hello <py>write("World")</py>!
//
// All blocks in a document share one scope: names defined in an earlier
// block are visible to every later block and inline tag.
package pypage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Engine provides the main API for preprocessing documents.
// Use New() to create a new engine instance.
type Engine struct {
	config *Config
	cache  *DocumentCache
}

// New creates a new engine with the global configuration.
func New() *Engine {
	return &Engine{
		config: GetGlobalConfig(),
		cache:  defaultCache,
	}
}

// NewWithConfig creates a new engine with a custom configuration.
func NewWithConfig(config *Config) *Engine {
	return &Engine{
		config: config,
		cache: NewDocumentCacheWithConfig(CacheConfig{
			MaxSize: config.CacheMaxSize,
			TTL:     config.CacheTTL,
		}),
	}
}

// PreparedDocument is a scanned document ready for rendering. It is
// immutable: every Render evaluates the embedded code afresh in a new
// namespace, so one prepared document can be rendered many times.
type PreparedDocument struct {
	doc  *Document
	name string
}

// Render evaluates the document's embedded code and returns the final text.
// Rendering is all-or-nothing: an evaluation failure is returned unchanged
// and no partial output is produced.
func (p *PreparedDocument) Render() (string, error) {
	return renderDocument(p.doc, p.name)
}

// Document exposes the scanned segment sequence, for inspection.
func (p *PreparedDocument) Document() *Document {
	return p.doc
}

// Prepare scans a document from an io.Reader.
func (e *Engine) Prepare(r io.Reader) (*PreparedDocument, error) {
	return e.prepareNamed(r, "<pypage>")
}

func (e *Engine) prepareNamed(r io.Reader, name string) (*PreparedDocument, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, NewDocumentError("read", name, err)
	}
	doc, err := scanDocument(lines, e.config.StrictBlocks)
	if err != nil {
		return nil, err
	}
	GetLogger().DebugDocument(doc)
	return &PreparedDocument{doc: doc, name: name}, nil
}

// PrepareFile scans a document from a file path. The result is cached if
// caching is enabled in the configuration.
func (e *Engine) PrepareFile(path string) (*PreparedDocument, error) {
	if e.config.CacheMaxSize > 0 && e.cache != nil {
		if doc, ok := e.cache.Get(path); ok {
			return doc, nil
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	defer file.Close()

	doc, err := e.prepareNamed(file, path)
	if err != nil {
		return nil, err
	}

	if e.config.CacheMaxSize > 0 && e.cache != nil {
		e.cache.Set(path, doc)
	}

	return doc, nil
}

// Render scans and renders a document from an io.Reader.
func (e *Engine) Render(r io.Reader) (string, error) {
	doc, err := e.Prepare(r)
	if err != nil {
		return "", err
	}
	return doc.Render()
}

// RenderString scans and renders an in-memory document.
func (e *Engine) RenderString(input string) (string, error) {
	return e.Render(strings.NewReader(input))
}

// RenderFile scans and renders a document from a file path.
func (e *Engine) RenderFile(path string) (string, error) {
	doc, err := e.PrepareFile(path)
	if err != nil {
		return "", err
	}
	return doc.Render()
}

// RenderFiles renders each named file under dir, returning the results
// keyed by name. The first failure aborts the batch.
func (e *Engine) RenderFiles(dir string, names ...string) (map[string]string, error) {
	results := make(map[string]string, len(names))
	for _, name := range names {
		output, err := e.RenderFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}
		results[name] = output
	}
	return results, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// ClearCache removes all prepared documents from the engine's cache.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithCache returns an option that sets the cache size (0 disables caching).
func WithCache(maxSize int) Option {
	return func(e *Engine) {
		e.config.CacheMaxSize = maxSize
		e.cache = NewDocumentCacheWithConfig(CacheConfig{
			MaxSize: maxSize,
			TTL:     e.config.CacheTTL,
		})
	}
}

// WithStrictBlocks returns an option that controls unterminated-block
// handling: strict engines reject a block-open with no matching close.
func WithStrictBlocks(strict bool) Option {
	return func(e *Engine) {
		e.config.StrictBlocks = strict
	}
}

// NewWithOptions creates a new engine with the specified options.
func NewWithOptions(opts ...Option) *Engine {
	engine := &Engine{
		config: GetGlobalConfig(),
		cache:  defaultCache,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// DefaultEngine is the global default engine instance.
var DefaultEngine = New()

// Module-level convenience functions that use the default engine.

// Prepare scans a document from an io.Reader using the default engine.
func Prepare(r io.Reader) (*PreparedDocument, error) {
	return DefaultEngine.Prepare(r)
}

// PrepareFile scans a document from a file path using the default engine.
func PrepareFile(path string) (*PreparedDocument, error) {
	return DefaultEngine.PrepareFile(path)
}

// Render scans and renders a document from an io.Reader using the default engine.
func Render(r io.Reader) (string, error) {
	return DefaultEngine.Render(r)
}

// RenderString scans and renders an in-memory document using the default engine.
func RenderString(input string) (string, error) {
	return DefaultEngine.RenderString(input)
}

// RenderFile scans and renders a file using the default engine.
func RenderFile(path string) (string, error) {
	return DefaultEngine.RenderFile(path)
}

// ClearCache clears the default engine's document cache.
func ClearCache() {
	DefaultEngine.ClearCache()
}
