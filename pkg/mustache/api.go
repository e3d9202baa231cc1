package mustache

import (
	"io"
	"os"
	"strings"
)

// Engine provides the main API for rendering templates.
// Use New() to create a new engine instance.
type Engine struct {
	config *Config
	cache  *TemplateCache
}

// New creates a new engine with default configuration.
func New() *Engine {
	return NewWithConfig(nil)
}

// NewWithConfig creates a new engine with custom configuration.
// Missing fields are filled with defaults.
func NewWithConfig(config *Config) *Engine {
	config = NewConfigWithDefaults(config)
	return &Engine{
		config: config,
		cache: NewTemplateCacheWithConfig(CacheConfig{
			MaxSize: config.CacheMaxSize,
			TTL:     config.CacheTTL,
		}),
	}
}

// Render interprets the template in a single pass against the model
// and writes the output to w. The model must satisfy the validity rule
// of the capability interface (at least one of Getter or Putter); see
// Model.
//
// Example:
//
//	model := mapmodel.New(map[string]any{"name": "John Doe"})
//	err := engine.Render("Hello {{name}}!", model, os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
func (e *Engine) Render(template string, model Model, w io.Writer) error {
	return render(e.config, template, model, sink{out: w})
}

// RenderFile renders the template to an open file, the raw-descriptor
// variant of Render.
func (e *Engine) RenderFile(template string, model Model, f *os.File) error {
	if f == nil {
		return NewRenderError(CodeSystem, "nil destination file")
	}
	return e.Render(template, model, f)
}

// RenderString renders the template into a growable buffer and returns
// the result. The result's length is the number of bytes produced.
func (e *Engine) RenderString(template string, model Model) (string, error) {
	var buf strings.Builder
	if err := e.Render(template, model, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTemplateFile loads template text from a file path, through the
// engine's cache, and renders it to w.
func (e *Engine) RenderTemplateFile(path string, model Model, w io.Writer) error {
	template, err := e.cache.Load(path)
	if err != nil {
		return err
	}
	return e.Render(template, model, w)
}

// defaultEngine backs the package-level convenience functions.
var defaultEngine = New()

// Render renders a template with the default engine.
func Render(template string, model Model, w io.Writer) error {
	return defaultEngine.Render(template, model, w)
}

// RenderFile renders a template to an open file with the default engine.
func RenderFile(template string, model Model, f *os.File) error {
	return defaultEngine.RenderFile(template, model, f)
}

// RenderString renders a template to a string with the default engine.
func RenderString(template string, model Model) (string, error) {
	return defaultEngine.RenderString(template, model)
}
